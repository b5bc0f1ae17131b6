package storage

import (
	"fmt"
	"path/filepath"
)

// Backend kinds accepted by Open
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Kinds lists the backend names accepted by Open
var Kinds = []string{KindFile, KindSQLite, KindMemory}

// Open creates a backend by name. For the file backend dataDir is the
// directory holding one JSON file per key; for sqlite the database lives at
// dataDir/probsheet.db. The memory backend ignores dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch kind {
	case KindFile, "":
		return NewFileBackend(dataDir), nil
	case KindSQLite:
		return NewSQLiteBackend(filepath.Join(dataDir, "probsheet.db"))
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want one of %v)", kind, Kinds)
	}
}
