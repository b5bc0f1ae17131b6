// Package export writes a sheet out as JSON, YAML or a zip archive of
// per-problem documents, and reads those files back for import.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Export kinds
const (
	KindJSON    = "json"
	KindYAML    = "yaml"
	KindArchive = "archive"
)

// Kinds lists the accepted export kinds
var Kinds = []string{KindJSON, KindYAML, KindArchive}

// SheetFilename is the name of the full sheet inside an archive
const SheetFilename = "sheet.json"

// ArchiveData is the in-memory form of an export archive
type ArchiveData struct {
	// Sheet is the encoded sheet, stored as SheetFilename
	Sheet []byte

	// Modified stamps every entry, normally the sheet's LastUpdated
	Modified time.Time

	// Objects holds one rendered document per problem
	Objects []ObjectFile
}

// ObjectFile represents an individual problem document in the archive
type ObjectFile struct {
	Filename string
	Modified time.Time
	Content  string
}

// KindFromPath guesses the export kind from a file extension
func KindFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".zip":
		return KindArchive, nil
	default:
		return "", fmt.Errorf("cannot infer format from %q (use one of %v)", path, Kinds)
	}
}
