package storage

import "sync"

// MemoryBackend keeps blobs in a map. Nothing survives the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// ReadErr and WriteErr, when set, make every Read or Write fail
	ReadErr  error
	WriteErr error

	// Writes counts successful writes
	Writes int
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

// Read implements Backend.Read
func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write implements Backend.Write
func (m *MemoryBackend) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.blobs[key] = append([]byte(nil), data...)
	m.Writes++
	return nil
}

// Close implements Backend.Close
func (m *MemoryBackend) Close() error {
	return nil
}
