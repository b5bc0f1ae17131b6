// Package storage provides the persistence backends for the sheet store.
// A backend is a key-value blob store: the store writes the whole serialized
// sheet under a single fixed key after every mutation and reads it back once
// at startup.
package storage

import "errors"

// ErrKeyNotFound is returned by Read when nothing is stored under the key
var ErrKeyNotFound = errors.New("key not found")

// Backend defines the byte-oriented interface the store persists through
type Backend interface {
	// Read returns the blob stored under key, or ErrKeyNotFound
	Read(key string) ([]byte, error)

	// Write replaces the blob stored under key
	Write(key string, data []byte) error

	// Close releases any resources held by the backend
	Close() error
}
