package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned when the backing store has not been created yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'jagruk init' first")
)

// BlobStore is the key-value primitive the persistence layer writes through.
// Values are opaque bytes; the store never interprets them.
type BlobStore interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// Clear erases every key written by this application.
	Clear() error

	// Location is a non-sensitive identifier for display and for locating the
	// config directory.
	Location() string
}
