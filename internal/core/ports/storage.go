package ports

// Storage is a durable string-keyed byte store.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type Storage interface {
	// Get returns the value stored under key.
	// Returns nil, nil if not found.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Keys lists every stored key that starts with prefix.
	Keys(prefix string) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
