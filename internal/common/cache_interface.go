package common

import "time"

// CacheInterface is the contract report caches implement. Two backends
// exist: an in-process cache for single-replica embedding and a Redis
// cache for dashboard deployments that share results across replicas.
type CacheInterface interface {
	// Set stores a value under key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the value and true when found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a key
	Delete(key string)

	// GetOrSet returns the cached value, or runs loader and caches its result
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections
	Close() error
}
