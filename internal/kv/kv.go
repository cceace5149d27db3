// Package kv provides the durable key-value store backing the offline
// cache. Values are JSON strings keyed by namespaced string keys; the
// store survives restarts and makes no transactional guarantees beyond
// single-key atomicity.
package kv

import "context"

// Store is a durable string key-value store.
//
// Get reports ok=false for missing keys without an error; errors are
// reserved for storage failures. Remove is idempotent and accepts
// multiple keys. Keys returns every stored key in unspecified order.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
