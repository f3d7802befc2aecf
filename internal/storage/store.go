// Package storage provides the durable key-value stores backing the collections
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned when a store is used after Close
var ErrClosed = errors.New("storage: store is closed")

// Store is a durable string key-value store
type Store interface {
	// Get returns the value stored at key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value at key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in lexical order
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
