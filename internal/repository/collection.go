// Package repository provides the typed collections persisted in a key-value store
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/abelzeko/mionjo/internal/storage"
)

// ErrCorruptCollection is returned when a stored collection cannot be decoded.
// The stored value is left untouched.
var ErrCorruptCollection = errors.New("corrupt collection")

// Identifiable is implemented by every entity stored in a collection
type Identifiable interface {
	GetID() string
}

// Collection is a JSON array of T stored under a single key
type Collection[T Identifiable] struct {
	store    storage.Store
	key      string
	defaults func() []T
	mu       sync.Mutex
}

// NewCollection creates a collection stored at key, seeded from defaults on first read
func NewCollection[T Identifiable](store storage.Store, key string, defaults func() []T) *Collection[T] {
	if defaults == nil {
		defaults = func() []T { return []T{} }
	}
	return &Collection[T]{
		store:    store,
		key:      key,
		defaults: defaults,
	}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// Read returns the stored items. If nothing is stored yet, the fixture
// default is written first and returned.
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(ctx)
}

// Write replaces the whole collection
func (c *Collection[T]) Write(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(ctx, items)
}

// Add prepends item to the collection
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	return c.AddMany(ctx, []T{item})
}

// AddMany prepends items, keeping their relative order
func (c *Collection[T]) AddMany(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.read(ctx)
	if err != nil {
		return err
	}
	merged := make([]T, 0, len(items)+len(current))
	merged = append(merged, items...)
	merged = append(merged, current...)
	return c.write(ctx, merged)
}

// Find returns the item with the given id, or nil if there is none
func (c *Collection[T]) Find(ctx context.Context, id string) (*T, error) {
	items, err := c.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetID() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Update shallow-merges patch over the item with the given id. Keys of patch
// are JSON field names; "id" is ignored. It reports whether the item existed.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range items {
		if items[i].GetID() != id {
			continue
		}
		merged, err := mergeFields(items[i], patch)
		if err != nil {
			return false, fmt.Errorf("failed to patch %s in %s: %w", id, c.key, err)
		}
		items[i] = merged
		found = true
	}
	if !found {
		return false, nil
	}
	return true, c.write(ctx, items)
}

// UpdateAll shallow-merges patch over every item
func (c *Collection[T]) UpdateAll(ctx context.Context, patch map[string]any) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return 0, err
	}
	for i := range items {
		merged, err := mergeFields(items[i], patch)
		if err != nil {
			return 0, fmt.Errorf("failed to patch %s in %s: %w", items[i].GetID(), c.key, err)
		}
		items[i] = merged
	}
	return len(items), c.write(ctx, items)
}

// Remove deletes the item with the given id and reports whether it existed
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, c.write(ctx, kept)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if !found {
		items := c.defaults()
		log.Printf("Seeding %s with %d fixture records", c.key, len(items))
		if err := c.write(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Stored value at %s cannot be decoded: %v", c.key, err)
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptCollection, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

// mergeFields overlays patch on the JSON object form of item
func mergeFields[T any](item T, patch map[string]any) (T, error) {
	var zero T
	data, err := json.Marshal(item)
	if err != nil {
		return zero, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return zero, err
	}
	for name, value := range patch {
		if name == "id" {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return zero, fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = encoded
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, err
	}
	return out, nil
}
