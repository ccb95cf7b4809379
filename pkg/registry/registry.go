package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/rxr/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] interface {
	// Register adds an item to the registry
	Register(name string, item T) error

	// Get retrieves an item from the registry
	Get(name string) (T, error)

	// Lookup retrieves an item, reporting whether it exists
	Lookup(name string) (T, bool)

	// List returns all registered names in sorted order
	List() []string

	// Each calls fn for every item in name order
	Each(fn func(name string, item T))

	// Has checks if an item is registered
	Has(name string) bool

	// Count returns the number of registered items
	Count() int
}

// registry is the internal implementation of Registry
type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		items: make(map[string]T),
	}
}

// FromMap builds a registry holding every entry of items
func FromMap[T any](items map[string]T) (Registry[T], error) {
	reg := New[T]()
	for name, item := range items {
		if err := reg.Register(name, item); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds an item to the registry
func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

// Get retrieves an item from the registry
func (r *registry[T]) Get(name string) (T, error) {
	item, exists := r.Lookup(name)
	if !exists {
		return item, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}
	return item, nil
}

func (r *registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	return item, exists
}

// List returns all registered names in sorted order
func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (r *registry[T]) Each(fn func(name string, item T)) {
	for _, name := range r.List() {
		item, ok := r.Lookup(name)
		if ok {
			fn(name, item)
		}
	}
}

// Has checks if an item is registered
func (r *registry[T]) Has(name string) bool {
	_, exists := r.Lookup(name)
	return exists
}

// Count returns the number of registered items
func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
