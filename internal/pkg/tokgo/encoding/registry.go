package encoding

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Spec)
)

// Register adds an encoding spec under its name. Encodings register
// from init; a duplicate name is a programming error.
func Register(spec Spec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if spec.Name == "" {
		panic("encoding: Register with empty name")
	}
	if _, dup := registry[spec.Name]; dup {
		panic("encoding: Register called twice for " + spec.Name)
	}
	registry[spec.Name] = spec
}

// Lookup returns the spec registered under name.
func Lookup(name string) (Spec, error) {
	registryMu.RLock()
	spec, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownEncoding, name, List())
	}
	return spec, nil
}

// List returns the registered encoding names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is a known encoding.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
