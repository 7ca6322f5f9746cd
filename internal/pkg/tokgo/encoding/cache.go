package encoding

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"tokgo/internal/pkg/tokgo/tokenizer"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*tokenizer.Codec)
	group   singleflight.Group
)

// Get returns the process-wide codec for the named encoding, building
// it on first use. Concurrent callers for the same name share a single
// construction. Codecs are immutable, so sharing them is safe.
func Get(name string) (*tokenizer.Codec, error) {
	cacheMu.RLock()
	codec, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		return codec, nil
	}

	v, err, _ := group.Do(name, func() (any, error) {
		cacheMu.RLock()
		codec, ok := cache[name]
		cacheMu.RUnlock()
		if ok {
			return codec, nil
		}

		codec, err := New(name, "")
		if err != nil {
			return nil, err
		}

		cacheMu.Lock()
		cache[name] = codec
		cacheMu.Unlock()
		return codec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*tokenizer.Codec), nil
}

// GetForModel is Get keyed by model name.
func GetForModel(model string) (*tokenizer.Codec, error) {
	name, err := ForModel(model)
	if err != nil {
		return nil, err
	}
	return Get(name)
}

// ClearCache drops all cached codecs. Idempotent; mainly for tests.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*tokenizer.Codec)
	cacheMu.Unlock()
}
