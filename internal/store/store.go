// Package store is the single persistence primitive: a string-keyed
// collection of JSON values. Every manager builds on it; nothing else
// touches the underlying substrate.
package store

import (
	"encoding/json"
	"reflect"
	"sync"

	applog "wickandwax/internal/log"
)

// Store reads and writes named JSON collections.
//
// Get decodes the stored value into out and reports whether it did.
// Absent keys and malformed stored content both leave out untouched and
// return false; corruption is logged at the implementation, never
// surfaced as an error. Set fully replaces the prior value or leaves it
// unchanged, nothing in between.
type Store interface {
	Get(key string, out any) bool
	Set(key string, v any) error
	Delete(key string) error
	Keys(prefix string) []string

	// Notify registers fn to run after every successful Set or Delete.
	// Best-effort, same-process only: the analogue of a storage-change
	// event another tab listens for.
	Notify(fn func(key string))
}

// decode unmarshals raw into a scratch value and copies it into out only
// when the whole document parses, so a mid-stream decode error never
// leaves out half-populated.
func decode(key, raw string, out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		err := json.Unmarshal([]byte(raw), out) // yields the InvalidUnmarshalError
		applog.Error(nil, "store.get.badtarget", err, map[string]any{"key": key})
		return false
	}
	tmp := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		// Corrupt content degrades to the caller's default.
		applog.Error(nil, "store.get.corrupt", err, map[string]any{"key": key})
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

type notifier struct {
	mu  sync.Mutex
	fns []func(key string)
}

func (n *notifier) Notify(fn func(key string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fns = append(n.fns, fn)
}

func (n *notifier) fire(key string) {
	n.mu.Lock()
	fns := make([]func(string), len(n.fns))
	copy(fns, n.fns)
	n.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
