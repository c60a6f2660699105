package store

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// Memory keeps collections as raw JSON in a map. It backs tests and is
// the injectable fake the managers are designed around.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
	notifier
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string, out any) bool {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return decode(key, raw, out)
}

func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = string(raw)
	m.mu.Unlock()
	m.fire(key)
	return nil
}

// SetRaw stores content verbatim, valid JSON or not. Tests use it to
// plant legacy-format and corrupt values.
func (m *Memory) SetRaw(key, raw string) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	m.fire(key)
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	m.fire(key)
	return nil
}

func (m *Memory) Keys(prefix string) []string {
	m.mu.Lock()
	out := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	m.mu.Unlock()
	sort.Strings(out)
	return out
}
