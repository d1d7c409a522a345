package config

import (
	"slices"
	"sync"
)

// RequestLog records every configuration key requested during a run,
// whether or not the lookup succeeded. Create one per process and share it
// with every Accessor. Keys are never removed.
type RequestLog struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewRequestLog() *RequestLog {
	return &RequestLog{keys: make(map[string]struct{})}
}

// Record adds key. Recording a key twice has no effect.
func (r *RequestLog) Record(key string) {
	r.mu.Lock()
	r.keys[key] = struct{}{}
	r.mu.Unlock()
}

// Snapshot returns the keys recorded so far in lexicographic order. The
// returned slice is owned by the caller.
func (r *RequestLog) Snapshot() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.keys))
	for key := range r.keys {
		out = append(out, key)
	}
	r.mu.RUnlock()
	slices.Sort(out)
	return out
}

func (r *RequestLog) Contains(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok
}

func (r *RequestLog) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}
