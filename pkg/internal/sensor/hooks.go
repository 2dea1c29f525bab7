package sensor

import "sync"

// hooks is an append-only list safe for concurrent add and iteration.
// Iteration works on a copy so a callback may register further hooks.
type hooks[T any] struct {
	mu    sync.RWMutex
	items []T
}

// add appends items, skipping nil interface values. Nil funcs pass through
// and are skipped by the caller at invocation time.
func (h *hooks[T]) add(items ...T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, it := range items {
		if any(it) != nil {
			h.items = append(h.items, it)
		}
	}
}

func (h *hooks[T]) list() []T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]T(nil), h.items...)
}
