package executor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/queryflow/core"
)

// Registry maps intents to their handlers. One handler per intent; safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[core.Intent]Handler
}

// NewRegistry creates a Registry, panicking on duplicate intents so wiring
// mistakes surface at startup rather than at dispatch time.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[core.Intent]Handler, len(handlers))}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a handler, rejecting duplicate intents.
func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.handlers[h.Intent()]; ok {
		return fmt.Errorf("intent %q already handled by %q", h.Intent(), existing.Name())
	}
	r.handlers[h.Intent()] = h
	return nil
}

// Replace installs a handler, overwriting any existing one for the intent.
func (r *Registry) Replace(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Intent()] = h
}

// Get returns the handler for an intent.
func (r *Registry) Get(intent core.Intent) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[intent]
	return h, ok
}

// Intents returns the handled intents in deterministic order.
func (r *Registry) Intents() []core.Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Intent, 0, len(r.handlers))
	for intent := range r.handlers {
		out = append(out, intent)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
