package memory

import (
	"sync"

	"github.com/muster/muster/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Registry implements port.SessionRegistry over an in-process map.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]port.Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]port.Client),
	}
}

func (r *Registry) Register(id string, c port.Client) {
	r.mu.Lock()
	r.clients[id] = c
	r.mu.Unlock()
}

func (r *Registry) Unregister(id string, c port.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.clients[id]; ok && cur == c {
		delete(r.clients, id)
		return true
	}
	return false
}

func (r *Registry) Send(id string, v any) bool {
	r.mu.RLock()
	c, ok := r.clients[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	// Write outside the lock: a slow peer must not stall the registry.
	if err := c.Send(v); err != nil {
		log.Debug().Err(err).Str("client_id", id).Msg("Dropped message to unreachable client")
		return false
	}
	return true
}

func (r *Registry) Others(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.clients))
	for other := range r.clients {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}
