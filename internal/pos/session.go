package pos

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("pos session not found")

// Registry keeps one cart per till session, keyed by a generated session id.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Open creates a fresh session and returns its id.
func (r *Registry) Open() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[id] = NewCart()
	return id
}

func (r *Registry) Get(id string) (*Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cart, nil
}

// Close drops a session and its held carts.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.carts, id)
	return nil
}
