package cart

import "sync"

// Repository provides access to the persisted per-user cart rows.
type Repository interface {
	// Add inserts a row for (user, product) or increments the existing one.
	Add(userID int, productID int, qty int) error
	Remove(cartItemID int) error
	UpdateQuantity(cartItemID int, qty int) error
	ListByUser(userID int) ([]Item, error)
	ClearForUser(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	rows   []Item
	owners map[int]int // cart item id -> user id
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{owners: make(map[int]int), nextID: 1}
}

func (r *InMemoryRepository) Add(userID int, productID int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.owners[r.rows[i].ID] == userID && r.rows[i].ProductID == productID {
			r.rows[i].Quantity += qty
			return nil
		}
	}

	row := Item{ID: r.nextID, ProductID: productID, Quantity: qty}
	r.owners[r.nextID] = userID
	r.nextID++
	r.rows = append(r.rows, row)
	return nil
}

func (r *InMemoryRepository) Remove(cartItemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == cartItemID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			delete(r.owners, cartItemID)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) UpdateQuantity(cartItemID int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == cartItemID {
			r.rows[i].Quantity = qty
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0)
	for _, row := range r.rows {
		if r.owners[row.ID] == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ClearForUser(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rows[:0]
	for _, row := range r.rows {
		if r.owners[row.ID] == userID {
			delete(r.owners, row.ID)
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return nil
}
