package order

import "sync"

// Repository defines persistence for orders. Create must write the order and
// all of its items atomically: either everything is visible afterwards or
// nothing is.
type Repository interface {
	Create(ord Order, items []Item) (Order, error)
	List() ([]Order, error)
	ListByUser(userID int) ([]Order, error)
	GetByID(id int) (Order, error)
	ItemsByOrder(orderID int) ([]Item, error)
	// ItemsByOrders fetches the items of many orders in one round trip,
	// keyed by order id. An empty id list returns an empty map without
	// touching the store.
	ItemsByOrders(orderIDs []int) (map[int][]Item, error)
	UpdateStatus(orderID int, status Status) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	items  map[int][]Item
	nextID int

	// FailItems makes Create fail after the order would have been written,
	// letting tests exercise the all-or-nothing contract.
	FailItems error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int][]Item), nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order, items []Item) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailItems != nil {
		// nothing is recorded, matching the transactional contract
		return Order{}, r.FailItems
	}

	ord.ID = r.nextID
	ord.OrderNumber = 1000 + r.nextID
	r.nextID++
	r.orders = append(r.orders, ord)

	stored := make([]Item, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].OrderID = ord.ID
	}
	r.items[ord.ID] = stored
	return ord, nil
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	// newest first
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID != nil && *r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ItemsByOrder(orderID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.items[orderID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (r *InMemoryRepository) ItemsByOrders(orderIDs []int) (map[int][]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int][]Item, len(orderIDs))
	for _, id := range orderIDs {
		items := r.items[id]
		if len(items) == 0 {
			continue
		}
		cp := make([]Item, len(items))
		copy(cp, items)
		out[id] = cp
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(orderID int, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}
