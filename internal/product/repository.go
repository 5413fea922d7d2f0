package product

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrBarcodeExists = errors.New("barcode already exists")
)

type Repository interface {
	List() []Product
	ListByCategory(category string) []Product
	GetByID(id int) (Product, error)
	GetByBarcode(barcode string) (Product, error)
	// Search matches the term as a name substring or an exact barcode,
	// returning at most limit rows (POS live search).
	Search(term string, limit int) []Product
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// DecrementStock lowers the on-hand stock by qty, clamped at zero.
	DecrementStock(id int, qty int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) ListByCategory(category string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.Category != nil && *p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByBarcode(barcode string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Search(term string, limit int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(term)
	out := make([]Product, 0)
	for _, p := range r.storage {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), needle) || p.Barcode == term {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Barcode == p.Barcode {
			return Product{}, ErrBarcodeExists
		}
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DecrementStock(id int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			stock := r.storage[i].Stock - qty
			if stock < 0 {
				stock = 0
			}
			r.storage[i].Stock = stock
			return nil
		}
	}
	return ErrNotFound
}
