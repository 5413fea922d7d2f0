package cart

// ServiceInterface lists the cart operations other packages rely on.
type ServiceInterface interface {
	Add(userID int, productID int, qty int) error
	Remove(cartItemID int) error
	UpdateQuantity(cartItemID int, qty int) error
	ListByUser(userID int) ([]Item, error)
	ClearForUser(userID int) error
}

// Service orchestrates the persisted cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add upserts the (user, product) row, incrementing by qty. A qty of zero or
// less defaults to one (the storefront's add button).
func (s *Service) Add(userID int, productID int, qty int) error {
	if userID <= 0 {
		return ErrUnauthenticated
	}
	if qty <= 0 {
		qty = 1
	}
	return s.repo.Add(userID, productID, qty)
}

func (s *Service) Remove(cartItemID int) error {
	return s.repo.Remove(cartItemID)
}

// UpdateQuantity sets the row quantity; anything below one removes the row.
func (s *Service) UpdateQuantity(cartItemID int, qty int) error {
	if qty < 1 {
		return s.repo.Remove(cartItemID)
	}
	return s.repo.UpdateQuantity(cartItemID, qty)
}

func (s *Service) ListByUser(userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(userID)
}

// ClearForUser empties a user's cart; called by the order workflow after a
// successful checkout.
func (s *Service) ClearForUser(userID int) error {
	return s.repo.ClearForUser(userID)
}
