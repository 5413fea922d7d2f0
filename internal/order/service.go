package order

import (
	"log"
	"time"
)

// CartClearer empties a user's persisted cart after a successful order.
// Implemented by the cart service.
type CartClearer interface {
	ClearForUser(userID int) error
}

// StockDecrementer lowers a product's stock, clamped at zero.
// Implemented by the product service.
type StockDecrementer interface {
	DecrementStock(id int, qty int) error
}

// CustomerInfo carries the optional checkout contact fields.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SubmitResult is the checkout outcome handed back to the caller.
type SubmitResult struct {
	OrderID     int    `json:"orderId"`
	OrderNumber int    `json:"orderNumber"`
	Message     string `json:"message"`
}

// Service runs the order submission workflow and the admin order operations.
type Service struct {
	repo  Repository
	carts CartClearer
	stock StockDecrementer
}

func NewService(repo Repository, carts CartClearer, stock StockDecrementer) *Service {
	return &Service{repo: repo, carts: carts, stock: stock}
}

// Submit places an order from a cart snapshot. The order and its items are
// committed atomically; cart clearance and stock decrement run after the
// commit as best-effort cleanup and never fail the order.
func (s *Service) Submit(lines []RawLine, total float64, orderType Type, customer CustomerInfo, userID int) (SubmitResult, error) {
	if orderType != TypeOnline && orderType != TypePOS {
		return SubmitResult{}, ErrInvalidType
	}
	if len(lines) == 0 {
		return SubmitResult{}, ErrEmptyOrder
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		item, err := line.Normalize()
		if err != nil {
			return SubmitResult{}, err
		}
		items = append(items, item)
	}

	ord := Order{
		TotalAmount:  total,
		Type:         orderType,
		CustomerName: customer.Name,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if ord.CustomerName == "" {
		if orderType == TypePOS {
			ord.CustomerName = "Walk-in Customer"
		} else {
			ord.CustomerName = "Unknown User"
		}
	}
	if customer.Phone != "" {
		ord.CustomerPhone = &customer.Phone
	}
	if customer.Address != "" {
		ord.CustomerAddress = &customer.Address
	}
	// payment is taken at the till, so POS sales complete immediately
	if orderType == TypePOS {
		ord.Status = StatusCompleted
	}
	if userID > 0 {
		ord.UserID = &userID
	}

	created, err := s.repo.Create(ord, items)
	if err != nil {
		return SubmitResult{}, err
	}

	// best-effort cleanup: failures are logged, never surfaced
	if userID > 0 && s.carts != nil {
		if err := s.carts.ClearForUser(userID); err != nil {
			log.Printf("warning: could not clear cart for user %d after order %d: %v", userID, created.ID, err)
		}
	}
	if s.stock != nil {
		for _, item := range items {
			if err := s.stock.DecrementStock(item.ProductID, item.Quantity); err != nil {
				log.Printf("warning: could not decrement stock of product %d after order %d: %v", item.ProductID, created.ID, err)
			}
		}
	}

	message := "Sale completed!"
	if orderType == TypeOnline {
		message = "Your order has been placed successfully!"
	}
	return SubmitResult{OrderID: created.ID, OrderNumber: created.OrderNumber, Message: message}, nil
}

// List returns all orders, newest first.
func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

// ListByUser returns a user's order history with line items attached.
func (s *Service) ListByUser(userID int) ([]Order, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	byOrder, err := s.repo.ItemsByOrders(ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

// Get returns one order with its items.
func (s *Service) Get(id int) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	items, err := s.repo.ItemsByOrder(ord.ID)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items
	return ord, nil
}

// Complete marks a pending online order as fulfilled.
func (s *Service) Complete(id int) error {
	return s.repo.UpdateStatus(id, StatusCompleted)
}
