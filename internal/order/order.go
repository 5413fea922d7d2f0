package order

import "errors"

// Type distinguishes the storefront checkout from the cashier till.
type Type string

const (
	TypeOnline Type = "online"
	TypePOS    Type = "pos"
)

// Status of an order. POS sales are completed at the till; online orders stay
// pending until an admin confirms fulfilment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Order represents a purchase and maps to the `orders` table. OrderNumber is
// the sequential human-facing number printed on receipts.
type Order struct {
	ID              int     `json:"id"`
	OrderNumber     int     `json:"order_number"`
	TotalAmount     float64 `json:"total_amount"`
	Type            Type    `json:"order_type"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	CustomerAddress *string `json:"customer_address,omitempty"`
	Status          Status  `json:"status"`
	UserID          *int    `json:"user_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	Items           []Item  `json:"items,omitempty"`
}

// Item is one order line. Name and Price are snapshots taken at submission
// time and never re-read from the live product.
type Item struct {
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"product_name"`
}

var (
	ErrInvalidType = errors.New("invalid order type")
	ErrEmptyOrder  = errors.New("order has no items")
	ErrBadLine     = errors.New("cart line is missing a product id or quantity")
	ErrNotFound    = errors.New("order not found")
)

// RawLine is the union of cart line shapes callers send: the storefront cart
// nests a product reference, the POS cart flattens the product with a
// cartQuantity, and API clients send a plain product_id/price/quantity triple.
type RawLine struct {
	ProductID    int         `json:"product_id"`
	ID           int         `json:"id"`
	Quantity     int         `json:"quantity"`
	CartQuantity int         `json:"cartQuantity"`
	Price        *float64    `json:"price"`
	ProductName  string      `json:"product_name"`
	Name         string      `json:"name"`
	Product      *RawProduct `json:"product,omitempty"`
}

// RawProduct is the nested product reference some callers use.
type RawProduct struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Normalize collapses a RawLine into a canonical order line. Lines without a
// resolvable product id or a positive quantity are rejected.
func (l RawLine) Normalize() (Item, error) {
	item := Item{
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Name:      l.ProductName,
	}
	if item.ProductID == 0 {
		item.ProductID = l.ID
	}
	if item.ProductID == 0 && l.Product != nil {
		item.ProductID = l.Product.ID
	}
	if item.Quantity == 0 {
		item.Quantity = l.CartQuantity
	}
	if item.Name == "" {
		item.Name = l.Name
	}
	if item.Name == "" && l.Product != nil {
		item.Name = l.Product.Name
	}
	if l.Price != nil {
		item.Price = *l.Price
	} else if l.Product != nil {
		item.Price = l.Product.Price
	}

	if item.ProductID <= 0 || item.Quantity <= 0 {
		return Item{}, ErrBadLine
	}
	return item, nil
}
