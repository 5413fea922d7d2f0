package cart

import "errors"

var (
	ErrUnauthenticated = errors.New("login required")
	ErrNotFound        = errors.New("cart item not found")
)

// Item is a persisted cart row joined with product details for display.
// At most one row exists per (user, product) pair.
type Item struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"product_name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ImageURL  *string `json:"image_url,omitempty"`
}
