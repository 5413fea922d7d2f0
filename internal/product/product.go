package product

// Product represents a sellable grocery item and maps to the `products` table.
// Price is the sale price; CostPrice is the purchase price used by profit reports.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Barcode   string  `json:"barcode"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price"`
	Stock     int     `json:"stock"`
	Category  *string `json:"category,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}
