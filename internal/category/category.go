package category

// Category is a product category label shown in the storefront filter and the
// admin product form.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}
