package report

// Summary aggregates sales and inventory figures for the admin dashboard.
// TotalCost is cost price times quantity sold; InventoryValue is current
// stock times cost price.
type Summary struct {
	TotalSales     float64 `json:"total_sales"`
	TotalCost      float64 `json:"total_cost"`
	TotalProfit    float64 `json:"total_profit"`
	TotalOrders    int     `json:"total_orders"`
	InventoryValue float64 `json:"inventory_value"`
}

// BestSeller is one row of the top-products list, ranked by quantity sold.
type BestSeller struct {
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}
