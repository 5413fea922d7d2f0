package report

import (
	"database/sql"
)

// Repository provides read access to the report aggregates.
type Repository interface {
	Summary() (Summary, error)
	BestSellers(limit int) ([]BestSeller, error)
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	salesSummaryQuery = `
		SELECT COALESCE(SUM(oi.price * oi.quantity), 0),
		       COALESCE(SUM(COALESCE(p.cost_price, 0) * oi.quantity), 0)
		FROM order_items oi
		LEFT JOIN products p ON p.product_id = oi.product_id
	`
	orderCountQuery  = `SELECT COUNT(*) FROM orders`
	inventoryQuery   = `SELECT COALESCE(SUM(stock * cost_price), 0) FROM products`
	bestSellersQuery = `
		SELECT oi.product_id,
		       COALESCE(MAX(oi.product_name), ''),
		       SUM(oi.quantity),
		       SUM(oi.price * oi.quantity)
		FROM order_items oi
		GROUP BY oi.product_id
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Summary() (Summary, error) {
	var s Summary
	if err := r.db.QueryRow(salesSummaryQuery).Scan(&s.TotalSales, &s.TotalCost); err != nil {
		return Summary{}, err
	}
	if err := r.db.QueryRow(orderCountQuery).Scan(&s.TotalOrders); err != nil {
		return Summary{}, err
	}
	if err := r.db.QueryRow(inventoryQuery).Scan(&s.InventoryValue); err != nil {
		return Summary{}, err
	}
	s.TotalProfit = s.TotalSales - s.TotalCost
	return s, nil
}

func (r *PostgresRepository) BestSellers(limit int) ([]BestSeller, error) {
	rows, err := r.db.Query(bestSellersQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BestSeller, 0)
	for rows.Next() {
		var b BestSeller
		if err := rows.Scan(&b.ProductID, &b.Name, &b.Quantity, &b.TotalPrice); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
