package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (total_amount, order_type, customer_name, customer_phone, customer_address, status, user_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING order_id, order_number
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, price, product_name)
		VALUES ($1,$2,$3,$4,$5)
	`
	listOrdersQuery = `
		SELECT order_id, order_number, total_amount, order_type, customer_name, customer_phone, customer_address, status, user_id, created_at
		FROM orders
		ORDER BY created_at DESC, order_id DESC
	`
	listOrdersByUserQuery = `
		SELECT order_id, order_number, total_amount, order_type, customer_name, customer_phone, customer_address, status, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, order_id DESC
	`
	getOrderByIDQuery = `
		SELECT order_id, order_number, total_amount, order_type, customer_name, customer_phone, customer_address, status, user_id, created_at
		FROM orders
		WHERE order_id = $1
	`
	itemsByOrderQuery = `
		SELECT order_id, product_id, quantity, price, product_name
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`
	itemsByOrdersQuery = `
		SELECT order_id, product_id, quantity, price, product_name
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, product_id
	`
	updateOrderStatusQuery = `UPDATE orders SET status = $2 WHERE order_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order and its items in one transaction. A failed item
// insert rolls the order row back, so no order is ever left without items.
func (r *PostgresRepository) Create(ord Order, items []Item) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}

	err = tx.QueryRow(insertOrderQuery,
		ord.TotalAmount, ord.Type, ord.CustomerName, ord.CustomerPhone, ord.CustomerAddress, ord.Status, ord.UserID, ord.CreatedAt,
	).Scan(&ord.ID, &ord.OrderNumber)
	if err != nil {
		tx.Rollback()
		return Order{}, err
	}

	for _, item := range items {
		if _, err := tx.Exec(insertOrderItemQuery, ord.ID, item.ProductID, item.Quantity, item.Price, item.Name); err != nil {
			tx.Rollback()
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) List() ([]Order, error) {
	return r.queryOrders(listOrdersQuery)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.queryOrders(listOrdersByUserQuery, userID)
}

func (r *PostgresRepository) queryOrders(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ItemsByOrder(orderID int) ([]Item, error) {
	rows, err := r.db.Query(itemsByOrderQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ItemsByOrders(orderIDs []int) (map[int][]Item, error) {
	if len(orderIDs) == 0 {
		return map[int][]Item{}, nil
	}

	rows, err := r.db.Query(itemsByOrdersQuery, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[int][]Item)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Name); err != nil {
			return nil, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(orderID int, status Status) error {
	res, err := r.db.Exec(updateOrderStatusQuery, orderID, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord     Order
		phone   sql.NullString
		address sql.NullString
		userID  sql.NullInt64
	)
	err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.TotalAmount, &ord.Type, &ord.CustomerName, &phone, &address, &ord.Status, &userID, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	if phone.Valid {
		ord.CustomerPhone = &phone.String
	}
	if address.Valid {
		ord.CustomerAddress = &address.String
	}
	if userID.Valid {
		id := int(userID.Int64)
		ord.UserID = &id
	}
	return ord, nil
}
