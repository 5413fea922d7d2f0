package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	// a single upsert keeps the one-row-per-(user,product) invariant even
	// under concurrent adds
	addToCartQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	removeCartItemQuery   = `DELETE FROM cart_items WHERE cart_item_id = $1`
	updateCartItemQuery   = `UPDATE cart_items SET quantity = $2 WHERE cart_item_id = $1`
	clearCartForUserQuery = `DELETE FROM cart_items WHERE user_id = $1`
	listCartByUserQuery   = `
		SELECT ci.cart_item_id, ci.product_id, ci.quantity, p.name, p.price, p.stock, p.image_url
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.cart_item_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID int, productID int, qty int) error {
	_, err := r.db.Exec(addToCartQuery, userID, productID, qty)
	return err
}

func (r *PostgresRepository) Remove(cartItemID int) error {
	res, err := r.db.Exec(removeCartItemQuery, cartItemID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateQuantity(cartItemID int, qty int) error {
	res, err := r.db.Exec(updateCartItemQuery, cartItemID, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Item, error) {
	rows, err := r.db.Query(listCartByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var (
			item     Item
			imageURL sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Name, &item.Price, &item.Stock, &imageURL); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			item.ImageURL = &imageURL.String
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ClearForUser(userID int) error {
	_, err := r.db.Exec(clearCartForUserQuery, userID)
	return err
}
