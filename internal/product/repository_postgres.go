package product

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT product_id, name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at
		FROM products
		ORDER BY product_id
	`
	listProductsByCategoryQuery = `
		SELECT product_id, name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE category = $1
		ORDER BY product_id
	`
	getProductByIDQuery = `
		SELECT product_id, name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE product_id = $1
	`
	getProductByBarcodeQuery = `
		SELECT product_id, name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE barcode = $1
	`
	searchProductsQuery = `
		SELECT product_id, name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR barcode = $1
		ORDER BY product_id
		LIMIT $2
	`
	insertProductQuery = `
		INSERT INTO products (name, barcode, price, cost_price, stock, category, image_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			barcode = $2,
			price = $3,
			cost_price = $4,
			stock = $5,
			category = $6,
			image_url = $7,
			updated_at = $8
		WHERE product_id = $9
	`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`

	// single-statement decrement so concurrent checkouts cannot drive stock
	// negative or lose an update
	decrementStockQuery = `UPDATE products SET stock = GREATEST(stock - $2, 0), updated_at = now() WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) ListByCategory(category string) []Product {
	rows, err := r.db.Query(listProductsByCategoryQuery, category)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByBarcode(barcode string) (Product, error) {
	row := r.db.QueryRow(getProductByBarcodeQuery, barcode)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Search(term string, limit int) []Product {
	rows, err := r.db.Query(searchProductsQuery, term, limit)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Barcode, p.Price, p.CostPrice, p.Stock, p.Category, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrBarcodeExists
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Barcode, p.Price, p.CostPrice, p.Stock, p.Category, p.ImageURL, p.UpdatedAt, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrBarcodeExists
		}
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DecrementStock(id int, qty int) error {
	res, err := r.db.Exec(decrementStockQuery, id, qty)
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

func scanProduct(row rowScanner) (Product, error) {
	var (
		p         Product
		category  sql.NullString
		imageURL  sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &p.Price, &p.CostPrice, &p.Stock, &category, &imageURL, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	if category.Valid {
		p.Category = &category.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.String
	}
	return p, nil
}

// isUniqueViolation reports whether the error came from the unique barcode
// constraint (pgx surfaces SQLSTATE 23505 in the message).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
