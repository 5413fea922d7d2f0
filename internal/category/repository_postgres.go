package category

import (
	"database/sql"
)

// Repository provides access to category rows.
type Repository interface {
	List() ([]Category, error)
	Create(name string) (Category, error)
}

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then id. If the query fails the
// function returns an empty slice (caller-friendly).
func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, name, COALESCE(ord, 0) FROM categories ORDER BY COALESCE(ord, 0) DESC, category_id`)
	if err != nil {
		return []Category{}, nil
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Ord); err != nil {
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

func (r *PostgresRepository) Create(name string) (Category, error) {
	cat := Category{Name: name}
	err := r.db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING category_id`, name).Scan(&cat.ID)
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}
