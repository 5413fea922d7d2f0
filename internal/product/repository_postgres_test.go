package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"product_id", "name", "barcode", "price", "cost_price", "stock", "category", "image_url", "created_at", "updated_at"})
}

func TestDecrementStock_SingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET stock = GREATEST").
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DecrementStock(3, 5); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET stock = GREATEST").
		WithArgs(404, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DecrementStock(404, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSearch_MatchesNameOrBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(1, "Rice 5kg", "880001", 450.0, 400.0, 12, "Rice & Grains", nil, "t", "u")
	mock.ExpectQuery("WHERE name ILIKE").WithArgs("rice", 8).WillReturnRows(rows)

	products := repo.Search("rice", 8)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Name != "Rice 5kg" || products[0].Barcode != "880001" {
		t.Fatalf("unexpected product %+v", products[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByBarcode_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE barcode").WithArgs("000000").WillReturnRows(productRows())

	if _, err := repo.GetByBarcode("000000"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(errUniqueViolation{})

	_, err = repo.Create(Product{Name: "Rice 5kg", Barcode: "880001"})
	if err != ErrBarcodeExists {
		t.Fatalf("expected ErrBarcodeExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

type errUniqueViolation struct{}

func (errUniqueViolation) Error() string {
	return `ERROR: duplicate key value violates unique constraint "products_barcode_key" (SQLSTATE 23505)`
}
