package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreate_CommitsOrderAndItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "order_number"}).AddRow(10, 1010))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(10, 1, 2, 450.0, "Rice 5kg").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(10, 2, 1, 35.0, "Salt").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	ord := Order{TotalAmount: 935, Type: TypePOS, CustomerName: "Walk-in Customer", Status: StatusCompleted, CreatedAt: "2025-06-01T10:00:00Z"}
	items := []Item{
		{ProductID: 1, Quantity: 2, Price: 450, Name: "Rice 5kg"},
		{ProductID: 2, Quantity: 1, Price: 35, Name: "Salt"},
	}

	created, err := repo.Create(ord, items)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 10 || created.OrderNumber != 1010 {
		t.Fatalf("unexpected ids: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RollsBackWhenItemInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "order_number"}).AddRow(11, 1011))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	ord := Order{Type: TypeOnline, CustomerName: "Rahim", Status: StatusPending}
	items := []Item{{ProductID: 99, Quantity: 1, Price: 10, Name: "Ghost"}}

	if _, err := repo.Create(ord, items); err == nil {
		t.Fatal("expected create to fail")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_RollsBackWhenOrderInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if _, err := repo.Create(Order{Type: TypePOS}, nil); err == nil {
		t.Fatal("expected create to fail")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(404, string(StatusCompleted)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(404, StatusCompleted); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"order_id", "order_number", "total_amount", "order_type", "customer_name", "customer_phone", "customer_address", "status", "user_id", "created_at"}).
		AddRow(2, 1002, 120.0, "online", "Rahim", "01711", nil, "pending", 7, "2025-06-02T09:00:00Z").
		AddRow(1, 1001, 450.0, "online", "Rahim", nil, nil, "completed", 7, "2025-06-01T10:00:00Z")
	mock.ExpectQuery("FROM orders").WithArgs(7).WillReturnRows(rows)

	orders, err := repo.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderNumber != 1002 || orders[0].CustomerPhone == nil {
		t.Fatalf("unexpected first order: %+v", orders[0])
	}
	if orders[1].CustomerPhone != nil {
		t.Fatalf("expected nil phone on second order, got %v", *orders[1].CustomerPhone)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
