package cart

import (
	"testing"
)

func TestAdd_RequiresLogin(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if err := svc.Add(0, 1, 1); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAdd_UpsertsByIncrement(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	if err := svc.Add(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Add(7, 1, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, _ := svc.ListByUser(7)
	if len(items) != 1 {
		t.Fatalf("expected a single row per (user, product), got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	if err := svc.Add(7, 1, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, _ := svc.ListByUser(7)
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one row with quantity 1, got %+v", items)
	}
}

func TestUpdateQuantity_BelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		repo := NewInMemoryRepository()
		svc := NewService(repo)
		svc.Add(7, 1, 2)

		items, _ := svc.ListByUser(7)
		if err := svc.UpdateQuantity(items[0].ID, qty); err != nil {
			t.Fatalf("update with qty %d failed: %v", qty, err)
		}

		items, _ = svc.ListByUser(7)
		if len(items) != 0 {
			t.Fatalf("expected row removed at qty %d, got %d rows", qty, len(items))
		}
	}
}

func TestUpdateQuantity_SetsInPlace(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	svc.Add(7, 1, 2)

	items, _ := svc.ListByUser(7)
	if err := svc.UpdateQuantity(items[0].ID, 5); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	items, _ = svc.ListByUser(7)
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestRemove_UnknownRow(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if err := svc.Remove(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearForUser_LeavesOtherUsers(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	svc.Add(7, 1, 1)
	svc.Add(7, 2, 1)
	svc.Add(8, 1, 1)

	if err := svc.ClearForUser(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	mine, _ := svc.ListByUser(7)
	if len(mine) != 0 {
		t.Fatalf("expected user 7 cart empty, got %d rows", len(mine))
	}
	theirs, _ := svc.ListByUser(8)
	if len(theirs) != 1 {
		t.Fatalf("expected user 8 cart untouched, got %d rows", len(theirs))
	}
}
