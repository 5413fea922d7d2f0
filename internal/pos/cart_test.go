package pos

import (
	"testing"
	"time"

	"github.com/taazabazar/grocery-pos-backend/internal/product"
)

func testProduct(id int, name string, price float64) product.Product {
	return product.Product{ID: id, Name: name, Price: price, Stock: 10}
}

func TestAddToCart_IncrementsExistingLine(t *testing.T) {
	c := NewCart()
	p := testProduct(1, "Rice 5kg", 450)

	c.AddToCart(p)
	c.AddToCart(p)

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].CartQuantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].CartQuantity)
	}
}

func TestSubtotalAndTotal(t *testing.T) {
	c := NewCart()
	a := testProduct(1, "A", 100)
	b := testProduct(2, "B", 50)

	c.AddToCart(a)
	c.AddToCart(a)
	c.AddToCart(b)
	c.SetDiscount(20)

	if got := c.Subtotal(); got != 250 {
		t.Fatalf("expected subtotal 250, got %v", got)
	}
	if got := c.Total(); got != 230 {
		t.Fatalf("expected total 230, got %v", got)
	}
}

func TestTotal_NotFlooredAtZero(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 10))
	c.SetDiscount(25)

	if got := c.Total(); got != -15 {
		t.Fatalf("expected total -15, got %v", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 10))

	c.UpdateQuantity(1, 5)
	if items := c.Items(); items[0].CartQuantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].CartQuantity)
	}

	// quantity below one removes the line
	c.UpdateQuantity(1, 0)
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %d lines", len(items))
	}

	c.AddToCart(testProduct(2, "B", 10))
	c.UpdateQuantity(2, -1)
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart after negative quantity, got %d lines", len(items))
	}
}

func TestRemoveFromCart_UnknownIDIsNoop(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 10))

	c.RemoveFromCart(99)
	if items := c.Items(); len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
}

func TestHoldCart(t *testing.T) {
	c := NewCart()
	c.now = func() time.Time { return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC) }
	a := testProduct(1, "A", 100)
	c.AddToCart(a)
	c.AddToCart(a)
	c.SetDiscount(15)

	held, ok := c.HoldCart()
	if !ok {
		t.Fatal("expected hold to succeed")
	}
	if len(held.Items) != 1 || held.Items[0].CartQuantity != 2 {
		t.Fatalf("held snapshot does not match pre-hold cart: %+v", held.Items)
	}
	if held.Discount != 15 {
		t.Fatalf("expected held discount 15, got %v", held.Discount)
	}
	if held.Time == "" {
		t.Fatal("expected a hold time label")
	}

	// active cart and discount reset
	if items := c.Items(); len(items) != 0 {
		t.Fatalf("expected empty active cart, got %d lines", len(items))
	}
	if c.Discount() != 0 {
		t.Fatalf("expected discount 0, got %v", c.Discount())
	}
	if len(c.HeldCarts()) != 1 {
		t.Fatalf("expected 1 held cart, got %d", len(c.HeldCarts()))
	}
}

func TestHoldCart_EmptyIsNoop(t *testing.T) {
	c := NewCart()
	if _, ok := c.HoldCart(); ok {
		t.Fatal("expected hold of empty cart to be a no-op")
	}
	if len(c.HeldCarts()) != 0 {
		t.Fatalf("held registry changed: %d entries", len(c.HeldCarts()))
	}
}

func TestResumeCart(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 100))
	held, _ := c.HoldCart()

	if !c.ResumeCart(held.ID) {
		t.Fatal("expected resume to succeed")
	}
	items := c.Items()
	if len(items) != 1 || items[0].Product.ID != 1 {
		t.Fatalf("resumed cart does not match held snapshot: %+v", items)
	}
	if len(c.HeldCarts()) != 0 {
		t.Fatalf("expected held registry to be empty, got %d", len(c.HeldCarts()))
	}
}

func TestResumeCart_UnknownIDIsNoop(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 100))
	c.HoldCart()

	if c.ResumeCart(12345) {
		t.Fatal("expected resume of unknown id to be a no-op")
	}
	if len(c.HeldCarts()) != 1 {
		t.Fatalf("expected held registry unchanged, got %d", len(c.HeldCarts()))
	}
}

func TestResumeCart_DiscountNotRestored(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 100))
	c.SetDiscount(30)
	held, _ := c.HoldCart()

	c.ResumeCart(held.ID)
	if c.Discount() != 0 {
		t.Fatalf("expected discount to stay 0 after resume, got %v", c.Discount())
	}
}

func TestClearCart(t *testing.T) {
	c := NewCart()
	c.AddToCart(testProduct(1, "A", 100))
	c.SetDiscount(10)

	c.ClearCart()
	if len(c.Items()) != 0 || c.Discount() != 0 {
		t.Fatal("expected cart and discount to be reset")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	id := r.Open()

	cart, err := r.Get(id)
	if err != nil {
		t.Fatalf("expected session, got %v", err)
	}
	cart.AddToCart(testProduct(1, "A", 10))

	if _, err := r.Get("missing"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	if err := r.Close(id); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := r.Get(id); err != ErrSessionNotFound {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}
}
