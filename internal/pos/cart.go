package pos

import (
	"sync"
	"time"

	"github.com/taazabazar/grocery-pos-backend/internal/product"
)

// Item is a line in the till cart: a product snapshot plus the quantity rung up.
type Item struct {
	Product      product.Product `json:"product"`
	CartQuantity int             `json:"cartQuantity"`
}

// HeldCart is a cart set aside mid-sale so the cashier can serve the next
// customer. The discount at hold time is kept on the snapshot but Resume does
// not re-apply it (matching the storefront's historical behaviour).
type HeldCart struct {
	ID       int64   `json:"id"`
	Items    []Item  `json:"items"`
	Discount float64 `json:"discount"`
	Time     string  `json:"time"`
}

// Cart holds one till session's active lines, discount and held carts.
// A session is driven by a single cashier, but the registry may be reached
// from concurrent requests, so every operation locks.
type Cart struct {
	mu       sync.Mutex
	items    []Item
	discount float64
	held     []HeldCart

	now func() time.Time
}

func NewCart() *Cart {
	return &Cart{now: time.Now}
}

// AddToCart appends the product with quantity 1, or increments the existing
// line. Stock is not checked here; availability is enforced at checkout.
func (c *Cart) AddToCart(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].CartQuantity++
			return
		}
	}
	c.items = append(c.items, Item{Product: p, CartQuantity: 1})
}

// RemoveFromCart drops the line for the given product; no-op when absent.
func (c *Cart) RemoveFromCart(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity. A quantity below one removes the
// line, the same policy the persisted cart applies.
func (c *Cart) UpdateQuantity(productID int, quantity int) {
	if quantity <= 0 {
		c.RemoveFromCart(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].CartQuantity = quantity
			return
		}
	}
}

// SetDiscount replaces the flat discount amount. No bounds are enforced; a
// discount above the subtotal yields a negative total.
func (c *Cart) SetDiscount(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = amount
}

// HoldCart parks the current cart and starts a fresh one. Holding an empty
// cart is a no-op. Returns the held snapshot and whether a hold happened.
func (c *Cart) HoldCart() (HeldCart, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return HeldCart{}, false
	}

	now := c.now()
	held := HeldCart{
		ID:       now.UnixMilli(),
		Items:    c.items,
		Discount: c.discount,
		Time:     now.Format("3:04:05 PM"),
	}
	c.held = append(c.held, held)
	c.items = nil
	c.discount = 0
	return held, true
}

// ResumeCart restores a held cart as the active one and removes it from the
// registry. Unknown ids are a no-op. The held discount is not restored.
func (c *Cart) ResumeCart(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.held {
		if c.held[i].ID == id {
			c.items = c.held[i].Items
			c.held = append(c.held[:i], c.held[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCart empties the active cart and resets the discount.
func (c *Cart) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.discount = 0
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) HeldCarts() []HeldCart {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]HeldCart, len(c.held))
	copy(out, c.held)
	return out
}

func (c *Cart) Discount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

// Total is subtotal minus discount, not floored at zero.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked() - c.discount
}

func (c *Cart) subtotalLocked() float64 {
	sum := 0.0
	for _, it := range c.items {
		sum += it.Product.Price * float64(it.CartQuantity)
	}
	return sum
}
