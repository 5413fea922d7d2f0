package pos

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/taazabazar/grocery-pos-backend/internal/product"
)

// Handler exposes till sessions over HTTP. It needs the product service to
// snapshot product details when a line is added.
type Handler struct {
	registry       *Registry
	productService product.ServiceInterface
}

func NewHandler(r *Registry, ps product.ServiceInterface) *Handler {
	return &Handler{registry: r, productService: ps}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/pos/sessions", h.openSession)
	app.Get("/api/v1/pos/sessions/:session", h.getSession)
	app.Delete("/api/v1/pos/sessions/:session", h.closeSession)
	app.Post("/api/v1/pos/sessions/:session/items", h.addItem)
	app.Put("/api/v1/pos/sessions/:session/items/:productId<[0-9]+>", h.updateQuantity)
	app.Delete("/api/v1/pos/sessions/:session/items/:productId<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/pos/sessions/:session/items", h.clearCart)
	app.Put("/api/v1/pos/sessions/:session/discount", h.setDiscount)
	app.Post("/api/v1/pos/sessions/:session/hold", h.holdCart)
	app.Post("/api/v1/pos/sessions/:session/resume", h.resumeCart)
}

type cartView struct {
	SessionID string     `json:"sessionId"`
	Items     []Item     `json:"items"`
	Discount  float64    `json:"discount"`
	Subtotal  float64    `json:"subtotal"`
	Total     float64    `json:"total"`
	HeldCarts []HeldCart `json:"heldCarts"`
}

func (h *Handler) openSession(c *fiber.Ctx) error {
	id := h.registry.Open()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessionId": id})
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}
	return c.JSON(h.view(c.Params("session"), cart))
}

func (h *Handler) closeSession(c *fiber.Ctx) error {
	if err := h.registry.Close(c.Params("session")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}
	return c.JSON(fiber.Map{"message": "session closed"})
}

type addItemRequest struct {
	ProductID int    `json:"productId"`
	Barcode   string `json:"barcode,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var p product.Product
	switch {
	case payload.ProductID > 0:
		p, err = h.productService.GetByID(payload.ProductID)
	case payload.Barcode != "":
		// barcode scans go straight to the cart
		p, err = h.productService.GetByBarcode(payload.Barcode)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId or barcode is required"})
	}
	if err != nil {
		if err == product.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cart.AddToCart(p)
	return c.JSON(h.view(c.Params("session"), cart))
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cart.UpdateQuantity(productID, payload.Quantity)
	return c.JSON(h.view(c.Params("session"), cart))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	cart.RemoveFromCart(productID)
	return c.JSON(h.view(c.Params("session"), cart))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}
	cart.ClearCart()
	return c.JSON(h.view(c.Params("session"), cart))
}

type discountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) setDiscount(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}

	payload := new(discountRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "discount must be non-negative"})
	}

	cart.SetDiscount(payload.Amount)
	return c.JSON(h.view(c.Params("session"), cart))
}

func (h *Handler) holdCart(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}

	held, ok := cart.HoldCart()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	}
	return c.JSON(fiber.Map{"held": held, "cart": h.view(c.Params("session"), cart)})
}

type resumeRequest struct {
	HeldCartID int64 `json:"heldCartId"`
}

func (h *Handler) resumeCart(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session not found"})
	}

	payload := new(resumeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if !cart.ResumeCart(payload.HeldCartID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "held cart not found"})
	}
	return c.JSON(h.view(c.Params("session"), cart))
}

func (h *Handler) cart(c *fiber.Ctx) (*Cart, error) {
	return h.registry.Get(c.Params("session"))
}

func (h *Handler) view(sessionID string, cart *Cart) cartView {
	return cartView{
		SessionID: sessionID,
		Items:     cart.Items(),
		Discount:  cart.Discount(),
		Subtotal:  cart.Subtotal(),
		Total:     cart.Total(),
		HeldCarts: cart.HeldCarts(),
	}
}
