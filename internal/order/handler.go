package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/taazabazar/grocery-pos-backend/internal/user"
)

// Handler exposes checkout and the admin order endpoints.
type Handler struct {
	service   *Service
	jwtSecret string
}

func NewHandler(s *Service, jwtSecret string) *Handler {
	return &Handler{service: s, jwtSecret: jwtSecret}
}

// RegisterPublicRoutes registers checkout, which must accept anonymous
// storefront orders. A bearer token, when present, ties the order to a user.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.submitOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/mine", h.myOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Patch("/api/v1/orders/:id<[0-9]+>/complete", h.completeOrder)
}

type submitOrderRequest struct {
	CartItems []RawLine    `json:"cartItems"`
	Total     float64      `json:"total"`
	Type      Type         `json:"type"`
	Customer  CustomerInfo `json:"customerInfo"`
}

func (h *Handler) submitOrder(c *fiber.Ctx) error {
	payload := new(submitOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	// checkout is public; a valid token just attributes the order
	userID, _ := user.UserIDFromBearer(c, h.jwtSecret)

	result, err := h.service.Submit(payload.CartItems, payload.Total, payload.Type, payload.Customer, userID)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch err {
		case ErrInvalidType, ErrEmptyOrder, ErrBadLine:
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orderId": result.OrderNumber,
		"message": result.Message,
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) myOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.Get(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) completeOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Complete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "order completed"})
}
