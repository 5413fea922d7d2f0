package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler delegates product operations to the product service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Get("/api/v1/products/barcode/:barcode", h.getProductByBarcode)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/products/:id<[0-9]+>", h.updateProduct)
	app.Delete("/api/v1/products/:id<[0-9]+>", h.deleteProduct)
}

type productRequest struct {
	Name      string  `json:"name"`
	Barcode   string  `json:"barcode"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price"`
	Stock     int     `json:"stock"`
	Category  *string `json:"category,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	if cat := c.Query("category"); cat != "" {
		return c.JSON(h.service.ListByCategory(cat))
	}
	return c.JSON(h.service.List())
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "query parameter q is required"})
	}
	limit := 8
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return c.JSON(h.service.Search(term, limit))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) getProductByBarcode(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	p, err := h.service.GetByBarcode(barcode)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and barcode are required"})
	}
	if payload.Price < 0 || payload.CostPrice < 0 || payload.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "price, cost_price and stock must be non-negative"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Product{
		Name:      payload.Name,
		Barcode:   payload.Barcode,
		Price:     payload.Price,
		CostPrice: payload.CostPrice,
		Stock:     payload.Stock,
		Category:  payload.Category,
		ImageURL:  payload.ImageURL,
		CreatedAt: &now,
		UpdatedAt: &now,
	})
	if err != nil {
		if err == ErrBarcodeExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "barcode already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stock must be non-negative"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updated, err := h.service.Update(id, Product{
		Name:      payload.Name,
		Barcode:   payload.Barcode,
		Price:     payload.Price,
		CostPrice: payload.CostPrice,
		Stock:     payload.Stock,
		Category:  payload.Category,
		ImageURL:  payload.ImageURL,
		UpdatedAt: &now,
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrBarcodeExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "barcode already exists"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
