package pos

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/taazabazar/grocery-pos-backend/internal/product"
)

func makePosApp(t *testing.T) (*fiber.App, *Registry) {
	t.Helper()
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Rice 5kg", Barcode: "880001", Price: 450, Stock: 12},
		{ID: 2, Name: "Salt", Barcode: "880002", Price: 35, Stock: 40},
	}))
	registry := NewRegistry()
	handler := NewHandler(registry, products)

	app := fiber.New()
	handler.RegisterProtectedRoutes(app)
	return app, registry
}

func postJSON(app *fiber.App, path, body string) (int, string) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestPosRoutes_Flow(t *testing.T) {
	app, registry := makePosApp(t)

	// open a session
	status, body := postJSON(app, "/api/v1/pos/sessions", "")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	var opened struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal([]byte(body), &opened); err != nil || opened.SessionID == "" {
		t.Fatalf("bad open response: %s", body)
	}
	base := "/api/v1/pos/sessions/" + opened.SessionID

	// add by product id and by barcode scan
	if status, body = postJSON(app, base+"/items", `{"productId":1}`); status != fiber.StatusOK {
		t.Fatalf("add by id failed: %d %s", status, body)
	}
	if status, body = postJSON(app, base+"/items", `{"barcode":"880002"}`); status != fiber.StatusOK {
		t.Fatalf("add by barcode failed: %d %s", status, body)
	}

	cart, err := registry.Get(opened.SessionID)
	if err != nil {
		t.Fatalf("session vanished: %v", err)
	}
	if len(cart.Items()) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items()))
	}
	if cart.Subtotal() != 485 {
		t.Fatalf("expected subtotal 485, got %v", cart.Subtotal())
	}

	// unknown product 404s
	if status, _ = postJSON(app, base+"/items", `{"productId":99}`); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", status)
	}

	// hold then resume via the API
	if status, body = postJSON(app, base+"/hold", ""); status != fiber.StatusOK {
		t.Fatalf("hold failed: %d %s", status, body)
	}
	held := cart.HeldCarts()
	if len(held) != 1 {
		t.Fatalf("expected 1 held cart, got %d", len(held))
	}

	resumeBody, _ := json.Marshal(map[string]int64{"heldCartId": held[0].ID})
	if status, body = postJSON(app, base+"/resume", string(resumeBody)); status != fiber.StatusOK {
		t.Fatalf("resume failed: %d %s", status, body)
	}
	if len(cart.Items()) != 2 {
		t.Fatalf("expected resumed cart with 2 lines, got %d", len(cart.Items()))
	}

	// holding an empty cart is rejected
	cart.ClearCart()
	if status, _ = postJSON(app, base+"/hold", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty hold, got %d", status)
	}
}

func TestPosRoutes_UnknownSession(t *testing.T) {
	app, _ := makePosApp(t)

	req := httptest.NewRequest("GET", "/api/v1/pos/sessions/nope", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}
