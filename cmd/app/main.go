package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/taazabazar/grocery-pos-backend/internal/cart"
	"github.com/taazabazar/grocery-pos-backend/internal/category"
	"github.com/taazabazar/grocery-pos-backend/internal/config"
	"github.com/taazabazar/grocery-pos-backend/internal/order"
	"github.com/taazabazar/grocery-pos-backend/internal/pos"
	"github.com/taazabazar/grocery-pos-backend/internal/product"
	"github.com/taazabazar/grocery-pos-backend/internal/report"
	"github.com/taazabazar/grocery-pos-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := bootstrapSchema(db); err != nil {
		panic(err)
	}

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartService)

	// the order workflow clears the user's cart and decrements stock after a
	// committed checkout, so it takes both services
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService, productService)
	orderHandler := order.NewHandler(orderService, cfg.JWTSecret)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	reportHandler := report.NewHandler(report.NewService(report.NewPostgresRepository(db)))

	posRegistry := pos.NewRegistry()
	posHandler := pos.NewHandler(posRegistry, productService)

	// public routes: auth, browsing, checkout
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// allow unauthenticated GETs for product browsing that fall through
		// to this point (query-string variants of the public routes)
		Filter: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet && strings.HasPrefix(c.Path(), "/api/v1/products")
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	posHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	reportHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// bootstrapSchema creates the tables on first run and seeds the category list
// when it is empty.
func bootstrapSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			barcode TEXT NOT NULL UNIQUE,
			price NUMERIC NOT NULL DEFAULT 0,
			cost_price NUMERIC NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category TEXT,
			image_url TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_number SERIAL,
			total_amount NUMERIC NOT NULL DEFAULT 0,
			order_type TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT,
			customer_address TEXT,
			status TEXT NOT NULL,
			user_id INT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC NOT NULL,
			product_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			cart_item_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			ord INT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	var categoryCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err == nil && categoryCount == 0 {
		seed := []string{
			"Rice & Grains",
			"Oil & Spices",
			"Snacks",
			"Beverages",
			"Dairy",
			"Fish & Meat",
			"Vegetables",
			"Household",
		}
		for i, name := range seed {
			if _, err := db.Exec(`INSERT INTO categories (name, ord) VALUES ($1, $2)`, name, len(seed)-i); err != nil {
				fmt.Printf("warning: could not seed category %q: %v\n", name, err)
			}
		}
	}
	return nil
}
