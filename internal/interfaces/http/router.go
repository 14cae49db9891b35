package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// HealthChecker dependencia verificada por /health (pool de DB, Redis).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthFunc adapta una función a HealthChecker.
type HealthFunc func(ctx context.Context) error

// Ping ejecuta f.
func (f HealthFunc) Ping(ctx context.Context) error { return f(ctx) }

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       authService
	UserUC       userService
	ProductUC    productService
	CategoryUC   categoryService
	OrderUC      orderService
	DashboardUC  dashboardService
	JWTSecret    string
	AccessTTL    time.Duration
	SecureCookie bool
	// LoginLimiter se aplica solo a POST /api/auth/login; nil = sin límite.
	LoginLimiter fiber.Handler
	Health       map[string]HealthChecker
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))

	api := app.Group("/api")
	authn := RequireAuthenticated(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.AccessTTL, deps.SecureCookie)
	loginChain := []fiber.Handler{authHandler.Login}
	if deps.LoginLimiter != nil {
		loginChain = append([]fiber.Handler{deps.LoginLimiter}, loginChain...)
	}
	authGroup.Post("/login", loginChain...)
	authGroup.Post("/register-client", authHandler.RegisterClient)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authn, authHandler.Logout)

	// Administración de usuarios
	userHandler := NewUserHandler(deps.UserUC)
	authGroup.Get("/get-users", authn, adminOnly, userHandler.List)
	authGroup.Delete("/delete-user/:id", authn, adminOnly, userHandler.Delete)
	authGroup.Put("/update-role/:id", authn, adminOnly, userHandler.UpdateRole)

	// Productos: lectura para cualquier usuario autenticado
	products := api.Group("/productos", authn)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categorías: lectura pública
	categories := api.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authn, adminOnly, categoryHandler.Create)
	categories.Put("/:id", authn, adminOnly, categoryHandler.Update)
	categories.Delete("/:id", authn, adminOnly, categoryHandler.Delete)

	// Pedidos
	orders := api.Group("/pedidos", authn)
	orderHandler := NewOrderHandler(deps.OrderUC)
	adminOrCustomer := RequireRole(entity.RoleAdmin, entity.RoleCustomer)
	orders.Post("/", RequireRole(entity.RoleCustomer), orderHandler.Create)
	orders.Get("/", adminOrCustomer, orderHandler.List)
	orders.Get("/:id", adminOrCustomer, orderHandler.GetByID)
	orders.Get("/:id/detalles", adminOrCustomer, orderHandler.Details)
	orders.Get("/:id/ticket", adminOrCustomer, orderHandler.Ticket)

	// Dashboard
	if deps.DashboardUC != nil {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC)
		api.Get("/admin/dashboard", authn, adminOnly, dashboardHandler.GetSummary)
	}
}

func healthHandler(checks map[string]HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{}
		healthy := true
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}
		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "checks": status})
		}
		return c.JSON(fiber.Map{"status": "ok", "checks": status})
	}
}
