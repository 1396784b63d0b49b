package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/auth"
	"github.com/jhoicas/armazem-api/internal/application/catalog"
	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/application/labels"
	"github.com/jhoicas/armazem-api/internal/application/zonestock"
)

const rateLimitWindow = 15 * time.Minute

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CatalogUC    *catalog.UseCase
	LabelsUC     *labels.UseCase
	AllocationUC *allocation.UseCase
	ZoneStockUC  *zonestock.UseCase
	JWTSecret    string
	Log          zerolog.Logger

	AllowedOrigins    []string
	RateLimitMax      int // 0 desactiva el límite general
	LoginRateLimitMax int // 0 desactiva el límite de login

	// Gatherer expone /metrics si no es nil.
	Gatherer prometheus.Gatherer
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(AccessLog(deps.Log))
	app.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	if deps.RateLimitMax > 0 {
		api.Use(rateLimiter(deps.RateLimitMax))
	}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginRateLimitMax > 0 {
		authGroup.Post("/login", rateLimiter(deps.LoginRateLimitMax), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/verify", authHandler.Verify)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.CatalogUC)
	zones.Post("/", zoneHandler.Create)
	zones.Get("/", zoneHandler.List)
	zones.Get("/:id", zoneHandler.GetByID)

	racks := protected.Group("/racks")
	rackHandler := NewRackHandler(deps.CatalogUC, deps.LabelsUC)
	racks.Post("/", rackHandler.Create)
	racks.Get("/", rackHandler.List)
	racks.Get("/code/:code/label.pdf", rackHandler.Label)
	racks.Get("/code/:code", rackHandler.GetByCode)
	racks.Get("/:id", rackHandler.GetByID)

	// Encomiendas: rutas fijas antes de /:id
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CatalogUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/search", orderHandler.Search)
	orders.Get("/find", orderHandler.Find)
	orders.Get("/:id", orderHandler.GetByID)

	allocations := protected.Group("/rack-allocations")
	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	allocations.Get("/", allocationHandler.List)
	allocations.Get("/search", allocationHandler.Search)
	allocations.Get("/allocated", allocationHandler.Allocated)
	allocations.Get("/rack-quantity", allocationHandler.RackQuantity)
	allocations.Get("/rack/:code", allocationHandler.ByRack)
	allocations.Post("/allocate", allocationHandler.Allocate)
	allocations.Post("/deallocate", allocationHandler.Deallocate)

	stock := protected.Group("/zone-stock")
	stockHandler := NewZoneStockHandler(deps.ZoneStockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/search", stockHandler.Search)
	stock.Get("/quantity", stockHandler.Quantity)
	stock.Post("/add", stockHandler.Add)
	stock.Post("/remove", stockHandler.Remove)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-Id",
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = strings.Join(origins, ",")
	}
	return cfg
}

func rateLimiter(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: rateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		},
	})
}
