package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/config"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/handler"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/receiptbook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Receipt   *handler.ReceiptHandler
	Catalog   *handler.CatalogHandler
	Profile   *handler.ProfileHandler
	Role      *handler.RoleHandler
	Printer   *handler.PrinterHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	RoleService     *service.RoleService
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"store":   deps.Cfg.Store.Driver,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.RoleService))

		rateLimiter := middleware.NewCallerRateLimiter(rateLimiterConfig(deps.Cfg.RateLimit))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
	})

	// Receipts and payments
	registerReceiptRoutes(protected, h, idempotent)

	// Service items and customers
	registerCatalogRoutes(protected, h)

	// Business profile, own profile and roles
	registerProfileRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", idempotent, h.Receipt.Create)
		receipts.GET("/sorted", h.Receipt.Sorted)
		receipts.GET("/export", h.Receipt.Export)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/payments", h.Receipt.Payments)
		receipts.POST("/:id/payments", idempotent, h.Receipt.AddPayment)
		receipts.POST("/:id/print", h.Printer.PrintReceipt)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	serviceItems := protected.Group("/service-items")
	{
		serviceItems.GET("", h.Catalog.ListServiceItems)
		serviceItems.POST("", h.Catalog.CreateServiceItem)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Catalog.ListCustomers)
		customers.POST("", h.Catalog.CreateCustomer)
	}
}

func registerProfileRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/business-profile", h.Profile.GetBusinessProfile)
	protected.PUT("/business-profile", h.Profile.SaveBusinessProfile)

	me := protected.Group("/me")
	{
		me.GET("/profile", h.Profile.GetMyProfile)
		me.PUT("/profile", h.Profile.SaveMyProfile)
		me.GET("/role", h.Role.GetMyRole)
		me.GET("/is-admin", h.Role.IsAdmin)
	}

	users := protected.Group("/users")
	{
		users.GET("/:id/profile", h.Profile.GetUserProfile)
		users.PUT("/:id/role", h.Role.AssignRole)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
