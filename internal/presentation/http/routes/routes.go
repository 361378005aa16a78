package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellista/pos-checkout-api/internal/config"
	domainRepo "github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/handler"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/middleware"
	"github.com/sellista/pos-checkout-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Instrument  *handler.InstrumentHandler
	Sale        *handler.SaleHandler
	Checkout    *handler.CheckoutHandler
	CashSession *handler.CashSessionHandler
	Settings    *handler.SettingsHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerInstrumentRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerCheckoutRoutes(protected, h)
	registerCashSessionRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/search", h.Product.Search)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/lookup/:code", h.Product.Lookup)
		products.GET("/:id", h.Product.Get)
	}

	// Catalog writes are admin-only
	adminProducts := protected.Group("/products")
	adminProducts.Use(middleware.RequireAdmin())
	{
		adminProducts.POST("", h.Product.Create)
		adminProducts.PUT("/:id", h.Product.Update)
		adminProducts.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/search", h.Customer.Search)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireAdmin(), h.Customer.Delete)
	}
}

func registerInstrumentRoutes(protected *gin.RouterGroup, h *Handlers) {
	instruments := protected.Group("/instruments")
	{
		instruments.GET("", h.Instrument.List)
		instruments.GET("/:id", h.Instrument.Get)
	}

	adminInstruments := protected.Group("/instruments")
	adminInstruments.Use(middleware.RequireAdmin())
	{
		adminInstruments.POST("", h.Instrument.Create)
		adminInstruments.PUT("/:id", h.Instrument.Update)
		adminInstruments.DELETE("/:id", h.Instrument.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		// Sale submission is deduplicated by Idempotency-Key so a register
		// retrying after a timeout never rings the sale twice.
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", middleware.RequireAdmin(), h.Sale.Cancel)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers) {
	checkout := protected.Group("/checkout")
	{
		checkout.POST("", h.Checkout.Open)
		checkout.GET("/:id", h.Checkout.Get)
		checkout.DELETE("/:id", h.Checkout.Close)

		checkout.POST("/:id/items", h.Checkout.AddItem)
		checkout.PUT("/:id/items/:index", h.Checkout.EditLine)
		checkout.DELETE("/:id/items/:index", h.Checkout.RemoveLine)

		checkout.PUT("/:id/adjustments", h.Checkout.SetAdjustments)
		checkout.PUT("/:id/customer", h.Checkout.SetCustomer)
		checkout.PUT("/:id/notes", h.Checkout.SetNotes)

		checkout.POST("/:id/payment", h.Checkout.StartPayment)
		checkout.DELETE("/:id/payment", h.Checkout.CancelPayment)
		checkout.POST("/:id/payment/kind", h.Checkout.SelectTenderKind)
		checkout.POST("/:id/payment/instrument", h.Checkout.ChooseInstrument)
		checkout.POST("/:id/payment/amount", h.Checkout.SubmitAmount)
		checkout.POST("/:id/payment/cancel-entry", h.Checkout.CancelEntry)
		checkout.DELETE("/:id/payment/tenders/:index", h.Checkout.RemoveTender)

		checkout.POST("/:id/finalize", h.Checkout.Finalize)
	}
}

func registerCashSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/cash-sessions")
	{
		sessions.GET("", h.CashSession.List)
		sessions.POST("", h.CashSession.Open)
		sessions.GET("/current", h.CashSession.GetCurrent)
		sessions.POST("/current/supply", h.CashSession.Supply)
		sessions.POST("/current/withdrawal", h.CashSession.Withdrawal)
		sessions.POST("/current/close", h.CashSession.Close)
		sessions.GET("/:id", h.CashSession.Get)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequireAdmin(), h.Settings.UpdateSettings)
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt/:id", h.Printer.PrintReceipt)
		printerGroup.POST("/session-report/:id", h.Printer.PrintSessionReport)
	}
}
