package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/config"
	"github.com/sellista/pos-checkout-api/internal/infrastructure/database"
	"github.com/sellista/pos-checkout-api/internal/infrastructure/repository"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/handler"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/routes"
	"github.com/sellista/pos-checkout-api/pkg/printer"
	"github.com/sellista/pos-checkout-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	// Seed default instruments, settings and the admin user
	if err := database.SeedDefaultData(db); err != nil {
		logger.WithError(err).Warn("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	instrumentRepo := repository.NewInstrumentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sessionRepo := repository.NewCashSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	instrumentService := service.NewInstrumentService(instrumentRepo)
	settingsService := service.NewSettingsService(settingsRepo, customerRepo)
	sessionService := service.NewCashSessionService(sessionRepo, logger)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, instrumentRepo, settingsRepo, sessionService, logger)
	checkoutService := service.NewCheckoutService(productRepo, customerRepo, instrumentRepo, saleService, logger)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.Device,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.WithError(err).Warn("failed to initialize printer, falling back to null printer")
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, sessionRepo, settingsRepo, cfg.Printer.Type, cfg.Printer.Width, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Instrument:  handler.NewInstrumentHandler(instrumentService),
		Sale:        handler.NewSaleHandler(saleService),
		Checkout:    handler.NewCheckoutHandler(checkoutService),
		CashSession: handler.NewCashSessionHandler(sessionService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
	}).Info("starting server")

	if err := router.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}
