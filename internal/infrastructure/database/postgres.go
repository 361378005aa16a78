package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/config"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},

		// Catalog entities
		&entity.Product{},
		&entity.ProductAltCode{},
		&entity.Customer{},
		&entity.TenderInstrument{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleLine{},
		&entity.SalePayment{},
		&entity.CashSession{},
		&entity.CashMovement{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.CompanySettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Document numbers come from a sequence rather than MAX(document_no);
	// sync it past any sales already in the table.
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS sale_document_no_seq OWNED BY sales.document_no").Error; err != nil {
		return fmt.Errorf("failed to create document number sequence: %w", err)
	}
	if err := db.Exec("SELECT setval('sale_document_no_seq', (SELECT COALESCE(MAX(document_no), 0) + 1 FROM sales), false)").Error; err != nil {
		return fmt.Errorf("failed to sync document number sequence: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (admin user, tender
// instruments, company settings)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default tender instruments if none exist
	var instrumentCount int64
	db.Model(&entity.TenderInstrument{}).Count(&instrumentCount)
	if instrumentCount == 0 {
		instruments := []entity.TenderInstrument{
			{Description: "Dinheiro", Kind: enum.TenderKindCash},
			{Description: "PIX", Kind: enum.TenderKindTransfer},
			{Description: "Cartão de Crédito", Kind: enum.TenderKindCreditCard, AllowsInstallments: true},
			{Description: "Cartão de Débito", Kind: enum.TenderKindDebitCard},
			{Description: "Vale", Kind: enum.TenderKindVoucher},
		}
		for i := range instruments {
			instruments[i].Active = true
			if err := db.Create(&instruments[i]).Error; err != nil {
				log.Printf("Warning: failed to create instrument %s: %v", instruments[i].Description, err)
			}
		}
	}

	// Create company settings row if missing
	var settingsCount int64
	db.Model(&entity.CompanySettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := entity.CompanySettings{
			TradeName:   viper.GetString("COMPANY_TRADE_NAME"),
			ControlTill: true,
		}
		if settings.TradeName == "" {
			settings.TradeName = "Minha Loja"
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create company settings: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminLogin := viper.GetString("ADMIN_LOGIN")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminLogin != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("login = ?", adminLogin).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Login:    adminLogin,
					Name:     adminName,
					Password: string(hashedPassword),
					Admin:    true,
					Active:   true,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminLogin)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminLogin)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
