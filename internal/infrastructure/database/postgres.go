package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/pizzeria-pos/internal/config"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// A single till needs only a handful of connections.
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetMaxOpenConns(16)

	slog.Info("connected to PostgreSQL", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		// Catalog
		&entity.Category{},
		&entity.MenuItem{},
		&entity.ModifierGroup{},
		&entity.PizzaIngredient{},
		&entity.PizzaBasePrice{},

		// Till configuration
		&entity.AppSettings{},
		&entity.Staff{},

		// Ledger
		&entity.SaleRecord{},
		&entity.DayClosure{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// DefaultStaff is the roster a fresh till starts with.
var DefaultStaff = []struct {
	Name string
	PIN  string
	Role enum.UserRole
}{
	{Name: "Admin", PIN: "0000", Role: enum.UserRoleAdmin},
	{Name: "Mesero 1", PIN: "1234", Role: enum.UserRoleWaiter},
}

// DefaultBasePrices is the custom pizza price table a fresh till starts with.
var DefaultBasePrices = map[enum.PizzaSize]string{
	enum.PizzaSizeSmall:  "6.00",
	enum.PizzaSizeMedium: "8.00",
	enum.PizzaSizeLarge:  "12.00",
}

// SeedDefaultData writes settings, staff, base prices and the custom pizza
// item when they are missing. Existing rows are never touched.
func SeedDefaultData(db *gorm.DB) error {
	slog.Info("seeding default data")

	var settings entity.AppSettings
	if err := db.First(&settings, "id = ?", entity.SettingsID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		if err := db.Create(entity.DefaultAppSettings()).Error; err != nil {
			return fmt.Errorf("failed to create settings: %w", err)
		}
	}

	var staffCount int64
	if err := db.Model(&entity.Staff{}).Count(&staffCount).Error; err != nil {
		return fmt.Errorf("failed to count staff: %w", err)
	}
	if staffCount == 0 {
		for _, s := range DefaultStaff {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.PIN), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash PIN: %w", err)
			}
			member := entity.Staff{Name: s.Name, PinHash: string(hash), Role: s.Role}
			if err := db.Create(&member).Error; err != nil {
				slog.Warn("failed to create default staff", "name", s.Name, "error", err)
				continue
			}
			slog.Info("default staff created", "name", s.Name, "role", s.Role.String())
		}
	}

	for size, price := range DefaultBasePrices {
		var existing entity.PizzaBasePrice
		err := db.First(&existing, "size = ?", size).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read base price: %w", err)
		}
		row := entity.PizzaBasePrice{Size: size, Price: decimal.RequireFromString(price)}
		if err := db.Create(&row).Error; err != nil {
			slog.Warn("failed to create base price", "size", size.String(), "error", err)
		}
	}

	var pizzas entity.Category
	if err := db.Where("name = ?", "Pizzas").First(&pizzas).Error; err != nil {
		pizzas = entity.Category{Name: "Pizzas"}
		if err := db.Create(&pizzas).Error; err != nil {
			slog.Warn("failed to create pizza category", "error", err)
			return nil
		}
		custom := entity.MenuItem{
			CategoryID:  pizzas.ID,
			Name:        "Pizza Personalizada",
			Description: "Arma tu pizza por mitades",
			Available:   true,
			IsPizza:     true,
		}
		if err := db.Create(&custom).Error; err != nil {
			slog.Warn("failed to create custom pizza item", "error", err)
		}
	}

	slog.Info("default data seeding completed")
	return nil
}
