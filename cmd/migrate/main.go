package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/inventory"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/scheduling"
	"github.com/tradeworks/backend/internal/infrastructure/config"
	"github.com/tradeworks/backend/internal/infrastructure/logger"
	"github.com/tradeworks/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultCategories seeds the service catalogue a fresh install starts
// with
var defaultCategories = []struct {
	name        string
	description string
}{
	{"Plumbing", "Pipe repair, installation and leak detection"},
	{"Tiling", "Floor and wall tiling works"},
	{"Renovation", "General renovation and remodeling"},
}

func main() {
	var (
		seed     bool
		logLevel string
	)
	flag.BoolVar(&seed, "seed", false, "Seed default service categories after migrating")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration", zap.String("database", cfg.Database.DBName))

	err = db.DB.AutoMigrate(
		&crm.Customer{},
		&crm.ServiceCategory{},
		&scheduling.Appointment{},
		&billing.Quotation{},
		&billing.QuotationItem{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
		&billing.WorkPhoto{},
		&billing.PaymentReceipt{},
		&billing.DocumentSequence{},
		&inventory.Item{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration complete")

	if seed {
		if err := seedCategories(db.DB, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}
}

// seedCategories inserts the default categories, skipping any that
// already exist so the command stays re-runnable
func seedCategories(db *gorm.DB, log *zap.Logger) error {
	for _, c := range defaultCategories {
		var existing crm.ServiceCategory
		err := db.Where("name = ?", c.name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category, err := crm.NewServiceCategory(c.name, c.description)
		if err != nil {
			return err
		}
		if err := db.Create(category).Error; err != nil {
			return err
		}
		log.Info("Seeded service category", zap.String("name", c.name))
	}
	return nil
}
