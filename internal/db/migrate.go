package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safawala/backoffice/internal/models"
)

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		logrus.WithError(err).Warn("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	logrus.WithField("dsn", maskDSN(dsn)).Info("database connected")

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise the
	// AutoMigrate fallback keeps dev setups zero-config.
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrateAll(db); err != nil {
			return nil, err
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"roles", "users", "franchises"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// AutoMigrateAll migrates every model in dependency order. Exposed so tests
// can build an in-memory schema without the postgres connection path.
func AutoMigrateAll(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Role{}, &models.User{}, &models.Franchise{}, &models.UserFranchise{},
		&models.ProductCategory{}, &models.Product{}, &models.Customer{},
		&models.Quote{}, &models.QuoteItem{}, &models.Invoice{}, &models.InvoiceItem{},
		&models.Payment{}, &models.Document{}, &models.Notification{}, &models.AuditLog{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

var passwordRe = regexp.MustCompile(`(password=)([^\s]+)`)

func maskDSN(dsn string) string {
	if strings.Contains(dsn, "password=") {
		return passwordRe.ReplaceAllString(dsn, `${1}***`)
	}
	return dsn
}

func seed(db *gorm.DB) {
	// Roles
	for _, r := range []models.Role{
		{Name: "admin"},
		{Name: "franchise_owner"},
		{Name: "sales_staff"},
	} {
		var existing models.Role
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&r)
		}
	}
	// Product categories for the rental catalog
	for _, pc := range []models.ProductCategory{
		{Name: "Sherwani", Code: "SHW"},
		{Name: "Safa", Code: "SAF"},
		{Name: "Jewellery", Code: "JWL"},
		{Name: "Footwear", Code: "FTW"},
	} {
		var existing models.ProductCategory
		if err := db.Where("name = ?", pc.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&pc)
		}
	}
	// Default franchise so a fresh install can log in and issue documents
	var fr models.Franchise
	if err := db.Where("code = ?", "HQ").First(&fr).Error; err == gorm.ErrRecordNotFound {
		db.Create(&models.Franchise{
			Name:           "Safawala HQ",
			Code:           "HQ",
			City:           "Mumbai",
			PrimaryColor:   "#1b5e20",
			SecondaryColor: "#4caf50",
		})
	}
}

func runSQLMigrations(dsn string) error {
	// golang-migrate expects DSN without gorm specific extras; reuse as-is (URL form supported)
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
