package database

import (
	"log/slog"
	"os"

	"celerium-registration/internal/domain/billing"
	"celerium-registration/internal/infra/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(dsn string) {
	if dsn == "" {
		slog.Error("❌ DB_URL not set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	DB = db

	if err := DB.AutoMigrate(
		&storage.Entry{},
		&billing.Payment{},
	); err != nil {
		slog.Error("❌ AutoMigrate error", "error", err)
		os.Exit(1)
	}

	slog.Info("✅ Connected and migrated successfully")
}
