package db

import (
	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table the service owns. The schema is bound once at
// startup from these struct definitions.
func Models() []interface{} {
	return []interface{}{
		&model.MainCategory{},
		&model.SubCategory{},
		&model.Product{},
		&model.Banner{},
		&model.HandpickedItem{},
	}
}

// MigrateDB runs migrations against an explicit connection.
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
