package database

import (
	"fmt"

	"github.com/ayeshaishere/admin-dashboard/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.KVEntry{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
