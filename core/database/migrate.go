package database

import (
	"errors"
	"fmt"

	"scorebook/core/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Migrate creates or updates every registered table, walking the registry in
// dependency order so referenced tables exist before their referrers.
func Migrate(db *gorm.DB) error {
	for _, table := range schema.Tables {
		if err := db.AutoMigrate(table.Model()); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", table.Name, err)
		}
	}
	return nil
}

// EnsureLocalStorage returns the row identifying this store, minting it on
// first run. The id is permanent; the display name follows the configured
// name when one is set.
func EnsureLocalStorage(db *gorm.DB, name string) (*schema.Storage, error) {
	var local schema.Storage
	err := db.Where("is_local = ?", true).First(&local).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		local = schema.Storage{
			ID:      uuid.NewString(),
			IsLocal: true,
		}
		if name != "" {
			local.Name = &name
		}
		if err := db.Create(&local).Error; err != nil {
			return nil, fmt.Errorf("failed to create local storage row: %w", err)
		}
		return &local, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load local storage row: %w", err)
	}

	if name != "" && (local.Name == nil || *local.Name != name) {
		local.Name = &name
		if err := db.Model(&local).Update("name", name).Error; err != nil {
			return nil, fmt.Errorf("failed to rename local storage: %w", err)
		}
	}
	return &local, nil
}
