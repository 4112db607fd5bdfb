package database

import (
	"fmt"

	"github.com/pageza/recipebook/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
	}
}

// RunMigrations brings the schema up to date.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return backfillSearchKeys(db)
}

// backfillSearchKeys fills search keys of rows written before the key columns existed.
func backfillSearchKeys(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ingredients []models.Ingredient
		if err := tx.Where("name_key = ''").Find(&ingredients).Error; err != nil {
			return fmt.Errorf("failed to load ingredients: %w", err)
		}
		for _, ing := range ingredients {
			if err := tx.Model(&models.Ingredient{}).Where("id = ?", ing.ID).
				UpdateColumn("name_key", models.SearchKey(ing.Name)).Error; err != nil {
				return fmt.Errorf("failed to backfill ingredient: %w", err)
			}
		}

		var recipes []models.Recipe
		if err := tx.Select("id", "instructions").Where("instructions_key = ''").Find(&recipes).Error; err != nil {
			return fmt.Errorf("failed to load recipes: %w", err)
		}
		for _, r := range recipes {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", r.ID).
				UpdateColumn("instructions_key", models.SearchKey(r.Instructions)).Error; err != nil {
				return fmt.Errorf("failed to backfill recipe: %w", err)
			}
		}
		return nil
	})
}

// DropAll removes every table owned by the service.
func DropAll(db *gorm.DB) error {
	tables := Models()
	// Reverse order so dependent tables go first.
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
