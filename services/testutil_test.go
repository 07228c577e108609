package services

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/302xdwill/NutriFlow/config"
	"github.com/302xdwill/NutriFlow/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nutriflow_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedIngredient(t *testing.T, db *gorm.DB, userID uint, name string, category models.MacroCategory, caloriesPerGram float64) *models.Ingredient {
	t.Helper()

	ing := &models.Ingredient{
		UserID:          userID,
		Name:            name,
		Category:        category,
		CaloriesPerGram: caloriesPerGram,
	}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient %q: %v", name, err)
	}
	return ing
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
