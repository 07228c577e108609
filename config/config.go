package config

import (
	"fmt"
	"os"

	"github.com/302xdwill/NutriFlow/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LoadEnv reads .env if present. Missing file is fine: in production
// the variables come from the environment itself.
func LoadEnv() {
	_ = godotenv.Load()
}

// OpenDB builds the one database handle for the process and runs the
// migrations. The handle is passed into every service that needs it;
// nothing holds it as package state.
//
// DB_DRIVER selects the backend: "sqlite" (default, a local file) or
// "postgres" for a server deployment.
func OpenDB() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "", "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "nutriflow.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", os.Getenv("DB_DRIVER"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Exposed separately so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Plate{},
		&models.PlateComponent{},
		&models.Meal{},
		&models.Goal{},
		&models.Reminder{},
		&models.UserDevice{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
