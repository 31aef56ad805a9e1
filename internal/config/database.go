package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"worktrack/internal/models"
)

// InitDB opens the database connection from environment variables and
// migrates the worktrack schema. The returned handle is the only
// process-wide persistence state; everything else is request scoped.
func InitDB() *gorm.DB {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := Env("DB_HOST", "localhost")
	port := Env("DB_PORT", "5432")
	user := Env("DB_USER", "postgres")
	password := Env("DB_PASSWORD", "password")
	dbname := Env("DB_NAME", "worktrack")
	sslmode := Env("DB_SSLMODE", "disable")
	timezone := Env("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Map unique-index violations to gorm.ErrDuplicatedKey so the
		// one-image-per-check-in conflict is recognizable.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Worksite{},
		&models.Checkin{},
		&models.VerificationImage{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	return db
}

// Env reads an environment variable or returns the provided default
func Env(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
