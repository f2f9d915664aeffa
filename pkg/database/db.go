package database

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB   *gorm.DB
	once sync.Once
)

// Connect opens the database once per process. driver is "postgres" (default) or "mysql";
// an empty dsn builds a postgres DSN from the DB_* environment variables.
func Connect(driver, dsn string) *gorm.DB {
	once.Do(func() {
		dialector, err := dialectorFor(driver, dsn)
		if err != nil {
			log.Fatalf("failed to configure database: %v", err)
		}

		db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}

		DB = db
	})

	return DB
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		if dsn == "" {
			dsn = PostgresDSNFromEnv()
		}
		return postgres.Open(dsn), nil
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for mysql")
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func PostgresDSNFromEnv() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		valueOrDefault("DB_HOST", "localhost"),
		valueOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		valueOrDefault("DB_NAME", "careerhub"),
		valueOrDefault("DB_PORT", "5432"),
	)
}

func valueOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
