package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv         string `yaml:"app_env"`
	Port           string `yaml:"port"`
	AllowedOrigins string `yaml:"allowed_origins"`

	DBDriver    string `yaml:"db_driver"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`

	MeiliSearchHost string `yaml:"meilisearch_host"`
	MeiliMasterKey  string `yaml:"meili_master_key"`

	CloudinaryURL          string `yaml:"cloudinary_url"`
	CloudinaryUploadFolder string `yaml:"cloudinary_upload_folder"`
	MediaRoot              string `yaml:"media_root"`
	MediaURL               string `yaml:"media_url"`

	RabbitMQURL   string `yaml:"rabbitmq_url"`
	RabbitMQQueue string `yaml:"rabbitmq_queue"`

	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	RateLimitSignup time.Duration `yaml:"rate_limit_signup"`
	RateLimitPost   time.Duration `yaml:"rate_limit_post"`

	AdminEmail    string `yaml:"admin_email"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

func defaults() *Config {
	return &Config{
		AppEnv:                 "development",
		Port:                   "8080",
		AllowedOrigins:         "http://localhost:3000",
		DBDriver:               "postgres",
		MeiliSearchHost:        "",
		CloudinaryUploadFolder: "careerhub",
		MediaRoot:              "media",
		MediaURL:               "/media",
		RabbitMQQueue:          "careerhub.applications",
		SessionTTL:             14 * 24 * time.Hour,
		RateLimitSignup:        5 * time.Second,
		RateLimitPost:          15 * time.Second,
		AdminUsername:          "admin",
	}
}

// Load reads CONFIG_FILE (YAML) when set, then .env, then the process environment.
// Later sources win.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.AllowedOrigins = getEnv("ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)

	cfg.MeiliSearchHost = getEnv("MEILISEARCH_HOST", cfg.MeiliSearchHost)
	cfg.MeiliMasterKey = getEnv("MEILI_MASTER_KEY", cfg.MeiliMasterKey)

	cfg.CloudinaryURL = getEnv("CLOUDINARY_URL", cfg.CloudinaryURL)
	cfg.CloudinaryUploadFolder = getEnv("CLOUDINARY_UPLOAD_FOLDER", cfg.CloudinaryUploadFolder)
	cfg.MediaRoot = getEnv("MEDIA_ROOT", cfg.MediaRoot)
	cfg.MediaURL = getEnv("MEDIA_URL", cfg.MediaURL)

	cfg.RabbitMQURL = getEnv("RABBITMQ_URL", cfg.RabbitMQURL)
	cfg.RabbitMQQueue = getEnv("RABBITMQ_QUEUE", cfg.RabbitMQQueue)

	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)

	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimitSignup, err = getDuration("RATE_LIMIT_SIGNUP", cfg.RateLimitSignup); err != nil {
		return nil, err
	}
	if cfg.RateLimitPost, err = getDuration("RATE_LIMIT_POST", cfg.RateLimitPost); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "careerhub-dev-secret"
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
