package main

import (
	"log"

	"anoa.com/careerhub/internal/bootstrap"
	"anoa.com/careerhub/internal/config"
	"anoa.com/careerhub/internal/server"
	"anoa.com/careerhub/pkg/database"
	"anoa.com/careerhub/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seed := bootstrap.AdminSeed{
		Email:    cfg.AdminEmail,
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}
	if err := bootstrap.SeedAdminUser(db, password.NewBcrypt(0), seed); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	redisClient := database.ConnectRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, db, redisClient)
	defer srv.Close()

	log.Printf("🚀 careerhub listening on :%s (%s)", cfg.Port, cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
