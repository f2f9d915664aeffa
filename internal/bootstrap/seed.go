package bootstrap

import (
	"log"
	"strings"

	"anoa.com/careerhub/internal/entity"
	"anoa.com/careerhub/pkg/password"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Job{},
		&entity.JobApplicant{},
		&entity.Post{},
		&entity.Notification{},
	)
}

type AdminSeed struct {
	Email    string
	Username string
	Password string
}

// SeedAdminUser creates a staff superuser once. A seed without email or password is skipped.
func SeedAdminUser(db *gorm.DB, hasher password.Hasher, seed AdminSeed) error {
	if seed.Email == "" || seed.Password == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))

	var count int64
	if err := db.Model(&entity.User{}).
		Where("LOWER(email) = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     seed.Username,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Printf("   Email: %s", email)

	return nil
}
