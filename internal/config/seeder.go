package config

import (
	"context"
	"log"

	"gorm.io/gorm"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	adminRepo repositories.AdminRepository
	cfg       *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{
		adminRepo: repositories.NewAdminRepository(db),
		cfg:       cfg,
	}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(context.Background()); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the admins table is empty.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	if s.cfg.Admin.Email == "" || s.cfg.Admin.Password == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Email:    s.cfg.Admin.Email,
		Password: hashedPassword,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", admin.Email)
	return nil
}
