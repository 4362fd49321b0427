package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/config"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.Profile{},
		&entity.Session{},

		// Billing entities
		&entity.FinancedItem{},
		&entity.Receipt{},
		&entity.InstallmentPlan{},
		&entity.PlanPayment{},

		// System entities
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// CleanupLegacyReceiptIndex drops the unique index an earlier schema
// placed on receipt payment references. The operation is idempotent and
// runs once at startup.
func CleanupLegacyReceiptIndex(db *gorm.DB) error {
	if err := db.Exec(`DROP INDEX IF EXISTS idx_receipts_payment`).Error; err != nil {
		return fmt.Errorf("failed to drop legacy receipt index: %w", err)
	}
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, super admin)
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "upload-receipts", GuardName: "web"},
		{Name: "manage-items", GuardName: "web"},
		{Name: "manage-receipts", GuardName: "web"},
		{Name: "manage-plans", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "view-audit-logs", GuardName: "web"},
		{Name: "override-billing", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var picked []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					picked = append(picked, p)
					break
				}
			}
		}
		return picked
	}

	// Create super-admin role with all permissions
	var superAdminRole entity.Role
	if err := db.Where("name = ?", "super-admin").First(&superAdminRole).Error; err != nil {
		superAdminRole = entity.Role{
			Name:        "super-admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&superAdminRole).Error; err != nil {
			log.Printf("Warning: failed to create super-admin role: %v", err)
		}
	}

	// Admins run day-to-day operations but cannot rewrite billing history
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:      "admin",
			GuardName: "web",
			Permissions: pick(
				"view-dashboard",
				"manage-items",
				"manage-receipts",
				"manage-plans",
				"manage-users",
			),
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Customers see their own dashboard and upload receipts
	var userRole entity.Role
	if err := db.Where("name = ?", "user").First(&userRole).Error; err != nil {
		userRole = entity.Role{
			Name:      "user",
			GuardName: "web",
			Permissions: pick(
				"view-dashboard",
				"upload-receipts",
			),
		}
		if err := db.Create(&userRole).Error; err != nil {
			log.Printf("Warning: failed to create user role: %v", err)
		}
	}

	// Create super admin user if configured via environment variables
	if admin != nil && admin.Email != "" && admin.Password != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", admin.Email).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var saRole entity.Role
				if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err == nil {
					name := admin.Name
					if name == "" {
						name = "Super Admin"
					}
					adminUser := entity.User{
						ID:       uuid.New(),
						FullName: name,
						Email:    admin.Email,
						Password: string(hashedPassword),
						Roles:    []entity.Role{saRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create super admin user: %v", err)
					} else {
						log.Printf("Super admin user created: %s", admin.Email)
					}
				}
			}
		} else {
			log.Printf("Super admin user already exists: %s", admin.Email)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
