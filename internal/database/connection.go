// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Invitation{},
		&models.Client{},
		&models.Provider{},
		&models.TargetPayer{},
		&models.InsuranceInformation{},
		&models.IntakeStatus{},
		&models.TimelineEvent{},
		&models.DocumentType{},
		&models.Document{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Client indexes
		"CREATE INDEX IF NOT EXISTS idx_clients_user ON clients(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)",
		"CREATE INDEX IF NOT EXISTS idx_clients_created_at ON clients(created_at DESC)",

		// Satellite indexes
		"CREATE INDEX IF NOT EXISTS idx_providers_client ON providers(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_target_payers_client ON target_payers(client_id, priority)",
		"CREATE INDEX IF NOT EXISTS idx_timeline_events_client ON timeline_events(client_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_timeline_events_type ON timeline_events(event_type)",

		// Document indexes
		"CREATE INDEX IF NOT EXISTS idx_documents_client ON documents(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_documents_type_status ON documents(document_type, status)",
		"CREATE INDEX IF NOT EXISTS idx_document_types_category ON document_types(category, sort_order)",

		// Invitation indexes
		"CREATE INDEX IF NOT EXISTS idx_invitations_email_status ON invitations(email, status)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search over client business names
		"CREATE INDEX IF NOT EXISTS idx_clients_search ON clients USING GIN(to_tsvector('english', coalesce(business_name, '') || ' ' || coalesce(contact_name, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:     "admin@credara.com",
			FirstName: "System",
			LastName:  "Administrator",
			Role:      models.UserRoleAdmin,
			Status:    models.UserStatusActive,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Seed the document type catalog
	documentTypes := []models.DocumentType{
		{Category: "certification", Name: "BCBA Certificate", Description: "Current BCBA certification document", Required: true, SortOrder: 1},
		{Category: "certification", Name: "State License", Description: "State behavior analyst license, front and back if applicable", Required: true, SortOrder: 2},
		{Category: "insurance", Name: "Professional Liability Certificate", Description: "Certificate of insurance showing current coverage dates", Required: true, SortOrder: 3},
		{Category: "insurance", Name: "General Liability Certificate", Description: "General liability certificate of insurance", Required: false, SortOrder: 4},
		{Category: "identity", Name: "Government ID", Description: "Driver's license or passport", Required: true, SortOrder: 5},
		{Category: "identity", Name: "Social Security Card", Description: "Used for payer background checks", Required: false, SortOrder: 6},
		{Category: "practice", Name: "W-9", Description: "Signed W-9 for the practice entity", Required: true, SortOrder: 7},
		{Category: "practice", Name: "CV/Resume", Description: "Current curriculum vitae", Required: true, SortOrder: 8},
		{Category: "practice", Name: "Diploma", Description: "Highest degree earned", Required: false, SortOrder: 9},
	}

	for _, docType := range documentTypes {
		var count int64
		db.Model(&models.DocumentType{}).Where("name = ?", docType.Name).Count(&count)

		if count == 0 {
			if err := db.Create(&docType).Error; err != nil {
				log.Printf("Warning: Failed to create document type %s: %v", docType.Name, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
