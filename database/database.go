// File: /database/database.go
package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialnet-api/models"
)

func Initialize(databasePath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; cap the pool so concurrent requests
	// queue on the driver instead of failing with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.PostLike{},
		&models.Friend{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, optionally on the given column ("table.column").
func IsUniqueViolation(err error, col string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique constraint failed") {
		return false
	}
	return col == "" || strings.Contains(msg, strings.ToLower(col))
}

// SeedData populates the database with an administrator account for
// development. Skipped when any user already exists.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        uuid.New().String(),
		Username:  "admin",
		Email:     "admin@socialnet.local",
		Phone:     "+7(000)-000-00-00",
		Password:  string(hash),
		FirstName: "Site",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not create admin user: %v", err)
	}

	return nil
}
