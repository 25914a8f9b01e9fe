package db

import (
	"github.com/MartinXCVI/mern-auth-system/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to the credential store and migrates the schema. TranslateError
// maps driver duplicate-key errors to gorm.ErrDuplicatedKey so handlers can
// classify registration conflicts without driver-specific checks.
func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(&models.User{}); err != nil {
		return nil, err
	}

	return database, nil
}
