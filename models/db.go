package models

import (
	"github.com/jinzhu/gorm"

	// SQLite driver.
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Open connects to the SQLite database at path.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open("sqlite3", path)
}

// Migrate performs automatic database migration.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Reference{},
		&Run{},
	).Error
}
