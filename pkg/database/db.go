package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds the connection parameters for the relational store.
type Config struct {
	Host string
	User string
	Pass string
	Name string
	Port string
}

// Connect opens the Postgres connection. TranslateError lets callers match
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated when a concurrent write
// races past the advisory pre-write checks.
func Connect(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Pass, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
