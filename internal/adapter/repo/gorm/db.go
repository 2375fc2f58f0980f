// Package gormrepo persists game, profile and session aggregates in
// Postgres. Aggregates are stored as JSONB payloads with the version lifted
// into a column so the optimistic-concurrency check stays in SQL.
package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects with default gorm settings. Pooling is left at the
// driver defaults; the workload is small writes on the polling cadence.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}
