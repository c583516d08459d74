// Package repository holds the storage access layer: one interface per
// aggregate plus its Postgres implementation over database.DB. All
// correctness-critical writes (token consumption, status transitions,
// write-once responses) are expressed as conditional updates or unique
// constraints, never as read-then-write.
package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("record not found")

	ErrTokenNotFound = errors.New("assessment token not found")
	ErrTokenConsumed = errors.New("assessment token already consumed")
	ErrTokenExpired  = errors.New("assessment token expired")
)

// isNoRows matches the no-result error regardless of whether the query ran
// through the pgx pool or a database/sql handle.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
