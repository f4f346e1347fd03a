package repos

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no record. Callers must be
// able to tell this apart from a transport failure.
var ErrNotFound = errors.New("record not found")

const pgUniqueViolation = "23505"

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite (used in tests) has no typed driver error for this
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
