package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether the error came from a unique
// constraint. The message fallback covers drivers that do not translate into
// gorm.ErrDuplicatedKey.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// uniqueViolationOn reports whether a unique constraint violation names the
// given column. Postgres embeds the constraint name (e.g. uni_users_email),
// sqlite the qualified column (users.email); matching on the column name
// covers both.
func uniqueViolationOn(err error, column string) bool {
	return isUniqueConstraintViolation(err) &&
		strings.Contains(strings.ToLower(err.Error()), column)
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "foreign key")
}
