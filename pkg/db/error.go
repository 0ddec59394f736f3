package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether an insert collided with an existing row,
// such as a reused badge number or grade name. gorm's TranslateError does not
// cover every dialect we ship, so the raw driver messages are matched too.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"): // sqlite
		return true
	case strings.Contains(msg, "duplicate key value violates unique constraint"): // postgres 23505
		return true
	case strings.Contains(msg, "Error 1062"): // mysql
		return true
	}
	return false
}
