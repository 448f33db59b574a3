package repo

import (
	"errors"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = apperr.NotFound("user not found")
	ErrChannelNotFound = apperr.NotFound("channel not found")
	ErrDuplicateUser   = apperr.Conflict("username or email already registered")
)

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
