package errs

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseTimeout    = errors.New("database query timeout")
)

// NewDatabaseError turns a data-access failure into the envelope a route returns.
// The title is the route's fixed failure text; the cause stays in the logs.
func NewDatabaseError(title string, cause error) *ApiErr {
	message := title
	switch {
	case errors.Is(cause, ErrDatabaseConnection):
		message = "Failed to connect to database"
	case errors.Is(cause, ErrDatabaseTimeout), errors.Is(cause, context.DeadlineExceeded):
		message = "Database query timeout"
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Title:      title,
		Message:    message,
		Cause:      cause,
		err:        ErrDatabaseQuery,
	}
}

func IsDatabaseConnection(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}
