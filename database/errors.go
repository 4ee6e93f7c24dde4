package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sumitcodes/portfolio-backend/errs"
	"go.mongodb.org/mongo-driver/mongo"
)

// classify maps driver failures onto the errs sentinels.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, errs.ErrNotFound):
		return errs.ErrNotFound
	case errors.Is(err, errs.ErrDatabaseConnection), errors.Is(err, errs.ErrDatabaseTimeout):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return fmt.Errorf("%s: %w: %v", op, errs.ErrDatabaseTimeout, err)
	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%s: %w: %v", op, errs.ErrDatabaseConnection, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, errs.ErrDatabaseQuery, err)
	}
}
