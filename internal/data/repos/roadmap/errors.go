package roadmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrVersionConflict is returned when a conditional write finds the row at
// a different version than the caller read, or when a concurrent writer
// already inserted the same key.
var ErrVersionConflict = errors.New("version conflict")

// classify folds write races reported by the database into
// ErrVersionConflict and leaves every other error untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001", "40P01": // unique_violation, serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %w", ErrVersionConflict, err)
		}
		return err
	}
	// sqlite reports constraint failures only through the message.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %w", ErrVersionConflict, err)
	}
	return err
}
