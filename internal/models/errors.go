package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError reports a rejected form field. The submission is aborted
// before any write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateMobileError represents a mobile number already present in one of
// the agent tables. Role names the first conflicting table.
type DuplicateMobileError struct {
	Mobile string
	Role   AgentRole
}

func (e *DuplicateMobileError) Error() string {
	return fmt.Sprintf("mobile number %s already exists in %s", e.Mobile, e.Role.TableName())
}

// WardTakenError represents a unique-constraint violation on
// (panchayath_id, ward): the ward already has a coordinator assigned.
type WardTakenError struct {
	Ward int32
}

func (e *WardTakenError) Error() string {
	return "ward already assigned"
}

// MapConstraintError inspects a persistence error for PostgreSQL unique
// violations and converts known constraints to domain errors. A mobile-number
// violation can happen when two submissions race past the duplicate pre-check;
// it maps to the same DuplicateMobileError the pre-check would have returned.
// Unknown errors are passed through unchanged.
func MapConstraintError(err error, in *AgentInput) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE 23505 = unique_violation
		if pgErr.Code == "23505" {
			constraintName := strings.ToLower(pgErr.ConstraintName)
			if strings.Contains(constraintName, "mobile") {
				return &DuplicateMobileError{Mobile: in.MobileNumber, Role: in.Role}
			}
			if strings.Contains(constraintName, "ward") {
				return &WardTakenError{Ward: in.Ward}
			}
		}
	}

	return err
}
