package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapConstraintError(t *testing.T) {
	in := &AgentInput{
		Role:         RoleCoordinator,
		MobileNumber: "9876543210",
		Ward:         7,
	}

	tests := []struct {
		name string
		err  error
		want string // "duplicate", "ward", "passthrough", "nil"
	}{
		{
			name: "nil error",
			err:  nil,
			want: "nil",
		},
		{
			name: "mobile unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "coordinators_mobile_number_key"},
			want: "duplicate",
		},
		{
			name: "wrapped mobile unique violation",
			err:  fmt.Errorf("failed to create coordinator: %w", &pgconn.PgError{Code: "23505", ConstraintName: "coordinators_mobile_number_key"}),
			want: "duplicate",
		},
		{
			name: "ward unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "coordinators_panchayath_ward_key"},
			want: "ward",
		},
		{
			name: "other unique violation passes through",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "coordinators_pkey"},
			want: "passthrough",
		},
		{
			name: "non-unique pg error passes through",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "coordinators_panchayath_id_fkey"},
			want: "passthrough",
		},
		{
			name: "plain error passes through",
			err:  fmt.Errorf("connection refused"),
			want: "passthrough",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapConstraintError(tt.err, in)

			switch tt.want {
			case "nil":
				if got != nil {
					t.Errorf("MapConstraintError() = %v, want nil", got)
				}
			case "duplicate":
				var dupErr *DuplicateMobileError
				if !errors.As(got, &dupErr) {
					t.Fatalf("MapConstraintError() = %v, want *DuplicateMobileError", got)
				}
				if dupErr.Mobile != in.MobileNumber || dupErr.Role != in.Role {
					t.Errorf("DuplicateMobileError = %+v, want mobile %s role %s", dupErr, in.MobileNumber, in.Role)
				}
			case "ward":
				var wardErr *WardTakenError
				if !errors.As(got, &wardErr) {
					t.Fatalf("MapConstraintError() = %v, want *WardTakenError", got)
				}
				if wardErr.Error() != "ward already assigned" {
					t.Errorf("WardTakenError message = %q, want %q", wardErr.Error(), "ward already assigned")
				}
			case "passthrough":
				if got != tt.err {
					t.Errorf("MapConstraintError() = %v, want original error", got)
				}
			}
		})
	}
}
