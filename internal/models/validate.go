package models

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeMobile strips everything but digits from a mobile number as
// entered in a form (spaces, dashes, a leading +91 are all tolerated).
func NormalizeMobile(mobile string) string {
	var b strings.Builder
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateAgentFields checks everything about a candidate record that does
// not depend on fetched data. It rewrites in.MobileNumber to its normalized
// form on success. Purely local: a malformed submission is rejected here
// before any database or network call happens.
func ValidateAgentFields(in *AgentInput) error {
	if !in.Role.Valid() {
		return &ValidationError{Field: "role", Message: "unknown agent role"}
	}

	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}

	mobile := NormalizeMobile(in.MobileNumber)
	if len(mobile) != 10 {
		return &ValidationError{Field: "mobile_number", Message: "mobile number must be exactly 10 digits"}
	}
	in.MobileNumber = mobile

	if in.PanchayathID == uuid.Nil {
		return &ValidationError{Field: "panchayath_id", Message: "panchayath is required"}
	}

	if in.Role == RoleCoordinator && in.Rating.Valid {
		if in.Rating.Float64 < 0 || in.Rating.Float64 > 10 {
			return &ValidationError{Field: "rating", Message: "rating must be between 0 and 10"}
		}
	}

	if in.Role == RolePRO {
		if !in.GroupLeaderID.Valid || strings.TrimSpace(in.GroupLeaderID.String) == "" {
			return &ValidationError{Field: "group_leader_id", Message: "group leader is required for PRO"}
		}
		if _, err := uuid.Parse(in.GroupLeaderID.String); err != nil {
			return &ValidationError{Field: "group_leader_id", Message: "invalid group leader id"}
		}
	}

	return nil
}

// ValidateWard checks the ward against the selected panchayath's ward count.
func ValidateWard(in *AgentInput, p *Panchayath) error {
	if p == nil {
		return &ValidationError{Field: "panchayath_id", Message: "panchayath is required"}
	}

	if in.Ward < 1 || in.Ward > p.NumberOfWards {
		return &ValidationError{Field: "ward", Message: "ward must be within the panchayath's ward count"}
	}

	return nil
}

// ValidateAgentInput runs the full field validation for a candidate record:
// the pure field checks followed by the panchayath-dependent ward check.
// Returns a *ValidationError describing the first rejected field.
func ValidateAgentInput(in *AgentInput, p *Panchayath) error {
	if err := ValidateAgentFields(in); err != nil {
		return err
	}
	return ValidateWard(in, p)
}
