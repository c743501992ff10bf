package models

import (
	"github.com/google/uuid"
)

// DuplicateCheck is the result of a duplicate-mobile scan.
type DuplicateCheck struct {
	IsDuplicate bool
	Role        AgentRole
}

// lookupAgentByMobile is swapped out in tests.
var lookupAgentByMobile = FindAgentByMobile

// CheckDuplicateMobile scans the four agent tables, in the order given by
// AgentRoles, for a record with the same mobile number. excludeID exempts a
// row only within targetRole's table: editing a record with its own unchanged
// number is not a conflict, but the same number in any other table always is.
// The scan stops at the first conflicting table; it is read-only and does not
// enumerate all conflicts.
func CheckDuplicateMobile(mobile string, excludeID *uuid.UUID, targetRole AgentRole) (DuplicateCheck, error) {
	normalized := NormalizeMobile(mobile)

	for _, role := range AgentRoles {
		var exclude *uuid.UUID
		if role == targetRole {
			exclude = excludeID
		}

		match, err := lookupAgentByMobile(role, normalized, exclude)
		if err != nil {
			return DuplicateCheck{}, err
		}
		if match != nil {
			return DuplicateCheck{IsDuplicate: true, Role: role}, nil
		}
	}

	return DuplicateCheck{}, nil
}
