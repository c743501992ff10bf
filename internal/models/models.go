package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AgentRole identifies one of the four agent record collections. The zero
// value is not a valid role.
type AgentRole string

const (
	RoleCoordinator AgentRole = "coordinator"
	RoleSupervisor  AgentRole = "supervisor"
	RoleGroupLeader AgentRole = "group_leader"
	RolePRO         AgentRole = "pro"
)

// AgentRoles lists every role in the fixed order duplicate checks walk the
// tables. Keep this order stable: the first conflicting table wins.
var AgentRoles = [4]AgentRole{RoleCoordinator, RoleSupervisor, RoleGroupLeader, RolePRO}

// TableName returns the backing table for a role.
func (r AgentRole) TableName() string {
	switch r {
	case RoleCoordinator:
		return "coordinators"
	case RoleSupervisor:
		return "supervisors"
	case RoleGroupLeader:
		return "group_leaders"
	case RolePRO:
		return "pros"
	}
	return ""
}

// Valid reports whether r is one of the four known roles.
func (r AgentRole) Valid() bool {
	return r.TableName() != ""
}

// ParseAgentRole maps a request string to an AgentRole.
func ParseAgentRole(s string) (AgentRole, bool) {
	r := AgentRole(s)
	if r.Valid() {
		return r, true
	}
	return "", false
}

type Panchayath struct {
	ID            uuid.UUID
	Name          string
	NumberOfWards int32
	CreatedAt     time.Time
}

// Agent is one row from any of the four role tables. Rating is set only for
// coordinators; GroupLeaderID only for PROs.
type Agent struct {
	ID            uuid.UUID
	Role          AgentRole
	Name          string
	MobileNumber  string
	Ward          int32
	PanchayathID  uuid.UUID
	Rating        sql.NullFloat64
	GroupLeaderID sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type DailyNote struct {
	ID           uuid.UUID
	MobileNumber string
	Date         time.Time
	IsLeave      bool
	Activity     string
	CreatedAt    time.Time
}

// AgentInput carries a candidate record from a form submission, before
// validation and persistence.
type AgentInput struct {
	Role          AgentRole
	Name          string
	MobileNumber  string
	Ward          int32
	PanchayathID  uuid.UUID
	Rating        sql.NullFloat64
	GroupLeaderID sql.NullString
}
