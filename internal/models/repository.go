package models

import (
	"database/sql"
	"fmt"
	"time"

	"panchayath-ops/internal/db"

	"github.com/google/uuid"
)

func GetPanchayaths() ([]*Panchayath, error) {
	rows, err := db.DB.Query(`
		SELECT id, name, number_of_wards, created_at
		FROM panchayaths
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query panchayaths: %w", err)
	}
	defer rows.Close()

	var panchayaths []*Panchayath
	for rows.Next() {
		p := &Panchayath{}
		if err := rows.Scan(&p.ID, &p.Name, &p.NumberOfWards, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan panchayath: %w", err)
		}
		panchayaths = append(panchayaths, p)
	}

	return panchayaths, rows.Err()
}

func GetPanchayathByID(id uuid.UUID) (*Panchayath, error) {
	p := &Panchayath{}
	err := db.DB.QueryRow(`
		SELECT id, name, number_of_wards, created_at
		FROM panchayaths WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.NumberOfWards, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get panchayath: %w", err)
	}
	return p, nil
}

// selectColumns returns the column list for a role's table. Coordinators
// carry a rating, PROs a group leader reference; the other two roles have
// only the shared columns.
func selectColumns(role AgentRole) string {
	switch role {
	case RoleCoordinator:
		return "id, name, mobile_number, ward, panchayath_id, rating, created_at, updated_at"
	case RolePRO:
		return "id, name, mobile_number, ward, panchayath_id, group_leader_id, created_at, updated_at"
	default:
		return "id, name, mobile_number, ward, panchayath_id, created_at, updated_at"
	}
}

func scanAgent(role AgentRole, scan func(dest ...interface{}) error) (*Agent, error) {
	a := &Agent{Role: role}
	var err error
	switch role {
	case RoleCoordinator:
		err = scan(&a.ID, &a.Name, &a.MobileNumber, &a.Ward, &a.PanchayathID, &a.Rating, &a.CreatedAt, &a.UpdatedAt)
	case RolePRO:
		err = scan(&a.ID, &a.Name, &a.MobileNumber, &a.Ward, &a.PanchayathID, &a.GroupLeaderID, &a.CreatedAt, &a.UpdatedAt)
	default:
		err = scan(&a.ID, &a.Name, &a.MobileNumber, &a.Ward, &a.PanchayathID, &a.CreatedAt, &a.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAgent(in *AgentInput) (*Agent, error) {
	agentID := uuid.New()
	now := time.Now()

	var err error
	switch in.Role {
	case RoleCoordinator:
		_, err = db.DB.Exec(`
			INSERT INTO coordinators (id, name, mobile_number, ward, panchayath_id, rating, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, agentID, in.Name, in.MobileNumber, in.Ward, in.PanchayathID, in.Rating, now, now)
	case RolePRO:
		_, err = db.DB.Exec(`
			INSERT INTO pros (id, name, mobile_number, ward, panchayath_id, group_leader_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, agentID, in.Name, in.MobileNumber, in.Ward, in.PanchayathID, in.GroupLeaderID, now, now)
	case RoleSupervisor, RoleGroupLeader:
		_, err = db.DB.Exec(fmt.Sprintf(`
			INSERT INTO %s (id, name, mobile_number, ward, panchayath_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, in.Role.TableName()), agentID, in.Name, in.MobileNumber, in.Ward, in.PanchayathID, now, now)
	default:
		return nil, fmt.Errorf("unknown agent role %q", in.Role)
	}
	if err != nil {
		return nil, MapConstraintError(fmt.Errorf("failed to create %s: %w", in.Role, err), in)
	}

	return &Agent{
		ID:            agentID,
		Role:          in.Role,
		Name:          in.Name,
		MobileNumber:  in.MobileNumber,
		Ward:          in.Ward,
		PanchayathID:  in.PanchayathID,
		Rating:        in.Rating,
		GroupLeaderID: in.GroupLeaderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func UpdateAgent(id uuid.UUID, in *AgentInput) error {
	now := time.Now()

	var err error
	switch in.Role {
	case RoleCoordinator:
		_, err = db.DB.Exec(`
			UPDATE coordinators SET name = $1, mobile_number = $2, ward = $3, panchayath_id = $4, rating = $5, updated_at = $6
			WHERE id = $7
		`, in.Name, in.MobileNumber, in.Ward, in.PanchayathID, in.Rating, now, id)
	case RolePRO:
		_, err = db.DB.Exec(`
			UPDATE pros SET name = $1, mobile_number = $2, ward = $3, panchayath_id = $4, group_leader_id = $5, updated_at = $6
			WHERE id = $7
		`, in.Name, in.MobileNumber, in.Ward, in.PanchayathID, in.GroupLeaderID, now, id)
	case RoleSupervisor, RoleGroupLeader:
		_, err = db.DB.Exec(fmt.Sprintf(`
			UPDATE %s SET name = $1, mobile_number = $2, ward = $3, panchayath_id = $4, updated_at = $5
			WHERE id = $6
		`, in.Role.TableName()), in.Name, in.MobileNumber, in.Ward, in.PanchayathID, now, id)
	default:
		return fmt.Errorf("unknown agent role %q", in.Role)
	}
	if err != nil {
		return MapConstraintError(fmt.Errorf("failed to update %s: %w", in.Role, err), in)
	}

	return nil
}

func GetAgentByID(role AgentRole, id uuid.UUID) (*Agent, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown agent role %q", role)
	}

	row := db.DB.QueryRow(fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, selectColumns(role), role.TableName()), id)

	agent, err := scanAgent(role, row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", role, err)
	}
	return agent, nil
}

func ListAgentsByPanchayath(role AgentRole, panchayathID uuid.UUID) ([]*Agent, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown agent role %q", role)
	}

	rows, err := db.DB.Query(fmt.Sprintf(`
		SELECT %s FROM %s WHERE panchayath_id = $1 ORDER BY name, id
	`, selectColumns(role), role.TableName()), panchayathID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", role.TableName(), err)
	}
	defer rows.Close()

	var agents []*Agent
	for rows.Next() {
		agent, err := scanAgent(role, rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", role, err)
		}
		agents = append(agents, agent)
	}

	return agents, rows.Err()
}

// ListAllAgents fetches agents of every role for a panchayath, in the fixed
// role order, each role sorted by name then id.
func ListAllAgents(panchayathID uuid.UUID) ([]*Agent, error) {
	var all []*Agent
	for _, role := range AgentRoles {
		agents, err := ListAgentsByPanchayath(role, panchayathID)
		if err != nil {
			return nil, err
		}
		all = append(all, agents...)
	}
	return all, nil
}

func DeleteAgent(role AgentRole, id uuid.UUID) error {
	if !role.Valid() {
		return fmt.Errorf("unknown agent role %q", role)
	}

	_, err := db.DB.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, role.TableName()), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", role, err)
	}
	return nil
}

// GetDailyNotes fetches an agent's notes with date in [from, to], oldest
// first. Ties on the same date resolve to the newest row, which the analyzer
// relies on when building its per-day lookup.
func GetDailyNotes(mobileNumber string, from, to time.Time) ([]DailyNote, error) {
	rows, err := db.DB.Query(`
		SELECT id, mobile_number, date, is_leave, activity, created_at
		FROM daily_notes
		WHERE mobile_number = $1 AND date >= $2 AND date <= $3
		ORDER BY date, created_at
	`, mobileNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily notes: %w", err)
	}
	defer rows.Close()

	var notes []DailyNote
	for rows.Next() {
		var n DailyNote
		if err := rows.Scan(&n.ID, &n.MobileNumber, &n.Date, &n.IsLeave, &n.Activity, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily note: %w", err)
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// UpsertDailyNote records a day's note for an agent. A second submission for
// the same (mobile, date) replaces the earlier one.
func UpsertDailyNote(mobileNumber string, date time.Time, isLeave bool, activity string) error {
	_, err := db.DB.Exec(`
		INSERT INTO daily_notes (id, mobile_number, date, is_leave, activity, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (mobile_number, date) DO UPDATE SET
			is_leave = EXCLUDED.is_leave,
			activity = EXCLUDED.activity,
			created_at = EXCLUDED.created_at
	`, mobileNumber, date, isLeave, activity)
	if err != nil {
		return fmt.Errorf("failed to upsert daily note: %w", err)
	}
	return nil
}

// FindAgentByMobile looks for a row with the given (already normalized)
// mobile number in one role table. excludeID suppresses a match on that row
// so that editing a record does not conflict with itself.
func FindAgentByMobile(role AgentRole, mobile string, excludeID *uuid.UUID) (*Agent, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown agent role %q", role)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE mobile_number = $1
	`, selectColumns(role), role.TableName())
	args := []interface{}{mobile}
	if excludeID != nil {
		query += " AND id <> $2"
		args = append(args, *excludeID)
	}
	query += " LIMIT 1"

	row := db.DB.QueryRow(query, args...)
	agent, err := scanAgent(role, row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s by mobile: %w", role, err)
	}
	return agent, nil
}
