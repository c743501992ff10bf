package report_test

import (
	"fmt"
	"testing"
	"time"

	"panchayath-ops/internal/models"
	"panchayath-ops/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAgent(role models.AgentRole, name, mobile string) *models.Agent {
	return &models.Agent{
		ID:           uuid.New(),
		Role:         role,
		Name:         name,
		MobileNumber: mobile,
	}
}

func newTestGenerator(agents []*models.Agent, notesByMobile map[string][]models.DailyNote, today time.Time) *report.Generator {
	g := report.NewGenerator(4)
	g.FetchAgents = func(panchayathID uuid.UUID) ([]*models.Agent, error) {
		return agents, nil
	}
	g.FetchNotes = func(mobile string, from, to time.Time) ([]models.DailyNote, error) {
		return notesByMobile[mobile], nil
	}
	g.Now = func() time.Time { return today }
	return g
}

func TestGenerateEmptyPanchayath(t *testing.T) {
	g := newTestGenerator(nil, nil, day("2026-08-20"))

	rep, err := g.Generate(uuid.New(), day("2026-08-01"), day("2026-08-31"))
	require.NoError(t, err)

	assert.Equal(t, 0, rep.TotalAgents)
	assert.Equal(t, 0, rep.InactiveAgents)
	assert.Equal(t, 0.0, rep.InactivePercentage, "no division by zero for empty panchayath")
	require.Len(t, rep.Groups, 4, "every role group present even when empty")
	for i, role := range models.AgentRoles {
		assert.Equal(t, role, rep.Groups[i].Role)
		assert.Empty(t, rep.Groups[i].Agents)
	}
}

func TestGenerateGroupsAndStats(t *testing.T) {
	today := day("2026-08-20")

	agents := []*models.Agent{
		fakeAgent(models.RoleCoordinator, "Anitha", "9000000001"),
		fakeAgent(models.RoleSupervisor, "Biju", "9000000002"),
		fakeAgent(models.RolePRO, "Chandran", "9000000003"),
	}
	notes := map[string][]models.DailyNote{
		// Active today.
		"9000000001": {{MobileNumber: "9000000001", Date: today, Activity: "Ward visits"}},
		// No notes at all: inactive.
		"9000000002": nil,
		// Active 2 days ago: streak 2, still active.
		"9000000003": {{MobileNumber: "9000000003", Date: today.AddDate(0, 0, -2), Activity: "Camp"}},
	}

	g := newTestGenerator(agents, notes, today)
	rep, err := g.Generate(uuid.New(), day("2026-08-01"), day("2026-08-31"))
	require.NoError(t, err)

	assert.Equal(t, 3, rep.TotalAgents)
	assert.Equal(t, 1, rep.InactiveAgents)
	assert.Equal(t, 33.33, rep.InactivePercentage)

	require.Len(t, rep.Groups, 4)
	assert.Equal(t, models.RoleCoordinator, rep.Groups[0].Role)
	require.Len(t, rep.Groups[0].Agents, 1)
	assert.Equal(t, "Anitha", rep.Groups[0].Agents[0].AgentName)
	assert.False(t, rep.Groups[0].Agents[0].IsInactive)
	assert.Equal(t, 0, rep.Groups[0].Agents[0].ConsecutiveLeaveDays)

	assert.Equal(t, models.RoleSupervisor, rep.Groups[1].Role)
	require.Len(t, rep.Groups[1].Agents, 1)
	assert.True(t, rep.Groups[1].Agents[0].IsInactive)
	assert.Equal(t, 20, rep.Groups[1].Agents[0].ConsecutiveLeaveDays, "Aug 1..20 all leave")
	assert.Nil(t, rep.Groups[1].Agents[0].LastActivityDate)

	assert.Equal(t, models.RoleGroupLeader, rep.Groups[2].Role)
	assert.Empty(t, rep.Groups[2].Agents)

	assert.Equal(t, models.RolePRO, rep.Groups[3].Role)
	require.Len(t, rep.Groups[3].Agents, 1)
	assert.False(t, rep.Groups[3].Agents[0].IsInactive)
	assert.Equal(t, 2, rep.Groups[3].Agents[0].ConsecutiveLeaveDays)
}

func TestGenerateDeterministicOrder(t *testing.T) {
	today := day("2026-08-20")

	// Many agents of one role; parallel analysis must not reorder them.
	var agents []*models.Agent
	for i := 0; i < 40; i++ {
		agents = append(agents, fakeAgent(models.RoleSupervisor, fmt.Sprintf("Agent %02d", i), fmt.Sprintf("90000000%02d", i)))
	}

	g := newTestGenerator(agents, nil, today)

	var prev []string
	for run := 0; run < 3; run++ {
		rep, err := g.Generate(uuid.New(), day("2026-08-01"), day("2026-08-31"))
		require.NoError(t, err)

		var order []string
		for _, perf := range rep.Groups[1].Agents {
			order = append(order, perf.AgentName)
		}
		if prev != nil {
			assert.Equal(t, prev, order, "order must be stable across runs")
		}
		prev = order
	}

	for i, name := range prev {
		assert.Equal(t, fmt.Sprintf("Agent %02d", i), name, "fetch order preserved")
	}
}

func TestGenerateFetchError(t *testing.T) {
	g := newTestGenerator([]*models.Agent{fakeAgent(models.RolePRO, "Devika", "9000000009")}, nil, day("2026-08-20"))
	g.FetchNotes = func(mobile string, from, to time.Time) ([]models.DailyNote, error) {
		return nil, fmt.Errorf("connection reset")
	}

	_, err := g.Generate(uuid.New(), day("2026-08-01"), day("2026-08-31"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9000000009")
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, report.Percentage(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}
