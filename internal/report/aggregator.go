package report

import (
	"fmt"
	"math"
	"time"

	"panchayath-ops/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Performance is one agent's row in the report.
type Performance struct {
	AgentID              uuid.UUID        `json:"agent_id"`
	AgentName            string           `json:"agent_name"`
	AgentType            models.AgentRole `json:"agent_type"`
	MobileNumber         string           `json:"mobile_number"`
	ConsecutiveLeaveDays int              `json:"consecutive_leave_days"`
	IsInactive           bool             `json:"is_inactive"`
	LastActivityDate     *time.Time       `json:"last_activity_date"`
	TotalNotes           int              `json:"total_notes"`
}

// RoleGroup holds one role's agents in display order.
type RoleGroup struct {
	Role   models.AgentRole `json:"role"`
	Agents []Performance    `json:"agents"`
}

// Report is the full inactivity report for a panchayath and month.
type Report struct {
	PanchayathID       uuid.UUID   `json:"panchayath_id"`
	MonthStart         time.Time   `json:"month_start"`
	MonthEnd           time.Time   `json:"month_end"`
	Groups             []RoleGroup `json:"groups"`
	TotalAgents        int         `json:"total_agents"`
	InactiveAgents     int         `json:"inactive_agents"`
	InactivePercentage float64     `json:"inactive_percentage"`
}

// Generator assembles reports. The fetch functions default to the database
// repository; tests swap them for in-memory data.
type Generator struct {
	FetchAgents func(panchayathID uuid.UUID) ([]*models.Agent, error)
	FetchNotes  func(mobileNumber string, from, to time.Time) ([]models.DailyNote, error)
	Now         func() time.Time

	// Concurrency bounds the parallel per-agent note fetches. Analyses are
	// independent and read-only; results land in index-addressed slots so
	// output order never depends on completion order.
	Concurrency int
}

func NewGenerator(concurrency int) *Generator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Generator{
		FetchAgents: models.ListAllAgents,
		FetchNotes:  models.GetDailyNotes,
		Now:         time.Now,
		Concurrency: concurrency,
	}
}

// Generate builds the report for one panchayath and month. Each agent's
// status is a pure function of that agent's notes for the month; nothing is
// cached between requests.
func (g *Generator) Generate(panchayathID uuid.UUID, monthStart, monthEnd time.Time) (*Report, error) {
	agents, err := g.FetchAgents(panchayathID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agents: %w", err)
	}

	results := make([]Performance, len(agents))

	var eg errgroup.Group
	eg.SetLimit(g.Concurrency)
	for i, agent := range agents {
		i, agent := i, agent
		eg.Go(func() error {
			notes, err := g.FetchNotes(agent.MobileNumber, monthStart, monthEnd)
			if err != nil {
				return fmt.Errorf("failed to fetch notes for %s: %w", agent.MobileNumber, err)
			}

			a := Analyze(notes, monthStart, monthEnd, g.Now())
			results[i] = Performance{
				AgentID:              agent.ID,
				AgentName:            agent.Name,
				AgentType:            agent.Role,
				MobileNumber:         agent.MobileNumber,
				ConsecutiveLeaveDays: a.ConsecutiveLeaveDays,
				IsInactive:           a.IsInactive,
				LastActivityDate:     a.LastActivityDate,
				TotalNotes:           a.TotalNotes,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		PanchayathID: panchayathID,
		MonthStart:   monthStart,
		MonthEnd:     monthEnd,
		TotalAgents:  len(results),
	}

	byRole := make(map[models.AgentRole][]Performance)
	for _, perf := range results {
		byRole[perf.AgentType] = append(byRole[perf.AgentType], perf)
		if perf.IsInactive {
			report.InactiveAgents++
		}
	}
	for _, role := range models.AgentRoles {
		report.Groups = append(report.Groups, RoleGroup{Role: role, Agents: byRole[role]})
	}

	report.InactivePercentage = Percentage(report.InactiveAgents, report.TotalAgents)
	return report, nil
}

// Percentage returns part/total as a percentage rounded to 2 decimal places,
// or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
