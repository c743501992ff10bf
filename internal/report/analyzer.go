package report

import (
	"strings"
	"time"

	"panchayath-ops/internal/models"
	"panchayath-ops/internal/util"
)

// InactiveThreshold is the consecutive-leave-day count at which an agent is
// flagged inactive.
const InactiveThreshold = 3

// Analysis is the derived activity status for one agent over one month.
// Never persisted; recomputed on every report request.
type Analysis struct {
	ConsecutiveLeaveDays int
	IsInactive           bool
	LastActivityDate     *time.Time
	TotalNotes           int
}

// isLeaveDay reports whether a note (or its absence) counts as a leave day:
// no note, an explicit leave flag, or an empty/whitespace activity field.
func isLeaveDay(note models.DailyNote, ok bool) bool {
	return !ok || note.IsLeave || strings.TrimSpace(note.Activity) == ""
}

// Analyze computes the consecutive-inactivity streak for one agent's notes
// over the observable window [monthStart, min(monthEnd, today)]. All inputs
// are normalized to local calendar days; future dates in the selected month
// are never counted.
//
// The walk runs most-recent-first and stops at the first non-leave day, which
// is both the end of the streak and the last activity date. If the whole
// window is leave days, LastActivityDate stays nil.
func Analyze(notes []models.DailyNote, monthStart, monthEnd, today time.Time) Analysis {
	start := util.StartOfDay(monthStart)
	end := util.ObservableEnd(monthEnd, today)

	// Keyed by calendar date, not time.Time: DATE columns scan as UTC
	// midnight and must not shift across the local-day boundary.
	byDay := make(map[string]models.DailyNote, len(notes))
	for _, n := range notes {
		// Notes arrive ordered by date then created_at, so the newest row
		// for a day wins.
		byDay[n.Date.Format("2006-01-02")] = n
	}

	// Mis-dated notes outside the window still count toward TotalNotes.
	analysis := Analysis{TotalNotes: len(notes)}

	// Future month selected: empty observable window.
	if end.Before(start) {
		return analysis
	}

	for d := end; !d.Before(start); d = d.AddDate(0, 0, -1) {
		note, ok := byDay[d.Format("2006-01-02")]
		if isLeaveDay(note, ok) {
			analysis.ConsecutiveLeaveDays++
			continue
		}
		lastActive := d
		analysis.LastActivityDate = &lastActive
		break
	}

	analysis.IsInactive = analysis.ConsecutiveLeaveDays >= InactiveThreshold
	return analysis
}
