package util

import (
	"testing"
	"time"
)

func TestValidateNotFutureDate(t *testing.T) {
	today := time.Now()
	todayDay := StartOfDay(today)

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{
			name:    "yesterday should be allowed",
			date:    todayDay.AddDate(0, 0, -1),
			wantErr: false,
		},
		{
			name:    "today should be allowed",
			date:    todayDay,
			wantErr: false,
		},
		{
			name:    "tomorrow should be rejected",
			date:    todayDay.AddDate(0, 0, 1),
			wantErr: true,
		},
		{
			name:    "far future should be rejected",
			date:    todayDay.AddDate(1, 0, 0),
			wantErr: true,
		},
		{
			name:    "far past should be allowed",
			date:    todayDay.AddDate(-1, 0, 0),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotFutureDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotFutureDate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDateLocal(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		wantErr bool
	}{
		{
			name:    "valid date string",
			dateStr: "2026-01-23",
			wantErr: false,
		},
		{
			name:    "invalid date string",
			dateStr: "invalid",
			wantErr: true,
		},
		{
			name:    "empty string",
			dateStr: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateLocal(tt.dateStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateLocal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	parsed, err := ParseDateLocal("2026-01-23")
	if err != nil {
		t.Fatalf("ParseDateLocal() failed: %v", err)
	}
	if parsed.Location() != time.Local {
		t.Errorf("ParseDateLocal() location = %v, want %v", parsed.Location(), time.Local)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0 {
		t.Errorf("ParseDateLocal() should return start of day (00:00:00)")
	}
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		monthStr  string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "31-day month",
			monthStr:  "2026-01",
			wantStart: "2026-01-01",
			wantEnd:   "2026-01-31",
		},
		{
			name:      "february non-leap",
			monthStr:  "2026-02",
			wantStart: "2026-02-01",
			wantEnd:   "2026-02-28",
		},
		{
			name:      "february leap year",
			monthStr:  "2028-02",
			wantStart: "2028-02-01",
			wantEnd:   "2028-02-29",
		},
		{
			name:      "30-day month",
			monthStr:  "2026-04",
			wantStart: "2026-04-01",
			wantEnd:   "2026-04-30",
		},
		{
			name:     "garbage input",
			monthStr: "not-a-month",
			wantErr:  true,
		},
		{
			name:     "full date rejected",
			monthStr: "2026-04-15",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthWindow(tt.monthStr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MonthWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("MonthWindow() start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("MonthWindow() end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestObservableEnd(t *testing.T) {
	monthEnd, _ := ParseDateLocal("2026-08-31")

	midMonth, _ := ParseDateLocal("2026-08-20")
	if got := ObservableEnd(monthEnd, midMonth); !got.Equal(midMonth) {
		t.Errorf("ObservableEnd() = %v, want today %v when month is current", got, midMonth)
	}

	afterMonth, _ := ParseDateLocal("2026-09-15")
	if got := ObservableEnd(monthEnd, afterMonth); !got.Equal(monthEnd) {
		t.Errorf("ObservableEnd() = %v, want month end %v for a past month", got, monthEnd)
	}

	lastDay, _ := ParseDateLocal("2026-08-31")
	if got := ObservableEnd(monthEnd, lastDay); !got.Equal(monthEnd) {
		t.Errorf("ObservableEnd() = %v, want %v when today is the last day", got, monthEnd)
	}
}

func TestStartOfDay(t *testing.T) {
	now := time.Now()
	midnight := StartOfDay(now)

	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Second() != 0 {
		t.Errorf("StartOfDay() should return 00:00:00")
	}

	if midnight.Year() != now.Year() || midnight.Month() != now.Month() || midnight.Day() != now.Day() {
		t.Errorf("StartOfDay() should preserve date")
	}

	if midnight.Location() != time.Local {
		t.Errorf("StartOfDay() location = %v, want %v", midnight.Location(), time.Local)
	}
}
