package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateWindow restricts records by how recently they were applied to.
type DateWindow string

const (
	WindowAll        DateWindow = "All"
	WindowToday      DateWindow = "Today"
	WindowLast2Days  DateWindow = "Last2Days"
	WindowLast1Week  DateWindow = "Last1Week"
	WindowLast1Month DateWindow = "Last1Month"
)

var windowAges = map[DateWindow]time.Duration{
	WindowLast2Days:  48 * time.Hour,
	WindowLast1Week:  7 * 24 * time.Hour,
	WindowLast1Month: 30 * 24 * time.Hour,
}

// ParseDateWindow accepts the window names; empty means All.
func ParseDateWindow(s string) (DateWindow, error) {
	switch w := DateWindow(s); w {
	case "", WindowAll:
		return WindowAll, nil
	case WindowToday, WindowLast2Days, WindowLast1Week, WindowLast1Month:
		return w, nil
	default:
		return "", fmt.Errorf("unknown date window %q", s)
	}
}

// JobFilter holds the list view predicates. Each is skipped at its zero
// value or "All".
type JobFilter struct {
	Query  string     `json:"q"`
	Status Status     `json:"status"`
	Portal Portal     `json:"portal"`
	Window DateWindow `json:"window"`
}

func (f JobFilter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		(f.Status == "" || f.Status == "All") &&
		(f.Portal == "" || f.Portal == "All") &&
		(f.Window == "" || f.Window == WindowAll)
}

// Matches reports whether job passes every active predicate at now.
func (f JobFilter) Matches(job Job, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Company), q) {
			return false
		}
	}

	if f.Status != "" && f.Status != "All" && job.Status != f.Status {
		return false
	}

	if f.Portal != "" && f.Portal != "All" {
		if job.Portal == nil || *job.Portal != f.Portal {
			return false
		}
	}

	if f.Window != "" && f.Window != WindowAll {
		if job.AppliedOn == nil {
			return false
		}
		return inWindow(*job.AppliedOn, f.Window, now)
	}

	return true
}

// inWindow reads applied as a calendar date in now's location.
func inWindow(applied time.Time, w DateWindow, now time.Time) bool {
	day := time.Date(applied.Year(), applied.Month(), applied.Day(), 0, 0, 0, 0, now.Location())

	if w == WindowToday {
		y, m, d := now.Date()
		return day.Year() == y && day.Month() == m && day.Day() == d
	}

	limit, ok := windowAges[w]
	if !ok {
		return false
	}
	return now.Sub(day) <= limit
}

// FilterJobs returns the records of jobs passing f, in their original order.
func FilterJobs(jobs []Job, f JobFilter, now time.Time) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(j, now) {
			out = append(out, j)
		}
	}
	return out
}
