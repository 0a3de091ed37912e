package domain_test

import (
	"testing"
	"time"

	"job-tracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t time.Time, offset int) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

func portal(p domain.Portal) *domain.Portal { return &p }

func fixtureJobs(now time.Time) []domain.Job {
	return []domain.Job{
		{ID: "1", Title: "Backend Engineer", Company: "Acme", Status: domain.StatusApplied, AppliedOn: day(now, 0), Portal: portal(domain.PortalLinkedIn)},
		{ID: "2", Title: "Data Analyst", Company: "Globex", Status: domain.StatusInterview, AppliedOn: day(now, -5), Portal: portal(domain.PortalNaukri)},
		{ID: "3", Title: "SRE", Company: "Initech", Status: domain.StatusRejected, AppliedOn: day(now, -10)},
		{ID: "4", Title: "Intern", Company: "acme labs", Status: domain.StatusWishlist},
		{ID: "5", Title: "Platform Engineer", Company: "Hooli", Status: domain.StatusOffer, AppliedOn: day(now, -25), Portal: portal(domain.PortalIndeed)},
	}
}

func ids(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestJobFilter(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	jobs := fixtureJobs(now)

	tests := []struct {
		name   string
		filter domain.JobFilter
		want   []string
	}{
		{"Empty filter keeps everything", domain.JobFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"All sentinels keep everything", domain.JobFilter{Status: "All", Portal: "All", Window: domain.WindowAll}, []string{"1", "2", "3", "4", "5"}},
		{"Query matches title or company case-insensitively", domain.JobFilter{Query: "ACME"}, []string{"1", "4"}},
		{"Query matches title", domain.JobFilter{Query: "engineer"}, []string{"1", "5"}},
		{"Status equality", domain.JobFilter{Status: domain.StatusInterview}, []string{"2"}},
		{"Portal skips records without portal", domain.JobFilter{Portal: domain.PortalLinkedIn}, []string{"1"}},
		{"Today", domain.JobFilter{Window: domain.WindowToday}, []string{"1"}},
		{"Last week includes five days ago and excludes ten", domain.JobFilter{Window: domain.WindowLast1Week}, []string{"1", "2"}},
		{"Last month", domain.JobFilter{Window: domain.WindowLast1Month}, []string{"1", "2", "3", "5"}},
		{"Predicates compose", domain.JobFilter{Query: "engineer", Window: domain.WindowLast1Week}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FilterJobs(jobs, tt.filter, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestJobFilter_Last2Days(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	jobs := []domain.Job{
		{ID: "a", AppliedOn: day(now, -2)},
		{ID: "b", AppliedOn: day(now, -3)},
	}
	got := domain.FilterJobs(jobs, domain.JobFilter{Window: domain.WindowLast2Days}, now)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestJobFilter_MissingAppliedOnNeverMatchesWindow(t *testing.T) {
	now := time.Now()
	job := domain.Job{ID: "x", Title: "t", Company: "c", Status: domain.StatusWishlist}
	for _, w := range []domain.DateWindow{domain.WindowToday, domain.WindowLast2Days, domain.WindowLast1Week, domain.WindowLast1Month} {
		assert.False(t, domain.JobFilter{Window: w}.Matches(job, now), string(w))
	}
	assert.True(t, domain.JobFilter{Window: domain.WindowAll}.Matches(job, now))
}

func TestJobFilter_SubsetOfBase(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	jobs := fixtureJobs(now)
	base := ids(jobs)

	for _, q := range []string{"", "a", "zzz"} {
		for _, s := range append([]domain.Status{"", "All"}, domain.Statuses...) {
			for _, w := range []domain.DateWindow{"", domain.WindowAll, domain.WindowToday, domain.WindowLast1Month} {
				got := domain.FilterJobs(jobs, domain.JobFilter{Query: q, Status: s, Window: w}, now)
				assert.Subset(t, base, ids(got))
			}
		}
	}
}

func TestParseDateWindow(t *testing.T) {
	w, err := domain.ParseDateWindow("")
	require.NoError(t, err)
	assert.Equal(t, domain.WindowAll, w)

	w, err = domain.ParseDateWindow("Last1Week")
	require.NoError(t, err)
	assert.Equal(t, domain.WindowLast1Week, w)

	_, err = domain.ParseDateWindow("Yesterday")
	assert.Error(t, err)
}

func TestJobFilter_IsZero(t *testing.T) {
	assert.True(t, domain.JobFilter{}.IsZero())
	assert.True(t, domain.JobFilter{Status: "All", Portal: "All", Window: domain.WindowAll, Query: "  "}.IsZero())
	assert.False(t, domain.JobFilter{Query: "go"}.IsZero())
}
