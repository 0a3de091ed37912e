package domain

import (
	"math"
	"time"
)

type JobStats struct {
	StatusCounts          map[Status]int `json:"status_counts"`
	TotalJobs             int            `json:"total_jobs"`
	Applied               int            `json:"applied"`
	Interviews            int            `json:"interviews"`
	Offers                int            `json:"offers"`
	Rejected              int            `json:"rejected"`
	ResponseRate          float64        `json:"response_rate"`
	ConversionRate        float64        `json:"conversion_rate"`
	RejectionRate         float64        `json:"rejection_rate"`
	NextUpcomingInterview *Job           `json:"next_upcoming_interview"`
}

// ComputeStats aggregates jobs. Applied counts every record past the
// wishlist stage. Rates are percentages of Applied rounded to one decimal,
// and zero when nothing has been applied to.
func ComputeStats(jobs []Job, now time.Time) JobStats {
	stats := JobStats{StatusCounts: make(map[Status]int, len(Statuses))}
	for _, s := range Statuses {
		stats.StatusCounts[s] = 0
	}

	for i := range jobs {
		job := jobs[i]
		stats.StatusCounts[job.Status]++

		if job.Status != StatusInterview || job.Deadline == nil || !job.Deadline.After(now) {
			continue
		}
		if stats.NextUpcomingInterview == nil || job.Deadline.Before(*stats.NextUpcomingInterview.Deadline) {
			stats.NextUpcomingInterview = &job
		}
	}

	stats.TotalJobs = len(jobs)
	stats.Interviews = stats.StatusCounts[StatusInterview]
	stats.Offers = stats.StatusCounts[StatusOffer]
	stats.Rejected = stats.StatusCounts[StatusRejected]
	stats.Applied = stats.StatusCounts[StatusApplied] + stats.Interviews + stats.Offers + stats.Rejected

	if stats.Applied > 0 {
		stats.ResponseRate = percent(stats.Interviews+stats.Offers, stats.Applied)
		stats.ConversionRate = percent(stats.Offers, stats.Applied)
		stats.RejectionRate = percent(stats.Rejected, stats.Applied)
	}

	return stats
}

func percent(n, d int) float64 {
	return math.Round(float64(n)/float64(d)*1000) / 10
}
