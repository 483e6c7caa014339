package progress

import (
	"time"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/calendar"
)

// HistorySummary is derived from history rows only, never cached.
type HistorySummary struct {
	TotalWorkouts   int           `json:"totalWorkouts"`
	TotalDuration   time.Duration `json:"totalDuration"`
	AverageDuration time.Duration `json:"averageDuration"`
	LastWorkoutAt   *time.Time    `json:"lastWorkoutAt,omitempty"`
}

type Stats struct {
	ProgramID            int64          `json:"programId"`
	Status               program.Status `json:"status"`
	CompletionPercentage float64        `json:"completionPercentage"`
	CompletedDays        int            `json:"completedDays"`
	TotalDays            int            `json:"totalDays"`
	RemainingWorkoutDays int            `json:"remainingWorkoutDays"`
	CurrentStreak        int            `json:"currentStreak"`
	LongestStreak        int            `json:"longestStreak"`
	HistorySummary
}

// CompletionPercentage recomputes the percentage from the ledger.
func CompletionPercentage(s *program.Schedule) float64 {
	return program.CompletionRatio(s.CompletedDays.Count(), s.DurationWeeks, s.DaysPerWeek)
}

// Compute builds the stats of a schedule as of today.
func Compute(s *program.Schedule, tmpl *program.Template, history []program.HistoryRecord, today time.Time) Stats {
	return Stats{
		ProgramID:            s.ID,
		Status:               s.Status,
		CompletionPercentage: CompletionPercentage(s),
		CompletedDays:        s.CompletedDays.Count(),
		TotalDays:            s.TotalDays(),
		RemainingWorkoutDays: RemainingWorkoutDays(s, tmpl),
		CurrentStreak:        CurrentStreak(s, tmpl, today),
		LongestStreak:        LongestStreak(s, tmpl, today),
		HistorySummary:       Summarize(s.ID, history),
	}
}

// Summarize aggregates the history rows belonging to programID.
func Summarize(programID int64, history []program.HistoryRecord) HistorySummary {
	var summary HistorySummary
	for i := range history {
		rec := history[i]
		if rec.ProgramID != programID {
			continue
		}
		summary.TotalWorkouts++
		summary.TotalDuration += rec.Duration
		if summary.LastWorkoutAt == nil || rec.CompletedAt.After(*summary.LastWorkoutAt) {
			completedAt := rec.CompletedAt
			summary.LastWorkoutAt = &completedAt
		}
	}
	if summary.TotalWorkouts > 0 {
		summary.AverageDuration = summary.TotalDuration / time.Duration(summary.TotalWorkouts)
	}
	return summary
}

// RemainingWorkoutDays counts workout (non-rest) days not in the ledger yet.
func RemainingWorkoutDays(s *program.Schedule, tmpl *program.Template) int {
	remaining := 0
	for week := 1; week <= s.DurationWeeks; week++ {
		for day := 1; day <= s.DaysPerWeek; day++ {
			if !tmpl.IsRestDay(day) && !s.CompletedDays.IsComplete(week, day) {
				remaining++
			}
		}
	}
	return remaining
}

// CurrentStreak counts consecutive satisfied days (rest days or completed days)
// walking back from today, clamped to the last program day. An unsatisfied
// today does not break the streak, the walk then starts from yesterday.
func CurrentStreak(s *program.Schedule, tmpl *program.Template, today time.Time) int {
	offset, ok := elapsedOffset(s, today)
	if !ok {
		return 0
	}

	if !satisfied(s, tmpl, offset) {
		offset--
	}

	streak := 0
	for ; offset >= 0 && satisfied(s, tmpl, offset); offset-- {
		streak++
	}
	return streak
}

// LongestStreak is the longest run of satisfied days between the program start and today.
func LongestStreak(s *program.Schedule, tmpl *program.Template, today time.Time) int {
	last, ok := elapsedOffset(s, today)
	if !ok {
		return 0
	}

	longest, run := 0, 0
	for offset := 0; offset <= last; offset++ {
		if !satisfied(s, tmpl, offset) {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// elapsedOffset returns the day offset of today from the program start,
// pinned to the last program day.
func elapsedOffset(s *program.Schedule, today time.Time) (int, bool) {
	if s.StartDate == nil || s.TotalDays() <= 0 {
		return 0, false
	}
	offset := calendar.DaysBetween(*s.StartDate, today)
	if offset < 0 {
		return 0, false
	}
	if last := s.TotalDays() - 1; offset > last {
		offset = last
	}
	return offset, true
}

func satisfied(s *program.Schedule, tmpl *program.Template, offset int) bool {
	week := offset/s.DaysPerWeek + 1
	day := offset%s.DaysPerWeek + 1
	return tmpl.IsRestDay(day) || s.CompletedDays.IsComplete(week, day)
}
