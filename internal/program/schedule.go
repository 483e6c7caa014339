package program

import (
	"fmt"
	"time"

	"github.com/2beens/fitprogram/internal/program/calendar"
)

// Status can be one of:
//   - not_started
//   - active
//   - in_progress
//   - paused
//   - completed
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted,
		StatusActive,
		StatusInProgress,
		StatusPaused,
		StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActionable reports whether a program in this status can be surfaced as today's workout.
func (s Status) IsActionable() bool {
	return s == StatusActive || s == StatusInProgress
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Metadata is the display part of a schedule.
type Metadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	DurationWeeks int    `json:"durationWeeks"`
}

// Schedule is a user's live instance of a Template: status, cursor, start date
// and the ledger of completed days.
type Schedule struct {
	ID         int64  `json:"id"`
	TemplateID int64  `json:"templateId"`
	UserID     string `json:"userId"`

	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	DurationWeeks int    `json:"durationWeeks"`
	DaysPerWeek   int    `json:"daysPerWeek"`

	CurrentWeek int        `json:"currentWeek"`
	CurrentDay  int        `json:"currentDay"`
	StartDate   *time.Time `json:"startDate,omitempty"`

	CompletedDays        Ledger  `json:"completedDays"`
	Status               Status  `json:"status"`
	CompletionPercentage float64 `json:"completionPercentage"`

	CreatedAt      time.Time  `json:"createdAt"`
	LastModifiedAt time.Time  `json:"lastModifiedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

func NewSchedule(userID string, tmpl *Template, meta Metadata, now time.Time) (*Schedule, error) {
	if meta.DurationWeeks < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one week", ErrInvalidRange)
	}
	if tmpl.DaysPerWeek < MinDaysPerWeek || tmpl.DaysPerWeek > MaxDaysPerWeek {
		return nil, fmt.Errorf("%w: days per week %d", ErrInconsistentTemplate, tmpl.DaysPerWeek)
	}

	now = now.UTC().Truncate(time.Microsecond)
	return &Schedule{
		TemplateID:     tmpl.ID,
		UserID:         userID,
		Title:          meta.Title,
		Description:    meta.Description,
		Icon:           meta.Icon,
		DurationWeeks:  meta.DurationWeeks,
		DaysPerWeek:    tmpl.DaysPerWeek,
		CurrentWeek:    1,
		CurrentDay:     1,
		Status:         StatusNotStarted,
		CreatedAt:      now,
		LastModifiedAt: now,
	}, nil
}

// TotalDays is the number of projected days of the whole program.
func (s *Schedule) TotalDays() int {
	return s.DurationWeeks * s.DaysPerWeek
}

// Cursor returns the (week, day) the user is currently at.
func (s *Schedule) Cursor() DayKey {
	return DayKey{Week: s.CurrentWeek, Day: s.CurrentDay}
}

func (s *Schedule) InRange(week, day int) bool {
	return week >= 1 && week <= s.DurationWeeks && day >= 1 && day <= s.DaysPerWeek
}

func (s *Schedule) checkRange(week, day int) error {
	if !s.InRange(week, day) {
		return fmt.Errorf("%w: week %d day %d, program has %d weeks of %d days",
			ErrInvalidRange, week, day, s.DurationWeeks, s.DaysPerWeek)
	}
	return nil
}

func (s *Schedule) invalidTransition(action string) error {
	return fmt.Errorf("%w: cannot %s a program in status [%s]", ErrInvalidTransition, action, s.Status)
}

// DateOf projects (week, day) of this schedule onto the calendar.
func (s *Schedule) DateOf(week, day int) (time.Time, bool) {
	if s.StartDate == nil {
		return time.Time{}, false
	}
	return calendar.DateOf(*s.StartDate, week, day, s.DaysPerWeek), true
}

// CursorAt returns the program day projected onto date, clamped to the program bounds.
// ok is false for programs not started yet and for dates before the start.
func (s *Schedule) CursorAt(date time.Time) (_ DayKey, ok bool) {
	if s.StartDate == nil {
		return DayKey{}, false
	}
	week, day, err := calendar.CursorOf(*s.StartDate, date, s.DaysPerWeek)
	if err != nil {
		return DayKey{Week: 1, Day: 1}, false
	}
	week, day = calendar.Clamp(week, day, s.DurationWeeks, s.DaysPerWeek)
	return DayKey{Week: week, Day: day}, true
}

// Start moves a not started program to Active, starting at date.
func (s *Schedule) Start(date, now time.Time) error {
	if s.StartDate != nil {
		return fmt.Errorf("%w: started on %s", ErrAlreadyStarted, s.StartDate.Format(time.DateOnly))
	}
	if s.Status != StatusNotStarted {
		return s.invalidTransition("start")
	}

	startDate := calendar.Day(date)
	s.StartDate = &startDate
	s.CurrentWeek, s.CurrentDay = 1, 1
	s.Status = StatusActive
	s.recompute()
	s.touch(now)
	return nil
}

// CompleteDay marks (week, day) as done. Once every workout day of the whole
// program is in the ledger, the program completes on its own.
func (s *Schedule) CompleteDay(tmpl *Template, week, day int, now time.Time) error {
	if err := s.checkRange(week, day); err != nil {
		return err
	}
	if !s.Status.IsActionable() {
		return s.invalidTransition("complete a day of")
	}

	s.CompletedDays.MarkComplete(week, day)
	s.Status = StatusInProgress
	s.recompute()
	s.touch(now)

	if s.allWorkoutsDone(tmpl) {
		s.markCompleted()
	}
	return nil
}

// UndoDay removes (week, day) from the ledger.
func (s *Schedule) UndoDay(week, day int, now time.Time) error {
	if err := s.checkRange(week, day); err != nil {
		return err
	}
	if !s.Status.IsActionable() {
		return s.invalidTransition("undo a day of")
	}

	s.CompletedDays.MarkIncomplete(week, day)
	if s.CompletedDays.Count() == 0 {
		s.Status = StatusActive
	} else {
		s.Status = StatusInProgress
	}
	s.recompute()
	s.touch(now)
	return nil
}

// Pause freezes the cursor.
func (s *Schedule) Pause(now time.Time) error {
	if !s.Status.IsActionable() {
		return s.invalidTransition("pause")
	}
	s.Status = StatusPaused
	s.touch(now)
	return nil
}

func (s *Schedule) Resume(now time.Time) error {
	if s.Status != StatusPaused {
		return s.invalidTransition("resume")
	}
	if s.CompletedDays.Count() > 0 {
		s.Status = StatusInProgress
	} else {
		s.Status = StatusActive
	}
	s.touch(now)
	return nil
}

// ForceComplete archives the program early, keeping the percentage as it is.
func (s *Schedule) ForceComplete(now time.Time) error {
	if s.Status.IsTerminal() {
		return s.invalidTransition("complete")
	}
	s.recompute()
	s.touch(now)
	s.markCompleted()
	return nil
}

// ProjectedCursor is the cursor the schedule would have on today, without
// changing it. Not started and paused programs keep their cursor.
func (s *Schedule) ProjectedCursor(today time.Time) DayKey {
	if s.Status == StatusNotStarted || s.Status == StatusPaused || s.StartDate == nil {
		return s.Cursor()
	}
	cursor, ok := s.CursorAt(today)
	if !ok {
		return DayKey{Week: 1, Day: 1}
	}
	return cursor
}

// AdvanceCursorToToday moves the cursor to the program day projected onto today.
// Reports whether the cursor moved.
func (s *Schedule) AdvanceCursorToToday(today, now time.Time) bool {
	cursor := s.ProjectedCursor(today)
	if cursor == s.Cursor() {
		return false
	}

	s.CurrentWeek, s.CurrentDay = cursor.Week, cursor.Day
	s.touch(now)
	return true
}

func (s *Schedule) Rename(title string, now time.Time) error {
	if title == "" {
		return fmt.Errorf("%w: title empty", ErrInvalidInput)
	}
	s.Title = title
	s.touch(now)
	return nil
}

func (s *Schedule) allWorkoutsDone(tmpl *Template) bool {
	for week := 1; week <= s.DurationWeeks; week++ {
		for day := 1; day <= s.DaysPerWeek; day++ {
			if tmpl.IsRestDay(day) {
				continue
			}
			if !s.CompletedDays.IsComplete(week, day) {
				return false
			}
		}
	}
	return true
}

func (s *Schedule) markCompleted() {
	s.Status = StatusCompleted
	completedAt := s.LastModifiedAt
	s.CompletedAt = &completedAt
}

func (s *Schedule) recompute() {
	s.CompletionPercentage = CompletionRatio(s.CompletedDays.Count(), s.DurationWeeks, s.DaysPerWeek)
}

// touch sets LastModifiedAt, always strictly after its previous value.
// Microsecond steps match the precision of the stored timestamps.
func (s *Schedule) touch(now time.Time) {
	now = now.UTC().Truncate(time.Microsecond)
	if !now.After(s.LastModifiedAt) {
		now = s.LastModifiedAt.Add(time.Microsecond)
	}
	s.LastModifiedAt = now
}

// CompletionRatio is completed / (durationWeeks * daysPerWeek), bounded to [0,1].
// A degenerate program with no days yields 0.
func CompletionRatio(completed, durationWeeks, daysPerWeek int) float64 {
	total := durationWeeks * daysPerWeek
	if total <= 0 || completed <= 0 {
		return 0
	}
	ratio := float64(completed) / float64(total)
	if ratio > 1 {
		return 1
	}
	return ratio
}
