package program

import (
	"fmt"
	"sort"
)

const (
	MinDaysPerWeek = 1
	MaxDaysPerWeek = 7
)

type Exercise struct {
	Name         string   `json:"name" yaml:"name"`
	TargetSets   int      `json:"targetSets" yaml:"sets"`
	TargetReps   int      `json:"targetReps" yaml:"reps"`
	TargetWeight *float64 `json:"targetWeight,omitempty" yaml:"weight,omitempty"`
	RestSeconds  int      `json:"restSeconds" yaml:"rest_seconds"`
}

type TemplateDay struct {
	ID           int64      `json:"id"`
	TemplateID   int64      `json:"templateId"`
	DayNumber    int        `json:"dayNumber"`
	WorkoutLabel string     `json:"workoutLabel"`
	Exercises    []Exercise `json:"exercises"`
	IsRestDay    bool       `json:"isRestDay"`
}

// Template is the immutable weekly pattern a Schedule follows.
type Template struct {
	ID          int64         `json:"id"`
	ProgramID   int64         `json:"programId"`
	Name        string        `json:"name"`
	DaysPerWeek int           `json:"daysPerWeek"`
	Description string        `json:"description"`
	Days        []TemplateDay `json:"days"`
}

// Validate checks that the template defines each day of its week exactly once
// and that rest days carry no exercises.
func (t *Template) Validate() error {
	if t.DaysPerWeek < MinDaysPerWeek || t.DaysPerWeek > MaxDaysPerWeek {
		return fmt.Errorf("%w: days per week %d not in [%d,%d]",
			ErrInconsistentTemplate, t.DaysPerWeek, MinDaysPerWeek, MaxDaysPerWeek)
	}
	if len(t.Days) != t.DaysPerWeek {
		return fmt.Errorf("%w: %d days defined, expected %d", ErrInconsistentTemplate, len(t.Days), t.DaysPerWeek)
	}

	seen := make(map[int]bool, len(t.Days))
	for _, d := range t.Days {
		if d.DayNumber < 1 || d.DayNumber > t.DaysPerWeek {
			return fmt.Errorf("%w: day number %d not in [1,%d]", ErrInconsistentTemplate, d.DayNumber, t.DaysPerWeek)
		}
		if seen[d.DayNumber] {
			return fmt.Errorf("%w: duplicate day number %d", ErrInconsistentTemplate, d.DayNumber)
		}
		seen[d.DayNumber] = true

		if d.IsRestDay && len(d.Exercises) > 0 {
			return fmt.Errorf("%w: rest day %d has exercises", ErrInconsistentTemplate, d.DayNumber)
		}
	}

	return nil
}

// SortDays orders the days by day number.
func (t *Template) SortDays() {
	sort.Slice(t.Days, func(i, j int) bool {
		return t.Days[i].DayNumber < t.Days[j].DayNumber
	})
}

// Day returns the template day with the given number.
func (t *Template) Day(dayNumber int) (*TemplateDay, bool) {
	for i := range t.Days {
		if t.Days[i].DayNumber == dayNumber {
			return &t.Days[i], true
		}
	}
	return nil, false
}

func (t *Template) IsRestDay(dayNumber int) bool {
	d, ok := t.Day(dayNumber)
	return ok && d.IsRestDay
}

// WorkoutDaysPerWeek counts the non-rest days of the weekly pattern.
func (t *Template) WorkoutDaysPerWeek() int {
	count := 0
	for _, d := range t.Days {
		if !d.IsRestDay {
			count++
		}
	}
	return count
}

// AuthoringInput is everything needed to create a program for a user.
type AuthoringInput struct {
	UserID   string   `json:"userId"`
	Template Template `json:"template"`
	Metadata Metadata `json:"metadata"`
}
