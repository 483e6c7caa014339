package service

import (
	"time"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/calendar"
)

// ScheduledWorkout is what a program plans for one calendar date.
type ScheduledWorkout struct {
	ProgramID    int64              `json:"programId"`
	ProgramTitle string             `json:"programTitle"`
	Status       program.Status     `json:"status"`
	Date         time.Time          `json:"date"`
	Week         int                `json:"week"`
	Day          int                `json:"day"`
	WorkoutLabel string             `json:"workoutLabel"`
	Exercises    []program.Exercise `json:"exercises"`
	IsRestDay    bool               `json:"isRestDay"`
	IsCompleted  bool               `json:"isCompleted"`
	// Inactive is set for paused programs
	Inactive bool `json:"inactive"`
}

// SessionReport is what the user actually did in a workout session.
// Zero fields fall back to the planned values.
type SessionReport struct {
	SessionID string                      `json:"sessionId,omitempty"`
	Duration  time.Duration               `json:"duration,omitempty"`
	Exercises []program.PerformedExercise `json:"exercises,omitempty"`
	Notes     string                      `json:"notes,omitempty"`
}

func newScheduledWorkout(sched *program.Schedule, tmpl *program.Template, day calendar.ScheduledDay) ScheduledWorkout {
	workout := ScheduledWorkout{
		ProgramID:    sched.ID,
		ProgramTitle: sched.Title,
		Status:       sched.Status,
		Date:         day.Date,
		Week:         day.Week,
		Day:          day.Day,
		Exercises:    []program.Exercise{},
		IsCompleted:  sched.CompletedDays.IsComplete(day.Week, day.Day),
		Inactive:     sched.Status == program.StatusPaused,
	}
	if templateDay, ok := tmpl.Day(day.Day); ok {
		workout.WorkoutLabel = templateDay.WorkoutLabel
		workout.IsRestDay = templateDay.IsRestDay
		if templateDay.Exercises != nil {
			workout.Exercises = templateDay.Exercises
		}
	}
	return workout
}
