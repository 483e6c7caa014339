package program

import "time"

type PerformedExercise struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

// HistoryRecord is the append-only log of a finished session.
type HistoryRecord struct {
	ID          int64               `json:"id"`
	ProgramID   int64               `json:"programId"`
	SessionID   string              `json:"sessionId"`
	SessionName string              `json:"sessionName"`
	Week        int                 `json:"week"`
	Day         int                 `json:"day"`
	CompletedAt time.Time           `json:"completedAt"`
	Duration    time.Duration       `json:"duration"`
	Exercises   []PerformedExercise `json:"exercises"`
	Notes       string              `json:"notes,omitempty"`
}

// RestDayLog is what the user noted on a rest day. One per (program, week, day).
type RestDayLog struct {
	ProgramID  int64     `json:"programId"`
	Week       int       `json:"week"`
	Day        int       `json:"day"`
	Feeling    string    `json:"feeling"`
	Activities []string  `json:"activities"`
	Note       string    `json:"note,omitempty"`
	LoggedAt   time.Time `json:"loggedAt"`
}

// PerformedFromTargets turns the planned exercises of a day into a performed list.
func PerformedFromTargets(exercises []Exercise) []PerformedExercise {
	performed := make([]PerformedExercise, 0, len(exercises))
	for _, e := range exercises {
		performed = append(performed, PerformedExercise{
			Name:   e.Name,
			Sets:   e.TargetSets,
			Reps:   e.TargetReps,
			Weight: e.TargetWeight,
		})
	}
	return performed
}
