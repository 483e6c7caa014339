package program

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidRange         = errors.New("week/day out of range")
	ErrAlreadyStarted       = errors.New("program already started")
	ErrInconsistentTemplate = errors.New("inconsistent template")
	ErrSerialization        = errors.New("serialization failure")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotRestDay           = errors.New("not a rest day")
	ErrInvalidInput         = errors.New("invalid input")
)

// UserMessage returns a displayable message for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Program not found."
	case errors.Is(err, ErrInvalidRange):
		return "That day is not part of the program."
	case errors.Is(err, ErrAlreadyStarted):
		return "This program has already been started."
	case errors.Is(err, ErrInconsistentTemplate):
		return "The program template is invalid, every day of the week must be defined exactly once."
	case errors.Is(err, ErrInvalidTransition):
		return "This action is not available for the program in its current state."
	case errors.Is(err, ErrNotRestDay):
		return "Only rest days can be logged as rest."
	case errors.Is(err, ErrInvalidInput):
		return "Some of the entered values are not valid."
	default:
		return "Something went wrong, please try again."
	}
}
