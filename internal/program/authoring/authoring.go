// Package authoring reads program definitions written as YAML files.
//
//	name: Upper / Lower
//	duration_weeks: 8
//	days_per_week: 4
//	days:
//	  - day: 1
//	    label: Upper
//	    exercises:
//	      - {name: bench press, sets: 3, reps: 8, weight: 60, rest_seconds: 120}
//	  - day: 3
//	    rest: true
package authoring

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/2beens/fitprogram/internal/program"

	"gopkg.in/yaml.v3"
)

type Day struct {
	Day       int                `yaml:"day"`
	Label     string             `yaml:"label,omitempty"`
	Rest      bool               `yaml:"rest,omitempty"`
	Exercises []program.Exercise `yaml:"exercises,omitempty"`
}

type File struct {
	Name          string `yaml:"name"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Icon          string `yaml:"icon"`
	DurationWeeks int    `yaml:"duration_weeks"`
	DaysPerWeek   int    `yaml:"days_per_week"`
	Days          []Day  `yaml:"days"`
}

// Parse decodes and validates a program definition. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty program definition", program.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: parse program definition: %w", program.ErrInvalidInput, err)
	}

	if f.Name == "" {
		return nil, fmt.Errorf("%w: program name empty", program.ErrInvalidInput)
	}
	if f.DurationWeeks < 1 {
		return nil, fmt.Errorf("%w: duration_weeks must be at least 1", program.ErrInvalidRange)
	}
	tmpl := f.Template()
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	for _, d := range f.Days {
		for _, e := range d.Exercises {
			if e.Name == "" {
				return nil, fmt.Errorf("%w: day %d has an exercise without a name", program.ErrInvalidInput, d.Day)
			}
		}
	}

	return &f, nil
}

func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program definition: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

func (f *File) Template() program.Template {
	tmpl := program.Template{
		Name:        f.Name,
		DaysPerWeek: f.DaysPerWeek,
		Description: f.Description,
	}
	for _, d := range f.Days {
		exercises := d.Exercises
		if exercises == nil {
			exercises = []program.Exercise{}
		}
		tmpl.Days = append(tmpl.Days, program.TemplateDay{
			DayNumber:    d.Day,
			WorkoutLabel: d.Label,
			Exercises:    exercises,
			IsRestDay:    d.Rest,
		})
	}
	tmpl.SortDays()
	return tmpl
}

// Input builds what the scheduling service needs to create the program for userID.
func (f *File) Input(userID string) program.AuthoringInput {
	title := f.Title
	if title == "" {
		title = f.Name
	}
	return program.AuthoringInput{
		UserID:   userID,
		Template: f.Template(),
		Metadata: program.Metadata{
			Title:         title,
			Description:   f.Description,
			Icon:          f.Icon,
			DurationWeeks: f.DurationWeeks,
		},
	}
}

// Marshal renders the program template back to YAML, e.g. to export an
// existing program.
func Marshal(sched *program.Schedule, tmpl *program.Template) ([]byte, error) {
	f := File{
		Name:          tmpl.Name,
		Title:         sched.Title,
		Description:   sched.Description,
		Icon:          sched.Icon,
		DurationWeeks: sched.DurationWeeks,
		DaysPerWeek:   tmpl.DaysPerWeek,
	}
	for _, d := range tmpl.Days {
		day := Day{
			Day:   d.DayNumber,
			Label: d.WorkoutLabel,
			Rest:  d.IsRestDay,
		}
		if len(d.Exercises) > 0 {
			day.Exercises = d.Exercises
		}
		f.Days = append(f.Days, day)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return nil, fmt.Errorf("%w: encode program definition: %w", program.ErrSerialization, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
