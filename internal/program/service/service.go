package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/calendar"
	"github.com/2beens/fitprogram/internal/program/progress"
	"github.com/2beens/fitprogram/internal/telemetry/metrics"
	"github.com/2beens/fitprogram/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// MaxCalendarDays bounds the range of a single CalendarView call.
const MaxCalendarDays = 400

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=service_test

type TemplateSource interface {
	GetTemplate(ctx context.Context, id int64) (*program.Template, error)
}

// Store persists programs. Implemented by repo.Repo.
type Store interface {
	TemplateSource
	CreateProgram(ctx context.Context, sched *program.Schedule, tmpl *program.Template) error
	GetSchedule(ctx context.Context, id int64) (*program.Schedule, error)
	ListSchedules(ctx context.Context, userID string) ([]*program.Schedule, error)
	SaveSchedule(ctx context.Context, sched *program.Schedule, history *program.HistoryRecord) error
	ListHistory(ctx context.Context, programID int64) ([]program.HistoryRecord, error)
	UpsertRestDayLog(ctx context.Context, restLog program.RestDayLog) error
	GetRestDayLog(ctx context.Context, programID int64, week, day int) (*program.RestDayLog, error)
	DeleteProgram(ctx context.Context, id int64) error
}

type templateInvalidator interface {
	Invalidate(id int64)
}

// errUnchanged tells mutate there is nothing to persist.
var errUnchanged = errors.New("unchanged")

type Params struct {
	Store Store
	// Templates defaults to Store, usually a repo.TemplateCache in front of it.
	Templates TemplateSource
	// Locker defaults to an in-process KeyedLocker.
	Locker Locker
	// Now defaults to time.Now.
	Now func() time.Time
	// NewSessionID defaults to uuid.NewString.
	NewSessionID func() string
	// Metrics is optional.
	Metrics *metrics.Manager
}

type Service struct {
	store        Store
	templates    TemplateSource
	locker       Locker
	now          func() time.Time
	newSessionID func() string
	analyzer     *progress.Analyzer
	metrics      *metrics.Manager
}

func New(params Params) *Service {
	s := &Service{
		store:        params.Store,
		templates:    params.Templates,
		locker:       params.Locker,
		now:          params.Now,
		newSessionID: params.NewSessionID,
		analyzer:     progress.NewAnalyzer(params.Store),
		metrics:      params.Metrics,
	}
	if s.templates == nil {
		s.templates = params.Store
	}
	if s.locker == nil {
		s.locker = NewKeyedLocker()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newSessionID == nil {
		s.newSessionID = uuid.NewString
	}
	return s
}

func (s *Service) today() time.Time {
	return calendar.Day(s.now())
}

// CreateProgram stores a new not started program built from the authored template.
func (s *Service) CreateProgram(ctx context.Context, in program.AuthoringInput) (_ *program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.create")
	span.SetAttributes(attribute.String("user", in.UserID))
	defer func() {
		s.observe("create", err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id empty", program.ErrInvalidInput)
	}
	tmpl := in.Template
	tmpl.Days = append([]program.TemplateDay(nil), in.Template.Days...)
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	tmpl.SortDays()
	for i := range tmpl.Days {
		if tmpl.Days[i].Exercises == nil {
			tmpl.Days[i].Exercises = []program.Exercise{}
		}
	}

	meta := in.Metadata
	if meta.Title == "" {
		meta.Title = tmpl.Name
	}
	sched, err := program.NewSchedule(in.UserID, &tmpl, meta, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateProgram(ctx, sched, &tmpl); err != nil {
		return nil, fmt.Errorf("store program: %w", err)
	}

	log.Debugf("program %d created for user [%s], template %d", sched.ID, sched.UserID, tmpl.ID)
	return sched, nil
}

// mutate loads the program under its lock, applies fn and persists the result
// together with the history record fn returned, if any.
func (s *Service) mutate(
	ctx context.Context,
	op string,
	programID int64,
	fn func(sched *program.Schedule, tmpl *program.Template) (*program.HistoryRecord, error),
) (_ *program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program."+op)
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() {
		s.observe(op, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	lockStart := time.Now()
	unlock, err := s.locker.Lock(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("lock program %d: %w", programID, err)
	}
	defer unlock()
	if s.metrics != nil {
		s.metrics.HistLockWaitDuration.Observe(time.Since(lockStart).Seconds())
	}

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templates.GetTemplate(ctx, sched.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template of program %d: %w", programID, err)
	}

	history, err := fn(sched, tmpl)
	if errors.Is(err, errUnchanged) {
		return sched, nil
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.SaveSchedule(ctx, sched, history); err != nil {
		return nil, fmt.Errorf("save program %d: %w", programID, err)
	}

	return sched, nil
}

func (s *Service) StartProgram(ctx context.Context, programID int64, startDate time.Time) (*program.Schedule, error) {
	return s.mutate(ctx, "start", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.Start(startDate, s.now())
	})
}

// CompleteDay marks (week, day) as done. Finishing a workout day not completed
// before appends a history record built from report, or from the day's
// targets when report is nil.
func (s *Service) CompleteDay(ctx context.Context, programID int64, week, day int, report *SessionReport) (*program.Schedule, error) {
	return s.mutate(ctx, "complete_day", programID, func(sched *program.Schedule, tmpl *program.Template) (*program.HistoryRecord, error) {
		alreadyDone := sched.CompletedDays.IsComplete(week, day)
		now := s.now()
		if err := sched.CompleteDay(tmpl, week, day, now); err != nil {
			return nil, err
		}
		if s.metrics != nil && !alreadyDone {
			s.metrics.CounterCompletedDays.Inc()
		}

		templateDay, ok := tmpl.Day(day)
		if !ok || templateDay.IsRestDay || alreadyDone {
			return nil, nil
		}
		return s.historyRecord(sched, templateDay, week, now, report), nil
	})
}

func (s *Service) historyRecord(
	sched *program.Schedule,
	templateDay *program.TemplateDay,
	week int,
	now time.Time,
	report *SessionReport,
) *program.HistoryRecord {
	record := &program.HistoryRecord{
		ProgramID:   sched.ID,
		SessionID:   s.newSessionID(),
		SessionName: templateDay.WorkoutLabel,
		Week:        week,
		Day:         templateDay.DayNumber,
		CompletedAt: now.UTC().Truncate(time.Microsecond),
		Exercises:   program.PerformedFromTargets(templateDay.Exercises),
	}
	if report == nil {
		return record
	}

	if report.SessionID != "" {
		record.SessionID = report.SessionID
	}
	if report.Duration > 0 {
		record.Duration = report.Duration
	}
	if report.Exercises != nil {
		record.Exercises = report.Exercises
	}
	record.Notes = report.Notes
	return record
}

// UndoDay removes (week, day) from the ledger. History is kept.
func (s *Service) UndoDay(ctx context.Context, programID int64, week, day int) (*program.Schedule, error) {
	return s.mutate(ctx, "undo_day", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.UndoDay(week, day, s.now())
	})
}

func (s *Service) PauseProgram(ctx context.Context, programID int64) (*program.Schedule, error) {
	return s.mutate(ctx, "pause", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.Pause(s.now())
	})
}

// ResumeProgram un-pauses the program. The cursor and ledger are kept as they
// were when it was paused, AdvanceCursor moves the cursor.
func (s *Service) ResumeProgram(ctx context.Context, programID int64) (*program.Schedule, error) {
	return s.mutate(ctx, "resume", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.Resume(s.now())
	})
}

// CompleteProgram archives the program regardless of its progress.
func (s *Service) CompleteProgram(ctx context.Context, programID int64) (*program.Schedule, error) {
	return s.mutate(ctx, "complete", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.ForceComplete(s.now())
	})
}

// AdvanceCursor persists the cursor projected onto today. Nothing is written
// when the cursor is already there.
func (s *Service) AdvanceCursor(ctx context.Context, programID int64) (*program.Schedule, error) {
	return s.mutate(ctx, "advance_cursor", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		now := s.now()
		if !sched.AdvanceCursorToToday(calendar.Day(now), now) {
			return nil, errUnchanged
		}
		return nil, nil
	})
}

func (s *Service) RenameProgram(ctx context.Context, programID int64, title string) (*program.Schedule, error) {
	return s.mutate(ctx, "rename", programID, func(sched *program.Schedule, _ *program.Template) (*program.HistoryRecord, error) {
		return nil, sched.Rename(title, s.now())
	})
}

// DeleteProgram removes the program with its template, history and rest day logs.
func (s *Service) DeleteProgram(ctx context.Context, programID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.delete")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() {
		s.observe("delete", err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	unlock, err := s.locker.Lock(ctx, programID)
	if err != nil {
		return fmt.Errorf("lock program %d: %w", programID, err)
	}
	defer unlock()

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteProgram(ctx, programID); err != nil {
		return err
	}

	if invalidator, ok := s.templates.(templateInvalidator); ok {
		invalidator.Invalidate(sched.TemplateID)
	}
	log.Debugf("program %d deleted", programID)
	return nil
}

// GetProgram returns the program with its cursor projected onto today.
func (s *Service) GetProgram(ctx context.Context, programID int64) (_ *program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.get")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	project(sched, s.today())
	return sched, nil
}

// GetTemplate returns the template the program follows.
func (s *Service) GetTemplate(ctx context.Context, programID int64) (_ *program.Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.template")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	return s.templates.GetTemplate(ctx, sched.TemplateID)
}

// ListPrograms returns the user's programs, most recently modified first.
func (s *Service) ListPrograms(ctx context.Context, userID string) (_ []*program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.list")
	span.SetAttributes(attribute.String("user", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	schedules, err := s.store.ListSchedules(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortByLastModified(schedules)

	today := s.today()
	for _, sched := range schedules {
		project(sched, today)
	}
	return schedules, nil
}

// TodaysWorkout returns what is scheduled today in the user's most recently
// modified active program, nil when nothing is.
func (s *Service) TodaysWorkout(ctx context.Context, userID string) (_ *ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.today")
	span.SetAttributes(attribute.String("user", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	schedules, err := s.store.ListSchedules(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortByLastModified(schedules)

	today := s.today()
	for _, sched := range schedules {
		if !sched.Status.IsActionable() || sched.StartDate == nil {
			continue
		}
		// past the last day the cursor stays pinned to it
		cursor, ok := sched.CursorAt(today)
		if !ok {
			continue
		}

		tmpl, err := s.templates.GetTemplate(ctx, sched.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("template of program %d: %w", sched.ID, err)
		}
		project(sched, today)
		workout := newScheduledWorkout(sched, tmpl, calendar.ScheduledDay{Date: today, Week: cursor.Week, Day: cursor.Day})
		return &workout, nil
	}

	return nil, nil
}

// CalendarView maps every date in [from, to] that one of the user's started
// programs schedules to what is planned on it, keyed by YYYY-MM-DD.
// On shared dates actionable programs win over paused and completed ones,
// then the most recently modified.
func (s *Service) CalendarView(ctx context.Context, userID string, from, to time.Time) (_ map[string]ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.calendar")
	span.SetAttributes(attribute.String("user", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	from, to = calendar.Day(from), calendar.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s before start %s",
			program.ErrInvalidInput, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	if calendar.DaysBetween(from, to) >= MaxCalendarDays {
		return nil, fmt.Errorf("%w: range longer than %d days", program.ErrInvalidInput, MaxCalendarDays)
	}

	schedules, err := s.store.ListSchedules(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortByLastModified(schedules)
	// stable: actionable first, most recent first within each group
	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].Status.IsActionable() && !schedules[j].Status.IsActionable()
	})

	view := make(map[string]ScheduledWorkout)
	for _, sched := range schedules {
		if sched.StartDate == nil {
			continue
		}
		days := calendar.Intersect(*sched.StartDate, sched.DurationWeeks, sched.DaysPerWeek, from, to)
		if len(days) == 0 {
			continue
		}

		tmpl, err := s.templates.GetTemplate(ctx, sched.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("template of program %d: %w", sched.ID, err)
		}
		for _, scheduledDay := range days {
			key := scheduledDay.Date.Format(time.DateOnly)
			if _, taken := view[key]; taken {
				continue
			}
			view[key] = newScheduledWorkout(sched, tmpl, scheduledDay)
		}
	}

	return view, nil
}

// ProgressStats computes completion, streaks and the history summary of the program.
func (s *Service) ProgressStats(ctx context.Context, programID int64) (_ *progress.Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.stats")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templates.GetTemplate(ctx, sched.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template of program %d: %w", programID, err)
	}
	return s.analyzer.Stats(ctx, sched, tmpl, s.today())
}

func (s *Service) ListHistory(ctx context.Context, programID int64) (_ []program.HistoryRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.history")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if _, err := s.store.GetSchedule(ctx, programID); err != nil {
		return nil, err
	}
	history, err := s.store.ListHistory(ctx, programID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []program.HistoryRecord{}
	}
	return history, nil
}

// LogRestDay stores what the user noted on a rest day, replacing an earlier
// log of the same day.
func (s *Service) LogRestDay(ctx context.Context, programID int64, restLog program.RestDayLog) (_ *program.RestDayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.restlog")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() {
		s.observe("log_rest_day", err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	unlock, err := s.locker.Lock(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("lock program %d: %w", programID, err)
	}
	defer unlock()

	sched, err := s.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !sched.InRange(restLog.Week, restLog.Day) {
		return nil, fmt.Errorf("%w: week %d day %d", program.ErrInvalidRange, restLog.Week, restLog.Day)
	}
	tmpl, err := s.templates.GetTemplate(ctx, sched.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template of program %d: %w", programID, err)
	}
	if !tmpl.IsRestDay(restLog.Day) {
		return nil, fmt.Errorf("%w: day %d of program %d", program.ErrNotRestDay, restLog.Day, programID)
	}

	restLog.ProgramID = programID
	restLog.LoggedAt = s.now().UTC().Truncate(time.Microsecond)
	if restLog.Activities == nil {
		restLog.Activities = []string{}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.UpsertRestDayLog(ctx, restLog); err != nil {
		return nil, err
	}
	return &restLog, nil
}

func (s *Service) GetRestDayLog(ctx context.Context, programID int64, week, day int) (_ *program.RestDayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.restlog.get")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.store.GetRestDayLog(ctx, programID, week, day)
}

func (s *Service) observe(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveTransition(op, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, program.ErrNotFound):
		return "not_found"
	case errors.Is(err, program.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, program.ErrAlreadyStarted):
		return "already_started"
	case errors.Is(err, program.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, program.ErrInconsistentTemplate):
		return "inconsistent_template"
	case errors.Is(err, program.ErrNotRestDay):
		return "not_rest_day"
	case errors.Is(err, program.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// project sets the cursor to where it would be today, without touching the
// modification time. Used by reads only.
func project(sched *program.Schedule, today time.Time) {
	cursor := sched.ProjectedCursor(today)
	sched.CurrentWeek, sched.CurrentDay = cursor.Week, cursor.Day
}

func sortByLastModified(schedules []*program.Schedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		if !schedules[i].LastModifiedAt.Equal(schedules[j].LastModifiedAt) {
			return schedules[i].LastModifiedAt.After(schedules[j].LastModifiedAt)
		}
		return schedules[i].ID > schedules[j].ID
	})
}
