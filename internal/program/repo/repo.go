package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/codec"
	"github.com/2beens/fitprogram/internal/telemetry/tracing"
	"github.com/2beens/fitprogram/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const scheduleColumns = `
	id, template_id, user_id, title, description, icon,
	duration_weeks, days_per_week, current_week, current_day, start_date,
	completed_days, status, completion_percentage,
	created_at, last_modified_at, completed_at`

type Repo struct {
	db    *pgxpool.Pool
	codec *codec.Codec
}

func NewRepo(db *pgxpool.Pool, codec *codec.Codec) *Repo {
	return &Repo{
		db:    db,
		codec: codec,
	}
}

// inTx runs fn in a transaction, committed only when fn and ctx are both fine.
func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
			return
		}
		err = tx.Commit(ctx)
	}()

	return fn(tx)
}

// CreateProgram stores the schedule with its template and days, filling in
// the generated ids.
func (r *Repo) CreateProgram(ctx context.Context, sched *program.Schedule, tmpl *program.Template) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.create")
	span.SetAttributes(attribute.String("user", sched.UserID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	ledgerJson, err := r.codec.EncodeLedger(sched.CompletedDays)
	if err != nil {
		return err
	}
	dayExercises := make([][]byte, len(tmpl.Days))
	for i, d := range tmpl.Days {
		if dayExercises[i], err = r.codec.EncodeExercises(d.Exercises); err != nil {
			return err
		}
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO program_schedule (
				user_id, title, description, icon, duration_weeks, days_per_week,
				current_week, current_day, start_date, completed_days, status,
				completion_percentage, created_at, last_modified_at, completed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id`,
			sched.UserID, sched.Title, sched.Description, sched.Icon, sched.DurationWeeks, sched.DaysPerWeek,
			sched.CurrentWeek, sched.CurrentDay, sched.StartDate, ledgerJson, string(sched.Status),
			sched.CompletionPercentage, sched.CreatedAt, sched.LastModifiedAt, sched.CompletedAt,
		).Scan(&sched.ID); err != nil {
			if pkg.IsCheckViolationError(err) {
				return fmt.Errorf("%w: insert schedule: %w", program.ErrInvalidInput, err)
			}
			return fmt.Errorf("insert schedule: %w", err)
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO program_template (program_id, name, days_per_week, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			sched.ID, tmpl.Name, tmpl.DaysPerWeek, tmpl.Description,
		).Scan(&tmpl.ID); err != nil {
			return fmt.Errorf("insert template: %w", err)
		}
		tmpl.ProgramID = sched.ID
		sched.TemplateID = tmpl.ID

		for i := range tmpl.Days {
			day := &tmpl.Days[i]
			day.TemplateID = tmpl.ID
			if err := tx.QueryRow(ctx, `
				INSERT INTO program_template_day (template_id, day_number, workout_label, exercises, is_rest_day)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				tmpl.ID, day.DayNumber, day.WorkoutLabel, dayExercises[i], day.IsRestDay,
			).Scan(&day.ID); err != nil {
				if pkg.IsUniqueViolationError(err) {
					return fmt.Errorf("%w: day %d defined twice", program.ErrInconsistentTemplate, day.DayNumber)
				}
				return fmt.Errorf("insert template day %d: %w", day.DayNumber, err)
			}
		}

		if _, err := tx.Exec(ctx,
			`UPDATE program_schedule SET template_id = $1 WHERE id = $2`,
			tmpl.ID, sched.ID,
		); err != nil {
			return fmt.Errorf("link template: %w", err)
		}
		return nil
	})
}

func (r *Repo) GetTemplate(ctx context.Context, id int64) (_ *program.Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.template.get")
	span.SetAttributes(attribute.Int64("template", id))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tmpl := &program.Template{}
	err = r.db.QueryRow(ctx, `
		SELECT id, program_id, name, days_per_week, description
		FROM program_template
		WHERE id = $1`, id,
	).Scan(&tmpl.ID, &tmpl.ProgramID, &tmpl.Name, &tmpl.DaysPerWeek, &tmpl.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("template %d: %w", id, program.ErrNotFound)
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, day_number, workout_label, exercises, is_rest_day
		FROM program_template_day
		WHERE template_id = $1
		ORDER BY day_number`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			day           program.TemplateDay
			exercisesJson []byte
		)
		if err := rows.Scan(&day.ID, &day.TemplateID, &day.DayNumber, &day.WorkoutLabel, &exercisesJson, &day.IsRestDay); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		day.Exercises = r.codec.DecodeExercises("template day "+strconv.FormatInt(day.ID, 10), exercisesJson)
		tmpl.Days = append(tmpl.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tmpl, nil
}

func (r *Repo) GetSchedule(ctx context.Context, id int64) (_ *program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.get")
	span.SetAttributes(attribute.Int64("program", id))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT `+scheduleColumns+` FROM program_schedule WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules, err := r.rows2schedules(rows)
	if err != nil {
		return nil, err
	}
	if len(schedules) != 1 {
		return nil, fmt.Errorf("program %d: %w", id, program.ErrNotFound)
	}
	return schedules[0], nil
}

// ListSchedules returns the user's programs, most recently modified first.
func (r *Repo) ListSchedules(ctx context.Context, userID string) (_ []*program.Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.list")
	span.SetAttributes(attribute.String("user", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM program_schedule
		WHERE user_id = $1
		ORDER BY last_modified_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2schedules(rows)
}

// SaveSchedule writes the mutable part of the schedule and, when given, appends
// the history record in the same transaction.
func (r *Repo) SaveSchedule(ctx context.Context, sched *program.Schedule, history *program.HistoryRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.save")
	span.SetAttributes(attribute.Int64("program", sched.ID))
	span.SetAttributes(attribute.String("status", sched.Status.String()))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	ledgerJson, err := r.codec.EncodeLedger(sched.CompletedDays)
	if err != nil {
		return err
	}
	var historyExercises []byte
	if history != nil {
		if historyExercises, err = r.codec.EncodePerformed(history.Exercises); err != nil {
			return err
		}
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE program_schedule SET
				title = $1, description = $2, icon = $3,
				current_week = $4, current_day = $5, start_date = $6,
				completed_days = $7, status = $8, completion_percentage = $9,
				last_modified_at = $10, completed_at = $11
			WHERE id = $12`,
			sched.Title, sched.Description, sched.Icon,
			sched.CurrentWeek, sched.CurrentDay, sched.StartDate,
			ledgerJson, string(sched.Status), sched.CompletionPercentage,
			sched.LastModifiedAt, sched.CompletedAt,
			sched.ID,
		)
		if err != nil {
			return fmt.Errorf("update schedule: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("program %d: %w", sched.ID, program.ErrNotFound)
		}

		if history == nil {
			return nil
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO program_history (
				program_id, session_id, session_name, week, day,
				completed_at, duration_ms, exercises, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			sched.ID, history.SessionID, history.SessionName, history.Week, history.Day,
			history.CompletedAt, history.Duration.Milliseconds(), historyExercises, history.Notes,
		).Scan(&history.ID); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		history.ProgramID = sched.ID
		return nil
	})
}

// ListHistory returns the program's sessions in completion order.
func (r *Repo) ListHistory(ctx context.Context, programID int64) (_ []program.HistoryRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.history.list")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, program_id, session_id, session_name, week, day, completed_at, duration_ms, exercises, notes
		FROM program_history
		WHERE program_id = $1
		ORDER BY completed_at, id`, programID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []program.HistoryRecord
	for rows.Next() {
		var (
			rec           program.HistoryRecord
			durationMs    int64
			exercisesJson []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.ProgramID, &rec.SessionID, &rec.SessionName, &rec.Week, &rec.Day,
			&rec.CompletedAt, &durationMs, &exercisesJson, &rec.Notes,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		rec.CompletedAt = rec.CompletedAt.UTC()
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.Exercises = r.codec.DecodePerformed("history "+strconv.FormatInt(rec.ID, 10), exercisesJson)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpsertRestDayLog stores the log, replacing an existing one for the same day.
func (r *Repo) UpsertRestDayLog(ctx context.Context, restLog program.RestDayLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.restlog.upsert")
	span.SetAttributes(attribute.Int64("program", restLog.ProgramID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	activitiesJson, err := r.codec.EncodeActivities(restLog.Activities)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO program_rest_day_log (program_id, week, day, feeling, activities, note, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (program_id, week, day) DO UPDATE SET
			feeling = EXCLUDED.feeling,
			activities = EXCLUDED.activities,
			note = EXCLUDED.note,
			logged_at = EXCLUDED.logged_at`,
		restLog.ProgramID, restLog.Week, restLog.Day, restLog.Feeling, activitiesJson, restLog.Note, restLog.LoggedAt,
	)
	if pkg.IsForeignKeyViolationError(err) {
		return fmt.Errorf("program %d: %w", restLog.ProgramID, program.ErrNotFound)
	}
	return err
}

func (r *Repo) GetRestDayLog(ctx context.Context, programID int64, week, day int) (_ *program.RestDayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.restlog.get")
	span.SetAttributes(attribute.Int64("program", programID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	restLog := &program.RestDayLog{}
	var activitiesJson []byte
	err = r.db.QueryRow(ctx, `
		SELECT program_id, week, day, feeling, activities, note, logged_at
		FROM program_rest_day_log
		WHERE program_id = $1 AND week = $2 AND day = $3`,
		programID, week, day,
	).Scan(&restLog.ProgramID, &restLog.Week, &restLog.Day, &restLog.Feeling, &activitiesJson, &restLog.Note, &restLog.LoggedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rest day log %d/%d-%d: %w", programID, week, day, program.ErrNotFound)
		}
		return nil, err
	}
	restLog.LoggedAt = restLog.LoggedAt.UTC()
	restLog.Activities = r.codec.DecodeActivities(
		fmt.Sprintf("rest day log %d/%d-%d", programID, week, day), activitiesJson,
	)
	return restLog, nil
}

// DeleteProgram removes the schedule, cascading to its template, days,
// history and rest day logs.
func (r *Repo) DeleteProgram(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.delete")
	span.SetAttributes(attribute.Int64("program", id))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM program_schedule WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("program %d: %w", id, program.ErrNotFound)
	}
	return nil
}

func (r *Repo) rows2schedules(rows pgx.Rows) ([]*program.Schedule, error) {
	var schedules []*program.Schedule
	for rows.Next() {
		var (
			s          program.Schedule
			status     string
			ledgerJson []byte
		)
		if err := rows.Scan(
			&s.ID, &s.TemplateID, &s.UserID, &s.Title, &s.Description, &s.Icon,
			&s.DurationWeeks, &s.DaysPerWeek, &s.CurrentWeek, &s.CurrentDay, &s.StartDate,
			&ledgerJson, &status, &s.CompletionPercentage,
			&s.CreatedAt, &s.LastModifiedAt, &s.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		owner := "program " + strconv.FormatInt(s.ID, 10)
		s.Status = program.Status(status)
		if !s.Status.IsValid() {
			log.Errorf("%s has unknown status [%s], treating as not started", owner, status)
			s.Status = program.StatusNotStarted
		}

		ledger, dropped := r.codec.DecodeLedger(owner, ledgerJson).Within(s.DurationWeeks, s.DaysPerWeek)
		if dropped > 0 {
			log.Warnf("%s: dropped %d completed days outside of the program", owner, dropped)
		}
		s.CompletedDays = ledger

		s.CreatedAt = s.CreatedAt.UTC()
		s.LastModifiedAt = s.LastModifiedAt.UTC()
		if s.StartDate != nil {
			start := time.Date(s.StartDate.Year(), s.StartDate.Month(), s.StartDate.Day(), 0, 0, 0, 0, time.UTC)
			s.StartDate = &start
		}
		if s.CompletedAt != nil {
			completedAt := s.CompletedAt.UTC()
			s.CompletedAt = &completedAt
		}

		schedules = append(schedules, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}
