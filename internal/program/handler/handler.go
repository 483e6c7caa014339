package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/authoring"
	"github.com/2beens/fitprogram/internal/program/calendar"
	"github.com/2beens/fitprogram/internal/program/progress"
	"github.com/2beens/fitprogram/internal/program/service"
	"github.com/2beens/fitprogram/internal/telemetry/tracing"
	"github.com/2beens/fitprogram/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=handler_test

type programService interface {
	CreateProgram(ctx context.Context, in program.AuthoringInput) (*program.Schedule, error)
	GetProgram(ctx context.Context, programID int64) (*program.Schedule, error)
	GetTemplate(ctx context.Context, programID int64) (*program.Template, error)
	ListPrograms(ctx context.Context, userID string) ([]*program.Schedule, error)
	DeleteProgram(ctx context.Context, programID int64) error
	StartProgram(ctx context.Context, programID int64, startDate time.Time) (*program.Schedule, error)
	CompleteDay(ctx context.Context, programID int64, week, day int, report *service.SessionReport) (*program.Schedule, error)
	UndoDay(ctx context.Context, programID int64, week, day int) (*program.Schedule, error)
	PauseProgram(ctx context.Context, programID int64) (*program.Schedule, error)
	ResumeProgram(ctx context.Context, programID int64) (*program.Schedule, error)
	CompleteProgram(ctx context.Context, programID int64) (*program.Schedule, error)
	AdvanceCursor(ctx context.Context, programID int64) (*program.Schedule, error)
	RenameProgram(ctx context.Context, programID int64, title string) (*program.Schedule, error)
	TodaysWorkout(ctx context.Context, userID string) (*service.ScheduledWorkout, error)
	CalendarView(ctx context.Context, userID string, from, to time.Time) (map[string]service.ScheduledWorkout, error)
	ProgressStats(ctx context.Context, programID int64) (*progress.Stats, error)
	ListHistory(ctx context.Context, programID int64) ([]program.HistoryRecord, error)
	LogRestDay(ctx context.Context, programID int64, restLog program.RestDayLog) (*program.RestDayLog, error)
	GetRestDayLog(ctx context.Context, programID int64, week, day int) (*program.RestDayLog, error)
}

type StartRequest struct {
	// StartDate is YYYY-MM-DD, empty means today
	StartDate string `json:"startDate"`
}

type RenameRequest struct {
	Title string `json:"title"`
}

type DeleteProgramResponse struct {
	DeletedID int64 `json:"deletedId"`
}

type ListResponse struct {
	Programs []*program.Schedule `json:"programs"`
	Total    int                 `json:"total"`
}

type TodayResponse struct {
	Workout *service.ScheduledWorkout `json:"workout"`
}

type Handler struct {
	service programService
	now     func() time.Time
}

func NewHandler(svc programService) *Handler {
	return &Handler{
		service: svc,
		now:     time.Now,
	}
}

// NewHandlerWithClock is NewHandler with a fixed notion of today, used for the
// default start date.
func NewHandlerWithClock(svc programService, now func() time.Time) *Handler {
	return &Handler{
		service: svc,
		now:     now,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.create")
	defer span.End()

	var in program.AuthoringInput
	switch mediaType(r) {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Tracef("new program, unmarshal json params: %s", err)
			http.Error(w, "add program failed", http.StatusBadRequest)
			return
		}
	case "application/yaml", "application/x-yaml", "text/yaml":
		file, err := authoring.Parse(r.Body)
		if err != nil {
			log.Tracef("new program, parse yaml: %s", err)
			writeError(w, "create program", err)
			return
		}
		in = file.Input(r.URL.Query().Get("user"))
	default:
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	sched, err := h.service.CreateProgram(ctx, in)
	if err != nil {
		writeError(w, "create program", err)
		return
	}

	writeJSON(w, sched, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.list")
	defer span.End()

	userID := r.URL.Query().Get("user")
	if userID == "" {
		http.Error(w, "error, user empty", http.StatusBadRequest)
		return
	}

	schedules, err := h.service.ListPrograms(ctx, userID)
	if err != nil {
		writeError(w, "list programs", err)
		return
	}
	if schedules == nil {
		schedules = []*program.Schedule{}
	}

	writeJSON(w, ListResponse{
		Programs: schedules,
		Total:    len(schedules),
	}, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.get")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	sched, err := h.service.GetProgram(ctx, id)
	if err != nil {
		writeError(w, "get program", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.template")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	tmpl, err := h.service.GetTemplate(ctx, id)
	if err != nil {
		writeError(w, "get template", err)
		return
	}

	writeJSON(w, tmpl, http.StatusOK)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.export")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	sched, err := h.service.GetProgram(ctx, id)
	if err != nil {
		writeError(w, "export program", err)
		return
	}
	tmpl, err := h.service.GetTemplate(ctx, id)
	if err != nil {
		writeError(w, "export program", err)
		return
	}

	data, err := authoring.Marshal(sched, tmpl)
	if err != nil {
		writeError(w, "export program", err)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.YAML, data, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.delete")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProgram(ctx, id); err != nil {
		writeError(w, "delete program", err)
		return
	}

	writeJSON(w, DeleteProgramResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.start")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	var req StartRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		log.Tracef("start program, unmarshal json params: %s", err)
		http.Error(w, "start program failed", http.StatusBadRequest)
		return
	}

	startDate := calendar.Day(h.now())
	if req.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			http.Error(w, "error, start date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		startDate = parsed
	}

	sched, err := h.service.StartProgram(ctx, id, startDate)
	if err != nil {
		writeError(w, "start program", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandleCompleteDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.day.complete")
	defer span.End()

	id, week, day, ok := programDay(w, r)
	if !ok {
		return
	}

	var report service.SessionReport
	if err := decodeOptionalJSON(r, &report); err != nil {
		log.Tracef("complete day, unmarshal json params: %s", err)
		http.Error(w, "complete day failed", http.StatusBadRequest)
		return
	}

	sched, err := h.service.CompleteDay(ctx, id, week, day, &report)
	if err != nil {
		writeError(w, "complete day", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandleUndoDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.day.undo")
	defer span.End()

	id, week, day, ok := programDay(w, r)
	if !ok {
		return
	}

	sched, err := h.service.UndoDay(ctx, id, week, day)
	if err != nil {
		writeError(w, "undo day", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "pause", h.service.PauseProgram)
}

func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "resume", h.service.ResumeProgram)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "complete", h.service.CompleteProgram)
}

func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "advance", h.service.AdvanceCursor)
}

func (h *Handler) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	transition func(ctx context.Context, programID int64) (*program.Schedule, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program."+op)
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	sched, err := transition(ctx, id)
	if err != nil {
		writeError(w, op+" program", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.rename")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	if mediaType(r) != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("rename program, unmarshal json params: %s", err)
		http.Error(w, "rename program failed", http.StatusBadRequest)
		return
	}

	sched, err := h.service.RenameProgram(ctx, id, req.Title)
	if err != nil {
		writeError(w, "rename program", err)
		return
	}

	writeJSON(w, sched, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.stats")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.ProgressStats(ctx, id)
	if err != nil {
		writeError(w, "progress stats", err)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.history")
	defer span.End()

	id, ok := programID(w, r)
	if !ok {
		return
	}

	history, err := h.service.ListHistory(ctx, id)
	if err != nil {
		writeError(w, "list history", err)
		return
	}

	writeJSON(w, history, http.StatusOK)
}

func (h *Handler) HandleLogRestDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.rest.log")
	defer span.End()

	id, week, day, ok := programDay(w, r)
	if !ok {
		return
	}

	if mediaType(r) != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}
	var restLog program.RestDayLog
	if err := json.NewDecoder(r.Body).Decode(&restLog); err != nil {
		log.Tracef("log rest day, unmarshal json params: %s", err)
		http.Error(w, "log rest day failed", http.StatusBadRequest)
		return
	}
	restLog.Week, restLog.Day = week, day

	saved, err := h.service.LogRestDay(ctx, id, restLog)
	if err != nil {
		writeError(w, "log rest day", err)
		return
	}

	writeJSON(w, saved, http.StatusOK)
}

func (h *Handler) HandleGetRestDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.rest.get")
	defer span.End()

	id, week, day, ok := programDay(w, r)
	if !ok {
		return
	}

	restLog, err := h.service.GetRestDayLog(ctx, id, week, day)
	if err != nil {
		writeError(w, "get rest day", err)
		return
	}

	writeJSON(w, restLog, http.StatusOK)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.today")
	defer span.End()

	userID := mux.Vars(r)["user"]
	if userID == "" {
		http.Error(w, "error, user empty", http.StatusBadRequest)
		return
	}

	workout, err := h.service.TodaysWorkout(ctx, userID)
	if err != nil {
		writeError(w, "todays workout", err)
		return
	}

	writeJSON(w, TodayResponse{Workout: workout}, http.StatusOK)
}

func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.calendar")
	defer span.End()

	userID := mux.Vars(r)["user"]
	if userID == "" {
		http.Error(w, "error, user empty", http.StatusBadRequest)
		return
	}

	from, err := time.Parse(time.DateOnly, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "error, from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(time.DateOnly, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "error, to must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	view, err := h.service.CalendarView(ctx, userID, from, to)
	if err != nil {
		writeError(w, "calendar view", err)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

// StatusCode maps engine errors to http status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, program.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, program.ErrInvalidRange),
		errors.Is(err, program.ErrInvalidInput),
		errors.Is(err, program.ErrInconsistentTemplate):
		return http.StatusBadRequest
	case errors.Is(err, program.ErrAlreadyStarted),
		errors.Is(err, program.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, program.ErrNotRestDay):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}
	http.Error(w, program.UserMessage(err), status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, status)
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// decodeOptionalJSON leaves v untouched when the request has no body.
func decodeOptionalJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func programID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func programDay(w http.ResponseWriter, r *http.Request) (id int64, week, day int, ok bool) {
	id, ok = programID(w, r)
	if !ok {
		return 0, 0, 0, false
	}

	vars := mux.Vars(r)
	week, err := strconv.Atoi(vars["week"])
	if err != nil {
		http.Error(w, fmt.Sprintf("error, week [%s] NaN", vars["week"]), http.StatusBadRequest)
		return 0, 0, 0, false
	}
	day, err = strconv.Atoi(vars["day"])
	if err != nil {
		http.Error(w, fmt.Sprintf("error, day [%s] NaN", vars["day"]), http.StatusBadRequest)
		return 0, 0, 0, false
	}

	return id, week, day, true
}
