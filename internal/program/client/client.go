// Package client talks to the fitprogram HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/handler"
	"github.com/2beens/fitprogram/internal/program/progress"
	"github.com/2beens/fitprogram/internal/program/service"
)

const defaultTimeout = 15 * time.Second

// APIError is a non 2xx answer of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%d]: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: "programctl",
	}
}

// NewWithHTTPClient is used by tests to point the client at a test server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.httpClient = httpClient
	return c
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log.Tracef("--> %s %s", method, req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Tracef("<-- %s %s: %d", method, req.URL, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBytes)),
		}
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*dst = respBytes
		return nil
	default:
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		return nil
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func programPath(id int64, suffix ...string) string {
	return "/programs/" + strconv.FormatInt(id, 10) + strings.Join(suffix, "")
}

func dayPath(kind string, week, day int) string {
	return fmt.Sprintf("/%s/%d/%d", kind, week, day)
}

// CreateFromYAML uploads an authoring document for userID.
func (c *Client) CreateFromYAML(ctx context.Context, userID string, doc []byte) (*program.Schedule, error) {
	var sched program.Schedule
	path := "/programs?user=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodPost, path, "application/yaml", doc, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

func (c *Client) Create(ctx context.Context, in program.AuthoringInput) (*program.Schedule, error) {
	var sched program.Schedule
	if err := c.doJSON(ctx, http.MethodPost, "/programs", in, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

func (c *Client) List(ctx context.Context, userID string) (*handler.ListResponse, error) {
	var list handler.ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/programs?user="+url.QueryEscape(userID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*program.Schedule, error) {
	var sched program.Schedule
	if err := c.doJSON(ctx, http.MethodGet, programPath(id), nil, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

func (c *Client) Template(ctx context.Context, id int64) (*program.Template, error) {
	var tmpl program.Template
	if err := c.doJSON(ctx, http.MethodGet, programPath(id, "/template"), nil, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// Export returns the program as an authoring YAML document.
func (c *Client) Export(ctx context.Context, id int64) ([]byte, error) {
	var doc []byte
	if err := c.do(ctx, http.MethodGet, programPath(id, "/export"), "", nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, programPath(id), nil, nil)
}

// Start starts the program on startDate, or today (server side) when startDate is zero.
func (c *Client) Start(ctx context.Context, id int64, startDate time.Time) (*program.Schedule, error) {
	var in any
	if !startDate.IsZero() {
		in = handler.StartRequest{StartDate: startDate.Format(time.DateOnly)}
	}
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/start"), in)
}

func (c *Client) CompleteDay(ctx context.Context, id int64, week, day int, report *service.SessionReport) (*program.Schedule, error) {
	var in any
	if report != nil {
		in = report
	}
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, dayPath("days", week, day)), in)
}

func (c *Client) UndoDay(ctx context.Context, id int64, week, day int) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodDelete, programPath(id, dayPath("days", week, day)), nil)
}

func (c *Client) Pause(ctx context.Context, id int64) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/pause"), nil)
}

func (c *Client) Resume(ctx context.Context, id int64) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/resume"), nil)
}

func (c *Client) Complete(ctx context.Context, id int64) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/complete"), nil)
}

func (c *Client) Advance(ctx context.Context, id int64) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/advance"), nil)
}

func (c *Client) Rename(ctx context.Context, id int64, title string) (*program.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, programPath(id, "/rename"), handler.RenameRequest{Title: title})
}

func (c *Client) scheduleCall(ctx context.Context, method, path string, in any) (*program.Schedule, error) {
	var sched program.Schedule
	if err := c.doJSON(ctx, method, path, in, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

func (c *Client) Stats(ctx context.Context, id int64) (*progress.Stats, error) {
	var stats progress.Stats
	if err := c.doJSON(ctx, http.MethodGet, programPath(id, "/stats"), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) History(ctx context.Context, id int64) ([]program.HistoryRecord, error) {
	var history []program.HistoryRecord
	if err := c.doJSON(ctx, http.MethodGet, programPath(id, "/history"), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) LogRestDay(ctx context.Context, id int64, restLog program.RestDayLog) (*program.RestDayLog, error) {
	var saved program.RestDayLog
	path := programPath(id, dayPath("rest", restLog.Week, restLog.Day))
	if err := c.doJSON(ctx, http.MethodPut, path, restLog, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) GetRestDay(ctx context.Context, id int64, week, day int) (*program.RestDayLog, error) {
	var restLog program.RestDayLog
	if err := c.doJSON(ctx, http.MethodGet, programPath(id, dayPath("rest", week, day)), nil, &restLog); err != nil {
		return nil, err
	}
	return &restLog, nil
}

// Today returns nil, nil when nothing is scheduled for the user today.
func (c *Client) Today(ctx context.Context, userID string) (*service.ScheduledWorkout, error) {
	var resp handler.TodayResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/today", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Workout, nil
}

func (c *Client) Calendar(ctx context.Context, userID string, from, to time.Time) (map[string]service.ScheduledWorkout, error) {
	query := url.Values{}
	query.Set("from", from.Format(time.DateOnly))
	query.Set("to", to.Format(time.DateOnly))
	path := "/users/" + url.PathEscape(userID) + "/calendar?" + query.Encode()

	view := make(map[string]service.ScheduledWorkout)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &view); err != nil {
		return nil, err
	}
	return view, nil
}
