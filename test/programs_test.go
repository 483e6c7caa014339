//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/program/handler"
	"github.com/2beens/fitprogram/internal/program/progress"
)

const pushRestYAML = `name: Push / Rest
title: Push two weeks
duration_weeks: 2
days_per_week: 2
days:
  - day: 1
    label: Push
    exercises:
      - name: bench press
        sets: 3
        reps: 8
        weight: 60
  - day: 2
    label: Rest
    rest: true
`

func (s *IntegrationTestSuite) doRequest(method, path, contentType string, body []byte) (int, []byte) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "fitprogram-test")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) createProgram(user string) *program.Schedule {
	status, body := s.doRequest("POST", "/programs?user="+user, "application/yaml", []byte(pushRestYAML))
	require.Equal(s.T(), http.StatusCreated, status, string(body))

	var sched program.Schedule
	require.NoError(s.T(), json.Unmarshal(body, &sched))
	return &sched
}

func (s *IntegrationTestSuite) scheduleFrom(status int, body []byte) *program.Schedule {
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var sched program.Schedule
	require.NoError(s.T(), json.Unmarshal(body, &sched))
	return &sched
}

func (s *IntegrationTestSuite) TestPrograms_FullLifecycle() {
	sched := s.createProgram("lifecycle-user")
	assert.Equal(s.T(), program.StatusNotStarted, sched.Status)
	assert.Equal(s.T(), "Push two weeks", sched.Title)
	assert.Equal(s.T(), 2, sched.DaysPerWeek)

	var templateDays int
	err := s.DB.QueryRow(
		`SELECT COUNT(*) FROM program_template_day d JOIN program_template t ON t.id = d.template_id WHERE t.program_id = $1`,
		sched.ID,
	).Scan(&templateDays)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, templateDays)

	path := fmt.Sprintf("/programs/%d", sched.ID)

	// completing before start is not allowed
	status, _ := s.doRequest("POST", path+"/days/1/1", "", nil)
	assert.Equal(s.T(), http.StatusConflict, status)

	startBody, _ := json.Marshal(handler.StartRequest{StartDate: "2026-03-02"})
	sched = s.scheduleFrom(s.doRequest("POST", path+"/start", "application/json", startBody))
	assert.Equal(s.T(), program.StatusActive, sched.Status)
	require.NotNil(s.T(), sched.StartDate)

	status, _ = s.doRequest("POST", path+"/start", "application/json", startBody)
	assert.Equal(s.T(), http.StatusConflict, status)

	report := []byte(`{"sessionId":"s-1","duration":1800000000000,"exercises":[{"name":"bench press","sets":3,"reps":8}]}`)
	sched = s.scheduleFrom(s.doRequest("POST", path+"/days/1/1", "application/json", report))
	assert.Equal(s.T(), program.StatusInProgress, sched.Status)
	assert.True(s.T(), sched.CompletedDays.IsComplete(1, 1))
	assert.InDelta(s.T(), 0.25, sched.CompletionPercentage, 0.001)

	status, _ = s.doRequest("POST", path+"/days/3/1", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)

	restLog := []byte(`{"feeling":"tired","activities":["walk","stretching"],"note":"easy day"}`)
	status, body := s.doRequest("PUT", path+"/rest/1/2", "application/json", restLog)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	status, _ = s.doRequest("PUT", path+"/rest/1/1", "application/json", restLog)
	assert.Equal(s.T(), http.StatusUnprocessableEntity, status)

	status, body = s.doRequest("GET", path+"/rest/1/2", "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var gotRestLog program.RestDayLog
	require.NoError(s.T(), json.Unmarshal(body, &gotRestLog))
	assert.Equal(s.T(), "tired", gotRestLog.Feeling)
	assert.Equal(s.T(), []string{"walk", "stretching"}, gotRestLog.Activities)

	sched = s.scheduleFrom(s.doRequest("POST", path+"/days/2/1", "", nil))
	assert.Equal(s.T(), program.StatusCompleted, sched.Status)
	assert.NotNil(s.T(), sched.CompletedAt)

	status, body = s.doRequest("GET", path+"/stats", "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var stats progress.Stats
	require.NoError(s.T(), json.Unmarshal(body, &stats))
	assert.Equal(s.T(), 2, stats.CompletedDays)
	assert.Equal(s.T(), 4, stats.TotalDays)
	assert.Equal(s.T(), 0, stats.RemainingWorkoutDays)

	status, body = s.doRequest("GET", path+"/history", "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var history []program.HistoryRecord
	require.NoError(s.T(), json.Unmarshal(body, &history))
	require.Len(s.T(), history, 2)

	status, body = s.doRequest("GET", path+"/export", "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Contains(s.T(), string(body), "bench press")

	status, body = s.doRequest("DELETE", path, "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var deleted handler.DeleteProgramResponse
	require.NoError(s.T(), json.Unmarshal(body, &deleted))
	assert.Equal(s.T(), sched.ID, deleted.DeletedID)

	var historyRows int
	require.NoError(s.T(), s.DB.QueryRow(`SELECT COUNT(*) FROM program_history WHERE program_id = $1`, sched.ID).Scan(&historyRows))
	assert.Zero(s.T(), historyRows)

	status, _ = s.doRequest("GET", path, "", nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestPrograms_ConcurrentCompletionsWriteOneHistoryRecord() {
	sched := s.createProgram("concurrent-user")
	path := fmt.Sprintf("/programs/%d", sched.ID)

	startBody, _ := json.Marshal(handler.StartRequest{StartDate: "2026-04-06"})
	s.scheduleFrom(s.doRequest("POST", path+"/start", "application/json", startBody))

	const workers = 8
	var wg sync.WaitGroup
	statuses := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequest("POST", serverEndpoint+path+"/days/1/1", nil)
			if err != nil {
				return
			}
			resp, err := s.httpClient.Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for _, status := range statuses {
		assert.Equal(s.T(), http.StatusOK, status)
	}

	var historyRows int
	require.NoError(s.T(), s.DB.QueryRow(`SELECT COUNT(*) FROM program_history WHERE program_id = $1`, sched.ID).Scan(&historyRows))
	assert.Equal(s.T(), 1, historyRows)

	got := s.scheduleFrom(s.doRequest("GET", path, "", nil))
	assert.Equal(s.T(), 1, got.CompletedDays.Count())
}

func (s *IntegrationTestSuite) TestPrograms_ListAndCalendar() {
	user := "calendar-user"
	first := s.createProgram(user)
	second := s.createProgram(user)

	status, body := s.doRequest("GET", "/programs?user="+user, "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var list handler.ListResponse
	require.NoError(s.T(), json.Unmarshal(body, &list))
	assert.Equal(s.T(), 2, list.Total)

	startBody, _ := json.Marshal(handler.StartRequest{StartDate: "2026-05-04"})
	s.scheduleFrom(s.doRequest("POST", fmt.Sprintf("/programs/%d/start", first.ID), "application/json", startBody))

	status, body = s.doRequest("GET", "/users/"+user+"/calendar?from=2026-05-01&to=2026-05-31", "", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var view map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(body, &view))
	// 2 weeks x 2 days from the start date; the never started program is not on the calendar
	assert.Len(s.T(), view, 4)
	assert.Contains(s.T(), view, "2026-05-04")
	assert.Contains(s.T(), view, "2026-05-07")
	assert.NotContains(s.T(), view, "2026-05-08")

	status, _ = s.doRequest("GET", "/users/"+user+"/calendar?from=2026-05-31&to=2026-05-01", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)

	renameBody := []byte(`{"title":"Renamed"}`)
	renamed := s.scheduleFrom(s.doRequest("POST", fmt.Sprintf("/programs/%d/rename", second.ID), "application/json", renameBody))
	assert.Equal(s.T(), "Renamed", renamed.Title)

	status, body = s.doRequest("GET", fmt.Sprintf("/programs/%d/template", second.ID), "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var tmpl program.Template
	require.NoError(s.T(), json.Unmarshal(body, &tmpl))
	require.Len(s.T(), tmpl.Days, 2)
	assert.True(s.T(), tmpl.Days[1].IsRestDay)
}

func (s *IntegrationTestSuite) TestPrograms_InvalidInput() {
	status, _ := s.doRequest("POST", "/programs?user=u", "application/yaml", []byte("duration_weeks: 2\n"))
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest("POST", "/programs", "text/plain", []byte("hello"))
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest("GET", "/programs/999999", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	status, body := s.doRequest("GET", "/version", "", nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.True(s.T(), strings.HasPrefix(string(body), "test-version"))
}
