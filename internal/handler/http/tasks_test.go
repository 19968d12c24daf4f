// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// withURLParam injects a chi route parameter into the request context so a
// handler can be exercised without going through the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validTaskRequest() models.TaskRequest {
	return models.TaskRequest{
		Title:        "Morning run",
		LocationName: "Riverside park",
		Latitude:     55.75,
		Longitude:    37.61,
		TaskTime:     time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC),
	}
}

func TestCreateTask_Success(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().
		CreateTask(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, task models.Task) (models.Task, error) {
			task.ID = 42
			task.UserID = userID
			return task, nil
		})

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/tasks", jsonBody(t, validTaskRequest())))
	req = authedRequest(req, 7)
	rec := httptest.NewRecorder()

	th.handler.createTask(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "Morning run", created.Title)
}

func TestCreateTask_MissingIdentity(t *testing.T) {
	th := newTestHandler(t)

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/tasks", jsonBody(t, validTaskRequest())))
	rec := httptest.NewRecorder()

	th.handler.createTask(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTask_ValidationRejectsOutOfRangeLatitude(t *testing.T) {
	th := newTestHandler(t)

	body := validTaskRequest()
	body.Latitude = 123.4

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/tasks", jsonBody(t, body)))
	req = authedRequest(req, 7)
	rec := httptest.NewRecorder()

	th.handler.createTask(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(rec.Body.String()))
}

// TestGetTask_ForeignTaskAnsweredAsMissing verifies that a task owned by
// another user produces the same 404 as a task that does not exist at all.
func TestGetTask_ForeignTaskAnsweredAsMissing(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().GetTask(gomock.Any(), int64(7), int64(42)).Return(models.Task{}, store.ErrTaskNotFound)
	th.tasks.EXPECT().GetTask(gomock.Any(), int64(7), int64(999)).Return(models.Task{}, store.ErrTaskNotFound)

	do := func(taskID string) *httptest.ResponseRecorder {
		req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID, nil))
		req = authedRequest(req, 7)
		req = withURLParam(req, "taskID", taskID)
		rec := httptest.NewRecorder()
		th.handler.getTask(rec, req)
		return rec
	}

	foreign := do("42")
	missing := do("999")

	require.Equal(t, http.StatusNotFound, foreign.Code)
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, foreign.Body.String(), missing.Body.String())
	assert.Equal(t, app.MsgTaskNotFound, strings.TrimSpace(foreign.Body.String()))
}

func TestGetTask_Success(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().GetTask(gomock.Any(), int64(7), int64(42)).
		Return(models.Task{ID: 42, UserID: 7, Title: "Morning run"}, nil)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/tasks/42", nil))
	req = authedRequest(req, 7)
	req = withURLParam(req, "taskID", "42")
	rec := httptest.NewRecorder()

	th.handler.getTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, int64(42), task.ID)
}

func TestGetTask_NonNumericID(t *testing.T) {
	th := newTestHandler(t)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil))
	req = authedRequest(req, 7)
	req = withURLParam(req, "taskID", "abc")
	rec := httptest.NewRecorder()

	th.handler.getTask(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasks_PassesQueryFilter(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().
		ListTasks(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, filter models.TaskFilter) ([]models.Task, error) {
			require.NotNil(t, filter.Completed)
			assert.True(t, *filter.Completed)
			require.NotNil(t, filter.Category)
			assert.Equal(t, "errands", *filter.Category)
			return []models.Task{}, nil
		})

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/tasks?completed=true&category=errands", nil))
	req = authedRequest(req, 7)
	rec := httptest.NewRecorder()

	th.handler.listTasks(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTasks_BadCompletedValue(t *testing.T) {
	th := newTestHandler(t)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/tasks?completed=banana", nil))
	req = authedRequest(req, 7)
	rec := httptest.NewRecorder()

	th.handler.listTasks(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTask_NotFound(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().UpdateTask(gomock.Any(), int64(7), gomock.Any()).Return(models.Task{}, store.ErrTaskNotFound)

	req := injectNopLogger(httptest.NewRequest(http.MethodPut, "/api/tasks/42", jsonBody(t, validTaskRequest())))
	req = authedRequest(req, 7)
	req = withURLParam(req, "taskID", "42")
	rec := httptest.NewRecorder()

	th.handler.updateTask(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgTaskNotFound, strings.TrimSpace(rec.Body.String()))
}

func TestDeleteTask_Success(t *testing.T) {
	th := newTestHandler(t)

	th.tasks.EXPECT().DeleteTask(gomock.Any(), int64(7), int64(42)).Return(nil)

	req := injectNopLogger(httptest.NewRequest(http.MethodDelete, "/api/tasks/42", nil))
	req = authedRequest(req, 7)
	req = withURLParam(req, "taskID", "42")
	rec := httptest.NewRecorder()

	th.handler.deleteTask(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
