package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
	"github.com/go-chi/chi/v5"
)

// createTask handles POST /api/tasks.
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	created, err := h.services.TaskService.CreateTask(ctx, userID, req.ToTask())
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during task creation")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// listTasks handles GET /api/tasks. The optional "completed" and "category"
// query parameters narrow the result.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var filter models.TaskFilter
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		filter.Completed = &completed
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		filter.Category = &raw
	}

	tasks, err := h.services.TaskService.ListTasks(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during task listing")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

// getTask handles GET /api/tasks/{taskID}. A task owned by another user is
// answered exactly like a missing one.
func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseIDParam(r, "taskID")
	if err != nil {
		http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}

	task, err := h.services.TaskService.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during task lookup")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

// updateTask handles PUT /api/tasks/{taskID}.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseIDParam(r, "taskID")
	if err != nil {
		http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task := req.ToTask()
	task.ID = taskID

	updated, err := h.services.TaskService.UpdateTask(ctx, userID, task)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during task update")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// deleteTask handles DELETE /api/tasks/{taskID}.
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseIDParam(r, "taskID")
	if err != nil {
		http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}

	if err = h.services.TaskService.DeleteTask(ctx, userID, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during task deletion")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (models.TaskRequest, bool) {
	log := logger.FromRequest(r)

	var req models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.TaskRequest{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("task request failed validation")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.TaskRequest{}, false
	}

	return req, true
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
