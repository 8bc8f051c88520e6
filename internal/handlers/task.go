package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/chepyr/go-task-api/internal/metrics"
	"github.com/chepyr/go-task-api/internal/models"
	"github.com/pkg/errors"
)

const tasksPath = "/api/v1/tasks"

/*
handles routes:
- GET /api/v1/tasks - list all tasks, newest first
- POST /api/v1/tasks - create a new task
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		sendErrors(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	tasks, err := h.TaskRepo.List(ctx)
	if err != nil {
		h.sendInternalError(w, r, "could not list tasks", err)
		return
	}
	sendSuccess(w, tasks, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	input, reqErr := decodeCreateTaskRequest(w, r)
	if reqErr != nil {
		sendErrors(w, reqErr.status, reqErr.message)
		return
	}

	now := h.now()
	task := &models.Task{
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		h.sendValidationError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.TaskRepo.Create(ctx, task); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.sendValidationError(w, r, err)
			return
		}
		h.sendInternalError(w, r, "could not create task", err)
		return
	}

	metrics.TasksCreated.Inc()
	sendSuccess(w, task, http.StatusCreated)
}

func (h *Handler) sendValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		h.sendInternalError(w, r, "unexpected validation error", err)
		return
	}
	metrics.ValidationFailures.Inc()
	sendErrors(w, http.StatusUnprocessableEntity, verr.Messages...)
}
