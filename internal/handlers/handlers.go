package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/chepyr/go-task-api/internal/auth"
	"github.com/chepyr/go-task-api/internal/db"
)

type Handler struct {
	TaskRepo db.TaskRepositoryInterface
	Guard    *auth.TokenGuard
	Logger   *slog.Logger
	// Now defaults to the wall clock in UTC.
	Now func() time.Time
}

func NewHandler(taskRepo db.TaskRepositoryInterface, guard *auth.TokenGuard, logger *slog.Logger) *Handler {
	return &Handler{
		TaskRepo: taskRepo,
		Guard:    guard,
		Logger:   logger,
	}
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// timestamps are kept at microsecond precision, the finest postgres stores
func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC().Truncate(time.Microsecond)
	}
	return time.Now().UTC().Truncate(time.Microsecond)
}

type successResponse struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

type errorsResponse struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

// the singular "error" key is what existing frontends expect on 401
type unauthorizedResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendSuccess(w http.ResponseWriter, data any, status int) {
	writeJSON(w, status, successResponse{Status: status, Data: data})
}

func sendErrors(w http.ResponseWriter, status int, messages ...string) {
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, status, errorsResponse{Status: status, Errors: messages})
}

func sendUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, unauthorizedResponse{
		Status: http.StatusUnauthorized,
		Error:  "Unauthorized",
	})
}

func (h *Handler) sendInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger().ErrorContext(r.Context(), msg,
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.Any("error", err),
	)
	sendErrors(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// HandleNotFound answers any unknown route below the API prefix.
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	sendErrors(w, http.StatusNotFound, "Not Found")
}
