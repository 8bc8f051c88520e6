package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	maxBodyBytes        = 1 << 20 // 1MB
	formDescriptionName = "task[description]"
)

// CreateTaskInput is the only group of attributes a client may set on a task.
type CreateTaskInput struct {
	Description string `json:"description"`
}

// CreateTaskRequest mirrors the {"task": {...}} payload of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Task *CreateTaskInput `json:"task"`
}

type requestError struct {
	status  int
	message string
}

func badRequest(message string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// decodeCreateTaskRequest accepts JSON or form encoded bodies. A missing task
// group yields an empty input, leaving the blank check to validation.
func decodeCreateTaskRequest(w http.ResponseWriter, r *http.Request) (CreateTaskInput, *requestError) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" && r.ContentLength == 0 {
		return CreateTaskInput{}, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return CreateTaskInput{}, &requestError{
			status:  http.StatusUnsupportedMediaType,
			message: "Content-Type must be application/json",
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	switch mediaType {
	case "application/json":
		return decodeJSONTask(r)
	case "application/x-www-form-urlencoded":
		return decodeFormTask(r)
	default:
		return CreateTaskInput{}, &requestError{
			status:  http.StatusUnsupportedMediaType,
			message: "Content-Type must be application/json",
		}
	}
}

func decodeJSONTask(r *http.Request) (CreateTaskInput, *requestError) {
	defer r.Body.Close()

	var req CreateTaskRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return CreateTaskInput{}, nil
		}
		return CreateTaskInput{}, decodeFailure(err)
	}
	// only whitespace may follow the first value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return CreateTaskInput{}, decodeFailure(err)
		}
		return CreateTaskInput{}, badRequest("Invalid JSON body")
	}
	if req.Task == nil {
		return CreateTaskInput{}, nil
	}
	return *req.Task, nil
}

func decodeFormTask(r *http.Request) (CreateTaskInput, *requestError) {
	if err := r.ParseForm(); err != nil {
		return CreateTaskInput{}, decodeFailure(err)
	}
	for key := range r.PostForm {
		if key != formDescriptionName {
			return CreateTaskInput{}, badRequest("Unknown parameter: " + key)
		}
	}
	description := r.PostForm.Get(formDescriptionName)
	if !utf8.ValidString(description) {
		return CreateTaskInput{}, badRequest("Description must be valid UTF-8")
	}
	return CreateTaskInput{Description: description}, nil
}

func decodeFailure(err error) *requestError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large"}
	}
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return badRequest("Unknown parameter: " + strings.Trim(field, `"`))
	}
	return badRequest("Invalid JSON body")
}
