package handlers

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/chepyr/go-task-api/internal/auth"
	tdb "github.com/chepyr/go-task-api/internal/db"
	"github.com/chepyr/go-task-api/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const testToken = "secret123"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupHTTP(t *testing.T, token string) (*Handler, http.Handler, *sql.DB) {
	t.Helper()

	// in-memory sqlite DB
	dbx, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbx.SetMaxOpenConns(1)
	if err := tdb.Migrate(context.Background(), dbx, "sqlite3"); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })

	h := NewHandler(tdb.NewTaskRepository(dbx), auth.NewTokenGuard(token), discardLogger())
	return h, NewRouter(h, RouterOptions{}), dbx
}

// MockTaskRepository records calls so tests can assert the store was never touched.
type MockTaskRepository struct {
	tasks     []*models.Task
	createErr error
	listErr   error
	listPanic bool
	calls     int
	mutex     sync.Mutex
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	task.ID = int64(len(m.tasks) + 1)
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *MockTaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	if m.listPanic {
		panic("list exploded")
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]*models.Task{}, m.tasks...), nil
}

func (m *MockTaskRepository) Count(ctx context.Context) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	return len(m.tasks), nil
}

func (m *MockTaskRepository) Calls() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls
}

var errStoreDown = errors.New("connection refused")
