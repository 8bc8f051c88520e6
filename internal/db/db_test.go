package db

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestConnect(t *testing.T) {
	tests := []struct {
		name          string
		driverName    string
		dsn           string
		expectedError bool
	}{
		{
			name:          "Successful connection with SQLite",
			driverName:    "sqlite3",
			dsn:           ":memory:",
			expectedError: false,
		},
		{
			name:          "Unknown driver",
			driverName:    "nope",
			dsn:           "",
			expectedError: true,
		},
		{
			name:          "Failed connection with invalid DSN",
			driverName:    "sqlite3",
			dsn:           "file::memory:?mode=invalid",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Connect(context.Background(), tt.driverName, tt.dsn)

			if tt.expectedError {
				if err == nil {
					t.Error("Expected error, got none")
				}
				if conn != nil {
					t.Error("Expected nil connection on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer conn.Close()
			if conn.Stats().MaxOpenConnections != 10 {
				t.Errorf("Expected MaxOpenConnections to be 10, got %d", conn.Stats().MaxOpenConnections)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	dbx := setupTasksDB(t)
	defer dbx.Close()

	// second run must be a no-op
	if err := Migrate(context.Background(), dbx, "sqlite3"); err != nil {
		t.Fatalf("Migrate twice: %v", err)
	}

	if err := Migrate(context.Background(), dbx, "mysql"); err == nil {
		t.Error("expected error for unknown driver")
	}
}
