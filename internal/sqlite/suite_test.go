package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bulkconnector/internal/sqlite"
)

type TestSuite struct {
	DB       *sql.DB
	DBPath   string
	Client   *sqlite.Client
	teardown func()
}

func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_bulk_transactions.db")

	config := sqlite.Config{
		DatabasePath: dbPath,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  30 * time.Second,
		EnableWAL:    true,
	}

	client, err := sqlite.NewClient(config)
	require.NoError(t, err, "failed to create test client")

	err = client.Migrate(context.Background())
	require.NoError(t, err, "failed to create schema")

	return &TestSuite{
		DB:     client.DB(),
		DBPath: dbPath,
		Client: client,
		teardown: func() {
			client.Close()
		},
	}
}

func (s *TestSuite) Teardown() {
	s.teardown()
}

func (s *TestSuite) CountFields(t *testing.T, bulkID string) int {
	t.Helper()

	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM bulk_transaction_fields WHERE bulk_id = ?", bulkID).Scan(&count)
	require.NoError(t, err, "failed to count fields")

	return count
}
