package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError bool
		assert        func(t *testing.T, config Config)
	}{
		{
			name: "defaults",
			assert: func(t *testing.T, config Config) {
				require.Equal(t, RepositoryMemory, config.Repository)
				require.Equal(t, 1000, config.MaxItemsPerBatch)
				require.Equal(t, 4, config.Bus.Partitions)
				require.Equal(t, 1024, config.Scheduler.SentResponseCacheSize)
				require.Equal(t, "bulk_transactions.db", config.SQLite.DatabasePath)
				require.Equal(t, "localhost:8080", config.HTTP.Address)
				require.Equal(t, 10*time.Second, config.HTTP.Timeout)
				require.True(t, config.Loopback.AcceptQuotes)
			},
		},
		{
			name: "prefixed_overrides",
			env: map[string]string{
				"REPOSITORY":           RepositoryLevelDB,
				"MAX_ITEMS_PER_BATCH":  "2",
				"LEVELDB_DIRECTORY":    "/tmp/bulk.ldb",
				"SQLITE_DATABASE_PATH": "/tmp/bulk.db",
				"BUS_PARTITIONS":       "8",
				"HTTP_ADDRESS":         ":9090",
				"LOOPBACK_FSP_ID":      "payeefsp",
			},
			assert: func(t *testing.T, config Config) {
				require.Equal(t, RepositoryLevelDB, config.Repository)
				require.Equal(t, 2, config.MaxItemsPerBatch)
				require.Equal(t, "/tmp/bulk.ldb", config.LevelDB.Path)
				require.Equal(t, "/tmp/bulk.db", config.SQLite.DatabasePath)
				require.Equal(t, 8, config.Bus.Partitions)
				require.Equal(t, ":9090", config.HTTP.Address)
				require.Equal(t, "payeefsp", config.Loopback.FspID)
			},
		},
		{
			name:          "unknown_repository",
			env:           map[string]string{"REPOSITORY": "redis"},
			expectedError: true,
		},
		{
			name:          "empty_batches",
			env:           map[string]string{"MAX_ITEMS_PER_BATCH": "0"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			config, err := Load()
			if tt.expectedError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.assert(t, config)
		})
	}
}
