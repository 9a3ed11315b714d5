package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"bulkconnector/internal/bus"
	"bulkconnector/internal/http"
	"bulkconnector/internal/leveldb"
	"bulkconnector/internal/loopback"
	"bulkconnector/internal/scheduler"
	"bulkconnector/internal/sqlite"
)

const (
	RepositoryMemory  = "memory"
	RepositorySQLite  = "sqlite"
	RepositoryLevelDB = "leveldb"
)

type Config struct {
	LogLevel              int    `envconfig:"LOG_LEVEL" default:"-4"`
	LogFormat             string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	Repository            string `envconfig:"REPOSITORY" default:"memory" validate:"oneof=memory sqlite leveldb"`
	MaxItemsPerBatch      int    `envconfig:"MAX_ITEMS_PER_BATCH" default:"1000" validate:"min=1"`
	CleanupOnResponseSent bool   `envconfig:"CLEANUP_ON_RESPONSE_SENT" default:"false"`

	SQLite    sqlite.Config    `envconfig:"SQLITE"`
	LevelDB   leveldb.Config   `envconfig:"LEVELDB"`
	Bus       bus.Config       `envconfig:"BUS"`
	Scheduler scheduler.Config `envconfig:"SCHEDULER"`
	Loopback  loopback.Config  `envconfig:"LOOPBACK"`
	HTTP      http.Config      `envconfig:"HTTP"`
}

func Load() (Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}

	if err = validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
