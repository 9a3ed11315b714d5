package http

import (
	"time"
)

type Config struct {
	Enabled bool          `envconfig:"ENABLED" default:"true"`
	Address string        `envconfig:"ADDRESS" default:"localhost:8080"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}
