package command

import (
	"context"
)

//go:generate go tool go.uber.org/mock/mockgen -source=publisher.go -destination=publisher_mock.go -package=command

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Metrics records the outcome of every dispatched command.
type Metrics interface {
	ObserveCommand(name, outcome string, seconds float64)
}
