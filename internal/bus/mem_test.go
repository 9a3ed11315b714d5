package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bulkconnector/internal/command"
)

func newTestBus(t *testing.T, partitions int) *InMemoryBus {
	t.Helper()

	b := NewInMemoryBus(Config{Partitions: partitions}, slog.New(slog.DiscardHandler))
	b.Start(context.Background())
	t.Cleanup(b.Close)

	return b
}

func waitIdle(t *testing.T, b *InMemoryBus) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, b.WaitIdle(ctx))
}

func TestInMemoryBus_DeliversInOrderPerKey(t *testing.T) {
	t.Parallel()

	b := newTestBus(t, 4)

	var mu sync.Mutex
	received := map[string][]string{}
	b.Subscribe("step", func(_ context.Context, msg command.Message) error {
		mu.Lock()
		defer mu.Unlock()
		received[msg.Key] = append(received[msg.Key], string(msg.Content))
		return nil
	})

	expected := map[string][]string{}
	for i := range 20 {
		for _, key := range []string{"b1", "b2", "b3"} {
			content := fmt.Sprintf("%d", i)
			require.NoError(t, b.Publish(context.Background(), command.Message{
				Key:     key,
				Name:    "step",
				Content: []byte(content),
			}))
			expected[key] = append(expected[key], content)
		}
	}

	waitIdle(t, b)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, expected, received)
}

func TestInMemoryBus_HandlerCanPublish(t *testing.T) {
	t.Parallel()

	b := newTestBus(t, 1)

	var mu sync.Mutex
	var names []string
	record := func(_ context.Context, msg command.Message) error {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, msg.Name)
		return nil
	}

	b.Subscribe("first", func(ctx context.Context, msg command.Message) error {
		_ = record(ctx, msg)
		return b.Publish(ctx, command.Message{Key: msg.Key, Name: "second"})
	})
	b.Subscribe("second", record)

	require.NoError(t, b.Publish(context.Background(), command.Message{Key: "b1", Name: "first"}))
	waitIdle(t, b)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first", "second"}, names)
}

func TestInMemoryBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	b := newTestBus(t, 1)

	var mu sync.Mutex
	count := 0
	b.Subscribe("step", func(context.Context, command.Message) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return fmt.Errorf("boom")
	})

	for range 3 {
		require.NoError(t, b.Publish(context.Background(), command.Message{Key: "b1", Name: "step"}))
	}
	waitIdle(t, b)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 3, count)
}

func TestInMemoryBus_Cancel(t *testing.T) {
	t.Parallel()

	b := newTestBus(t, 1)

	var mu sync.Mutex
	count := 0
	cancel := b.Subscribe("step", func(context.Context, command.Message) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})
	cancel()

	require.NoError(t, b.Publish(context.Background(), command.Message{Key: "b1", Name: "step"}))
	waitIdle(t, b)

	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, count)
}

func TestInMemoryBus_PublishAfterClose(t *testing.T) {
	t.Parallel()

	b := NewInMemoryBus(Config{Partitions: 2}, slog.New(slog.DiscardHandler))
	b.Start(context.Background())
	b.Close()

	err := b.Publish(context.Background(), command.Message{Key: "b1", Name: "step"})
	require.ErrorIs(t, err, ErrClosed)
}
