// Package bus is an in-process message bus for step commands and result
// events. Messages are routed to a partition by key, so every message of one
// bulk transaction is delivered in publish order while different bulk
// transactions proceed in parallel.
package bus

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

var ErrClosed = errors.New("bus closed")

type Handler = func(ctx context.Context, msg command.Message) error

type Config struct {
	Partitions int `envconfig:"PARTITIONS" default:"4"`
}

type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	nextID   uint64

	partitions []*partition
	pending    atomic.Int64
	closed     atomic.Bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	logger     core.Logger
}

type subscription struct {
	id      uint64
	handler Handler
}

// partition is an unbounded FIFO. Handlers publish while being delivered,
// so a bounded queue could block its own worker.
type partition struct {
	mu     sync.Mutex
	queue  []command.Message
	signal chan struct{}
}

func NewInMemoryBus(config Config, logger core.Logger) *InMemoryBus {
	count := max(config.Partitions, 1)

	partitions := make([]*partition, count)
	for i := range partitions {
		partitions[i] = &partition{signal: make(chan struct{}, 1)}
	}

	return &InMemoryBus{
		handlers:   map[string][]subscription{},
		partitions: partitions,
		logger:     logger,
	}
}

// Subscribe registers h for messages named name and returns a cancel func.
func (b *InMemoryBus) Subscribe(name string, h Handler) (cancel func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[name]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *InMemoryBus) Publish(_ context.Context, msg command.Message) error {
	if b.closed.Load() {
		return ErrClosed
	}

	p := b.partitions[b.partitionOf(msg.Key)]

	b.pending.Add(1)
	p.mu.Lock()
	p.queue = append(p.queue, msg)
	p.mu.Unlock()

	select {
	case p.signal <- struct{}{}:
	default:
	}

	return nil
}

func (b *InMemoryBus) partitionOf(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(b.partitions)))
}

// Start runs one delivery worker per partition until ctx is done or Close is called.
func (b *InMemoryBus) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)

	for _, p := range b.partitions {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.run(ctx, p)
		}()
	}
}

func (b *InMemoryBus) run(ctx context.Context, p *partition) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.signal:
		}

		for {
			p.mu.Lock()
			if len(p.queue) == 0 {
				p.mu.Unlock()
				break
			}
			msg := p.queue[0]
			p.queue = p.queue[1:]
			p.mu.Unlock()

			b.deliver(ctx, msg)
			b.pending.Add(-1)

			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (b *InMemoryBus) deliver(ctx context.Context, msg command.Message) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[msg.Name]...)
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.DebugContext(ctx, "no subscriber for message", "name", msg.Name, "key", msg.Key)
		return
	}

	for _, sub := range subs {
		if err := sub.handler(ctx, msg); err != nil {
			b.logger.WarnContext(ctx, "message handler failed",
				"name", msg.Name,
				"key", msg.Key,
				"error", err,
			)
		}
	}
}

// WaitIdle blocks until every published message has been delivered.
func (b *InMemoryBus) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for b.pending.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Close rejects further publishes, stops the workers and waits for them.
// Messages still queued are dropped.
func (b *InMemoryBus) Close() {
	b.closed.Store(true)
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}
