package loopback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"bulkconnector/internal/core"
)

// WriterSink hands every bulk response to the caller as one JSON line on w.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

func (s *WriterSink) Send(_ context.Context, resp core.BulkTransactionResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to write bulk response %s: %w", resp.BulkTransactionID, err)
	}
	return nil
}
