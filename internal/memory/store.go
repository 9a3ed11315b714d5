package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"bulkconnector/internal/core"
	"bulkconnector/internal/record"
)

// Store keeps every bulk transaction as a map of encoded fields. Values are
// copied in and out as JSON so callers never share state with the store.
type Store struct {
	mu      sync.Mutex
	records map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{
		records: map[string]map[string][]byte{},
	}
}

func (s *Store) set(bulkID, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", field, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.records[bulkID]
	if !ok {
		fields = map[string][]byte{}
		s.records[bulkID] = fields
	}
	fields[field] = data

	return nil
}

func (s *Store) get(bulkID, field string, out any) error {
	s.mu.Lock()
	data, ok := s.records[bulkID][field]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%s of bulk transaction %s: %w", field, bulkID, core.ErrNotFound)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", field, err)
	}
	return nil
}

func (s *Store) ids(bulkID, prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return record.IDs(slices.Collect(maps.Keys(s.records[bulkID])), prefix)
}

func (s *Store) Store(_ context.Context, state core.BulkTransactionState) error {
	return s.set(state.ID, record.Root, state)
}

func (s *Store) Load(_ context.Context, bulkID string) (core.BulkTransactionState, error) {
	var state core.BulkTransactionState
	if err := s.get(bulkID, record.Root, &state); err != nil {
		return core.BulkTransactionState{}, err
	}
	return state, nil
}

func (s *Store) Remove(_ context.Context, bulkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, bulkID)
	return nil
}

func (s *Store) IsBulkIDExists(_ context.Context, bulkID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[bulkID][record.Root]
	return ok, nil
}

func (s *Store) GetAllIndividualTransferIDs(_ context.Context, bulkID string) ([]string, error) {
	return s.ids(bulkID, record.IndividualTransferPrefix), nil
}

func (s *Store) GetIndividualTransfer(_ context.Context, bulkID, individualTransferID string) (core.IndividualTransferState, error) {
	var state core.IndividualTransferState
	if err := s.get(bulkID, record.IndividualTransfer(individualTransferID), &state); err != nil {
		return core.IndividualTransferState{}, err
	}
	return state, nil
}

func (s *Store) SetIndividualTransfer(_ context.Context, bulkID, individualTransferID string, state core.IndividualTransferState) error {
	return s.set(bulkID, record.IndividualTransfer(individualTransferID), state)
}

func (s *Store) GetAllBulkBatchIDs(_ context.Context, bulkID string) ([]string, error) {
	return s.ids(bulkID, record.BulkBatchPrefix), nil
}

func (s *Store) GetBulkBatch(_ context.Context, bulkID, bulkBatchID string) (core.BulkBatchState, error) {
	var state core.BulkBatchState
	if err := s.get(bulkID, record.BulkBatch(bulkBatchID), &state); err != nil {
		return core.BulkBatchState{}, err
	}
	return state, nil
}

func (s *Store) SetBulkBatch(_ context.Context, bulkID, bulkBatchID string, state core.BulkBatchState) error {
	return s.set(bulkID, record.BulkBatch(bulkBatchID), state)
}

func (s *Store) GetCounter(_ context.Context, bulkID string, counter core.Counter) (int64, error) {
	var value int64
	err := s.get(bulkID, record.Counter(counter), &value)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return 0, err
	}
	return value, nil
}

func (s *Store) SetCounter(_ context.Context, bulkID string, counter core.Counter, value int64) error {
	return s.set(bulkID, record.Counter(counter), value)
}

// IncrementCounter adds delta under the store lock and returns the new value.
func (s *Store) IncrementCounter(_ context.Context, bulkID string, counter core.Counter, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.records[bulkID]
	if !ok {
		fields = map[string][]byte{}
		s.records[bulkID] = fields
	}

	var value int64
	if data, ok := fields[record.Counter(counter)]; ok {
		if err := json.Unmarshal(data, &value); err != nil {
			return 0, fmt.Errorf("failed to decode %s: %w", counter, err)
		}
	}
	value += delta

	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", counter, err)
	}
	fields[record.Counter(counter)] = data

	return value, nil
}
