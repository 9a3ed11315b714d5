package leveldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"bulkconnector/internal/codec"
	"bulkconnector/internal/core"
	"bulkconnector/internal/record"
)

// Store implements core.BulkTransactionRepository on an embedded LevelDB.
// Every field of a bulk transaction lives under the key "<bulkId>/<field>",
// so one prefix range covers the whole record.
type Store struct {
	db         *leveldb.DB
	syncWrites bool
	counterMux sync.Mutex
}

func Open(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("leveldb path is required")
	}

	db, err := leveldb.OpenFile(config.Path, &opt.Options{
		OpenFilesCacheCapacity: config.MaxHandles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", config.Path, err)
	}

	return &Store{
		db:         db,
		syncWrites: config.SyncWrites,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func recordPrefix(bulkID string) string {
	return bulkID + "/"
}

func fieldKey(bulkID, field string) []byte {
	return []byte(recordPrefix(bulkID) + field)
}

func (s *Store) writeOptions() *opt.WriteOptions {
	return &opt.WriteOptions{Sync: s.syncWrites}
}

func (s *Store) put(bulkID, field string, value any) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", field, err)
	}

	if err = s.db.Put(fieldKey(bulkID, field), data, s.writeOptions()); err != nil {
		return fmt.Errorf("failed to write %s: %w", field, err)
	}
	return nil
}

func (s *Store) get(bulkID, field string, out any) error {
	data, err := s.db.Get(fieldKey(bulkID, field), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return fmt.Errorf("%s of bulk transaction %s: %w", field, bulkID, core.ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", field, err)
	}

	if err = codec.Unmarshal(data, out); err != nil {
		diag, diagErr := codec.Diagnose(data)
		if diagErr != nil {
			diag = "malformed"
		}
		return fmt.Errorf("failed to decode %s %s: %w", field, diag, err)
	}
	return nil
}

func (s *Store) listIDs(bulkID, prefix string) ([]string, error) {
	keyPrefix := recordPrefix(bulkID) + prefix

	it := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer it.Release()

	ids := []string{}
	for it.Next() {
		ids = append(ids, strings.TrimPrefix(string(it.Key()), keyPrefix))
	}

	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", keyPrefix, err)
	}
	return ids, nil
}

func (s *Store) Store(_ context.Context, state core.BulkTransactionState) error {
	return s.put(state.ID, record.Root, state)
}

func (s *Store) Load(_ context.Context, bulkID string) (core.BulkTransactionState, error) {
	var state core.BulkTransactionState
	if err := s.get(bulkID, record.Root, &state); err != nil {
		return core.BulkTransactionState{}, err
	}
	return state, nil
}

// Remove deletes every key of bulkID in one write batch.
func (s *Store) Remove(_ context.Context, bulkID string) error {
	it := s.db.NewIterator(util.BytesPrefix([]byte(recordPrefix(bulkID))), nil)
	defer it.Release()

	batch := new(leveldb.Batch)
	for it.Next() {
		batch.Delete(append([]byte(nil), it.Key()...))
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to iterate bulk transaction %s: %w", bulkID, err)
	}

	if err := s.db.Write(batch, s.writeOptions()); err != nil {
		return fmt.Errorf("failed to remove bulk transaction %s: %w", bulkID, err)
	}
	return nil
}

func (s *Store) IsBulkIDExists(_ context.Context, bulkID string) (bool, error) {
	ok, err := s.db.Has(fieldKey(bulkID, record.Root), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check bulk transaction %s: %w", bulkID, err)
	}
	return ok, nil
}

func (s *Store) GetAllIndividualTransferIDs(_ context.Context, bulkID string) ([]string, error) {
	return s.listIDs(bulkID, record.IndividualTransferPrefix)
}

func (s *Store) GetIndividualTransfer(_ context.Context, bulkID, individualTransferID string) (core.IndividualTransferState, error) {
	var state core.IndividualTransferState
	if err := s.get(bulkID, record.IndividualTransfer(individualTransferID), &state); err != nil {
		return core.IndividualTransferState{}, err
	}
	return state, nil
}

func (s *Store) SetIndividualTransfer(_ context.Context, bulkID, individualTransferID string, state core.IndividualTransferState) error {
	return s.put(bulkID, record.IndividualTransfer(individualTransferID), state)
}

func (s *Store) GetAllBulkBatchIDs(_ context.Context, bulkID string) ([]string, error) {
	return s.listIDs(bulkID, record.BulkBatchPrefix)
}

func (s *Store) GetBulkBatch(_ context.Context, bulkID, bulkBatchID string) (core.BulkBatchState, error) {
	var state core.BulkBatchState
	if err := s.get(bulkID, record.BulkBatch(bulkBatchID), &state); err != nil {
		return core.BulkBatchState{}, err
	}
	return state, nil
}

func (s *Store) SetBulkBatch(_ context.Context, bulkID, bulkBatchID string, state core.BulkBatchState) error {
	return s.put(bulkID, record.BulkBatch(bulkBatchID), state)
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
	s.counterMux.Lock()
	defer s.counterMux.Unlock()

	return s.put(bulkID, record.Counter(counter), value)
}

// IncrementCounter serialises read-modify-write of counters within this
// process. LevelDB allows a single process per database directory.
func (s *Store) IncrementCounter(ctx context.Context, bulkID string, counter core.Counter, delta int64) (int64, error) {
	s.counterMux.Lock()
	defer s.counterMux.Unlock()

	value, err := s.GetCounter(ctx, bulkID, counter)
	if err != nil {
		return 0, err
	}
	value += delta

	if err = s.put(bulkID, record.Counter(counter), value); err != nil {
		return 0, err
	}
	return value, nil
}
