package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bulkconnector/internal/core"
	"bulkconnector/internal/record"
)

// BulkStore implements core.BulkTransactionRepository on one
// bulk_transaction_fields row per (bulk id, field).
type BulkStore struct {
	db *sql.DB
}

func NewBulkStore(db *sql.DB) BulkStore {
	return BulkStore{
		db: db,
	}
}

func (s BulkStore) setField(ctx context.Context, bulkID, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", field, err)
	}

	query := `
		INSERT INTO bulk_transaction_fields (bulk_id, field, value)
		VALUES (?, ?, ?)
		ON CONFLICT (bulk_id, field) DO UPDATE SET value = excluded.value
	`

	if _, err = s.db.ExecContext(ctx, query, bulkID, field, data); err != nil {
		return fmt.Errorf("failed to set %s: %w", field, err)
	}

	return nil
}

func (s BulkStore) getField(ctx context.Context, bulkID, field string, out any) error {
	query := `
		SELECT value
		FROM bulk_transaction_fields
		WHERE bulk_id = ? AND field = ?
	`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, bulkID, field).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s of bulk transaction %s: %w", field, bulkID, core.ErrNotFound)
		}

		return fmt.Errorf("failed to get %s: %w", field, err)
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", field, err)
	}

	return nil
}

func (s BulkStore) listIDs(ctx context.Context, bulkID, prefix string) ([]string, error) {
	query := `
		SELECT substr(field, ?)
		FROM bulk_transaction_fields
		WHERE bulk_id = ? AND substr(field, 1, ?) = ?
	`

	rows, err := s.db.QueryContext(ctx, query, len(prefix)+1, bulkID, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s fields: %w", prefix, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s field: %w", prefix, err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s fields: %w", prefix, err)
	}

	return ids, nil
}

func (s BulkStore) Store(ctx context.Context, state core.BulkTransactionState) error {
	return s.setField(ctx, state.ID, record.Root, state)
}

func (s BulkStore) Load(ctx context.Context, bulkID string) (core.BulkTransactionState, error) {
	var state core.BulkTransactionState
	if err := s.getField(ctx, bulkID, record.Root, &state); err != nil {
		return core.BulkTransactionState{}, err
	}
	return state, nil
}

// Remove deletes the root and every leg, batch and counter of bulkID in one statement.
func (s BulkStore) Remove(ctx context.Context, bulkID string) error {
	query := `
		DELETE FROM bulk_transaction_fields
		WHERE bulk_id = ?
	`

	if _, err := s.db.ExecContext(ctx, query, bulkID); err != nil {
		return fmt.Errorf("failed to remove bulk transaction: %w", err)
	}

	return nil
}

func (s BulkStore) IsBulkIDExists(ctx context.Context, bulkID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bulk_transaction_fields
			WHERE bulk_id = ? AND field = ?
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, bulkID, record.Root).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check bulk transaction: %w", err)
	}

	return exists, nil
}

func (s BulkStore) GetAllIndividualTransferIDs(ctx context.Context, bulkID string) ([]string, error) {
	return s.listIDs(ctx, bulkID, record.IndividualTransferPrefix)
}

func (s BulkStore) GetIndividualTransfer(ctx context.Context, bulkID, individualTransferID string) (core.IndividualTransferState, error) {
	var state core.IndividualTransferState
	if err := s.getField(ctx, bulkID, record.IndividualTransfer(individualTransferID), &state); err != nil {
		return core.IndividualTransferState{}, err
	}
	return state, nil
}

func (s BulkStore) SetIndividualTransfer(ctx context.Context, bulkID, individualTransferID string, state core.IndividualTransferState) error {
	return s.setField(ctx, bulkID, record.IndividualTransfer(individualTransferID), state)
}

func (s BulkStore) GetAllBulkBatchIDs(ctx context.Context, bulkID string) ([]string, error) {
	return s.listIDs(ctx, bulkID, record.BulkBatchPrefix)
}

func (s BulkStore) GetBulkBatch(ctx context.Context, bulkID, bulkBatchID string) (core.BulkBatchState, error) {
	var state core.BulkBatchState
	if err := s.getField(ctx, bulkID, record.BulkBatch(bulkBatchID), &state); err != nil {
		return core.BulkBatchState{}, err
	}
	return state, nil
}

func (s BulkStore) SetBulkBatch(ctx context.Context, bulkID, bulkBatchID string, state core.BulkBatchState) error {
	return s.setField(ctx, bulkID, record.BulkBatch(bulkBatchID), state)
}

func (s BulkStore) GetCounter(ctx context.Context, bulkID string, counter core.Counter) (int64, error) {
	query := `
		SELECT value
		FROM bulk_transaction_fields
		WHERE bulk_id = ? AND field = ?
	`

	var value int64
	err := s.db.QueryRowContext(ctx, query, bulkID, record.Counter(counter)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to get %s: %w", counter, err)
	}

	return value, nil
}

func (s BulkStore) SetCounter(ctx context.Context, bulkID string, counter core.Counter, value int64) error {
	query := `
		INSERT INTO bulk_transaction_fields (bulk_id, field, value)
		VALUES (?, ?, ?)
		ON CONFLICT (bulk_id, field) DO UPDATE SET value = excluded.value
	`

	if _, err := s.db.ExecContext(ctx, query, bulkID, record.Counter(counter), value); err != nil {
		return fmt.Errorf("failed to set %s: %w", counter, err)
	}

	return nil
}

// IncrementCounter adds delta in a single upsert so concurrent callers never
// lose an update. A missing counter starts from zero.
func (s BulkStore) IncrementCounter(ctx context.Context, bulkID string, counter core.Counter, delta int64) (int64, error) {
	query := `
		INSERT INTO bulk_transaction_fields (bulk_id, field, value)
		VALUES (?, ?, ?)
		ON CONFLICT (bulk_id, field) DO UPDATE SET value = value + excluded.value
		RETURNING value
	`

	var value int64
	if err := s.db.QueryRowContext(ctx, query, bulkID, record.Counter(counter), delta).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", counter, err)
	}

	return value, nil
}
