package sqlite_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bulkconnector/internal/core"
	"bulkconnector/internal/sqlite"
)

func newRoot(id string) core.BulkTransactionState {
	return core.BulkTransactionState{
		ID:                    id,
		BulkHomeTransactionID: "home-" + id,
		From: core.Party{
			PartyIDInfo: core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "16135551212"},
		},
		State: core.BulkTransactionStateReceived,
	}
}

func TestBulkStore_StoreAndLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		store         []core.BulkTransactionState
		loadID        string
		expectedState core.BulkTransactionInternalState
		expectedError error
	}{
		{
			name:          "stored_root_is_loaded",
			store:         []core.BulkTransactionState{newRoot("b1")},
			loadID:        "b1",
			expectedState: core.BulkTransactionStateReceived,
		},
		{
			name: "second_store_overwrites_root",
			store: []core.BulkTransactionState{
				newRoot("b1"),
				func() core.BulkTransactionState {
					s := newRoot("b1")
					s.State = core.BulkTransactionStateDiscoveryProcessing
					return s
				}(),
			},
			loadID:        "b1",
			expectedState: core.BulkTransactionStateDiscoveryProcessing,
		},
		{
			name:          "unknown_root_returns_not_found",
			store:         []core.BulkTransactionState{newRoot("b1")},
			loadID:        "b2",
			expectedError: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			suite := NewTestSuite(t)
			defer suite.Teardown()

			ctx := context.Background()
			store := sqlite.NewBulkStore(suite.DB)

			for _, state := range tt.store {
				require.NoError(t, store.Store(ctx, state))
			}

			loaded, err := store.Load(ctx, tt.loadID)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.loadID, loaded.ID)
			require.Equal(t, tt.expectedState, loaded.State)
		})
	}
}

func TestBulkStore_IndividualTransfersAndBatches(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	store := sqlite.NewBulkStore(suite.DB)
	require.NoError(t, store.Store(ctx, newRoot("b1")))

	for _, id := range []string{"t1", "t2", "t3"} {
		err := store.SetIndividualTransfer(ctx, "b1", id, core.IndividualTransferState{
			ID:    id,
			State: core.IndividualTransferStateReceived,
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.SetBulkBatch(ctx, "b1", "batch1", core.BulkBatchState{
		ID:           "batch1",
		BulkID:       "b1",
		Counterparty: "payeefsp",
		State:        core.BulkBatchStateCreated,
	}))

	legIDs, err := store.GetAllIndividualTransferIDs(ctx, "b1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t2", "t3"}, legIDs)

	batchIDs, err := store.GetAllBulkBatchIDs(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"batch1"}, batchIDs)

	leg, err := store.GetIndividualTransfer(ctx, "b1", "t2")
	require.NoError(t, err)
	require.Equal(t, "t2", leg.ID)

	batch, err := store.GetBulkBatch(ctx, "b1", "batch1")
	require.NoError(t, err)
	require.Equal(t, "payeefsp", batch.Counterparty)

	_, err = store.GetIndividualTransfer(ctx, "b1", "missing")
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = store.GetBulkBatch(ctx, "b1", "missing")
	require.ErrorIs(t, err, core.ErrNotFound)

	otherIDs, err := store.GetAllIndividualTransferIDs(ctx, "b2")
	require.NoError(t, err)
	require.Empty(t, otherIDs)
}

func TestBulkStore_Counters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		initial    *int64
		increments []int64
		expected   int64
	}{
		{
			name:     "never_written_counter_reads_zero",
			expected: 0,
		},
		{
			name:       "increment_missing_counter_starts_from_zero",
			increments: []int64{1, 1},
			expected:   2,
		},
		{
			name:       "increment_after_set",
			initial:    func() *int64 { v := int64(5); return &v }(),
			increments: []int64{3, -1},
			expected:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			suite := NewTestSuite(t)
			defer suite.Teardown()

			ctx := context.Background()
			store := sqlite.NewBulkStore(suite.DB)

			if tt.initial != nil {
				require.NoError(t, store.SetCounter(ctx, "b1", core.CounterFailed, *tt.initial))
			}

			var last int64
			for _, delta := range tt.increments {
				value, err := store.IncrementCounter(ctx, "b1", core.CounterFailed, delta)
				require.NoError(t, err)
				last = value
			}

			value, err := store.GetCounter(ctx, "b1", core.CounterFailed)
			require.NoError(t, err)
			require.Equal(t, tt.expected, value)
			if len(tt.increments) > 0 {
				require.Equal(t, tt.expected, last)
			}
		})
	}
}

func TestBulkStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	store := sqlite.NewBulkStore(suite.DB)

	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementCounter(ctx, "b1", core.CounterSuccess, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	value, err := store.GetCounter(ctx, "b1", core.CounterSuccess)
	require.NoError(t, err)
	require.Equal(t, int64(workers), value)
}

func TestBulkStore_Remove(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	store := sqlite.NewBulkStore(suite.DB)

	require.NoError(t, store.Store(ctx, newRoot("b1")))
	require.NoError(t, store.Store(ctx, newRoot("b2")))
	require.NoError(t, store.SetIndividualTransfer(ctx, "b1", "t1", core.IndividualTransferState{ID: "t1"}))
	require.NoError(t, store.SetCounter(ctx, "b1", core.CounterTotal, 1))

	exists, err := store.IsBulkIDExists(ctx, "b1")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, store.Remove(ctx, "b1"))

	exists, err = store.IsBulkIDExists(ctx, "b1")
	require.NoError(t, err)
	require.False(t, exists)
	require.Zero(t, suite.CountFields(t, "b1"))

	_, err = store.Load(ctx, "b1")
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = store.Load(ctx, "b2")
	require.NoError(t, err)
}
