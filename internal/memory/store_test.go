package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkconnector/internal/core"
)

func TestStore_Root(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	_, err := store.Load(ctx, "b1")
	require.ErrorIs(t, err, core.ErrNotFound)

	root := core.BulkTransactionState{ID: "b1", State: core.BulkTransactionStateReceived}
	require.NoError(t, store.Store(ctx, root))

	exists, err := store.IsBulkIDExists(ctx, "b1")
	require.NoError(t, err)
	require.True(t, exists)

	loaded, err := store.Load(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, root.State, loaded.State)
}

func TestStore_CopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	batch := core.BulkBatchState{ID: "batch1", QuoteIDReferenceIDMap: map[string]string{"q1": "t1"}}
	require.NoError(t, store.SetBulkBatch(ctx, "b1", "batch1", batch))

	batch.QuoteIDReferenceIDMap["q2"] = "t2"

	loaded, err := store.GetBulkBatch(ctx, "b1", "batch1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"q1": "t1"}, loaded.QuoteIDReferenceIDMap)
}

func TestStore_ListIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.SetIndividualTransfer(ctx, "b1", "t1", core.IndividualTransferState{ID: "t1"}))
	require.NoError(t, store.SetIndividualTransfer(ctx, "b1", "t2", core.IndividualTransferState{ID: "t2"}))
	require.NoError(t, store.SetIndividualTransfer(ctx, "b2", "t3", core.IndividualTransferState{ID: "t3"}))
	require.NoError(t, store.SetBulkBatch(ctx, "b1", "batch1", core.BulkBatchState{ID: "batch1"}))

	ids, err := store.GetAllIndividualTransferIDs(ctx, "b1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t2"}, ids)

	batchIDs, err := store.GetAllBulkBatchIDs(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"batch1"}, batchIDs)

	_, err = store.GetIndividualTransfer(ctx, "b2", "t1")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_Counters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	value, err := store.GetCounter(ctx, "b1", core.CounterSuccess)
	require.NoError(t, err)
	require.Zero(t, value)

	require.NoError(t, store.SetCounter(ctx, "b1", core.CounterSuccess, 5))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementCounter(ctx, "b1", core.CounterSuccess, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	value, err = store.GetCounter(ctx, "b1", core.CounterSuccess)
	require.NoError(t, err)
	require.Equal(t, int64(55), value)
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Store(ctx, core.BulkTransactionState{ID: "b1"}))
	require.NoError(t, store.SetIndividualTransfer(ctx, "b1", "t1", core.IndividualTransferState{ID: "t1"}))
	require.NoError(t, store.SetCounter(ctx, "b1", core.CounterTotal, 1))
	require.NoError(t, store.Store(ctx, core.BulkTransactionState{ID: "b2"}))

	require.NoError(t, store.Remove(ctx, "b1"))

	exists, err := store.IsBulkIDExists(ctx, "b1")
	require.NoError(t, err)
	require.False(t, exists)

	ids, err := store.GetAllIndividualTransferIDs(ctx, "b1")
	require.NoError(t, err)
	require.Empty(t, ids)

	total, err := store.GetCounter(ctx, "b1", core.CounterTotal)
	require.NoError(t, err)
	require.Zero(t, total)

	exists, err = store.IsBulkIDExists(ctx, "b2")
	require.NoError(t, err)
	require.True(t, exists)
}
