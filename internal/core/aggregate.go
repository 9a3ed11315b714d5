package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// BulkTransactionAggregate owns a root entity and mutates its legs, batches
// and counters through the repository. One aggregate instance serves one
// inbound step event.
type BulkTransactionAggregate struct {
	root       *BulkTransaction
	repository BulkTransactionRepository
	logger     Logger
}

// CreateFromRequest validates req, persists a new root with one leg per
// request line and seeds the counters. A root whose id is already stored is
// rejected with ErrDuplicate.
func CreateFromRequest(
	ctx context.Context,
	repository BulkTransactionRepository,
	req BulkTransactionRequest,
	logger Logger,
) (*BulkTransactionAggregate, error) {
	root, err := NewBulkTransaction(req)
	if err != nil {
		return nil, err
	}

	exists, err := repository.IsBulkIDExists(ctx, root.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check bulk transaction %s: %w", root.ID(), err)
	}
	if exists {
		return nil, fmt.Errorf("bulk transaction %s: %w", root.ID(), ErrDuplicate)
	}

	agg := &BulkTransactionAggregate{
		root:       root,
		repository: repository,
		logger:     WithAttrs(logger, "bulkTransactionId", root.ID()),
	}

	if err = agg.persistRoot(ctx); err != nil {
		return nil, err
	}

	var failedCount int64
	for _, legRequest := range req.IndividualTransfers {
		state := IndividualTransferState{
			ID:      uuid.NewString(),
			Request: legRequest,
			State:   IndividualTransferStateReceived,
		}
		if legRequest.LastError != nil {
			state.State = IndividualTransferStateDiscoveryFailed
			state.LastError = legRequest.LastError
			failedCount++
		}

		leg, err := NewIndividualTransfer(state)
		if err != nil {
			return nil, err
		}

		if err = agg.SetIndividualTransfer(ctx, leg); err != nil {
			return nil, err
		}
	}

	for _, counter := range Counters {
		var value int64
		switch counter {
		case CounterTotal:
			value = int64(len(req.IndividualTransfers))
		case CounterFailed:
			value = failedCount
		}

		if err = agg.SetCounter(ctx, counter, value); err != nil {
			return nil, err
		}
	}

	agg.logger.InfoContext(ctx, "bulk transaction created",
		"individualTransfers", len(req.IndividualTransfers),
		"preFailed", failedCount,
	)

	return agg, nil
}

// CreateFromRepo rehydrates the root of bulkID. Legs and batches are loaded on demand.
func CreateFromRepo(
	ctx context.Context,
	repository BulkTransactionRepository,
	bulkID string,
	logger Logger,
) (*BulkTransactionAggregate, error) {
	state, err := repository.Load(ctx, bulkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bulk transaction %s: %w", bulkID, err)
	}

	return &BulkTransactionAggregate{
		root:       BulkTransactionFromState(state),
		repository: repository,
		logger:     WithAttrs(logger, "bulkTransactionId", bulkID),
	}, nil
}

func (a *BulkTransactionAggregate) ID() string {
	return a.root.ID()
}

func (a *BulkTransactionAggregate) Root() *BulkTransaction {
	return a.root
}

// SetGlobalState moves the root forward and persists it.
func (a *BulkTransactionAggregate) SetGlobalState(ctx context.Context, state BulkTransactionInternalState) error {
	previous := a.root.GlobalState()
	if err := a.root.SetGlobalState(state); err != nil {
		return err
	}
	if previous == state {
		return nil
	}

	a.logger.DebugContext(ctx, "bulk transaction state changed", "from", previous, "to", state)

	return a.persistRoot(ctx)
}

func (a *BulkTransactionAggregate) persistRoot(ctx context.Context) error {
	a.root.touch()
	if err := a.repository.Store(ctx, a.root.State()); err != nil {
		return fmt.Errorf("failed to store bulk transaction %s: %w", a.root.ID(), err)
	}
	return nil
}

// IndividualTransferIDs returns every leg id in a stable order.
func (a *BulkTransactionAggregate) IndividualTransferIDs(ctx context.Context) ([]string, error) {
	ids, err := a.repository.GetAllIndividualTransferIDs(ctx, a.root.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list individual transfers of %s: %w", a.root.ID(), err)
	}

	slices.Sort(ids)
	return ids, nil
}

func (a *BulkTransactionAggregate) GetIndividualTransfer(ctx context.Context, id string) (*IndividualTransfer, error) {
	state, err := a.repository.GetIndividualTransfer(ctx, a.root.ID(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get individual transfer %s: %w", id, err)
	}

	return NewIndividualTransfer(state)
}

// IndividualTransfers loads every leg in IndividualTransferIDs order.
func (a *BulkTransactionAggregate) IndividualTransfers(ctx context.Context) ([]*IndividualTransfer, error) {
	ids, err := a.IndividualTransferIDs(ctx)
	if err != nil {
		return nil, err
	}

	legs := make([]*IndividualTransfer, 0, len(ids))
	for _, id := range ids {
		leg, err := a.GetIndividualTransfer(ctx, id)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

func (a *BulkTransactionAggregate) SetIndividualTransfer(ctx context.Context, leg *IndividualTransfer) error {
	if err := a.repository.SetIndividualTransfer(ctx, a.root.ID(), leg.ID(), leg.State()); err != nil {
		return fmt.Errorf("failed to set individual transfer %s: %w", leg.ID(), err)
	}
	return nil
}

func (a *BulkTransactionAggregate) BulkBatchIDs(ctx context.Context) ([]string, error) {
	ids, err := a.repository.GetAllBulkBatchIDs(ctx, a.root.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list bulk batches of %s: %w", a.root.ID(), err)
	}

	slices.Sort(ids)
	return ids, nil
}

func (a *BulkTransactionAggregate) GetBulkBatch(ctx context.Context, id string) (*BulkBatch, error) {
	state, err := a.repository.GetBulkBatch(ctx, a.root.ID(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bulk batch %s: %w", id, err)
	}

	return BulkBatchFromState(state), nil
}

// BulkBatches loads every batch in BulkBatchIDs order.
func (a *BulkTransactionAggregate) BulkBatches(ctx context.Context) ([]*BulkBatch, error) {
	ids, err := a.BulkBatchIDs(ctx)
	if err != nil {
		return nil, err
	}

	batches := make([]*BulkBatch, 0, len(ids))
	for _, id := range ids {
		batch, err := a.GetBulkBatch(ctx, id)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, nil
}

func (a *BulkTransactionAggregate) SetBulkBatch(ctx context.Context, batch *BulkBatch) error {
	if err := a.repository.SetBulkBatch(ctx, a.root.ID(), batch.ID(), batch.State()); err != nil {
		return fmt.Errorf("failed to set bulk batch %s: %w", batch.ID(), err)
	}
	return nil
}

// Destroy removes the root, every leg, batch and counter in one repository call.
func (a *BulkTransactionAggregate) Destroy(ctx context.Context) error {
	if err := a.repository.Remove(ctx, a.root.ID()); err != nil {
		return fmt.Errorf("failed to remove bulk transaction %s: %w", a.root.ID(), err)
	}

	a.logger.InfoContext(ctx, "bulk transaction removed")
	return nil
}

// BulkTransactionResponse is the aggregated result returned to the caller.
type BulkTransactionResponse struct {
	BulkTransactionID         string                       `json:"bulkTransactionId"`
	BulkHomeTransactionID     string                       `json:"bulkHomeTransactionID"`
	CurrentState              BulkResponseState            `json:"currentState"`
	IndividualTransferResults []IndividualTransferResponse `json:"individualTransferResults"`
	Extensions                *ExtensionList               `json:"extensions,omitempty"`
}

func (a *BulkTransactionAggregate) ToBulkResponse(ctx context.Context) (BulkTransactionResponse, error) {
	legs, err := a.IndividualTransfers(ctx)
	if err != nil {
		return BulkTransactionResponse{}, err
	}

	// A bulk with at least one committed leg is reported COMPLETED; per-leg
	// failures are carried on the individual results.
	currentState := BulkResponseStateErrorOccurred
	results := make([]IndividualTransferResponse, 0, len(legs))
	for _, leg := range legs {
		result := leg.ToIndividualTransferResult()
		if result.CurrentState == TransferStateCommitted {
			currentState = BulkResponseStateCompleted
		}
		results = append(results, result)
	}

	return BulkTransactionResponse{
		BulkTransactionID:         a.root.ID(),
		BulkHomeTransactionID:     a.root.BulkHomeTransactionID(),
		CurrentState:              currentState,
		IndividualTransferResults: results,
		Extensions:                a.root.Extensions(),
	}, nil
}
