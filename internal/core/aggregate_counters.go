package core

import (
	"context"
	"fmt"
)

func (a *BulkTransactionAggregate) Counter(ctx context.Context, counter Counter) (int64, error) {
	value, err := a.repository.GetCounter(ctx, a.root.ID(), counter)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", counter, err)
	}
	return value, nil
}

func (a *BulkTransactionAggregate) SetCounter(ctx context.Context, counter Counter, value int64) error {
	if err := a.repository.SetCounter(ctx, a.root.ID(), counter, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", counter, err)
	}
	return nil
}

// IncrementCounter adds delta in a single repository call and returns the new value.
func (a *BulkTransactionAggregate) IncrementCounter(ctx context.Context, counter Counter, delta int64) (int64, error) {
	value, err := a.repository.IncrementCounter(ctx, a.root.ID(), counter, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", counter, err)
	}
	return value, nil
}

func (a *BulkTransactionAggregate) GetTotalCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterTotal)
}

func (a *BulkTransactionAggregate) SetTotalCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterTotal, value)
}

func (a *BulkTransactionAggregate) IncrementTotalCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterTotal, delta)
}

func (a *BulkTransactionAggregate) GetSuccessCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterSuccess)
}

func (a *BulkTransactionAggregate) SetSuccessCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterSuccess, value)
}

func (a *BulkTransactionAggregate) IncrementSuccessCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterSuccess, delta)
}

func (a *BulkTransactionAggregate) GetFailedCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterFailed)
}

func (a *BulkTransactionAggregate) SetFailedCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterFailed, value)
}

func (a *BulkTransactionAggregate) IncrementFailedCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterFailed, delta)
}

func (a *BulkTransactionAggregate) GetPartyLookupTotalCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterPartyLookupTotal)
}

func (a *BulkTransactionAggregate) SetPartyLookupTotalCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterPartyLookupTotal, value)
}

func (a *BulkTransactionAggregate) IncrementPartyLookupTotalCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterPartyLookupTotal, delta)
}

func (a *BulkTransactionAggregate) GetPartyLookupSuccessCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterPartyLookupSuccess)
}

func (a *BulkTransactionAggregate) SetPartyLookupSuccessCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterPartyLookupSuccess, value)
}

func (a *BulkTransactionAggregate) IncrementPartyLookupSuccessCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterPartyLookupSuccess, delta)
}

func (a *BulkTransactionAggregate) GetPartyLookupFailedCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterPartyLookupFailed)
}

func (a *BulkTransactionAggregate) SetPartyLookupFailedCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterPartyLookupFailed, value)
}

func (a *BulkTransactionAggregate) IncrementPartyLookupFailedCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterPartyLookupFailed, delta)
}

func (a *BulkTransactionAggregate) GetBulkQuotesTotalCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkQuotesTotal)
}

func (a *BulkTransactionAggregate) SetBulkQuotesTotalCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkQuotesTotal, value)
}

func (a *BulkTransactionAggregate) IncrementBulkQuotesTotalCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkQuotesTotal, delta)
}

func (a *BulkTransactionAggregate) GetBulkQuotesSuccessCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkQuotesSuccess)
}

func (a *BulkTransactionAggregate) SetBulkQuotesSuccessCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkQuotesSuccess, value)
}

func (a *BulkTransactionAggregate) IncrementBulkQuotesSuccessCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkQuotesSuccess, delta)
}

func (a *BulkTransactionAggregate) GetBulkQuotesFailedCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkQuotesFailed)
}

func (a *BulkTransactionAggregate) SetBulkQuotesFailedCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkQuotesFailed, value)
}

func (a *BulkTransactionAggregate) IncrementBulkQuotesFailedCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkQuotesFailed, delta)
}

func (a *BulkTransactionAggregate) GetBulkTransfersTotalCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkTransfersTotal)
}

func (a *BulkTransactionAggregate) SetBulkTransfersTotalCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkTransfersTotal, value)
}

func (a *BulkTransactionAggregate) IncrementBulkTransfersTotalCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkTransfersTotal, delta)
}

func (a *BulkTransactionAggregate) GetBulkTransfersSuccessCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkTransfersSuccess)
}

func (a *BulkTransactionAggregate) SetBulkTransfersSuccessCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkTransfersSuccess, value)
}

func (a *BulkTransactionAggregate) IncrementBulkTransfersSuccessCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkTransfersSuccess, delta)
}

func (a *BulkTransactionAggregate) GetBulkTransfersFailedCount(ctx context.Context) (int64, error) {
	return a.Counter(ctx, CounterBulkTransfersFailed)
}

func (a *BulkTransactionAggregate) SetBulkTransfersFailedCount(ctx context.Context, value int64) error {
	return a.SetCounter(ctx, CounterBulkTransfersFailed, value)
}

func (a *BulkTransactionAggregate) IncrementBulkTransfersFailedCount(ctx context.Context, delta int64) (int64, error) {
	return a.IncrementCounter(ctx, CounterBulkTransfersFailed, delta)
}
