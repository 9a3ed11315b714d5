package core

import (
	"context"
)

//go:generate go tool go.uber.org/mock/mockgen -source=repository.go -destination=repository_mock.go -package=core

// Counter names a root-scoped tally persisted apart from the root document so
// it can be incremented atomically.
type Counter string

const (
	CounterTotal                Counter = "totalCount"
	CounterSuccess              Counter = "successCount"
	CounterFailed               Counter = "failedCount"
	CounterPartyLookupTotal     Counter = "partyLookupTotalCount"
	CounterPartyLookupSuccess   Counter = "partyLookupSuccessCount"
	CounterPartyLookupFailed    Counter = "partyLookupFailedCount"
	CounterBulkQuotesTotal      Counter = "bulkQuotesTotalCount"
	CounterBulkQuotesSuccess    Counter = "bulkQuotesSuccessCount"
	CounterBulkQuotesFailed     Counter = "bulkQuotesFailedCount"
	CounterBulkTransfersTotal   Counter = "bulkTransfersTotalCount"
	CounterBulkTransfersSuccess Counter = "bulkTransfersSuccessCount"
	CounterBulkTransfersFailed  Counter = "bulkTransfersFailedCount"
)

// Counters lists every counter seeded when a bulk transaction is created.
var Counters = []Counter{
	CounterTotal,
	CounterSuccess,
	CounterFailed,
	CounterPartyLookupTotal,
	CounterPartyLookupSuccess,
	CounterPartyLookupFailed,
	CounterBulkQuotesTotal,
	CounterBulkQuotesSuccess,
	CounterBulkQuotesFailed,
	CounterBulkTransfersTotal,
	CounterBulkTransfersSuccess,
	CounterBulkTransfersFailed,
}

// BulkTransactionRepository stores one logical record per bulk transaction.
// Reads of a missing root, leg or batch return ErrNotFound. A counter that
// was never written reads as zero.
type BulkTransactionRepository interface {
	Store(ctx context.Context, state BulkTransactionState) error
	Load(ctx context.Context, bulkID string) (BulkTransactionState, error)
	Remove(ctx context.Context, bulkID string) error
	IsBulkIDExists(ctx context.Context, bulkID string) (bool, error)

	GetAllIndividualTransferIDs(ctx context.Context, bulkID string) ([]string, error)
	GetIndividualTransfer(ctx context.Context, bulkID, individualTransferID string) (IndividualTransferState, error)
	SetIndividualTransfer(ctx context.Context, bulkID, individualTransferID string, state IndividualTransferState) error

	GetAllBulkBatchIDs(ctx context.Context, bulkID string) ([]string, error)
	GetBulkBatch(ctx context.Context, bulkID, bulkBatchID string) (BulkBatchState, error)
	SetBulkBatch(ctx context.Context, bulkID, bulkBatchID string, state BulkBatchState) error

	GetCounter(ctx context.Context, bulkID string, counter Counter) (int64, error)
	SetCounter(ctx context.Context, bulkID string, counter Counter, value int64) error
	IncrementCounter(ctx context.Context, bulkID string, counter Counter, delta int64) (int64, error)
}
