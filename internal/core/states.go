package core

type BulkTransactionInternalState string

const (
	BulkTransactionStateReceived                     BulkTransactionInternalState = "RECEIVED"
	BulkTransactionStateDiscoveryProcessing          BulkTransactionInternalState = "DISCOVERY_PROCESSING"
	BulkTransactionStateDiscoveryCompleted           BulkTransactionInternalState = "DISCOVERY_COMPLETED"
	BulkTransactionStateDiscoveryAcceptancePending   BulkTransactionInternalState = "DISCOVERY_ACCEPTANCE_PENDING"
	BulkTransactionStateDiscoveryAcceptanceCompleted BulkTransactionInternalState = "DISCOVERY_ACCEPTANCE_COMPLETED"
	BulkTransactionStateAgreementProcessing          BulkTransactionInternalState = "AGREEMENT_PROCESSING"
	BulkTransactionStateAgreementCompleted           BulkTransactionInternalState = "AGREEMENT_COMPLETED"
	BulkTransactionStateAgreementAcceptancePending   BulkTransactionInternalState = "AGREEMENT_ACCEPTANCE_PENDING"
	BulkTransactionStateAgreementAcceptanceCompleted BulkTransactionInternalState = "AGREEMENT_ACCEPTANCE_COMPLETED"
	BulkTransactionStateTransfersProcessing          BulkTransactionInternalState = "TRANSFERS_PROCESSING"
	BulkTransactionStateTransfersCompleted           BulkTransactionInternalState = "TRANSFERS_COMPLETED"
	BulkTransactionStateTransfersFailed              BulkTransactionInternalState = "TRANSFERS_FAILED"
	BulkTransactionStateResponseProcessing           BulkTransactionInternalState = "RESPONSE_PROCESSING"
	BulkTransactionStateResponseSent                 BulkTransactionInternalState = "RESPONSE_SENT"
)

// bulkTransactionStateRank orders root states. TRANSFERS_COMPLETED and
// TRANSFERS_FAILED share a rank: they are alternative outcomes.
var bulkTransactionStateRank = map[BulkTransactionInternalState]int{
	BulkTransactionStateReceived:                     0,
	BulkTransactionStateDiscoveryProcessing:          1,
	BulkTransactionStateDiscoveryCompleted:           2,
	BulkTransactionStateDiscoveryAcceptancePending:   3,
	BulkTransactionStateDiscoveryAcceptanceCompleted: 4,
	BulkTransactionStateAgreementProcessing:          5,
	BulkTransactionStateAgreementCompleted:           6,
	BulkTransactionStateAgreementAcceptancePending:   7,
	BulkTransactionStateAgreementAcceptanceCompleted: 8,
	BulkTransactionStateTransfersProcessing:          9,
	BulkTransactionStateTransfersCompleted:           10,
	BulkTransactionStateTransfersFailed:              10,
	BulkTransactionStateResponseProcessing:           11,
	BulkTransactionStateResponseSent:                 12,
}

func (s BulkTransactionInternalState) IsValid() bool {
	_, ok := bulkTransactionStateRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next keeps the root moving forward.
func (s BulkTransactionInternalState) CanTransitionTo(next BulkTransactionInternalState) bool {
	from, ok := bulkTransactionStateRank[s]
	if !ok {
		return false
	}
	to, ok := bulkTransactionStateRank[next]
	if !ok {
		return false
	}

	return to > from
}

type IndividualTransferInternalState string

const (
	IndividualTransferStateReceived            IndividualTransferInternalState = "RECEIVED"
	IndividualTransferStateDiscoveryProcessing IndividualTransferInternalState = "DISCOVERY_PROCESSING"
	IndividualTransferStateDiscoverySuccess    IndividualTransferInternalState = "DISCOVERY_SUCCESS"
	IndividualTransferStateDiscoveryFailed     IndividualTransferInternalState = "DISCOVERY_FAILED"
	IndividualTransferStateDiscoveryAccepted   IndividualTransferInternalState = "DISCOVERY_ACCEPTED"
	IndividualTransferStateDiscoveryRejected   IndividualTransferInternalState = "DISCOVERY_REJECTED"
	IndividualTransferStateAgreementProcessing IndividualTransferInternalState = "AGREEMENT_PROCESSING"
	IndividualTransferStateAgreementSuccess    IndividualTransferInternalState = "AGREEMENT_SUCCESS"
	IndividualTransferStateAgreementFailed     IndividualTransferInternalState = "AGREEMENT_FAILED"
	IndividualTransferStateAgreementAccepted   IndividualTransferInternalState = "AGREEMENT_ACCEPTED"
	IndividualTransferStateAgreementRejected   IndividualTransferInternalState = "AGREEMENT_REJECTED"
	IndividualTransferStateTransfersProcessing IndividualTransferInternalState = "TRANSFERS_PROCESSING"
	IndividualTransferStateTransfersSuccess    IndividualTransferInternalState = "TRANSFERS_SUCCESS"
	IndividualTransferStateTransfersFailed     IndividualTransferInternalState = "TRANSFERS_FAILED"
)

// IsFailed reports whether the leg has dropped out of the bulk for good.
func (s IndividualTransferInternalState) IsFailed() bool {
	switch s {
	case IndividualTransferStateDiscoveryFailed,
		IndividualTransferStateDiscoveryRejected,
		IndividualTransferStateAgreementFailed,
		IndividualTransferStateAgreementRejected,
		IndividualTransferStateTransfersFailed:
		return true
	}
	return false
}

type BulkBatchInternalState string

const (
	BulkBatchStateCreated             BulkBatchInternalState = "CREATED"
	BulkBatchStateAgreementProcessing BulkBatchInternalState = "AGREEMENT_PROCESSING"
	BulkBatchStateAgreementCompleted  BulkBatchInternalState = "AGREEMENT_COMPLETED"
	BulkBatchStateAgreementFailed     BulkBatchInternalState = "AGREEMENT_FAILED"
	BulkBatchStateTransfersProcessing BulkBatchInternalState = "TRANSFERS_PROCESSING"
	BulkBatchStateTransfersCompleted  BulkBatchInternalState = "TRANSFERS_COMPLETED"
	BulkBatchStateTransfersFailed     BulkBatchInternalState = "TRANSFERS_FAILED"
)

// TransferState is the caller-facing outcome of a leg.
type TransferState string

const (
	TransferStateCommitted TransferState = "COMMITTED"
	TransferStateAborted   TransferState = "ABORTED"
)

// BulkResponseState is the caller-facing outcome of the whole bulk.
type BulkResponseState string

const (
	BulkResponseStateCompleted     BulkResponseState = "COMPLETED"
	BulkResponseStateErrorOccurred BulkResponseState = "ERROR_OCCURRED"
)
