package command

import "bulkconnector/internal/core"

// Command payloads.

type PartyInfoCallback struct {
	IndividualTransferID string           `json:"transferId"`
	PartyResult          core.PartyResult `json:"partyResult"`
}

type AcceptanceDecisions struct {
	IndividualTransfers []core.AcceptanceDecision `json:"individualTransfers"`
}

type BulkQuotesCallback struct {
	BulkBatchID        string                   `json:"batchId"`
	BulkQuotesResponse *core.BulkQuotesResponse `json:"bulkQuotesResult,omitempty"`
	ErrorInformation   *core.ErrorInformation   `json:"errorInformation,omitempty"`
}

type BulkTransfersCallback struct {
	BulkBatchID           string                      `json:"batchId"`
	BulkTransfersResponse *core.BulkTransfersResponse `json:"bulkTransfersResult,omitempty"`
	ErrorInformation      *core.ErrorInformation      `json:"errorInformation,omitempty"`
}

// Event payloads.

type BulkRequestProcessed struct {
	BulkHomeTransactionID string `json:"bulkHomeTransactionID"`
	IndividualTransfers   int    `json:"individualTransfers"`
}

type PartyInfoProcessed struct {
	IndividualTransferID string                               `json:"transferId"`
	State                core.IndividualTransferInternalState `json:"state"`
}

type AcceptanceRequested struct {
	BulkHomeTransactionID string                            `json:"bulkHomeTransactionID"`
	IndividualTransfers   []core.IndividualTransferResponse `json:"individualTransferResults"`
}

type BulkQuotesRequestedContent struct {
	BulkBatchID  string                 `json:"batchId"`
	Counterparty string                 `json:"counterparty"`
	Request      core.BulkQuotesRequest `json:"request"`
}

type BulkTransfersRequestedContent struct {
	BulkBatchID  string                    `json:"batchId"`
	Counterparty string                    `json:"counterparty"`
	Request      core.BulkTransfersRequest `json:"request"`
}

type BatchProcessed struct {
	BulkBatchID string                      `json:"batchId"`
	State       core.BulkBatchInternalState `json:"state"`
}

type TransfersProcessed struct {
	State    core.BulkTransactionInternalState `json:"state"`
	Progress core.PhaseProgress                `json:"progress"`
}
