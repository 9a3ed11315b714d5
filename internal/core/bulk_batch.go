package core

import (
	"fmt"

	"github.com/google/uuid"
)

// BulkBatchState is the persisted form of a group of legs sent to one counterparty.
type BulkBatchState struct {
	ID                       string                 `json:"id"`
	BulkID                   string                 `json:"bulkId"`
	Counterparty             string                 `json:"counterparty"`
	BulkQuoteID              string                 `json:"bulkQuoteId"`
	BulkTransferID           string                 `json:"bulkTransferId"`
	State                    BulkBatchInternalState `json:"state"`
	BulkQuotesRequest        BulkQuotesRequest      `json:"bulkQuotesRequest"`
	BulkQuotesResponse       *BulkQuotesResponse    `json:"bulkQuotesResponse,omitempty"`
	BulkTransfersRequest     BulkTransfersRequest   `json:"bulkTransfersRequest"`
	BulkTransfersResponse    *BulkTransfersResponse `json:"bulkTransfersResponse,omitempty"`
	QuoteIDReferenceIDMap    map[string]string      `json:"quoteIdReferenceIdMap"`
	TransferIDReferenceIDMap map[string]string      `json:"transferIdReferenceIdMap"`
	LastError                *LastError             `json:"lastError,omitempty"`
}

type BulkBatch struct {
	state BulkBatchState
}

// NewBulkBatch creates an empty batch addressed to counterparty, with fresh
// bulk quote and bulk transfer ids and both outgoing documents seeded with
// the shared payer and extensions.
func NewBulkBatch(bulkID, counterparty, homeTransactionID string, from Party, extensions *ExtensionList) *BulkBatch {
	bulkQuoteID := uuid.NewString()
	bulkTransferID := uuid.NewString()

	return &BulkBatch{
		state: BulkBatchState{
			ID:             uuid.NewString(),
			BulkID:         bulkID,
			Counterparty:   counterparty,
			BulkQuoteID:    bulkQuoteID,
			BulkTransferID: bulkTransferID,
			State:          BulkBatchStateCreated,
			BulkQuotesRequest: BulkQuotesRequest{
				HomeTransactionID: homeTransactionID,
				BulkQuoteID:       bulkQuoteID,
				From:              from,
				IndividualQuotes:  []IndividualQuote{},
				Extensions:        extensions,
			},
			BulkTransfersRequest: BulkTransfersRequest{
				HomeTransactionID:   homeTransactionID,
				BulkTransferID:      bulkTransferID,
				BulkQuoteID:         bulkQuoteID,
				From:                from,
				IndividualTransfers: []IndividualBulkTransfer{},
				Extensions:          extensions,
			},
			QuoteIDReferenceIDMap:    map[string]string{},
			TransferIDReferenceIDMap: map[string]string{},
		},
	}
}

// BulkBatchFromState rehydrates a batch. Outgoing documents are validated
// explicitly by the caller before dispatch.
func BulkBatchFromState(state BulkBatchState) *BulkBatch {
	if state.QuoteIDReferenceIDMap == nil {
		state.QuoteIDReferenceIDMap = map[string]string{}
	}
	if state.TransferIDReferenceIDMap == nil {
		state.TransferIDReferenceIDMap = map[string]string{}
	}

	return &BulkBatch{state: state}
}

func (b *BulkBatch) ID() string {
	return b.state.ID
}

func (b *BulkBatch) BulkID() string {
	return b.state.BulkID
}

func (b *BulkBatch) Counterparty() string {
	return b.state.Counterparty
}

func (b *BulkBatch) BulkQuoteID() string {
	return b.state.BulkQuoteID
}

func (b *BulkBatch) BulkTransferID() string {
	return b.state.BulkTransferID
}

func (b *BulkBatch) BatchState() BulkBatchInternalState {
	return b.state.State
}

func (b *BulkBatch) BulkQuotesRequest() BulkQuotesRequest {
	return b.state.BulkQuotesRequest
}

func (b *BulkBatch) BulkQuotesResponse() *BulkQuotesResponse {
	return b.state.BulkQuotesResponse
}

func (b *BulkBatch) BulkTransfersRequest() BulkTransfersRequest {
	return b.state.BulkTransfersRequest
}

func (b *BulkBatch) BulkTransfersResponse() *BulkTransfersResponse {
	return b.state.BulkTransfersResponse
}

func (b *BulkBatch) LastError() *LastError {
	return b.state.LastError
}

// IndividualTransferIDs returns the member legs in quote order.
func (b *BulkBatch) IndividualTransferIDs() []string {
	ids := make([]string, 0, len(b.state.BulkQuotesRequest.IndividualQuotes))
	for _, quote := range b.state.BulkQuotesRequest.IndividualQuotes {
		ids = append(ids, b.state.QuoteIDReferenceIDMap[quote.QuoteID])
	}
	return ids
}

func (b *BulkBatch) AddIndividualQuote(individualTransferID string, quote IndividualQuote) error {
	if _, ok := b.state.QuoteIDReferenceIDMap[quote.QuoteID]; ok {
		return fmt.Errorf("quote %s in batch %s: %w", quote.QuoteID, b.state.ID, ErrDuplicate)
	}

	b.state.BulkQuotesRequest.IndividualQuotes = append(b.state.BulkQuotesRequest.IndividualQuotes, quote)
	b.state.QuoteIDReferenceIDMap[quote.QuoteID] = individualTransferID

	return nil
}

func (b *BulkBatch) AddIndividualTransfer(individualTransferID string, transfer IndividualBulkTransfer) error {
	if _, ok := b.state.TransferIDReferenceIDMap[transfer.TransferID]; ok {
		return fmt.Errorf("transfer %s in batch %s: %w", transfer.TransferID, b.state.ID, ErrDuplicate)
	}

	b.state.BulkTransfersRequest.IndividualTransfers = append(b.state.BulkTransfersRequest.IndividualTransfers, transfer)
	b.state.TransferIDReferenceIDMap[transfer.TransferID] = individualTransferID

	return nil
}

// ReferenceIDByQuoteID resolves the leg that owns quoteID.
func (b *BulkBatch) ReferenceIDByQuoteID(quoteID string) (string, bool) {
	id, ok := b.state.QuoteIDReferenceIDMap[quoteID]
	return id, ok
}

// ReferenceIDByTransferID resolves the leg that owns transferID.
func (b *BulkBatch) ReferenceIDByTransferID(transferID string) (string, bool) {
	id, ok := b.state.TransferIDReferenceIDMap[transferID]
	return id, ok
}

func (b *BulkBatch) SetBatchState(state BulkBatchInternalState) {
	b.state.State = state
}

func (b *BulkBatch) SetBulkQuotesResponse(resp BulkQuotesResponse) {
	b.state.BulkQuotesResponse = &resp
}

func (b *BulkBatch) SetBulkTransfersResponse(resp BulkTransfersResponse) {
	b.state.BulkTransfersResponse = &resp
}

func (b *BulkBatch) SetLastError(lastError *LastError) {
	b.state.LastError = lastError
}

func (b *BulkBatch) ValidateBulkQuotesRequest() error {
	return validateDocument("bulkQuotesRequest", b.state.BulkQuotesRequest)
}

func (b *BulkBatch) ValidateBulkTransfersRequest() error {
	return validateDocument("bulkTransfersRequest", b.state.BulkTransfersRequest)
}

func (b *BulkBatch) State() BulkBatchState {
	return b.state
}
