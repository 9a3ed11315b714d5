package core

import (
	"fmt"
)

// IndividualTransferState is the persisted form of one leg of a bulk transaction.
type IndividualTransferState struct {
	ID               string                          `json:"id"`
	Request          IndividualTransferRequest       `json:"request"`
	State            IndividualTransferInternalState `json:"state"`
	BatchID          string                          `json:"batchId,omitempty"`
	PartyRequest     *PartyIDInfo                    `json:"partyRequest,omitempty"`
	PartyResponse    *PartyResult                    `json:"partyResponse,omitempty"`
	QuoteID          string                          `json:"quoteId,omitempty"`
	QuoteResponse    *IndividualQuoteResult          `json:"quoteResponse,omitempty"`
	TransferID       string                          `json:"transferId,omitempty"`
	TransferResponse *IndividualTransferResult       `json:"transferResponse,omitempty"`
	AcceptParty      *bool                           `json:"acceptParty,omitempty"`
	AcceptQuote      *bool                           `json:"acceptQuote,omitempty"`
	LastError        *LastError                      `json:"lastError,omitempty"`
}

type IndividualTransfer struct {
	state IndividualTransferState
}

// NewIndividualTransfer builds a leg entity. The leg request is validated on
// every construction, including rehydration from storage, so that documents
// written by an older release are rejected instead of silently reinterpreted.
func NewIndividualTransfer(state IndividualTransferState) (*IndividualTransfer, error) {
	if state.ID == "" {
		return nil, &SchemaValidationError{
			Document: "individualTransfer",
			Fields:   []FieldError{{Field: "id", Tag: "required"}},
		}
	}

	if err := validateDocument("individualTransferRequest", state.Request); err != nil {
		return nil, err
	}

	if state.State == "" {
		state.State = IndividualTransferStateReceived
	}

	return &IndividualTransfer{state: state}, nil
}

func (t *IndividualTransfer) ID() string {
	return t.state.ID
}

func (t *IndividualTransfer) Request() IndividualTransferRequest {
	return t.state.Request
}

func (t *IndividualTransfer) TransferState() IndividualTransferInternalState {
	return t.state.State
}

func (t *IndividualTransfer) BatchID() string {
	return t.state.BatchID
}

func (t *IndividualTransfer) PartyResponse() *PartyResult {
	return t.state.PartyResponse
}

func (t *IndividualTransfer) QuoteResponse() *IndividualQuoteResult {
	return t.state.QuoteResponse
}

func (t *IndividualTransfer) TransferResponse() *IndividualTransferResult {
	return t.state.TransferResponse
}

func (t *IndividualTransfer) LastError() *LastError {
	return t.state.LastError
}

func (t *IndividualTransfer) IsFailed() bool {
	return t.state.State.IsFailed()
}

// Counterparty returns the participant resolved by discovery, or "" when unresolved.
func (t *IndividualTransfer) Counterparty() string {
	if t.state.PartyResponse == nil || t.state.PartyResponse.Party == nil {
		return ""
	}
	return t.state.PartyResponse.Party.CounterpartyID()
}

func (t *IndividualTransfer) SetTransferState(state IndividualTransferInternalState) {
	t.state.State = state
}

func (t *IndividualTransfer) SetPartyRequest(req PartyIDInfo) {
	t.state.PartyRequest = &req
}

func (t *IndividualTransfer) SetPartyResponse(resp PartyResult) {
	t.state.PartyResponse = &resp
}

func (t *IndividualTransfer) SetQuote(quoteID string) {
	t.state.QuoteID = quoteID
}

func (t *IndividualTransfer) SetQuoteResponse(resp IndividualQuoteResult) {
	t.state.QuoteResponse = &resp
}

func (t *IndividualTransfer) SetTransfer(transferID string) {
	t.state.TransferID = transferID
}

func (t *IndividualTransfer) SetTransferResponse(resp IndividualTransferResult) {
	t.state.TransferResponse = &resp
}

func (t *IndividualTransfer) SetAcceptParty(accept bool) {
	t.state.AcceptParty = &accept
}

func (t *IndividualTransfer) SetAcceptQuote(accept bool) {
	t.state.AcceptQuote = &accept
}

func (t *IndividualTransfer) SetLastError(lastError *LastError) {
	t.state.LastError = lastError
}

// SetBatchID assigns the leg to a batch. A leg is never moved between batches.
func (t *IndividualTransfer) SetBatchID(batchID string) error {
	if t.state.BatchID != "" && t.state.BatchID != batchID {
		return fmt.Errorf("individual transfer %s in batch %s: %w", t.state.ID, t.state.BatchID, ErrBatchAlreadyAssigned)
	}

	t.state.BatchID = batchID
	return nil
}

func (t *IndividualTransfer) State() IndividualTransferState {
	return t.state
}

// IndividualTransferResponse is the caller-facing projection of a leg.
type IndividualTransferResponse struct {
	TransferID         string                    `json:"transferId"`
	HomeTransactionID  string                    `json:"homeTransactionId"`
	To                 Party                     `json:"to"`
	AmountType         AmountType                `json:"amountType"`
	Currency           string                    `json:"currency"`
	Amount             string                    `json:"amount"`
	Note               string                    `json:"note,omitempty"`
	CurrentState       TransferState             `json:"currentState"`
	QuoteID            string                    `json:"quoteId,omitempty"`
	QuoteResponse      *IndividualQuoteResult    `json:"quoteResponse,omitempty"`
	QuoteExtensions    *ExtensionList            `json:"quoteExtensions,omitempty"`
	Fulfil             *IndividualTransferResult `json:"fulfil,omitempty"`
	TransferExtensions *ExtensionList            `json:"transferExtensions,omitempty"`
	LastError          *LastError                `json:"lastError,omitempty"`
}

func (t *IndividualTransfer) ToIndividualTransferResult() IndividualTransferResponse {
	currentState := TransferStateAborted
	if t.state.State == IndividualTransferStateTransfersSuccess {
		currentState = TransferStateCommitted
	}

	to := t.state.Request.To
	if t.state.PartyResponse != nil && t.state.PartyResponse.Party != nil {
		to = *t.state.PartyResponse.Party
	}

	return IndividualTransferResponse{
		TransferID:         t.state.ID,
		HomeTransactionID:  t.state.Request.HomeTransactionID,
		To:                 to,
		AmountType:         t.state.Request.AmountType,
		Currency:           t.state.Request.Currency,
		Amount:             t.state.Request.Amount,
		Note:               t.state.Request.Note,
		CurrentState:       currentState,
		QuoteID:            t.state.QuoteID,
		QuoteResponse:      t.state.QuoteResponse,
		QuoteExtensions:    t.state.Request.QuoteExtensions,
		Fulfil:             t.state.TransferResponse,
		TransferExtensions: t.state.Request.TransferExtensions,
		LastError:          t.state.LastError,
	}
}
