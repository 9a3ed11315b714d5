package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BulkTransactionState is the persisted form of the root entity.
type BulkTransactionState struct {
	ID                    string                       `json:"id"`
	BulkHomeTransactionID string                       `json:"bulkHomeTransactionID"`
	Options               Options                      `json:"options"`
	From                  Party                        `json:"from"`
	Extensions            *ExtensionList               `json:"extensions,omitempty"`
	State                 BulkTransactionInternalState `json:"state"`
	CreatedAt             time.Time                    `json:"createdAt"`
	UpdatedAt             time.Time                    `json:"updatedAt"`
	Version               int64                        `json:"version"`
}

type BulkTransaction struct {
	state BulkTransactionState
}

// NewBulkTransaction validates the caller request and builds a root in RECEIVED state.
// The request's bulkTransactionId is kept when present, otherwise one is generated.
func NewBulkTransaction(req BulkTransactionRequest) (*BulkTransaction, error) {
	if err := validateDocument("bulkTransactionRequest", req); err != nil {
		return nil, err
	}

	id := req.BulkTransactionID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()

	return &BulkTransaction{
		state: BulkTransactionState{
			ID:                    id,
			BulkHomeTransactionID: req.BulkHomeTransactionID,
			Options:               req.Options,
			From:                  req.From,
			Extensions:            req.Extensions,
			State:                 BulkTransactionStateReceived,
			CreatedAt:             now,
			UpdatedAt:             now,
		},
	}, nil
}

// BulkTransactionFromState rehydrates a root from trusted storage without re-validation.
func BulkTransactionFromState(state BulkTransactionState) *BulkTransaction {
	return &BulkTransaction{state: state}
}

func (b *BulkTransaction) ID() string {
	return b.state.ID
}

func (b *BulkTransaction) BulkHomeTransactionID() string {
	return b.state.BulkHomeTransactionID
}

func (b *BulkTransaction) From() Party {
	return b.state.From
}

func (b *BulkTransaction) Options() Options {
	return b.state.Options
}

func (b *BulkTransaction) Extensions() *ExtensionList {
	return b.state.Extensions
}

func (b *BulkTransaction) GlobalState() BulkTransactionInternalState {
	return b.state.State
}

func (b *BulkTransaction) IsSkipPartyLookupEnabled() bool {
	return b.state.Options.SkipPartyLookup
}

func (b *BulkTransaction) IsAutoAcceptPartyEnabled() bool {
	return b.state.Options.AutoAcceptParty.Enabled
}

func (b *BulkTransaction) IsAutoAcceptQuoteEnabled() bool {
	return b.state.Options.AutoAcceptQuote.Enabled
}

// SetGlobalState moves the root forward. Setting the current state again is a no-op.
func (b *BulkTransaction) SetGlobalState(next BulkTransactionInternalState) error {
	if next == b.state.State {
		return nil
	}

	if !b.state.State.CanTransitionTo(next) {
		return fmt.Errorf("bulk transaction %s %s -> %s: %w", b.state.ID, b.state.State, next, ErrInvalidStateTransition)
	}

	b.state.State = next
	b.state.UpdatedAt = time.Now().UTC()

	return nil
}

// State exports a copy suitable for persistence.
func (b *BulkTransaction) State() BulkTransactionState {
	return b.state
}

func (b *BulkTransaction) touch() {
	b.state.Version++
	b.state.UpdatedAt = time.Now().UTC()
}
