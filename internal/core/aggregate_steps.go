package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	PhaseDiscovery = "discovery"
	PhaseAgreement = "agreement"
	PhaseTransfers = "transfers"
)

// PhaseProgress is a snapshot of one phase's counters after a step.
// Duplicate is set when the step was a redelivery and changed nothing.
type PhaseProgress struct {
	Total     int64 `json:"total"`
	Success   int64 `json:"success"`
	Failed    int64 `json:"failed"`
	Duplicate bool  `json:"-"`
}

func (p PhaseProgress) Complete() bool {
	return p.Success+p.Failed >= p.Total
}

type PartyLookupRequest struct {
	IndividualTransferID string      `json:"transferId"`
	PartyIDInfo          PartyIDInfo `json:"partyIdInfo"`
}

type AcceptanceDecision struct {
	IndividualTransferID string `json:"transferId"`
	Accept               bool   `json:"accept"`
}

// Acceptance is the outcome of closing the discovery or agreement phase:
// either decisions taken automatically, or legs waiting on the caller.
type Acceptance struct {
	AutoAccepted bool
	Decisions    []AcceptanceDecision
	Pending      []IndividualTransferResponse
}

func (a *BulkTransactionAggregate) requireGlobalState(allowed ...BulkTransactionInternalState) error {
	if slices.Contains(allowed, a.root.GlobalState()) {
		return nil
	}
	return fmt.Errorf("bulk transaction %s in state %s, expected one of %v: %w",
		a.root.ID(), a.root.GlobalState(), allowed, ErrInvalidStateTransition)
}

func (a *BulkTransactionAggregate) progress(ctx context.Context, total, success, failed Counter) (PhaseProgress, error) {
	var p PhaseProgress
	var err error

	if p.Total, err = a.Counter(ctx, total); err != nil {
		return PhaseProgress{}, err
	}
	if p.Success, err = a.Counter(ctx, success); err != nil {
		return PhaseProgress{}, err
	}
	if p.Failed, err = a.Counter(ctx, failed); err != nil {
		return PhaseProgress{}, err
	}

	return p, nil
}

func (a *BulkTransactionAggregate) DiscoveryProgress(ctx context.Context) (PhaseProgress, error) {
	return a.progress(ctx, CounterPartyLookupTotal, CounterPartyLookupSuccess, CounterPartyLookupFailed)
}

func (a *BulkTransactionAggregate) AgreementProgress(ctx context.Context) (PhaseProgress, error) {
	return a.progress(ctx, CounterBulkQuotesTotal, CounterBulkQuotesSuccess, CounterBulkQuotesFailed)
}

func (a *BulkTransactionAggregate) TransfersProgress(ctx context.Context) (PhaseProgress, error) {
	return a.progress(ctx, CounterBulkTransfersTotal, CounterBulkTransfersSuccess, CounterBulkTransfersFailed)
}

func (a *BulkTransactionAggregate) failIndividualTransfer(
	ctx context.Context,
	leg *IndividualTransfer,
	state IndividualTransferInternalState,
	lastError *LastError,
) error {
	leg.SetTransferState(state)
	leg.SetLastError(lastError)
	if err := a.SetIndividualTransfer(ctx, leg); err != nil {
		return err
	}

	_, err := a.IncrementFailedCount(ctx, 1)
	return err
}

// StartDiscovery moves every RECEIVED leg into discovery and returns the
// lookups to send. With party lookup skipped the payee supplied in the
// request is taken as resolved.
func (a *BulkTransactionAggregate) StartDiscovery(ctx context.Context) ([]PartyLookupRequest, PhaseProgress, error) {
	if err := a.requireGlobalState(BulkTransactionStateReceived); err != nil {
		return nil, PhaseProgress{}, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateDiscoveryProcessing); err != nil {
		return nil, PhaseProgress{}, err
	}

	legs, err := a.IndividualTransfers(ctx)
	if err != nil {
		return nil, PhaseProgress{}, err
	}

	var lookups []PartyLookupRequest
	for _, leg := range legs {
		if leg.TransferState() != IndividualTransferStateReceived {
			continue
		}

		if _, err = a.IncrementPartyLookupTotalCount(ctx, 1); err != nil {
			return nil, PhaseProgress{}, err
		}

		to := leg.Request().To
		switch {
		case a.root.IsSkipPartyLookupEnabled() && to.CounterpartyID() == "":
			if _, err = a.IncrementPartyLookupFailedCount(ctx, 1); err != nil {
				return nil, PhaseProgress{}, err
			}
			err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateDiscoveryFailed, &LastError{
				Message:         "party lookup skipped but payee has no fspId",
				OccurredAtPhase: PhaseDiscovery,
			})
		case a.root.IsSkipPartyLookupEnabled():
			leg.SetPartyResponse(PartyResult{Party: &to})
			leg.SetTransferState(IndividualTransferStateDiscoverySuccess)
			if _, err = a.IncrementPartyLookupSuccessCount(ctx, 1); err != nil {
				return nil, PhaseProgress{}, err
			}
			err = a.SetIndividualTransfer(ctx, leg)
		default:
			leg.SetPartyRequest(to.PartyIDInfo)
			leg.SetTransferState(IndividualTransferStateDiscoveryProcessing)
			err = a.SetIndividualTransfer(ctx, leg)
			lookups = append(lookups, PartyLookupRequest{
				IndividualTransferID: leg.ID(),
				PartyIDInfo:          to.PartyIDInfo,
			})
		}
		if err != nil {
			return nil, PhaseProgress{}, err
		}
	}

	progress, err := a.DiscoveryProgress(ctx)
	if err != nil {
		return nil, PhaseProgress{}, err
	}

	return lookups, progress, nil
}

// ProcessPartyInfoCallback records the lookup result of one leg. A lookup
// without a resolved counterparty counts as failed.
func (a *BulkTransactionAggregate) ProcessPartyInfoCallback(
	ctx context.Context,
	individualTransferID string,
	result PartyResult,
) (PhaseProgress, error) {
	leg, err := a.GetIndividualTransfer(ctx, individualTransferID)
	if err != nil {
		return PhaseProgress{}, err
	}

	if leg.TransferState() != IndividualTransferStateDiscoveryProcessing {
		a.logger.WarnContext(ctx, "party info callback for individual transfer not in discovery, ignoring",
			"individualTransferId", individualTransferID,
			"state", leg.TransferState(),
		)
		progress, err := a.DiscoveryProgress(ctx)
		progress.Duplicate = true
		return progress, err
	}

	leg.SetPartyResponse(result)

	if result.ErrorInformation != nil || result.Party == nil || result.Party.CounterpartyID() == "" {
		if _, err = a.IncrementPartyLookupFailedCount(ctx, 1); err != nil {
			return PhaseProgress{}, err
		}

		lastError := &LastError{
			MojaloopError:   result.ErrorInformation,
			OccurredAtPhase: PhaseDiscovery,
		}
		if result.ErrorInformation == nil {
			lastError.Message = "party lookup did not resolve a counterparty"
		}
		if err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateDiscoveryFailed, lastError); err != nil {
			return PhaseProgress{}, err
		}
	} else {
		leg.SetTransferState(IndividualTransferStateDiscoverySuccess)
		if err = a.SetIndividualTransfer(ctx, leg); err != nil {
			return PhaseProgress{}, err
		}
		if _, err = a.IncrementPartyLookupSuccessCount(ctx, 1); err != nil {
			return PhaseProgress{}, err
		}
	}

	return a.DiscoveryProgress(ctx)
}

// CompleteDiscovery closes the discovery phase. Parties are accepted
// automatically when the bulk asks for it or nothing is left to decide;
// otherwise the root waits for the caller's decisions.
func (a *BulkTransactionAggregate) CompleteDiscovery(ctx context.Context) (Acceptance, error) {
	if err := a.requireGlobalState(BulkTransactionStateDiscoveryProcessing); err != nil {
		return Acceptance{}, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateDiscoveryCompleted); err != nil {
		return Acceptance{}, err
	}

	return a.acceptance(ctx,
		IndividualTransferStateDiscoverySuccess,
		a.root.IsAutoAcceptPartyEnabled(),
		BulkTransactionStateDiscoveryAcceptancePending,
		func(*IndividualTransfer) bool { return true },
	)
}

// CompleteAgreement closes the agreement phase. Automatic acceptance applies
// the per-transfer fee limits of the bulk options.
func (a *BulkTransactionAggregate) CompleteAgreement(ctx context.Context) (Acceptance, error) {
	if err := a.requireGlobalState(BulkTransactionStateAgreementProcessing); err != nil {
		return Acceptance{}, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateAgreementCompleted); err != nil {
		return Acceptance{}, err
	}

	return a.acceptance(ctx,
		IndividualTransferStateAgreementSuccess,
		a.root.IsAutoAcceptQuoteEnabled(),
		BulkTransactionStateAgreementAcceptancePending,
		a.withinFeeLimits,
	)
}

func (a *BulkTransactionAggregate) acceptance(
	ctx context.Context,
	candidateState IndividualTransferInternalState,
	autoAccept bool,
	pendingState BulkTransactionInternalState,
	accept func(*IndividualTransfer) bool,
) (Acceptance, error) {
	legs, err := a.IndividualTransfers(ctx)
	if err != nil {
		return Acceptance{}, err
	}

	var candidates []*IndividualTransfer
	for _, leg := range legs {
		if leg.TransferState() == candidateState {
			candidates = append(candidates, leg)
		}
	}

	if autoAccept || len(candidates) == 0 {
		decisions := make([]AcceptanceDecision, 0, len(candidates))
		for _, leg := range candidates {
			decisions = append(decisions, AcceptanceDecision{
				IndividualTransferID: leg.ID(),
				Accept:               accept(leg),
			})
		}
		return Acceptance{AutoAccepted: true, Decisions: decisions}, nil
	}

	if err = a.SetGlobalState(ctx, pendingState); err != nil {
		return Acceptance{}, err
	}

	pending := make([]IndividualTransferResponse, 0, len(candidates))
	for _, leg := range candidates {
		pending = append(pending, leg.ToIndividualTransferResult())
	}

	return Acceptance{Pending: pending}, nil
}

// withinFeeLimits rejects a quote whose payee fee exceeds the limit configured for its currency.
func (a *BulkTransactionAggregate) withinFeeLimits(leg *IndividualTransfer) bool {
	quote := leg.QuoteResponse()
	if quote == nil || quote.PayeeFspFee == nil {
		return true
	}

	fee, err := decimal.NewFromString(quote.PayeeFspFee.Amount)
	if err != nil {
		return false
	}

	for _, limit := range a.root.Options().AutoAcceptQuote.PerTransferFeeLimits {
		if limit.Currency != quote.PayeeFspFee.Currency {
			continue
		}

		maxFee, err := decimal.NewFromString(limit.Amount)
		if err != nil {
			return false
		}
		return fee.LessThanOrEqual(maxFee)
	}

	return true
}

// AcceptParty applies the caller's party decisions to DISCOVERY_SUCCESS legs.
func (a *BulkTransactionAggregate) AcceptParty(ctx context.Context, decisions []AcceptanceDecision) error {
	if err := a.requireGlobalState(
		BulkTransactionStateDiscoveryCompleted,
		BulkTransactionStateDiscoveryAcceptancePending,
	); err != nil {
		return err
	}

	err := a.applyDecisions(ctx, decisions,
		IndividualTransferStateDiscoverySuccess,
		IndividualTransferStateDiscoveryAccepted,
		IndividualTransferStateDiscoveryRejected,
		(*IndividualTransfer).SetAcceptParty,
		PhaseDiscovery,
	)
	if err != nil {
		return err
	}

	return a.SetGlobalState(ctx, BulkTransactionStateDiscoveryAcceptanceCompleted)
}

// AcceptQuote applies the caller's quote decisions to AGREEMENT_SUCCESS legs.
func (a *BulkTransactionAggregate) AcceptQuote(ctx context.Context, decisions []AcceptanceDecision) error {
	if err := a.requireGlobalState(
		BulkTransactionStateAgreementCompleted,
		BulkTransactionStateAgreementAcceptancePending,
	); err != nil {
		return err
	}

	err := a.applyDecisions(ctx, decisions,
		IndividualTransferStateAgreementSuccess,
		IndividualTransferStateAgreementAccepted,
		IndividualTransferStateAgreementRejected,
		(*IndividualTransfer).SetAcceptQuote,
		PhaseAgreement,
	)
	if err != nil {
		return err
	}

	return a.SetGlobalState(ctx, BulkTransactionStateAgreementAcceptanceCompleted)
}

func (a *BulkTransactionAggregate) applyDecisions(
	ctx context.Context,
	decisions []AcceptanceDecision,
	fromState, acceptedState, rejectedState IndividualTransferInternalState,
	record func(*IndividualTransfer, bool),
	phase string,
) error {
	for _, decision := range decisions {
		leg, err := a.GetIndividualTransfer(ctx, decision.IndividualTransferID)
		if err != nil {
			return err
		}

		if leg.TransferState() != fromState {
			a.logger.WarnContext(ctx, "acceptance decision for individual transfer in unexpected state, ignoring",
				"individualTransferId", leg.ID(),
				"state", leg.TransferState(),
				"expected", fromState,
			)
			continue
		}

		record(leg, decision.Accept)
		if decision.Accept {
			leg.SetTransferState(acceptedState)
			err = a.SetIndividualTransfer(ctx, leg)
		} else {
			err = a.failIndividualTransfer(ctx, leg, rejectedState, &LastError{
				Message:         "rejected by caller",
				OccurredAtPhase: phase,
			})
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// StartAgreement generates the quote batches and marks them, and their
// member legs, as AGREEMENT_PROCESSING. Every outgoing quote document is
// validated before it is returned for dispatch.
func (a *BulkTransactionAggregate) StartAgreement(ctx context.Context, maxItemsPerBatch int) ([]*BulkBatch, error) {
	if err := a.requireGlobalState(BulkTransactionStateDiscoveryAcceptanceCompleted); err != nil {
		return nil, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateAgreementProcessing); err != nil {
		return nil, err
	}

	count, err := a.GenerateBulkQuoteBatches(ctx, maxItemsPerBatch)
	if err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "bulk quote batches generated", "count", count)

	batches, err := a.BulkBatches(ctx)
	if err != nil {
		return nil, err
	}

	for _, batch := range batches {
		if err = batch.ValidateBulkQuotesRequest(); err != nil {
			return nil, err
		}

		batch.SetBatchState(BulkBatchStateAgreementProcessing)
		if err = a.SetBulkBatch(ctx, batch); err != nil {
			return nil, err
		}
		if err = a.setMemberStates(ctx, batch.IndividualTransferIDs(), IndividualTransferStateAgreementProcessing); err != nil {
			return nil, err
		}
	}

	return batches, nil
}

func (a *BulkTransactionAggregate) setMemberStates(ctx context.Context, ids []string, state IndividualTransferInternalState) error {
	for _, id := range ids {
		leg, err := a.GetIndividualTransfer(ctx, id)
		if err != nil {
			return err
		}

		leg.SetTransferState(state)
		if err = a.SetIndividualTransfer(ctx, leg); err != nil {
			return err
		}
	}
	return nil
}

// ProcessBulkQuotesCallback records a counterparty's answer for one quote
// batch. An error or an empty result set fails the batch and all of its
// legs; otherwise the batch completes and every leg succeeds or fails on its
// own quote result.
func (a *BulkTransactionAggregate) ProcessBulkQuotesCallback(
	ctx context.Context,
	bulkBatchID string,
	resp *BulkQuotesResponse,
	errorInformation *ErrorInformation,
) (PhaseProgress, error) {
	batch, err := a.GetBulkBatch(ctx, bulkBatchID)
	if err != nil {
		return PhaseProgress{}, err
	}

	if batch.BatchState() != BulkBatchStateAgreementProcessing {
		a.logger.WarnContext(ctx, "bulk quotes callback for batch not in agreement, ignoring",
			"bulkBatchId", bulkBatchID,
			"state", batch.BatchState(),
		)
		progress, err := a.AgreementProgress(ctx)
		progress.Duplicate = true
		return progress, err
	}

	if resp != nil {
		batch.SetBulkQuotesResponse(*resp)
	}

	if errorInformation != nil || resp == nil || len(resp.IndividualQuoteResults) == 0 {
		lastError := &LastError{
			MojaloopError:   errorInformation,
			OccurredAtPhase: PhaseAgreement,
		}
		if errorInformation == nil {
			lastError.Message = "bulk quotes response has no results"
		}

		batch.SetBatchState(BulkBatchStateAgreementFailed)
		batch.SetLastError(lastError)
		if err = a.failMembers(ctx, batch.IndividualTransferIDs(), IndividualTransferStateAgreementProcessing, IndividualTransferStateAgreementFailed, lastError); err != nil {
			return PhaseProgress{}, err
		}
		if err = a.SetBulkBatch(ctx, batch); err != nil {
			return PhaseProgress{}, err
		}
		if _, err = a.IncrementBulkQuotesFailedCount(ctx, 1); err != nil {
			return PhaseProgress{}, err
		}

		return a.AgreementProgress(ctx)
	}

	results := make(map[string]IndividualQuoteResult, len(resp.IndividualQuoteResults))
	for _, result := range resp.IndividualQuoteResults {
		results[result.QuoteID] = result
	}

	for _, quote := range batch.BulkQuotesRequest().IndividualQuotes {
		legID, _ := batch.ReferenceIDByQuoteID(quote.QuoteID)
		leg, err := a.GetIndividualTransfer(ctx, legID)
		if err != nil {
			return PhaseProgress{}, err
		}
		if leg.TransferState() != IndividualTransferStateAgreementProcessing {
			continue
		}

		result, ok := results[quote.QuoteID]
		switch {
		case !ok:
			err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateAgreementFailed, &LastError{
				Message:         "quote missing from bulk quotes response",
				OccurredAtPhase: PhaseAgreement,
			})
		case result.Failed():
			leg.SetQuoteResponse(result)
			lastError := resultLastError(result.LastError, result.ErrorInformation, PhaseAgreement)
			err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateAgreementFailed, lastError)
		default:
			leg.SetQuoteResponse(result)
			leg.SetTransferState(IndividualTransferStateAgreementSuccess)
			err = a.SetIndividualTransfer(ctx, leg)
		}
		if err != nil {
			return PhaseProgress{}, err
		}
	}

	batch.SetBatchState(BulkBatchStateAgreementCompleted)
	if err = a.SetBulkBatch(ctx, batch); err != nil {
		return PhaseProgress{}, err
	}
	if _, err = a.IncrementBulkQuotesSuccessCount(ctx, 1); err != nil {
		return PhaseProgress{}, err
	}

	return a.AgreementProgress(ctx)
}

func (a *BulkTransactionAggregate) failMembers(
	ctx context.Context,
	ids []string,
	fromState, failedState IndividualTransferInternalState,
	lastError *LastError,
) error {
	for _, id := range ids {
		leg, err := a.GetIndividualTransfer(ctx, id)
		if err != nil {
			return err
		}
		if leg.TransferState() != fromState {
			continue
		}

		if err = a.failIndividualTransfer(ctx, leg, failedState, lastError); err != nil {
			return err
		}
	}
	return nil
}

// StartTransfers builds the transfer documents of every completed quote
// batch and marks the dispatched batches, and their legs, as
// TRANSFERS_PROCESSING.
func (a *BulkTransactionAggregate) StartTransfers(ctx context.Context) ([]*BulkBatch, error) {
	if err := a.requireGlobalState(BulkTransactionStateAgreementAcceptanceCompleted); err != nil {
		return nil, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateTransfersProcessing); err != nil {
		return nil, err
	}

	count, err := a.GenerateBulkTransferBatches(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "bulk transfer batches generated", "count", count)

	batches, err := a.BulkBatches(ctx)
	if err != nil {
		return nil, err
	}

	dispatched := make([]*BulkBatch, 0, count)
	for _, batch := range batches {
		if batch.BatchState() != BulkBatchStateAgreementCompleted || len(batch.BulkTransfersRequest().IndividualTransfers) == 0 {
			continue
		}

		if err = batch.ValidateBulkTransfersRequest(); err != nil {
			return nil, err
		}

		batch.SetBatchState(BulkBatchStateTransfersProcessing)
		if err = a.SetBulkBatch(ctx, batch); err != nil {
			return nil, err
		}

		ids := make([]string, 0, len(batch.BulkTransfersRequest().IndividualTransfers))
		for _, transfer := range batch.BulkTransfersRequest().IndividualTransfers {
			legID, _ := batch.ReferenceIDByTransferID(transfer.TransferID)
			ids = append(ids, legID)
		}
		if err = a.setMemberStates(ctx, ids, IndividualTransferStateTransfersProcessing); err != nil {
			return nil, err
		}

		dispatched = append(dispatched, batch)
	}

	return dispatched, nil
}

// ProcessBulkTransfersCallback records a counterparty's answer for one transfer batch.
func (a *BulkTransactionAggregate) ProcessBulkTransfersCallback(
	ctx context.Context,
	bulkBatchID string,
	resp *BulkTransfersResponse,
	errorInformation *ErrorInformation,
) (PhaseProgress, error) {
	batch, err := a.GetBulkBatch(ctx, bulkBatchID)
	if err != nil {
		return PhaseProgress{}, err
	}

	if batch.BatchState() != BulkBatchStateTransfersProcessing {
		a.logger.WarnContext(ctx, "bulk transfers callback for batch not in transfers, ignoring",
			"bulkBatchId", bulkBatchID,
			"state", batch.BatchState(),
		)
		progress, err := a.TransfersProgress(ctx)
		progress.Duplicate = true
		return progress, err
	}

	transfers := batch.BulkTransfersRequest().IndividualTransfers
	memberIDs := make([]string, 0, len(transfers))
	for _, transfer := range transfers {
		legID, _ := batch.ReferenceIDByTransferID(transfer.TransferID)
		memberIDs = append(memberIDs, legID)
	}

	if resp != nil {
		batch.SetBulkTransfersResponse(*resp)
	}

	if errorInformation != nil || resp == nil || len(resp.IndividualTransferResults) == 0 {
		lastError := &LastError{
			MojaloopError:   errorInformation,
			OccurredAtPhase: PhaseTransfers,
		}
		if errorInformation == nil {
			lastError.Message = "bulk transfers response has no results"
		}

		batch.SetBatchState(BulkBatchStateTransfersFailed)
		batch.SetLastError(lastError)
		if err = a.failMembers(ctx, memberIDs, IndividualTransferStateTransfersProcessing, IndividualTransferStateTransfersFailed, lastError); err != nil {
			return PhaseProgress{}, err
		}
		if err = a.SetBulkBatch(ctx, batch); err != nil {
			return PhaseProgress{}, err
		}
		if _, err = a.IncrementBulkTransfersFailedCount(ctx, 1); err != nil {
			return PhaseProgress{}, err
		}

		return a.TransfersProgress(ctx)
	}

	results := make(map[string]IndividualTransferResult, len(resp.IndividualTransferResults))
	for _, result := range resp.IndividualTransferResults {
		results[result.TransferID] = result
	}

	for i, transfer := range transfers {
		leg, err := a.GetIndividualTransfer(ctx, memberIDs[i])
		if err != nil {
			return PhaseProgress{}, err
		}
		if leg.TransferState() != IndividualTransferStateTransfersProcessing {
			continue
		}

		result, ok := results[transfer.TransferID]
		switch {
		case !ok:
			err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateTransfersFailed, &LastError{
				Message:         "transfer missing from bulk transfers response",
				OccurredAtPhase: PhaseTransfers,
			})
		case result.Failed():
			leg.SetTransferResponse(result)
			lastError := resultLastError(result.LastError, result.ErrorInformation, PhaseTransfers)
			err = a.failIndividualTransfer(ctx, leg, IndividualTransferStateTransfersFailed, lastError)
		default:
			leg.SetTransferResponse(result)
			leg.SetTransferState(IndividualTransferStateTransfersSuccess)
			if err = a.SetIndividualTransfer(ctx, leg); err == nil {
				_, err = a.IncrementSuccessCount(ctx, 1)
			}
		}
		if err != nil {
			return PhaseProgress{}, err
		}
	}

	batch.SetBatchState(BulkBatchStateTransfersCompleted)
	if err = a.SetBulkBatch(ctx, batch); err != nil {
		return PhaseProgress{}, err
	}
	if _, err = a.IncrementBulkTransfersSuccessCount(ctx, 1); err != nil {
		return PhaseProgress{}, err
	}

	return a.TransfersProgress(ctx)
}

// CompleteTransfers closes the transfer phase. The root ends TRANSFERS_FAILED
// when no transfer batch completed.
func (a *BulkTransactionAggregate) CompleteTransfers(ctx context.Context) (BulkTransactionInternalState, error) {
	if err := a.requireGlobalState(BulkTransactionStateTransfersProcessing); err != nil {
		return "", err
	}

	completed, err := a.GetBulkTransfersSuccessCount(ctx)
	if err != nil {
		return "", err
	}

	state := BulkTransactionStateTransfersCompleted
	if completed == 0 {
		state = BulkTransactionStateTransfersFailed
	}

	if err = a.SetGlobalState(ctx, state); err != nil {
		return "", err
	}

	return state, nil
}

// PrepareResponse moves the root to RESPONSE_PROCESSING and builds the caller response.
func (a *BulkTransactionAggregate) PrepareResponse(ctx context.Context) (BulkTransactionResponse, error) {
	if err := a.requireGlobalState(
		BulkTransactionStateTransfersCompleted,
		BulkTransactionStateTransfersFailed,
	); err != nil {
		return BulkTransactionResponse{}, err
	}
	if err := a.SetGlobalState(ctx, BulkTransactionStateResponseProcessing); err != nil {
		return BulkTransactionResponse{}, err
	}

	return a.ToBulkResponse(ctx)
}

func (a *BulkTransactionAggregate) ResponseSent(ctx context.Context) error {
	if err := a.requireGlobalState(BulkTransactionStateResponseProcessing); err != nil {
		return err
	}
	return a.SetGlobalState(ctx, BulkTransactionStateResponseSent)
}

func resultLastError(lastError *LastError, errorInformation *ErrorInformation, phase string) *LastError {
	out := LastError{MojaloopError: errorInformation}
	if lastError != nil {
		out = *lastError
	}
	out.OccurredAtPhase = phase
	return &out
}
