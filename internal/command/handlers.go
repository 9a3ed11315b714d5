package command

import (
	"context"
	"errors"
	"fmt"

	"bulkconnector/internal/core"
)

func publish(ctx context.Context, publisher Publisher, key string, name EventType, content any) error {
	msg, err := NewMessage(key, name, content)
	if err != nil {
		return err
	}

	if err = publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

func loadAggregate(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) (*core.BulkTransactionAggregate, error) {
	if msg.Key == "" {
		return nil, errors.New("message has no bulk transaction id")
	}
	return core.CreateFromRepo(ctx, options.Repository, msg.Key, logger)
}

func handleBulkRequest(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var req core.BulkTransactionRequest
	if err := msg.Decode(&req); err != nil {
		return err
	}
	if req.BulkTransactionID == "" {
		req.BulkTransactionID = msg.Key
	}

	agg, err := core.CreateFromRequest(ctx, options.Repository, req, logger)
	if err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkRequestProcessed, BulkRequestProcessed{
		BulkHomeTransactionID: req.BulkHomeTransactionID,
		IndividualTransfers:   len(req.IndividualTransfers),
	})
}

func handlePartyInfoRequest(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	lookups, progress, err := agg.StartDiscovery(ctx)
	if err != nil {
		return err
	}

	for _, lookup := range lookups {
		if err = publish(ctx, options.Publisher, agg.ID(), PartyInfoRequested, lookup); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "party lookups requested", "count", len(lookups))

	if progress.Complete() {
		return completeDiscovery(ctx, agg, options, progress)
	}
	return nil
}

func handlePartyInfoCallback(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var callback PartyInfoCallback
	if err := msg.Decode(&callback); err != nil {
		return err
	}

	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	progress, err := agg.ProcessPartyInfoCallback(ctx, callback.IndividualTransferID, callback.PartyResult)
	if err != nil {
		return err
	}
	if progress.Duplicate {
		return nil
	}

	leg, err := agg.GetIndividualTransfer(ctx, callback.IndividualTransferID)
	if err != nil {
		return err
	}

	err = publish(ctx, options.Publisher, agg.ID(), PartyInfoCallbackProcessed, PartyInfoProcessed{
		IndividualTransferID: leg.ID(),
		State:                leg.TransferState(),
	})
	if err != nil {
		return err
	}

	if progress.Complete() {
		return completeDiscovery(ctx, agg, options, progress)
	}
	return nil
}

func completeDiscovery(ctx context.Context, agg *core.BulkTransactionAggregate, options HandlerOptions, progress core.PhaseProgress) error {
	acceptance, err := agg.CompleteDiscovery(ctx)
	if err != nil {
		return err
	}

	if err = publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkPartyInfoRequestProcessed, progress); err != nil {
		return err
	}

	return publishAcceptance(ctx, agg, options, acceptance,
		SDKOutboundBulkAutoAcceptPartyInfoRequested,
		SDKOutboundBulkAcceptPartyInfoRequested,
	)
}

func publishAcceptance(
	ctx context.Context,
	agg *core.BulkTransactionAggregate,
	options HandlerOptions,
	acceptance core.Acceptance,
	autoEvent, pendingEvent EventType,
) error {
	if acceptance.AutoAccepted {
		return publish(ctx, options.Publisher, agg.ID(), autoEvent, AcceptanceDecisions{
			IndividualTransfers: acceptance.Decisions,
		})
	}

	return publish(ctx, options.Publisher, agg.ID(), pendingEvent, AcceptanceRequested{
		BulkHomeTransactionID: agg.Root().BulkHomeTransactionID(),
		IndividualTransfers:   acceptance.Pending,
	})
}

func handleAcceptPartyInfo(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var decisions AcceptanceDecisions
	if err := msg.Decode(&decisions); err != nil {
		return err
	}

	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	if err = agg.AcceptParty(ctx, decisions.IndividualTransfers); err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkAcceptPartyInfoProcessed, nil)
}

func handleBulkQuotesRequest(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	batches, err := agg.StartAgreement(ctx, options.MaxItemsPerBatch)
	if err != nil {
		return err
	}

	for _, batch := range batches {
		err = publish(ctx, options.Publisher, agg.ID(), BulkQuotesRequested, BulkQuotesRequestedContent{
			BulkBatchID:  batch.ID(),
			Counterparty: batch.Counterparty(),
			Request:      batch.BulkQuotesRequest(),
		})
		if err != nil {
			return err
		}
	}

	progress, err := agg.AgreementProgress(ctx)
	if err != nil {
		return err
	}
	if progress.Complete() {
		return completeAgreement(ctx, agg, options, progress)
	}
	return nil
}

func handleBulkQuotesCallback(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var callback BulkQuotesCallback
	if err := msg.Decode(&callback); err != nil {
		return err
	}

	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	progress, err := agg.ProcessBulkQuotesCallback(ctx, callback.BulkBatchID, callback.BulkQuotesResponse, callback.ErrorInformation)
	if err != nil {
		return err
	}
	if progress.Duplicate {
		return nil
	}

	if err = publishBatchProcessed(ctx, agg, options, callback.BulkBatchID, BulkQuotesCallbackProcessed); err != nil {
		return err
	}

	if progress.Complete() {
		return completeAgreement(ctx, agg, options, progress)
	}
	return nil
}

func publishBatchProcessed(ctx context.Context, agg *core.BulkTransactionAggregate, options HandlerOptions, batchID string, name EventType) error {
	batch, err := agg.GetBulkBatch(ctx, batchID)
	if err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), name, BatchProcessed{
		BulkBatchID: batch.ID(),
		State:       batch.BatchState(),
	})
}

func completeAgreement(ctx context.Context, agg *core.BulkTransactionAggregate, options HandlerOptions, progress core.PhaseProgress) error {
	acceptance, err := agg.CompleteAgreement(ctx)
	if err != nil {
		return err
	}

	if err = publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkQuotesRequestProcessed, progress); err != nil {
		return err
	}

	return publishAcceptance(ctx, agg, options, acceptance,
		SDKOutboundBulkAutoAcceptQuoteRequested,
		SDKOutboundBulkAcceptQuoteRequested,
	)
}

func handleAcceptQuote(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var decisions AcceptanceDecisions
	if err := msg.Decode(&decisions); err != nil {
		return err
	}

	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	if err = agg.AcceptQuote(ctx, decisions.IndividualTransfers); err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkAcceptQuoteProcessed, nil)
}

func handleBulkTransfersRequest(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	batches, err := agg.StartTransfers(ctx)
	if err != nil {
		return err
	}

	for _, batch := range batches {
		err = publish(ctx, options.Publisher, agg.ID(), BulkTransfersRequested, BulkTransfersRequestedContent{
			BulkBatchID:  batch.ID(),
			Counterparty: batch.Counterparty(),
			Request:      batch.BulkTransfersRequest(),
		})
		if err != nil {
			return err
		}
	}

	progress, err := agg.TransfersProgress(ctx)
	if err != nil {
		return err
	}
	if progress.Complete() {
		return completeTransfers(ctx, agg, options, progress)
	}
	return nil
}

func handleBulkTransfersCallback(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	var callback BulkTransfersCallback
	if err := msg.Decode(&callback); err != nil {
		return err
	}

	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	progress, err := agg.ProcessBulkTransfersCallback(ctx, callback.BulkBatchID, callback.BulkTransfersResponse, callback.ErrorInformation)
	if err != nil {
		return err
	}
	if progress.Duplicate {
		return nil
	}

	if err = publishBatchProcessed(ctx, agg, options, callback.BulkBatchID, BulkTransfersCallbackProcessed); err != nil {
		return err
	}

	if progress.Complete() {
		return completeTransfers(ctx, agg, options, progress)
	}
	return nil
}

func completeTransfers(ctx context.Context, agg *core.BulkTransactionAggregate, options HandlerOptions, progress core.PhaseProgress) error {
	state, err := agg.CompleteTransfers(ctx)
	if err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkTransfersRequestProcessed, TransfersProcessed{
		State:    state,
		Progress: progress,
	})
}

func handlePrepareResponse(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	resp, err := agg.PrepareResponse(ctx)
	if err != nil {
		return err
	}

	return publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkResponsePrepared, resp)
}

func handleResponseSent(ctx context.Context, msg Message, options HandlerOptions, logger core.Logger) error {
	agg, err := loadAggregate(ctx, msg, options, logger)
	if err != nil {
		return err
	}

	if err = agg.ResponseSent(ctx); err != nil {
		return err
	}

	if err = publish(ctx, options.Publisher, agg.ID(), SDKOutboundBulkResponseSentProcessed, nil); err != nil {
		return err
	}

	if options.CleanupOnResponseSent {
		return agg.Destroy(ctx)
	}
	return nil
}
