package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// generateBatchMap groups leg ids by destination counterparty. Each group
// holds at most maxItemsPerBatch legs and becomes exactly one batch. When
// requiredState is set only legs in that state are grouped. Legs without a
// resolved counterparty are logged and left out.
func (a *BulkTransactionAggregate) generateBatchMap(
	ctx context.Context,
	maxItemsPerBatch int,
	requiredState IndividualTransferInternalState,
) (map[string][][]string, error) {
	if maxItemsPerBatch < 1 {
		return nil, fmt.Errorf("max items per batch must be positive, got %d", maxItemsPerBatch)
	}

	batchIDs, err := a.BulkBatchIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(batchIDs) > 0 {
		return nil, fmt.Errorf("bulk batches of %s: %w", a.root.ID(), ErrDuplicate)
	}

	legs, err := a.IndividualTransfers(ctx)
	if err != nil {
		return nil, err
	}

	batchMap := map[string][][]string{}
	for _, leg := range legs {
		if requiredState != "" && leg.TransferState() != requiredState {
			continue
		}

		counterparty := leg.Counterparty()
		if counterparty == "" {
			a.logger.WarnContext(ctx, "individual transfer has no resolved counterparty, leaving it out of batching",
				"individualTransferId", leg.ID(),
				"state", leg.TransferState(),
			)
			continue
		}

		groups := batchMap[counterparty]
		if len(groups) == 0 || len(groups[len(groups)-1]) >= maxItemsPerBatch {
			groups = append(groups, make([]string, 0, maxItemsPerBatch))
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], leg.ID())
		batchMap[counterparty] = groups
	}

	return batchMap, nil
}

// GenerateBulkQuoteBatches builds one batch per counterparty group of
// DISCOVERY_ACCEPTED legs and returns the number of batches created. Batches
// are generated once per bulk transaction.
func (a *BulkTransactionAggregate) GenerateBulkQuoteBatches(ctx context.Context, maxItemsPerBatch int) (int, error) {
	quotesTotal, err := a.GetBulkQuotesTotalCount(ctx)
	if err != nil {
		return 0, err
	}
	if quotesTotal != 0 {
		return 0, fmt.Errorf("bulk quote batches of %s: %w", a.root.ID(), ErrDuplicate)
	}

	batchMap, err := a.generateBatchMap(ctx, maxItemsPerBatch, IndividualTransferStateDiscoveryAccepted)
	if err != nil {
		return 0, err
	}

	counterparties := make([]string, 0, len(batchMap))
	for counterparty := range batchMap {
		counterparties = append(counterparties, counterparty)
	}
	slices.Sort(counterparties)

	var count int
	for _, counterparty := range counterparties {
		for _, group := range batchMap[counterparty] {
			batch := NewBulkBatch(
				a.root.ID(),
				counterparty,
				a.root.BulkHomeTransactionID(),
				a.root.From(),
				a.root.Extensions(),
			)

			legs := make([]*IndividualTransfer, 0, len(group))
			for _, legID := range group {
				leg, err := a.GetIndividualTransfer(ctx, legID)
				if err != nil {
					return count, err
				}

				quote := individualQuoteFromTransfer(leg)
				if err = batch.AddIndividualQuote(leg.ID(), quote); err != nil {
					return count, err
				}
				if err = leg.SetBatchID(batch.ID()); err != nil {
					return count, err
				}
				leg.SetQuote(quote.QuoteID)
				legs = append(legs, leg)
			}

			if err = a.SetBulkBatch(ctx, batch); err != nil {
				return count, err
			}
			for _, leg := range legs {
				if err = a.SetIndividualTransfer(ctx, leg); err != nil {
					return count, err
				}
			}
			count++

			a.logger.DebugContext(ctx, "bulk quote batch generated",
				"bulkBatchId", batch.ID(),
				"counterparty", counterparty,
				"individualTransfers", len(group),
			)
		}
	}

	if err = a.SetBulkQuotesTotalCount(ctx, int64(count)); err != nil {
		return count, err
	}

	return count, nil
}

// individualQuoteFromTransfer maps the party resolved by discovery onto a quote line item.
func individualQuoteFromTransfer(leg *IndividualTransfer) IndividualQuote {
	req := leg.Request()
	party := *leg.PartyResponse().Party

	return IndividualQuote{
		QuoteID: uuid.NewString(),
		To: Party{
			PartyIDInfo: PartyIDInfo{
				PartyIDType:      party.PartyIDInfo.PartyIDType,
				PartyIdentifier:  party.PartyIDInfo.PartyIdentifier,
				PartySubIDOrType: party.PartyIDInfo.PartySubIDOrType,
				FspID:            party.PartyIDInfo.FspID,
			},
			MerchantClassificationCode: party.MerchantClassificationCode,
			Name:                       party.Name,
			DisplayName:                party.DisplayName,
			FirstName:                  party.FirstName,
			MiddleName:                 party.MiddleName,
			LastName:                   party.LastName,
			DateOfBirth:                party.DateOfBirth,
		},
		AmountType: req.AmountType,
		Currency:   req.Currency,
		Amount:     req.Amount,
		Note:       req.Note,
		Extensions: req.QuoteExtensions,
	}
}

// GenerateBulkTransferBatches fills the outgoing transfer document of every
// AGREEMENT_COMPLETED batch with one line per accepted leg and returns the
// number of batches that received at least one line. Zero means no batch is
// ready yet.
func (a *BulkTransactionAggregate) GenerateBulkTransferBatches(ctx context.Context) (int, error) {
	transfersTotal, err := a.GetBulkTransfersTotalCount(ctx)
	if err != nil {
		return 0, err
	}
	if transfersTotal != 0 {
		return 0, fmt.Errorf("bulk transfer batches of %s: %w", a.root.ID(), ErrDuplicate)
	}

	batches, err := a.BulkBatches(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	for _, batch := range batches {
		if batch.BatchState() != BulkBatchStateAgreementCompleted {
			continue
		}

		quotesResponse := batch.BulkQuotesResponse()
		if quotesResponse == nil {
			continue
		}

		for _, quoteResult := range quotesResponse.IndividualQuoteResults {
			if quoteResult.Failed() {
				continue
			}

			legID, ok := batch.ReferenceIDByQuoteID(quoteResult.QuoteID)
			if !ok {
				a.logger.WarnContext(ctx, "quote result does not belong to batch",
					"bulkBatchId", batch.ID(),
					"quoteId", quoteResult.QuoteID,
				)
				continue
			}

			leg, err := a.GetIndividualTransfer(ctx, legID)
			if err != nil {
				return count, err
			}
			if leg.TransferState() != IndividualTransferStateAgreementAccepted {
				continue
			}

			transfer, err := individualTransferFromQuote(leg)
			if err != nil {
				return count, err
			}
			if err = batch.AddIndividualTransfer(leg.ID(), transfer); err != nil {
				return count, err
			}

			leg.SetTransfer(transfer.TransferID)
			if err = a.SetIndividualTransfer(ctx, leg); err != nil {
				return count, err
			}
		}

		if len(batch.BulkTransfersRequest().IndividualTransfers) == 0 {
			continue
		}

		if err = a.SetBulkBatch(ctx, batch); err != nil {
			return count, err
		}
		if _, err = a.IncrementBulkTransfersTotalCount(ctx, 1); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// individualTransferFromQuote builds a transfer line from an accepted quote.
// An accepted quote always carries a condition and an ILP packet.
func individualTransferFromQuote(leg *IndividualTransfer) (IndividualBulkTransfer, error) {
	quote := leg.QuoteResponse()
	if quote == nil || quote.Condition == "" || quote.IlpPacket == "" {
		return IndividualBulkTransfer{}, fmt.Errorf("individual transfer %s accepted without condition or ilp packet: %w", leg.ID(), ErrDataInvariant)
	}

	req := leg.Request()
	currency, amount := req.Currency, req.Amount
	if quote.TransferAmount != nil {
		currency, amount = quote.TransferAmount.Currency, quote.TransferAmount.Amount
	}

	to := req.To
	if party := leg.PartyResponse(); party != nil && party.Party != nil {
		to = *party.Party
	}

	return IndividualBulkTransfer{
		TransferID: uuid.NewString(),
		To:         to,
		AmountType: req.AmountType,
		Currency:   currency,
		Amount:     amount,
		IlpPacket:  quote.IlpPacket,
		Condition:  quote.Condition,
		Note:       req.Note,
		Extensions: req.TransferExtensions,
	}, nil
}
