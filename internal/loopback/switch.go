// Package loopback answers outbound requests in-process. It stands in for
// the payment switch and the caller when the connector runs on its own:
// every request is answered by publishing the matching callback or
// acceptance command back onto the bus.
package loopback

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

const (
	errorCodeValidation    = "3100"
	errorCodePartyNotFound = "3204"
	errorCodeQuoteRejected = "5103"

	preimageSize = 32
)

type Config struct {
	FspID              string `envconfig:"FSP_ID" default:"loopbackfsp"`
	PayeeFspFee        string `envconfig:"PAYEE_FSP_FEE" default:"0"`
	UnknownPartyPrefix string `envconfig:"UNKNOWN_PARTY_PREFIX" default:"unknown"`
	RejectQuoteNote    string `envconfig:"REJECT_QUOTE_NOTE" default:"reject"`
	AnswerAcceptance   bool   `envconfig:"ANSWER_ACCEPTANCE" default:"true"`
	AcceptParties      bool   `envconfig:"ACCEPT_PARTIES" default:"true"`
	AcceptQuotes       bool   `envconfig:"ACCEPT_QUOTES" default:"true"`
}

// Switch resolves every party to Config.FspID unless the identifier starts
// with UnknownPartyPrefix. Quote lines whose note equals RejectQuoteNote are
// rejected; every other line is quoted at its requested amount and every
// transfer is committed. Acceptance requests are answered with
// AcceptParties and AcceptQuotes unless AnswerAcceptance is off, in which
// case the caller decides through the HTTP API.
type Switch struct {
	config    Config
	publisher command.Publisher
	logger    core.Logger
}

func NewSwitch(config Config, publisher command.Publisher, logger core.Logger) *Switch {
	return &Switch{
		config:    config,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Switch) publish(ctx context.Context, bulkID string, name command.CommandType, content any) error {
	msg, err := command.NewMessage(bulkID, name, content)
	if err != nil {
		return err
	}

	if err = s.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

func (s *Switch) RequestPartyInfo(ctx context.Context, bulkID string, req core.PartyLookupRequest) error {
	result := core.PartyResult{CurrentState: "COMPLETED"}

	if s.config.UnknownPartyPrefix != "" && strings.HasPrefix(req.PartyIDInfo.PartyIdentifier, s.config.UnknownPartyPrefix) {
		result.CurrentState = "ERROR_OCCURRED"
		result.ErrorInformation = &core.ErrorInformation{
			ErrorCode:        errorCodePartyNotFound,
			ErrorDescription: "Party not found",
		}
	} else {
		info := req.PartyIDInfo
		if info.FspID == "" {
			info.FspID = s.config.FspID
		}
		result.Party = &core.Party{PartyIDInfo: info}
	}

	s.logger.DebugContext(ctx, "party lookup answered",
		"bulkTransactionId", bulkID,
		"individualTransferId", req.IndividualTransferID,
		"resolved", result.Party != nil,
	)

	return s.publish(ctx, bulkID, command.ProcessPartyInfoCallback, command.PartyInfoCallback{
		IndividualTransferID: req.IndividualTransferID,
		PartyResult:          result,
	})
}

func (s *Switch) RequestBulkQuotes(ctx context.Context, bulkID string, req command.BulkQuotesRequestedContent) error {
	resp := core.BulkQuotesResponse{
		BulkQuoteID:            req.Request.BulkQuoteID,
		CurrentState:           "COMPLETED",
		IndividualQuoteResults: make([]core.IndividualQuoteResult, 0, len(req.Request.IndividualQuotes)),
	}

	for _, quote := range req.Request.IndividualQuotes {
		if s.config.RejectQuoteNote != "" && quote.Note == s.config.RejectQuoteNote {
			resp.IndividualQuoteResults = append(resp.IndividualQuoteResults, core.IndividualQuoteResult{
				QuoteID: quote.QuoteID,
				ErrorInformation: &core.ErrorInformation{
					ErrorCode:        errorCodeQuoteRejected,
					ErrorDescription: "Quote rejected by payee FSP",
				},
			})
			continue
		}

		packet, condition, err := newLock(quote.QuoteID)
		if err != nil {
			return err
		}

		resp.IndividualQuoteResults = append(resp.IndividualQuoteResults, core.IndividualQuoteResult{
			QuoteID:            quote.QuoteID,
			TransferAmount:     &core.Money{Currency: quote.Currency, Amount: quote.Amount},
			PayeeReceiveAmount: &core.Money{Currency: quote.Currency, Amount: quote.Amount},
			PayeeFspFee:        &core.Money{Currency: quote.Currency, Amount: s.config.PayeeFspFee},
			IlpPacket:          packet,
			Condition:          condition,
		})
	}

	s.logger.DebugContext(ctx, "bulk quotes answered",
		"bulkTransactionId", bulkID,
		"bulkBatchId", req.BulkBatchID,
		"counterparty", req.Counterparty,
	)

	return s.publish(ctx, bulkID, command.ProcessBulkQuotesCallback, command.BulkQuotesCallback{
		BulkBatchID:        req.BulkBatchID,
		BulkQuotesResponse: &resp,
	})
}

func (s *Switch) RequestBulkTransfers(ctx context.Context, bulkID string, req command.BulkTransfersRequestedContent) error {
	resp := core.BulkTransfersResponse{
		BulkTransferID:            req.Request.BulkTransferID,
		CurrentState:              "COMPLETED",
		IndividualTransferResults: make([]core.IndividualTransferResult, 0, len(req.Request.IndividualTransfers)),
	}

	for _, transfer := range req.Request.IndividualTransfers {
		fulfilment, err := fulfil(transfer.IlpPacket, transfer.Condition)
		if err != nil {
			s.logger.WarnContext(ctx, "transfer condition not met",
				"bulkTransactionId", bulkID,
				"transferId", transfer.TransferID,
				"error", err,
			)
			resp.IndividualTransferResults = append(resp.IndividualTransferResults, core.IndividualTransferResult{
				TransferID: transfer.TransferID,
				ErrorInformation: &core.ErrorInformation{
					ErrorCode:        errorCodeValidation,
					ErrorDescription: "Invalid fulfilment",
				},
			})
			continue
		}

		resp.IndividualTransferResults = append(resp.IndividualTransferResults, core.IndividualTransferResult{
			TransferID: transfer.TransferID,
			Fulfilment: fulfilment,
		})
	}

	s.logger.DebugContext(ctx, "bulk transfers answered",
		"bulkTransactionId", bulkID,
		"bulkBatchId", req.BulkBatchID,
		"counterparty", req.Counterparty,
	)

	return s.publish(ctx, bulkID, command.ProcessBulkTransfersCallback, command.BulkTransfersCallback{
		BulkBatchID:           req.BulkBatchID,
		BulkTransfersResponse: &resp,
	})
}

func (s *Switch) RequestPartyAcceptance(ctx context.Context, bulkID string, req command.AcceptanceRequested) error {
	if !s.config.AnswerAcceptance {
		s.awaitCaller(ctx, bulkID, "party", req)
		return nil
	}
	return s.publish(ctx, bulkID, command.ProcessSDKOutboundBulkAcceptPartyInfo, decide(req, s.config.AcceptParties))
}

func (s *Switch) RequestQuoteAcceptance(ctx context.Context, bulkID string, req command.AcceptanceRequested) error {
	if !s.config.AnswerAcceptance {
		s.awaitCaller(ctx, bulkID, "quote", req)
		return nil
	}
	return s.publish(ctx, bulkID, command.ProcessSDKOutboundBulkAcceptQuote, decide(req, s.config.AcceptQuotes))
}

func (s *Switch) awaitCaller(ctx context.Context, bulkID, phase string, req command.AcceptanceRequested) {
	s.logger.InfoContext(ctx, "waiting for caller acceptance",
		"bulkTransactionId", bulkID,
		"bulkHomeTransactionId", req.BulkHomeTransactionID,
		"phase", phase,
		"individualTransfers", len(req.IndividualTransfers),
	)
}

func decide(req command.AcceptanceRequested, accept bool) command.AcceptanceDecisions {
	decisions := command.AcceptanceDecisions{
		IndividualTransfers: make([]core.AcceptanceDecision, 0, len(req.IndividualTransfers)),
	}
	for _, transfer := range req.IndividualTransfers {
		decisions.IndividualTransfers = append(decisions.IndividualTransfers, core.AcceptanceDecision{
			IndividualTransferID: transfer.TransferID,
			Accept:               accept,
		})
	}
	return decisions
}

// newLock draws a random preimage for a quote. The ILP packet carries the
// preimage ahead of the quote id; the condition is the base64url sha256 of
// the preimage.
func newLock(quoteID string) (string, string, error) {
	preimage := make([]byte, preimageSize, preimageSize+len(quoteID))
	if _, err := rand.Read(preimage); err != nil {
		return "", "", fmt.Errorf("failed to generate preimage: %w", err)
	}

	sum := sha256.Sum256(preimage)
	packet := append(preimage, quoteID...)
	return base64.RawURLEncoding.EncodeToString(packet), base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// fulfil recovers the preimage from packet and returns it as the fulfilment
// when it hashes to condition.
func fulfil(packet, condition string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(packet)
	if err != nil {
		return "", fmt.Errorf("failed to decode ilp packet: %w", err)
	}
	if len(data) < preimageSize {
		return "", fmt.Errorf("ilp packet carries %d bytes, want at least %d", len(data), preimageSize)
	}

	preimage := data[:preimageSize]
	sum := sha256.Sum256(preimage)
	if base64.RawURLEncoding.EncodeToString(sum[:]) != condition {
		return "", errors.New("fulfilment does not match condition")
	}
	return base64.RawURLEncoding.EncodeToString(preimage), nil
}
