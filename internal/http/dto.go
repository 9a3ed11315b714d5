package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AcceptanceRequest carries the caller's decisions for a bulk transaction
// waiting on party or quote acceptance. Every item must decide the same
// phase.
type AcceptanceRequest struct {
	IndividualTransfers []AcceptanceItem `json:"individualTransfers" validate:"required,min=1,dive"`
}

type AcceptanceItem struct {
	TransferID  string `json:"transferId" validate:"required"`
	AcceptParty *bool  `json:"acceptParty,omitempty" validate:"required_without=AcceptQuote,excluded_with=AcceptQuote"`
	AcceptQuote *bool  `json:"acceptQuote,omitempty" validate:"required_without=AcceptParty,excluded_with=AcceptParty"`
}

var ErrMixedAcceptance = errors.New("acceptParty and acceptQuote cannot be mixed in one request")

// ToDomain returns the command answering the pending acceptance and the
// state the bulk transaction must be in for it to apply.
func (req AcceptanceRequest) ToDomain() (command.CommandType, core.BulkTransactionInternalState, command.AcceptanceDecisions, error) {
	if err := validate.Struct(req); err != nil {
		return "", "", command.AcceptanceDecisions{}, fmt.Errorf("validation failed: %w", err)
	}

	parties := req.IndividualTransfers[0].AcceptParty != nil

	decisions := command.AcceptanceDecisions{
		IndividualTransfers: make([]core.AcceptanceDecision, 0, len(req.IndividualTransfers)),
	}
	for _, item := range req.IndividualTransfers {
		if (item.AcceptParty != nil) != parties {
			return "", "", command.AcceptanceDecisions{}, ErrMixedAcceptance
		}

		accept := item.AcceptQuote
		if parties {
			accept = item.AcceptParty
		}
		decisions.IndividualTransfers = append(decisions.IndividualTransfers, core.AcceptanceDecision{
			IndividualTransferID: item.TransferID,
			Accept:               *accept,
		})
	}

	if parties {
		return command.ProcessSDKOutboundBulkAcceptPartyInfo, core.BulkTransactionStateDiscoveryAcceptancePending, decisions, nil
	}
	return command.ProcessSDKOutboundBulkAcceptQuote, core.BulkTransactionStateAgreementAcceptancePending, decisions, nil
}

type SubmitResponse struct {
	BulkTransactionID string `json:"bulkTransactionId"`
}

type StatusResponse struct {
	BulkTransactionID     string                            `json:"bulkTransactionId"`
	BulkHomeTransactionID string                            `json:"bulkHomeTransactionID"`
	CurrentState          core.BulkTransactionInternalState `json:"currentState"`
	TotalCount            int64                             `json:"totalCount"`
	SuccessCount          int64                             `json:"successCount"`
	FailedCount           int64                             `json:"failedCount"`
}
