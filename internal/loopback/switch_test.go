package loopback

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

func testConfig() Config {
	return Config{
		FspID:              "loopbackfsp",
		PayeeFspFee:        "0.5",
		UnknownPartyPrefix: "unknown",
		RejectQuoteNote:    "reject",
		AnswerAcceptance:   true,
		AcceptParties:      true,
		AcceptQuotes:       false,
	}
}

// capture returns a publisher that decodes the single published command into out.
func capture(t *testing.T, name command.CommandType, out any) command.Publisher {
	t.Helper()

	publisher := command.NewMockPublisher(gomock.NewController(t))
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg command.Message) error {
			require.Equal(t, string(name), msg.Name)
			require.Equal(t, "bulk-1", msg.Key)
			return msg.Decode(out)
		})
	return publisher
}

func TestSwitch_RequestPartyInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		info         core.PartyIDInfo
		expectedFsp  string
		expectedCode string
	}{
		{
			name:        "resolves_to_configured_fsp",
			info:        core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "123"},
			expectedFsp: "loopbackfsp",
		},
		{
			name:        "keeps_requested_fsp",
			info:        core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "123", FspID: "payeefsp"},
			expectedFsp: "payeefsp",
		},
		{
			name:         "unknown_party",
			info:         core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "unknown-7"},
			expectedCode: errorCodePartyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var callback command.PartyInfoCallback
			s := NewSwitch(testConfig(), capture(t, command.ProcessPartyInfoCallback, &callback), slog.New(slog.DiscardHandler))

			err := s.RequestPartyInfo(context.Background(), "bulk-1", core.PartyLookupRequest{
				IndividualTransferID: "t1",
				PartyIDInfo:          tt.info,
			})
			require.NoError(t, err)
			require.Equal(t, "t1", callback.IndividualTransferID)

			if tt.expectedCode != "" {
				require.Nil(t, callback.PartyResult.Party)
				require.NotNil(t, callback.PartyResult.ErrorInformation)
				require.Equal(t, tt.expectedCode, callback.PartyResult.ErrorInformation.ErrorCode)
				return
			}

			require.NotNil(t, callback.PartyResult.Party)
			require.Equal(t, tt.expectedFsp, callback.PartyResult.Party.CounterpartyID())
		})
	}
}

func TestSwitch_RequestBulkQuotes(t *testing.T) {
	t.Parallel()

	var callback command.BulkQuotesCallback
	s := NewSwitch(testConfig(), capture(t, command.ProcessBulkQuotesCallback, &callback), slog.New(slog.DiscardHandler))

	err := s.RequestBulkQuotes(context.Background(), "bulk-1", command.BulkQuotesRequestedContent{
		BulkBatchID:  "batch-1",
		Counterparty: "payeefsp",
		Request: core.BulkQuotesRequest{
			BulkQuoteID: "bq-1",
			IndividualQuotes: []core.IndividualQuote{
				{QuoteID: "q1", Currency: "EUR", Amount: "10"},
				{QuoteID: "q2", Currency: "EUR", Amount: "20", Note: "reject"},
			},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "batch-1", callback.BulkBatchID)
	require.NotNil(t, callback.BulkQuotesResponse)
	require.Equal(t, "bq-1", callback.BulkQuotesResponse.BulkQuoteID)

	results := callback.BulkQuotesResponse.IndividualQuoteResults
	require.Len(t, results, 2)

	require.False(t, results[0].Failed())
	require.Equal(t, "q1", results[0].QuoteID)
	require.Equal(t, &core.Money{Currency: "EUR", Amount: "10"}, results[0].TransferAmount)
	require.Equal(t, &core.Money{Currency: "EUR", Amount: "0.5"}, results[0].PayeeFspFee)
	require.NotEmpty(t, results[0].Condition)
	require.NotEmpty(t, results[0].IlpPacket)

	require.True(t, results[1].Failed())
	require.Equal(t, errorCodeQuoteRejected, results[1].ErrorInformation.ErrorCode)
}

func TestSwitch_RequestBulkTransfers(t *testing.T) {
	t.Parallel()

	var quotes command.BulkQuotesCallback
	s := NewSwitch(testConfig(), capture(t, command.ProcessBulkQuotesCallback, &quotes), slog.New(slog.DiscardHandler))

	err := s.RequestBulkQuotes(context.Background(), "bulk-1", command.BulkQuotesRequestedContent{
		BulkBatchID: "batch-1",
		Request: core.BulkQuotesRequest{
			BulkQuoteID: "bq-1",
			IndividualQuotes: []core.IndividualQuote{
				{QuoteID: "q1", Currency: "EUR", Amount: "10"},
				{QuoteID: "q2", Currency: "EUR", Amount: "20"},
			},
		},
	})
	require.NoError(t, err)

	q1 := quotes.BulkQuotesResponse.IndividualQuoteResults[0]
	q2 := quotes.BulkQuotesResponse.IndividualQuoteResults[1]
	require.NotEqual(t, q1.Condition, q2.Condition)

	var callback command.BulkTransfersCallback
	s = NewSwitch(testConfig(), capture(t, command.ProcessBulkTransfersCallback, &callback), slog.New(slog.DiscardHandler))

	err = s.RequestBulkTransfers(context.Background(), "bulk-1", command.BulkTransfersRequestedContent{
		BulkBatchID: "batch-1",
		Request: core.BulkTransfersRequest{
			BulkTransferID: "bt-1",
			IndividualTransfers: []core.IndividualBulkTransfer{
				{TransferID: "x1", IlpPacket: q1.IlpPacket, Condition: q1.Condition},
				{TransferID: "x2", IlpPacket: q2.IlpPacket, Condition: q1.Condition},
				{TransferID: "x3", IlpPacket: "not base64!", Condition: q1.Condition},
			},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "bt-1", callback.BulkTransfersResponse.BulkTransferID)
	results := callback.BulkTransfersResponse.IndividualTransferResults
	require.Len(t, results, 3)

	require.False(t, results[0].Failed())
	preimage, err := base64.RawURLEncoding.DecodeString(results[0].Fulfilment)
	require.NoError(t, err)
	sum := sha256.Sum256(preimage)
	require.Equal(t, q1.Condition, base64.RawURLEncoding.EncodeToString(sum[:]))

	for _, result := range results[1:] {
		require.True(t, result.Failed())
		require.Equal(t, errorCodeValidation, result.ErrorInformation.ErrorCode)
	}
}

func TestSwitch_Acceptance(t *testing.T) {
	t.Parallel()

	req := command.AcceptanceRequested{
		BulkHomeTransactionID: "home-1",
		IndividualTransfers: []core.IndividualTransferResponse{
			{TransferID: "t1"},
			{TransferID: "t2"},
		},
	}

	t.Run("parties", func(t *testing.T) {
		t.Parallel()

		var decisions command.AcceptanceDecisions
		s := NewSwitch(testConfig(), capture(t, command.ProcessSDKOutboundBulkAcceptPartyInfo, &decisions), slog.New(slog.DiscardHandler))

		require.NoError(t, s.RequestPartyAcceptance(context.Background(), "bulk-1", req))
		require.Equal(t, []core.AcceptanceDecision{
			{IndividualTransferID: "t1", Accept: true},
			{IndividualTransferID: "t2", Accept: true},
		}, decisions.IndividualTransfers)
	})

	t.Run("quotes", func(t *testing.T) {
		t.Parallel()

		var decisions command.AcceptanceDecisions
		s := NewSwitch(testConfig(), capture(t, command.ProcessSDKOutboundBulkAcceptQuote, &decisions), slog.New(slog.DiscardHandler))

		require.NoError(t, s.RequestQuoteAcceptance(context.Background(), "bulk-1", req))
		require.Equal(t, []core.AcceptanceDecision{
			{IndividualTransferID: "t1", Accept: false},
			{IndividualTransferID: "t2", Accept: false},
		}, decisions.IndividualTransfers)
	})
}

func TestSwitch_AwaitsCallerAcceptance(t *testing.T) {
	t.Parallel()

	config := testConfig()
	config.AnswerAcceptance = false

	// No publish is expected.
	publisher := command.NewMockPublisher(gomock.NewController(t))
	s := NewSwitch(config, publisher, slog.New(slog.DiscardHandler))

	req := command.AcceptanceRequested{
		IndividualTransfers: []core.IndividualTransferResponse{{TransferID: "t1"}},
	}
	require.NoError(t, s.RequestPartyAcceptance(context.Background(), "bulk-1", req))
	require.NoError(t, s.RequestQuoteAcceptance(context.Background(), "bulk-1", req))
}
