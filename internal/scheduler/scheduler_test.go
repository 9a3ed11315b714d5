package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

type mocks struct {
	publisher *command.MockPublisher
	outbound  *MockOutbound
	sink      *MockResponseSink
	metrics   *MockResponseMetrics
}

func newTestScheduler(t *testing.T, cacheSize int) (*Scheduler, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		publisher: command.NewMockPublisher(ctrl),
		outbound:  NewMockOutbound(ctrl),
		sink:      NewMockResponseSink(ctrl),
		metrics:   NewMockResponseMetrics(ctrl),
	}

	s, err := New(Config{SentResponseCacheSize: cacheSize}, m.publisher, m.outbound, m.sink, m.metrics, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return s, m
}

func event(t *testing.T, name command.EventType, content any) command.Message {
	t.Helper()

	msg, err := command.NewMessage("bulk-1", name, content)
	require.NoError(t, err)
	return msg
}

func expectNext(m mocks, name command.CommandType) {
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg command.Message) error {
			if msg.Name != string(name) || msg.Key != "bulk-1" {
				return errors.New("unexpected command " + msg.Name)
			}
			return nil
		})
}

func TestScheduler_Handle(t *testing.T) {
	t.Parallel()

	decisions := command.AcceptanceDecisions{
		IndividualTransfers: []core.AcceptanceDecision{{IndividualTransferID: "t1", Accept: true}},
	}

	tests := []struct {
		name  string
		event command.EventType
		body  any
		setup func(m mocks)
	}{
		{
			name:  "request_processed_starts_discovery",
			event: command.SDKOutboundBulkRequestProcessed,
			body:  command.BulkRequestProcessed{BulkHomeTransactionID: "h1", IndividualTransfers: 2},
			setup: func(m mocks) { expectNext(m, command.ProcessSDKOutboundBulkPartyInfoRequest) },
		},
		{
			name:  "party_info_requested_goes_outbound",
			event: command.PartyInfoRequested,
			body:  core.PartyLookupRequest{IndividualTransferID: "t1"},
			setup: func(m mocks) {
				m.outbound.EXPECT().RequestPartyInfo(gomock.Any(), "bulk-1", core.PartyLookupRequest{IndividualTransferID: "t1"}).Return(nil)
			},
		},
		{
			name:  "auto_accept_party_forwards_decisions",
			event: command.SDKOutboundBulkAutoAcceptPartyInfoRequested,
			body:  decisions,
			setup: func(m mocks) {
				m.publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg command.Message) error {
						var got command.AcceptanceDecisions
						if err := msg.Decode(&got); err != nil {
							return err
						}
						if msg.Name != string(command.ProcessSDKOutboundBulkAcceptPartyInfo) || len(got.IndividualTransfers) != 1 {
							return errors.New("unexpected accept party command")
						}
						return nil
					})
			},
		},
		{
			name:  "party_acceptance_goes_outbound",
			event: command.SDKOutboundBulkAcceptPartyInfoRequested,
			body:  command.AcceptanceRequested{BulkHomeTransactionID: "h1"},
			setup: func(m mocks) {
				m.outbound.EXPECT().RequestPartyAcceptance(gomock.Any(), "bulk-1", command.AcceptanceRequested{BulkHomeTransactionID: "h1"}).Return(nil)
			},
		},
		{
			name:  "accept_party_processed_starts_agreement",
			event: command.SDKOutboundBulkAcceptPartyInfoProcessed,
			setup: func(m mocks) { expectNext(m, command.ProcessSDKOutboundBulkQuotesRequest) },
		},
		{
			name:  "bulk_quotes_requested_goes_outbound",
			event: command.BulkQuotesRequested,
			body:  command.BulkQuotesRequestedContent{BulkBatchID: "batch-1", Counterparty: "payeefsp"},
			setup: func(m mocks) {
				m.outbound.EXPECT().RequestBulkQuotes(gomock.Any(), "bulk-1", gomock.Any()).Return(nil)
			},
		},
		{
			name:  "auto_accept_quote_forwards_decisions",
			event: command.SDKOutboundBulkAutoAcceptQuoteRequested,
			body:  decisions,
			setup: func(m mocks) { expectNext(m, command.ProcessSDKOutboundBulkAcceptQuote) },
		},
		{
			name:  "quote_acceptance_goes_outbound",
			event: command.SDKOutboundBulkAcceptQuoteRequested,
			body:  command.AcceptanceRequested{BulkHomeTransactionID: "h1"},
			setup: func(m mocks) {
				m.outbound.EXPECT().RequestQuoteAcceptance(gomock.Any(), "bulk-1", gomock.Any()).Return(nil)
			},
		},
		{
			name:  "accept_quote_processed_starts_transfers",
			event: command.SDKOutboundBulkAcceptQuoteProcessed,
			setup: func(m mocks) { expectNext(m, command.ProcessSDKOutboundBulkTransfersRequest) },
		},
		{
			name:  "bulk_transfers_requested_goes_outbound",
			event: command.BulkTransfersRequested,
			body:  command.BulkTransfersRequestedContent{BulkBatchID: "batch-1"},
			setup: func(m mocks) {
				m.outbound.EXPECT().RequestBulkTransfers(gomock.Any(), "bulk-1", gomock.Any()).Return(nil)
			},
		},
		{
			name:  "transfers_processed_prepares_response",
			event: command.SDKOutboundBulkTransfersRequestProcessed,
			body:  command.TransfersProcessed{State: core.BulkTransactionStateTransfersCompleted},
			setup: func(m mocks) { expectNext(m, command.PrepareSDKOutboundBulkResponse) },
		},
		{
			name:  "progress_event_needs_no_follow_up",
			event: command.PartyInfoCallbackProcessed,
			body:  command.PartyInfoProcessed{IndividualTransferID: "t1"},
			setup: func(mocks) {},
		},
		{
			name:  "response_sent_processed_ends_saga",
			event: command.SDKOutboundBulkResponseSentProcessed,
			setup: func(mocks) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestScheduler(t, 8)
			tt.setup(m)

			err := s.Handle(context.Background(), event(t, tt.event, tt.body))
			require.NoError(t, err)
		})
	}
}

func TestScheduler_SendResponseOnce(t *testing.T) {
	t.Parallel()

	s, m := newTestScheduler(t, 8)

	resp := core.BulkTransactionResponse{
		BulkTransactionID: "bulk-1",
		CurrentState:      core.BulkResponseStateCompleted,
	}

	m.sink.EXPECT().Send(gomock.Any(), resp).Return(nil).Times(1)
	m.metrics.EXPECT().ObserveResponse("COMPLETED").Times(1)
	expectNext(m, command.ProcessSDKOutboundBulkResponseSent)

	msg := event(t, command.SDKOutboundBulkResponsePrepared, resp)
	require.NoError(t, s.Handle(context.Background(), msg))
	require.NoError(t, s.Handle(context.Background(), msg))
}

func TestScheduler_SendResponseFailure(t *testing.T) {
	t.Parallel()

	s, m := newTestScheduler(t, 8)

	sinkErr := errors.New("caller unreachable")
	m.sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(sinkErr)

	err := s.Handle(context.Background(), event(t, command.SDKOutboundBulkResponsePrepared, core.BulkTransactionResponse{}))
	require.ErrorIs(t, err, sinkErr)
}

func TestScheduler_Subscribe(t *testing.T) {
	t.Parallel()

	s, _ := newTestScheduler(t, 8)
	subscriber := NewMockSubscriber(gomock.NewController(t))

	cancelled := 0
	subscriber.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		Return(func() { cancelled++ }).
		Times(len(command.EventTypes))

	cancel := s.Subscribe(subscriber)
	cancel()

	require.Equal(t, len(command.EventTypes), cancelled)
}
