package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

const bulkID = "0b0c5a9e-3f0e-4d1a-9a57-9f2b6a6a7c11"

func validBulkRequest() core.BulkTransactionRequest {
	return core.BulkTransactionRequest{
		BulkHomeTransactionID: "home-1",
		From: core.Party{
			PartyIDInfo: core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "999"},
		},
		IndividualTransfers: []core.IndividualTransferRequest{
			{
				HomeTransactionID: "leg-1",
				To: core.Party{
					PartyIDInfo: core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "123"},
				},
				AmountType: core.AmountTypeSend,
				Currency:   "EUR",
				Amount:     "14.5",
			},
		},
	}
}

func newTestRouter(t *testing.T, setup func(publisher *command.MockPublisher, reader *MockStateReader)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	publisher := command.NewMockPublisher(ctrl)
	reader := NewMockStateReader(ctrl)
	setup(publisher, reader)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandler(publisher, reader, logger), prometheus.NewRegistry(), nil, logger)
}

func TestHandler_PostBulkTransactions(t *testing.T) {
	t.Parallel()

	withID := validBulkRequest()
	withID.BulkTransactionID = bulkID

	invalid := validBulkRequest()
	invalid.IndividualTransfers[0].Amount = "-1"

	tests := []struct {
		name             string
		body             any
		setupMock        func(publisher *command.MockPublisher, reader *MockStateReader)
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name: "accepted_with_generated_id",
			body: validBulkRequest(),
			setupMock: func(publisher *command.MockPublisher, _ *MockStateReader) {
				publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg command.Message) error {
						if msg.Name != string(command.ProcessSDKOutboundBulkRequest) || msg.Key == "" {
							return errors.New("unexpected command")
						}
						return nil
					}).
					Times(1)
			},
			expectedStatus:   http.StatusAccepted,
			expectedBodyPart: "bulkTransactionId",
		},
		{
			name: "accepted_with_caller_id",
			body: withID,
			setupMock: func(publisher *command.MockPublisher, _ *MockStateReader) {
				publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg command.Message) error {
						if msg.Key != bulkID {
							return errors.New("unexpected key " + msg.Key)
						}
						return nil
					}).
					Times(1)
			},
			expectedStatus:   http.StatusAccepted,
			expectedBodyPart: bulkID,
		},
		{
			name:             "invalid_body_returns_400",
			body:             "not-an-object",
			setupMock:        func(*command.MockPublisher, *MockStateReader) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "Invalid request body",
		},
		{
			name:             "validation_error_returns_400",
			body:             invalid,
			setupMock:        func(*command.MockPublisher, *MockStateReader) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "schema validation failed",
		},
		{
			name: "publish_error_returns_500",
			body: validBulkRequest(),
			setupMock: func(publisher *command.MockPublisher, _ *MockStateReader) {
				publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(errors.New("bus closed")).
					Times(1)
			},
			expectedStatus:   http.StatusInternalServerError,
			expectedBodyPart: "Failed to submit bulk transaction command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, tt.setupMock)

			body, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/bulkTransactions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)
			require.Equal(t, tt.expectedStatus, w.Code)
			require.Contains(t, w.Body.String(), tt.expectedBodyPart)
		})
	}
}

func TestHandler_PutBulkTransaction(t *testing.T) {
	t.Parallel()

	acceptParties := `{"individualTransfers":[{"transferId":"t1","acceptParty":true},{"transferId":"t2","acceptParty":false}]}`
	acceptQuotes := `{"individualTransfers":[{"transferId":"t1","acceptQuote":true}]}`

	pending := func(state core.BulkTransactionInternalState) func(*command.MockPublisher, *MockStateReader) {
		return func(_ *command.MockPublisher, reader *MockStateReader) {
			reader.EXPECT().
				Load(gomock.Any(), bulkID).
				Return(core.BulkTransactionState{ID: bulkID, State: state}, nil)
		}
	}

	tests := []struct {
		name             string
		body             string
		setupMock        func(publisher *command.MockPublisher, reader *MockStateReader)
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name: "party_decisions_accepted",
			body: acceptParties,
			setupMock: func(publisher *command.MockPublisher, reader *MockStateReader) {
				pending(core.BulkTransactionStateDiscoveryAcceptancePending)(publisher, reader)
				publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg command.Message) error {
						var decisions command.AcceptanceDecisions
						if err := msg.Decode(&decisions); err != nil {
							return err
						}
						if msg.Name != string(command.ProcessSDKOutboundBulkAcceptPartyInfo) || len(decisions.IndividualTransfers) != 2 {
							return errors.New("unexpected command")
						}
						return nil
					})
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name: "quote_decisions_accepted",
			body: acceptQuotes,
			setupMock: func(publisher *command.MockPublisher, reader *MockStateReader) {
				pending(core.BulkTransactionStateAgreementAcceptancePending)(publisher, reader)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:             "not_pending_returns_409",
			body:             acceptQuotes,
			setupMock:        pending(core.BulkTransactionStateDiscoveryAcceptancePending),
			expectedStatus:   http.StatusConflict,
			expectedBodyPart: "AGREEMENT_ACCEPTANCE_PENDING",
		},
		{
			name: "unknown_bulk_returns_404",
			body: acceptQuotes,
			setupMock: func(_ *command.MockPublisher, reader *MockStateReader) {
				reader.EXPECT().
					Load(gomock.Any(), bulkID).
					Return(core.BulkTransactionState{}, fmt.Errorf("bulkTransaction: %w", core.ErrNotFound))
			},
			expectedStatus:   http.StatusNotFound,
			expectedBodyPart: "Bulk transaction not found",
		},
		{
			name:             "mixed_decisions_return_400",
			body:             `{"individualTransfers":[{"transferId":"t1","acceptParty":true},{"transferId":"t2","acceptQuote":true}]}`,
			setupMock:        func(*command.MockPublisher, *MockStateReader) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "cannot be mixed",
		},
		{
			name:             "empty_decisions_return_400",
			body:             `{"individualTransfers":[]}`,
			setupMock:        func(*command.MockPublisher, *MockStateReader) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, tt.setupMock)

			req := httptest.NewRequest(http.MethodPut, "/bulkTransactions/"+bulkID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)
			require.Equal(t, tt.expectedStatus, w.Code)
			require.Contains(t, w.Body.String(), tt.expectedBodyPart)
		})
	}
}

func TestHandler_GetBulkTransaction(t *testing.T) {
	t.Parallel()

	t.Run("reports_state_and_counters", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(t, func(_ *command.MockPublisher, reader *MockStateReader) {
			reader.EXPECT().
				Load(gomock.Any(), bulkID).
				Return(core.BulkTransactionState{
					ID:                    bulkID,
					BulkHomeTransactionID: "home-1",
					State:                 core.BulkTransactionStateTransfersProcessing,
				}, nil)
			reader.EXPECT().GetCounter(gomock.Any(), bulkID, core.CounterTotal).Return(int64(4), nil)
			reader.EXPECT().GetCounter(gomock.Any(), bulkID, core.CounterSuccess).Return(int64(2), nil)
			reader.EXPECT().GetCounter(gomock.Any(), bulkID, core.CounterFailed).Return(int64(1), nil)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bulkTransactions/"+bulkID, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp StatusResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, StatusResponse{
			BulkTransactionID:     bulkID,
			BulkHomeTransactionID: "home-1",
			CurrentState:          core.BulkTransactionStateTransfersProcessing,
			TotalCount:            4,
			SuccessCount:          2,
			FailedCount:           1,
		}, resp)
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(t, func(_ *command.MockPublisher, reader *MockStateReader) {
			reader.EXPECT().
				Load(gomock.Any(), bulkID).
				Return(core.BulkTransactionState{}, errors.New("disk full"))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bulkTransactions/"+bulkID, nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
