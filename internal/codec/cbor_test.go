package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bulkconnector/internal/core"
)

func TestMarshalUnmarshal_BulkTransactionState(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)
	original := core.BulkTransactionState{
		ID:                    "b1",
		BulkHomeTransactionID: "home-1",
		From: core.Party{
			PartyIDInfo: core.PartyIDInfo{PartyIDType: "MSISDN", PartyIdentifier: "16135551212"},
		},
		Options: core.Options{
			AutoAcceptQuote: core.AutoAcceptQuote{
				Enabled:              true,
				PerTransferFeeLimits: []core.Money{{Currency: "USD", Amount: "1.5"}},
			},
		},
		State:     core.BulkTransactionStateAgreementProcessing,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Version:   3,
	}

	data, err := Marshal(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var decoded core.BulkTransactionState
	require.NoError(t, Unmarshal(data, &decoded))

	require.Equal(t, original.ID, decoded.ID)
	require.Equal(t, original.State, decoded.State)
	require.Equal(t, original.Options, decoded.Options)
	require.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	require.Equal(t, original.Version, decoded.Version)
}

func TestMarshal_Deterministic(t *testing.T) {
	t.Parallel()

	state := core.IndividualTransferState{
		ID:    "t1",
		State: core.IndividualTransferStateDiscoverySuccess,
		Request: core.IndividualTransferRequest{
			HomeTransactionID: "h1",
			AmountType:        core.AmountTypeSend,
			Currency:          "USD",
			Amount:            "10",
		},
	}

	first, err := Marshal(state)
	require.NoError(t, err)

	for range 10 {
		again, err := Marshal(state)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMarshal_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := Marshal(core.Money{Currency: "EUR", Amount: "2"})
	require.NoError(t, err)

	diag, err := Diagnose(data)
	require.NoError(t, err)
	require.Equal(t, `{"amount": "2", "currency": "EUR"}`, diag)
}

func TestUnmarshal_Counter(t *testing.T) {
	t.Parallel()

	data, err := Marshal(int64(42))
	require.NoError(t, err)

	var value int64
	require.NoError(t, Unmarshal(data, &value))
	require.Equal(t, int64(42), value)
}
