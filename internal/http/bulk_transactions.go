package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

//go:generate go tool go.uber.org/mock/mockgen -source=bulk_transactions.go -destination=bulk_transactions_mock.go -package=http

type StateReader interface {
	Load(ctx context.Context, bulkID string) (core.BulkTransactionState, error)
	GetCounter(ctx context.Context, bulkID string, counter core.Counter) (int64, error)
}

type Handler struct {
	publisher command.Publisher
	reader    StateReader
	logger    core.Logger
}

func NewHandler(publisher command.Publisher, reader StateReader, logger core.Logger) Handler {
	return Handler{
		publisher: publisher,
		reader:    reader,
		logger:    logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h Handler) publish(ctx context.Context, w http.ResponseWriter, key string, name command.CommandType, content any) bool {
	msg, err := command.NewMessage(key, name, content)
	if err == nil {
		err = h.publisher.Publish(ctx, msg)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to submit command", "command", name, "bulkTransactionId", key, "error", err)
		http.Error(w, "Failed to submit bulk transaction command", http.StatusInternalServerError)
		return false
	}
	return true
}

// PostBulkTransactions accepts a new bulk request and starts the saga.
func (h Handler) PostBulkTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req core.BulkTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := core.ValidateBulkTransactionRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.BulkTransactionID == "" {
		req.BulkTransactionID = uuid.NewString()
	}

	if !h.publish(ctx, w, req.BulkTransactionID, command.ProcessSDKOutboundBulkRequest, req) {
		return
	}

	writeJSON(w, http.StatusAccepted, SubmitResponse{BulkTransactionID: req.BulkTransactionID})
}

// PutBulkTransaction answers a pending party or quote acceptance.
func (h Handler) PutBulkTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bulkID := mux.Vars(r)["bulkTransactionId"]

	var req AcceptanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name, pendingState, decisions, err := req.ToDomain()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, ok := h.load(ctx, w, bulkID)
	if !ok {
		return
	}
	if state.State != pendingState {
		http.Error(w, "Bulk transaction is "+string(state.State)+", not "+string(pendingState), http.StatusConflict)
		return
	}

	if !h.publish(ctx, w, bulkID, name, decisions) {
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// GetBulkTransaction reports the current state and counters of a bulk transaction.
func (h Handler) GetBulkTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bulkID := mux.Vars(r)["bulkTransactionId"]

	state, ok := h.load(ctx, w, bulkID)
	if !ok {
		return
	}

	resp := StatusResponse{
		BulkTransactionID:     state.ID,
		BulkHomeTransactionID: state.BulkHomeTransactionID,
		CurrentState:          state.State,
	}

	for counter, out := range map[core.Counter]*int64{
		core.CounterTotal:   &resp.TotalCount,
		core.CounterSuccess: &resp.SuccessCount,
		core.CounterFailed:  &resp.FailedCount,
	} {
		value, err := h.reader.GetCounter(ctx, bulkID, counter)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to read counter", "counter", counter, "bulkTransactionId", bulkID, "error", err)
			http.Error(w, "Failed to read bulk transaction", http.StatusInternalServerError)
			return
		}
		*out = value
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h Handler) load(ctx context.Context, w http.ResponseWriter, bulkID string) (core.BulkTransactionState, bool) {
	state, err := h.reader.Load(ctx, bulkID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			http.Error(w, "Bulk transaction not found", http.StatusNotFound)
			return core.BulkTransactionState{}, false
		}

		h.logger.ErrorContext(ctx, "Failed to load bulk transaction", "bulkTransactionId", bulkID, "error", err)
		http.Error(w, "Failed to read bulk transaction", http.StatusInternalServerError)
		return core.BulkTransactionState{}, false
	}
	return state, true
}
