package command

import (
	"encoding/json"
	"fmt"
	"time"
)

// CommandType names a step event that drives the bulk transaction saga.
type CommandType string

const (
	ProcessSDKOutboundBulkRequest          CommandType = "ProcessSDKOutboundBulkRequest"
	ProcessSDKOutboundBulkPartyInfoRequest CommandType = "ProcessSDKOutboundBulkPartyInfoRequest"
	ProcessPartyInfoCallback               CommandType = "ProcessPartyInfoCallback"
	ProcessSDKOutboundBulkAcceptPartyInfo  CommandType = "ProcessSDKOutboundBulkAcceptPartyInfo"
	ProcessSDKOutboundBulkQuotesRequest    CommandType = "ProcessSDKOutboundBulkQuotesRequest"
	ProcessBulkQuotesCallback              CommandType = "ProcessBulkQuotesCallback"
	ProcessSDKOutboundBulkAcceptQuote      CommandType = "ProcessSDKOutboundBulkAcceptQuote"
	ProcessSDKOutboundBulkTransfersRequest CommandType = "ProcessSDKOutboundBulkTransfersRequest"
	ProcessBulkTransfersCallback           CommandType = "ProcessBulkTransfersCallback"
	PrepareSDKOutboundBulkResponse         CommandType = "PrepareSDKOutboundBulkResponse"
	ProcessSDKOutboundBulkResponseSent     CommandType = "ProcessSDKOutboundBulkResponseSent"
)

var CommandTypes = []CommandType{
	ProcessSDKOutboundBulkRequest,
	ProcessSDKOutboundBulkPartyInfoRequest,
	ProcessPartyInfoCallback,
	ProcessSDKOutboundBulkAcceptPartyInfo,
	ProcessSDKOutboundBulkQuotesRequest,
	ProcessBulkQuotesCallback,
	ProcessSDKOutboundBulkAcceptQuote,
	ProcessSDKOutboundBulkTransfersRequest,
	ProcessBulkTransfersCallback,
	PrepareSDKOutboundBulkResponse,
	ProcessSDKOutboundBulkResponseSent,
}

// EventType names a result event emitted by a step handler.
type EventType string

const (
	SDKOutboundBulkRequestProcessed             EventType = "SDKOutboundBulkRequestProcessed"
	PartyInfoRequested                          EventType = "PartyInfoRequested"
	PartyInfoCallbackProcessed                  EventType = "PartyInfoCallbackProcessed"
	SDKOutboundBulkPartyInfoRequestProcessed    EventType = "SDKOutboundBulkPartyInfoRequestProcessed"
	SDKOutboundBulkAcceptPartyInfoRequested     EventType = "SDKOutboundBulkAcceptPartyInfoRequested"
	SDKOutboundBulkAutoAcceptPartyInfoRequested EventType = "SDKOutboundBulkAutoAcceptPartyInfoRequested"
	SDKOutboundBulkAcceptPartyInfoProcessed     EventType = "SDKOutboundBulkAcceptPartyInfoProcessed"
	BulkQuotesRequested                         EventType = "BulkQuotesRequested"
	BulkQuotesCallbackProcessed                 EventType = "BulkQuotesCallbackProcessed"
	SDKOutboundBulkQuotesRequestProcessed       EventType = "SDKOutboundBulkQuotesRequestProcessed"
	SDKOutboundBulkAcceptQuoteRequested         EventType = "SDKOutboundBulkAcceptQuoteRequested"
	SDKOutboundBulkAutoAcceptQuoteRequested     EventType = "SDKOutboundBulkAutoAcceptQuoteRequested"
	SDKOutboundBulkAcceptQuoteProcessed         EventType = "SDKOutboundBulkAcceptQuoteProcessed"
	BulkTransfersRequested                      EventType = "BulkTransfersRequested"
	BulkTransfersCallbackProcessed              EventType = "BulkTransfersCallbackProcessed"
	SDKOutboundBulkTransfersRequestProcessed    EventType = "SDKOutboundBulkTransfersRequestProcessed"
	SDKOutboundBulkResponsePrepared             EventType = "SDKOutboundBulkResponsePrepared"
	SDKOutboundBulkResponseSentProcessed        EventType = "SDKOutboundBulkResponseSentProcessed"
)

var EventTypes = []EventType{
	SDKOutboundBulkRequestProcessed,
	PartyInfoRequested,
	PartyInfoCallbackProcessed,
	SDKOutboundBulkPartyInfoRequestProcessed,
	SDKOutboundBulkAcceptPartyInfoRequested,
	SDKOutboundBulkAutoAcceptPartyInfoRequested,
	SDKOutboundBulkAcceptPartyInfoProcessed,
	BulkQuotesRequested,
	BulkQuotesCallbackProcessed,
	SDKOutboundBulkQuotesRequestProcessed,
	SDKOutboundBulkAcceptQuoteRequested,
	SDKOutboundBulkAutoAcceptQuoteRequested,
	SDKOutboundBulkAcceptQuoteProcessed,
	BulkTransfersRequested,
	BulkTransfersCallbackProcessed,
	SDKOutboundBulkTransfersRequestProcessed,
	SDKOutboundBulkResponsePrepared,
	SDKOutboundBulkResponseSentProcessed,
}

// Message is the envelope of both step commands and result events. Key is
// the bulk transaction id; it is empty only on a new bulk request that
// carries no id yet.
type Message struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Content   json.RawMessage   `json:"content,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func NewMessage[T ~string](key string, name T, content any) (Message, error) {
	msg := Message{
		Key:       key,
		Name:      string(name),
		Timestamp: time.Now().UTC(),
	}

	if content != nil {
		data, err := json.Marshal(content)
		if err != nil {
			return Message{}, fmt.Errorf("failed to encode %s content: %w", name, err)
		}
		msg.Content = data
	}

	return msg, nil
}

// Decode unmarshals the message content into out.
func (m Message) Decode(out any) error {
	if len(m.Content) == 0 {
		return fmt.Errorf("%s has no content", m.Name)
	}
	if err := json.Unmarshal(m.Content, out); err != nil {
		return fmt.Errorf("failed to decode %s content: %w", m.Name, err)
	}
	return nil
}
