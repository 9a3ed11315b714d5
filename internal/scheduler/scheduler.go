package scheduler

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"bulkconnector/internal/command"
	"bulkconnector/internal/core"
)

//go:generate go tool go.uber.org/mock/mockgen -source=scheduler.go -destination=scheduler_mock.go -package=scheduler

// Outbound delivers requests to the switch and to the caller. Answers come
// back as callback or acceptance commands.
type Outbound interface {
	RequestPartyInfo(ctx context.Context, bulkID string, req core.PartyLookupRequest) error
	RequestBulkQuotes(ctx context.Context, bulkID string, req command.BulkQuotesRequestedContent) error
	RequestBulkTransfers(ctx context.Context, bulkID string, req command.BulkTransfersRequestedContent) error
	RequestPartyAcceptance(ctx context.Context, bulkID string, req command.AcceptanceRequested) error
	RequestQuoteAcceptance(ctx context.Context, bulkID string, req command.AcceptanceRequested) error
}

type ResponseSink interface {
	Send(ctx context.Context, resp core.BulkTransactionResponse) error
}

type ResponseMetrics interface {
	ObserveResponse(state string)
}

type Subscriber interface {
	Subscribe(name string, h func(ctx context.Context, msg command.Message) error) (cancel func())
}

type Config struct {
	SentResponseCacheSize int `envconfig:"SENT_RESPONSE_CACHE_SIZE" default:"1024"`
}

// Scheduler advances the saga: it reacts to result events by publishing
// the next step command or by handing requests to Outbound.
type Scheduler struct {
	publisher command.Publisher
	outbound  Outbound
	sink      ResponseSink
	metrics   ResponseMetrics
	sent      *lru.Cache[string, struct{}]
	logger    core.Logger
}

func New(
	config Config,
	publisher command.Publisher,
	outbound Outbound,
	sink ResponseSink,
	metrics ResponseMetrics,
	logger core.Logger,
) (*Scheduler, error) {
	sent, err := lru.New[string, struct{}](max(config.SentResponseCacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create sent response cache: %w", err)
	}

	return &Scheduler{
		publisher: publisher,
		outbound:  outbound,
		sink:      sink,
		metrics:   metrics,
		sent:      sent,
		logger:    logger,
	}, nil
}

// Subscribe registers the scheduler for every result event.
func (s *Scheduler) Subscribe(subscriber Subscriber) (cancel func()) {
	cancels := make([]func(), 0, len(command.EventTypes))
	for _, event := range command.EventTypes {
		cancels = append(cancels, subscriber.Subscribe(string(event), s.Handle))
	}

	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func (s *Scheduler) next(ctx context.Context, msg command.Message, name command.CommandType, content any) error {
	next, err := command.NewMessage(msg.Key, name, content)
	if err != nil {
		return err
	}

	if err = s.publisher.Publish(ctx, next); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

// nextWithContent forwards the event content unchanged as the next command.
func (s *Scheduler) nextWithContent(ctx context.Context, msg command.Message, name command.CommandType) error {
	next := command.Message{
		Key:       msg.Key,
		Name:      string(name),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Headers:   msg.Headers,
	}

	if err := s.publisher.Publish(ctx, next); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Handle(ctx context.Context, msg command.Message) error {
	switch command.EventType(msg.Name) {
	case command.SDKOutboundBulkRequestProcessed:
		return s.next(ctx, msg, command.ProcessSDKOutboundBulkPartyInfoRequest, nil)

	case command.PartyInfoRequested:
		var req core.PartyLookupRequest
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return s.outbound.RequestPartyInfo(ctx, msg.Key, req)

	case command.SDKOutboundBulkAutoAcceptPartyInfoRequested:
		return s.nextWithContent(ctx, msg, command.ProcessSDKOutboundBulkAcceptPartyInfo)

	case command.SDKOutboundBulkAcceptPartyInfoRequested:
		var req command.AcceptanceRequested
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return s.outbound.RequestPartyAcceptance(ctx, msg.Key, req)

	case command.SDKOutboundBulkAcceptPartyInfoProcessed:
		return s.next(ctx, msg, command.ProcessSDKOutboundBulkQuotesRequest, nil)

	case command.BulkQuotesRequested:
		var req command.BulkQuotesRequestedContent
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return s.outbound.RequestBulkQuotes(ctx, msg.Key, req)

	case command.SDKOutboundBulkAutoAcceptQuoteRequested:
		return s.nextWithContent(ctx, msg, command.ProcessSDKOutboundBulkAcceptQuote)

	case command.SDKOutboundBulkAcceptQuoteRequested:
		var req command.AcceptanceRequested
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return s.outbound.RequestQuoteAcceptance(ctx, msg.Key, req)

	case command.SDKOutboundBulkAcceptQuoteProcessed:
		return s.next(ctx, msg, command.ProcessSDKOutboundBulkTransfersRequest, nil)

	case command.BulkTransfersRequested:
		var req command.BulkTransfersRequestedContent
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return s.outbound.RequestBulkTransfers(ctx, msg.Key, req)

	case command.SDKOutboundBulkTransfersRequestProcessed:
		return s.next(ctx, msg, command.PrepareSDKOutboundBulkResponse, nil)

	case command.SDKOutboundBulkResponsePrepared:
		return s.sendResponse(ctx, msg)

	case command.SDKOutboundBulkResponseSentProcessed:
		s.logger.InfoContext(ctx, "bulk transaction finished", "bulkTransactionId", msg.Key)
		return nil

	default:
		// Progress events need no follow-up.
		s.logger.DebugContext(ctx, "event observed", "event", msg.Name, "bulkTransactionId", msg.Key)
		return nil
	}
}

// sendResponse hands the response to the caller once per bulk transaction.
func (s *Scheduler) sendResponse(ctx context.Context, msg command.Message) error {
	if s.sent.Contains(msg.Key) {
		s.logger.WarnContext(ctx, "bulk response already sent, ignoring", "bulkTransactionId", msg.Key)
		return nil
	}

	var resp core.BulkTransactionResponse
	if err := msg.Decode(&resp); err != nil {
		return err
	}

	if err := s.sink.Send(ctx, resp); err != nil {
		return fmt.Errorf("failed to send bulk response: %w", err)
	}
	s.sent.Add(msg.Key, struct{}{})

	if s.metrics != nil {
		s.metrics.ObserveResponse(string(resp.CurrentState))
	}

	return s.next(ctx, msg, command.ProcessSDKOutboundBulkResponseSent, nil)
}
