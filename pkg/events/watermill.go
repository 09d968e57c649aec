// Package events is the transactional outbox for domain events, built on
// Watermill's PostgreSQL transport.
//
// Repositories publish inside the transaction that writes the aggregate
// (PublishTx), so an event exists if and only if its write committed. In
// forwarder mode the message lands in an internal queue and a background
// forwarder moves it to its real topic; cmd/worker subscribes to the topics.
//
// Subscribers sharing a ConsumerGroup split the messages between them. Handlers
// must be idempotent: a failed message is retried with backoff and, once the
// policy gives up, nacked for redelivery.
//
// The OTel trace context travels in message metadata from publisher to handler.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/simplemarket/pkg/config"
	"github.com/ghuser/simplemarket/pkg/logger"
)

const (
	shutdownTimeout  = 30 * time.Second
	errChanSize      = 100
	forwarderTopic   = "_forwarder_queue"
	forwarderGroup   = "forwarder-consumer"
	defaultGroupSufx = "-consumer"
)

// Handler processes one message. Returning an error triggers the retry policy.
type Handler func(ctx context.Context, msg *message.Message) error

// RetryPolicy bounds in-process retries of a failing handler. The delay
// doubles after every failed attempt.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetry tries three times, waiting 1s then 2s.
var DefaultRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

// Options configures an EventBus.
type Options struct {
	// ConsumerGroup load-balances messages across subscribers with the same
	// group. Empty means every subscriber sees every message.
	ConsumerGroup string
	// Forward routes published messages through the forwarder queue. The
	// process that publishes must call StartForwarder.
	Forward bool
	// Topics are the topics published inside transactions. Their tables are
	// created up front because a tx publisher cannot create them. Ignored in
	// forwarder mode, where only the forwarder queue is written in a tx.
	Topics []string
	Retry  RetryPolicy
}

// OptionsFromConfig derives the consumer group from the service name.
func OptionsFromConfig(cfg *config.Config, forward bool, topics ...string) Options {
	return Options{
		ConsumerGroup: cfg.ServiceName + defaultGroupSufx,
		Forward:       forward,
		Topics:        topics,
		Retry:         DefaultRetry,
	}
}

// EventBus publishes inside caller transactions and dispatches subscribed
// topics to handlers. It borrows db and never closes it.
type EventBus struct {
	db         *sql.DB
	opts       Options
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	wg         sync.WaitGroup
}

// NewEventBus builds a bus over the shared pool. Watermill creates its topic
// and offset tables on first use.
func NewEventBus(db *sql.DB, opts Options, log logger.Logger) (*EventBus, error) {
	if opts.Retry.Attempts <= 0 {
		opts.Retry = DefaultRetry
	}
	wlog := &slogAdapter{log: log.With("component", "events")}

	sub, err := newSubscriber(db, opts.ConsumerGroup, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	topics := opts.Topics
	if opts.Forward {
		topics = []string{forwarderTopic}
	}
	for _, topic := range topics {
		if err := sub.SubscribeInitialize(topic); err != nil {
			_ = sub.Close()
			return nil, fmt.Errorf("events: initialize %s: %w", topic, err)
		}
	}

	return &EventBus{db: db, opts: opts, subscriber: sub, log: log, wlog: wlog}, nil
}

func newSubscriber(db *sql.DB, group string, wlog watermill.LoggerAdapter) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
}

// publisherConfig only creates tables outside a transaction; a tx publisher
// relies on them already existing.
func publisherConfig(autoInit bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: autoInit,
	}
}

// StartForwarder runs the daemon that drains the forwarder queue into the
// target topics. It returns once the daemon is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	switch {
	case !q.opts.Forward:
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	case q.fwd != nil:
		return errors.New("events: forwarder already started")
	}

	queue, err := newSubscriber(q.db, forwarderGroup, q.wlog)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	target, err := watermillsql.NewPublisher(q.db, publisherConfig(true), q.wlog)
	if err != nil {
		_ = queue.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(queue, target, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = queue.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
		}
	}()

	select {
	case <-fwd.Running():
		q.log.InfoContext(ctx, "events: forwarder started")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// PublishTx publishes msgs on topic inside tx. Nothing reaches subscribers
// unless tx commits.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := watermillsql.NewPublisher(tx, publisherConfig(false), q.wlog)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	var p message.Publisher = pub
	if q.opts.Forward {
		p = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
	}

	injectTrace(ctx, msgs)
	if err := p.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe dispatches messages from topic to handler until ctx ends or the
// bus closes. Errors that survive the retry policy are sent on the returned
// channel, which callers must drain; when it is full they are logged instead.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errChanSize)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			if err := q.opts.Retry.run(msgCtx, msg, handler, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// Close stops the subscriber and the forwarder, then waits for in-flight
// handlers for up to 30s. The shared pool stays open.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}
	return nil
}

func (p RetryPolicy) run(ctx context.Context, msg *message.Message, handler Handler, log logger.Logger) error {
	delay := p.BaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt >= p.Attempts {
			return fmt.Errorf("events: handler failed after %d attempts: %w", p.Attempts, err)
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_id", msg.UUID,
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// slogAdapter lets watermill log through logger.Logger.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

// Trace is folded into debug; slog has no lower level.
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
