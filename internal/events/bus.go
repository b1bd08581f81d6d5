package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// EventBus defines the interface for the event bus system
type EventBus interface {
	// Publish enqueues an event, failing if ctx is done or the buffer is full
	Publish(ctx context.Context, event Event) error

	// PublishAsync enqueues an event without waiting
	PublishAsync(event Event) error

	// Subscribe registers a handler for the given event types (all types when empty)
	Subscribe(handler EventHandler, types ...EventType) *Subscription

	// Unsubscribe removes a subscription
	Unsubscribe(subscriptionID string) error

	// GetStats returns event bus statistics
	GetStats() EventStats

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health() error
}

// eventBus implements the EventBus interface
type eventBus struct {
	logger hclog.Logger

	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	eventChannel  chan Event
	running       bool
	stopCh        chan struct{}
	wg            sync.WaitGroup

	published atomic.Int64
	dropped   atomic.Int64
}

// NewEventBus creates a new event bus with the given buffer capacity
func NewEventBus(bufferSize int, logger hclog.Logger) EventBus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &eventBus{
		logger:        logger,
		subscriptions: make(map[string]*Subscription),
		eventChannel:  make(chan Event, bufferSize),
		stopCh:        make(chan struct{}),
	}
}

// Start starts the dispatcher
func (eb *eventBus) Start(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.running {
		return fmt.Errorf("event bus is already running")
	}

	eb.running = true
	eb.stopCh = make(chan struct{})

	eb.wg.Add(1)
	go eb.processEvents(ctx)

	eb.logger.Info("event bus started", "buffer_size", cap(eb.eventChannel))
	return nil
}

// Stop stops the dispatcher, dropping events still queued
func (eb *eventBus) Stop(ctx context.Context) error {
	eb.mu.Lock()
	if !eb.running {
		eb.mu.Unlock()
		return nil
	}
	eb.running = false
	close(eb.stopCh)
	eb.mu.Unlock()

	done := make(chan struct{})
	go func() {
		eb.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		eb.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		eb.logger.Warn("event bus stop timed out")
		return ctx.Err()
	}
}

// Publish publishes an event to the event bus
func (eb *eventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if !eb.running {
		return fmt.Errorf("event bus is not running")
	}

	event = eb.prepare(event)
	if event.Type == "" {
		return fmt.Errorf("invalid event: type is required")
	}

	select {
	case eb.eventChannel <- event:
		eb.published.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		eb.dropped.Add(1)
		eb.logger.Warn("event channel full, dropping event", "event_type", event.Type, "event_id", event.ID)
		return fmt.Errorf("event channel full")
	}
}

// PublishAsync publishes an event without a context
func (eb *eventBus) PublishAsync(event Event) error {
	return eb.Publish(context.Background(), event)
}

// Subscribe subscribes to events of the given types
func (eb *eventBus) Subscribe(handler EventHandler, types ...EventType) *Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := &Subscription{
		ID:      uuid.New().String(),
		Types:   types,
		Created: time.Now(),
		handler: handler,
	}
	eb.subscriptions[sub.ID] = sub

	eb.logger.Debug("subscription created", "subscription_id", sub.ID, "types", types)
	return sub
}

// Unsubscribe removes a subscription
func (eb *eventBus) Unsubscribe(subscriptionID string) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscriptions[subscriptionID]; !exists {
		return fmt.Errorf("subscription not found: %s", subscriptionID)
	}
	delete(eb.subscriptions, subscriptionID)

	eb.logger.Debug("subscription removed", "subscription_id", subscriptionID)
	return nil
}

// GetStats returns event bus statistics
func (eb *eventBus) GetStats() EventStats {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return EventStats{
		Published:           eb.published.Load(),
		Dropped:             eb.dropped.Load(),
		ActiveSubscriptions: len(eb.subscriptions),
	}
}

// Health returns an error when the bus is stopped or backed up
func (eb *eventBus) Health() error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if !eb.running {
		return fmt.Errorf("event bus is not running")
	}

	usage := float64(len(eb.eventChannel)) / float64(cap(eb.eventChannel))
	if usage > 0.9 {
		return fmt.Errorf("event channel is %d%% full", int(usage*100))
	}
	return nil
}

func (eb *eventBus) prepare(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return event
}

// processEvents dispatches events from the channel until stopped
func (eb *eventBus) processEvents(ctx context.Context) {
	defer eb.wg.Done()

	for {
		select {
		case <-eb.stopCh:
			return
		case <-ctx.Done():
			return
		case event := <-eb.eventChannel:
			eb.dispatch(event)
		}
	}
}

func (eb *eventBus) dispatch(event Event) {
	eb.mu.RLock()
	targets := make([]*Subscription, 0, len(eb.subscriptions))
	for _, sub := range eb.subscriptions {
		if sub.Matches(event) {
			targets = append(targets, sub)
		}
	}
	eb.mu.RUnlock()

	for _, sub := range targets {
		eb.notify(sub, event)
	}
}

func (eb *eventBus) notify(sub *Subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error("event handler panicked", "subscription_id", sub.ID, "event_type", event.Type, "panic", r)
		}
	}()
	sub.handler(event)
}

// noopBus discards every event; used when the feed is disabled
type noopBus struct{}

// NewNoopEventBus returns a bus that accepts and discards events
func NewNoopEventBus() EventBus {
	return noopBus{}
}

func (noopBus) Publish(context.Context, Event) error { return nil }
func (noopBus) PublishAsync(Event) error             { return nil }
func (noopBus) Subscribe(handler EventHandler, types ...EventType) *Subscription {
	return &Subscription{ID: uuid.New().String(), Types: types, Created: time.Now(), handler: handler}
}
func (noopBus) Unsubscribe(string) error    { return nil }
func (noopBus) GetStats() EventStats        { return EventStats{} }
func (noopBus) Start(context.Context) error { return nil }
func (noopBus) Stop(context.Context) error  { return nil }
func (noopBus) Health() error               { return nil }
