package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func startBus(t *testing.T, size int) EventBus {
	t.Helper()
	bus := NewEventBus(size, nil)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = bus.Stop(ctx)
	})
	return bus
}

func TestPublishDeliversInOrder(t *testing.T) {
	bus := startBus(t, 16)
	rec := &recorder{}
	bus.Subscribe(rec.handle)

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, bus.PublishAsync(NewCatalogEvent("genre", ActionCreated, i)))
	}

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 5 }, time.Second, 5*time.Millisecond)

	got := rec.snapshot()
	for i, e := range got {
		assert.Equal(t, uint(i+1), e.EntityID)
		assert.Equal(t, EventGenreCreated, e.Type)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, int64(5), bus.GetStats().Published)
}

func TestSubscribeFiltersByType(t *testing.T) {
	bus := startBus(t, 16)
	rec := &recorder{}
	bus.Subscribe(rec.handle, EventMovieDeleted)

	require.NoError(t, bus.PublishAsync(NewCatalogEvent("movie", ActionCreated, 1)))
	require.NoError(t, bus.PublishAsync(NewCatalogEvent("movie", ActionDeleted, 1)))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, EventMovieDeleted, rec.snapshot()[0].Type)
}

func TestUnsubscribe(t *testing.T) {
	bus := startBus(t, 4)
	rec := &recorder{}
	sub := bus.Subscribe(rec.handle)

	require.NoError(t, bus.Unsubscribe(sub.ID))
	assert.Error(t, bus.Unsubscribe(sub.ID))
	assert.Equal(t, 0, bus.GetStats().ActiveSubscriptions)
}

func TestPublishDropsWhenFull(t *testing.T) {
	bus := startBus(t, 1)

	release := make(chan struct{})
	bus.Subscribe(func(Event) { <-release })
	defer close(release)

	// first event occupies the dispatcher, second fills the buffer
	require.NoError(t, bus.PublishAsync(NewCatalogEvent("director", ActionCreated, 1)))
	require.Eventually(t, func() bool {
		return bus.PublishAsync(NewCatalogEvent("director", ActionCreated, 2)) == nil
	}, time.Second, time.Millisecond)

	err := bus.PublishAsync(NewCatalogEvent("director", ActionCreated, 3))
	assert.ErrorContains(t, err, "event channel full")
	assert.GreaterOrEqual(t, bus.GetStats().Dropped, int64(1))
}

func TestPublishRequiresRunningBus(t *testing.T) {
	bus := NewEventBus(4, nil)
	assert.Error(t, bus.PublishAsync(NewCatalogEvent("genre", ActionCreated, 1)))
	assert.Error(t, bus.Health())

	require.NoError(t, bus.Start(context.Background()))
	assert.Error(t, bus.Start(context.Background()))
	assert.NoError(t, bus.Health())
	require.NoError(t, bus.Stop(context.Background()))
	assert.NoError(t, bus.Stop(context.Background()))
}

func TestPublishRejectsUntypedEvent(t *testing.T) {
	bus := startBus(t, 4)
	assert.ErrorContains(t, bus.PublishAsync(Event{}), "type is required")
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := startBus(t, 4)
	rec := &recorder{}
	bus.Subscribe(func(Event) { panic("boom") })
	bus.Subscribe(rec.handle)

	require.NoError(t, bus.PublishAsync(NewCatalogEvent("genre", ActionUpdated, 7)))
	require.NoError(t, bus.PublishAsync(NewCatalogEvent("genre", ActionUpdated, 8)))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestNoopBus(t *testing.T) {
	bus := NewNoopEventBus()
	require.NoError(t, bus.Start(context.Background()))
	assert.NoError(t, bus.PublishAsync(NewCatalogEvent("genre", ActionCreated, 1)))
	assert.NotEmpty(t, bus.Subscribe(func(Event) {}).ID)
	assert.Equal(t, EventStats{}, bus.GetStats())
}

func TestCatalogEventType(t *testing.T) {
	assert.Equal(t, EventGenreDeleted, CatalogEventType("genre", ActionDeleted))
	assert.Equal(t, EventDirectorUpdated, CatalogEventType("director", ActionUpdated))
}
