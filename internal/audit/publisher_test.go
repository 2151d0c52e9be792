package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingStore) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

func TestPublisher_Emit(t *testing.T) {
	t.Run("stamps id and timestamp", func(t *testing.T) {
		store := &recordingStore{}
		p := NewPublisher(store)

		require.NoError(t, p.Emit(context.Background(), Event{Action: ActionRegistrationSubmitted}))

		events := store.snapshot()
		require.Len(t, events, 1)
		assert.NotEqual(t, uuid.Nil, events[0].ID)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("keeps caller supplied values", func(t *testing.T) {
		store := &recordingStore{}
		id := uuid.New()
		ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

		require.NoError(t, NewPublisher(store).Emit(context.Background(), Event{ID: id, Timestamp: ts}))
		assert.Equal(t, id, store.snapshot()[0].ID)
		assert.Equal(t, ts, store.snapshot()[0].Timestamp)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		store := &recordingStore{err: errors.New("disk full")}
		assert.Error(t, NewPublisher(store).Emit(context.Background(), Event{}))
	})
}

func TestQueuedPublisher(t *testing.T) {
	queue := make(chan Event, 1)
	p := NewQueuedPublisher(queue)

	require.NoError(t, p.Emit(context.Background(), Event{Action: ActionRegistrationSubmitted}))
	assert.ErrorIs(t, p.Emit(context.Background(), Event{}), ErrQueueFull)

	queued := <-queue
	assert.Equal(t, ActionRegistrationSubmitted, queued.Action)
}

func TestQueuedPublisher_EmitAfterClose(t *testing.T) {
	queue := make(chan Event, 4)
	p := NewQueuedPublisher(queue)
	require.NoError(t, p.Emit(context.Background(), Event{Action: ActionRegistrationSubmitted}))

	p.Close()
	p.Close()

	assert.NotPanics(t, func() {
		err := p.Emit(context.Background(), Event{Action: ActionRegistrationSubmitted})
		assert.ErrorIs(t, err, ErrPublisherClosed)
	})

	store := &recordingStore{}
	require.NoError(t, NewWorker(store, queue, nil).Run(context.Background()))
	events := store.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, ActionRegistrationSubmitted, events[0].Action)
}

func TestQueuedPublisher_ConcurrentEmitAndClose(t *testing.T) {
	queue := make(chan Event, 64)
	p := NewQueuedPublisher(queue)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Emit(context.Background(), Event{Action: ActionRegistrationSubmitted})
			if err != nil {
				assert.ErrorIs(t, err, ErrPublisherClosed)
			}
		}()
	}
	p.Close()
	wg.Wait()

	store := &recordingStore{}
	require.NoError(t, NewWorker(store, queue, nil).Run(context.Background()))
	assert.LessOrEqual(t, len(store.snapshot()), 32)
}

func TestPublisher_CloseWithoutQueue(t *testing.T) {
	store := &recordingStore{}
	p := NewPublisher(store)
	p.Close()

	require.NoError(t, p.Emit(context.Background(), Event{}))
	assert.Len(t, store.snapshot(), 1)
}

func TestWorker_DrainsUntilInboxClosed(t *testing.T) {
	store := &recordingStore{}
	inbox := make(chan Event, 3)
	inbox <- Event{Action: ActionRegistrationSubmitted, TxHash: "0x01"}
	inbox <- Event{Action: ActionRegistrationSubmitted, TxHash: "0x02"}
	close(inbox)

	err := NewWorker(store, inbox, nil).Run(context.Background())
	require.NoError(t, err)

	events := store.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "0x01", events[0].TxHash)
	assert.Equal(t, "0x02", events[1].TxHash)
}

func TestWorker_ContinuesAfterStoreFailure(t *testing.T) {
	store := &recordingStore{err: errors.New("unavailable")}
	inbox := make(chan Event, 1)
	inbox <- Event{}
	close(inbox)

	assert.NoError(t, NewWorker(store, inbox, nil).Run(context.Background()))
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWorker(&recordingStore{}, make(chan Event), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHashIdentifier(t *testing.T) {
	hash := HashIdentifier("P1234567")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashIdentifier("P1234567"))
	assert.NotEqual(t, hash, HashIdentifier("P1234568"))
	assert.NotContains(t, hash, "P1234567")
}
