package events

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicBooks      Topic = "books"
	TopicMembers    Topic = "members"
	TopicBorrowings Topic = "borrowings"
)

type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionReturned Action = "returned"
)

type Event struct {
	ID         string    `json:"id"`
	Topic      Topic     `json:"topic"`
	Action     Action    `json:"action"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what mutating services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic Topic, action Action, entityID string)
}

// Bus fans events out in-process. Func subscribers run inline and must be
// quick; channel subscribers lose events when their buffer is full.
type Bus struct {
	mu    sync.RWMutex
	next  int
	chans map[int]chan Event
	funcs map[int]func(Event)
	now   func() time.Time
}

func NewBus() *Bus {
	return &Bus{
		chans: make(map[int]chan Event),
		funcs: make(map[int]func(Event)),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (b *Bus) Publish(_ context.Context, topic Topic, action Action, entityID string) {
	ev := Event{
		ID:         uuid.NewString(),
		Topic:      topic,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: b.now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.funcs {
		fn(ev)
	}
	for id, ch := range b.chans {
		select {
		case ch <- ev:
		default:
			log.Printf("[WARN] events: subscriber %d is slow, dropped %s.%s %s", id, ev.Topic, ev.Action, ev.EntityID)
		}
	}
}

// Subscribe returns a buffered channel of events and a cancel func that closes it.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.chans[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.chans, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Bus) SubscribeFunc(fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.funcs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.funcs, id)
		b.mu.Unlock()
	}
}

// Len returns the number of channel subscribers (connected streams).
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chans)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Publish(context.Context, Topic, Action, string) {}
