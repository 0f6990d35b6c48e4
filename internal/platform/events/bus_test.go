package events_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/events"
)

func Test_Bus_DeliversToFuncAndChannelSubscribers(t *testing.T) {
	bus := events.NewBus()

	var seen []events.Event
	stop := bus.SubscribeFunc(func(ev events.Event) { seen = append(seen, ev) })
	defer stop()

	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(context.Background(), events.TopicBooks, events.ActionCreated, "b1")

	require.Len(t, seen, 1)
	assert.Equal(t, events.TopicBooks, seen[0].Topic)
	assert.Equal(t, events.ActionCreated, seen[0].Action)
	assert.Equal(t, "b1", seen[0].EntityID)
	assert.NotEmpty(t, seen[0].ID)

	select {
	case ev := <-ch:
		assert.Equal(t, seen[0].ID, ev.ID)
	case <-time.After(time.Second):
		t.Fatal("channel subscriber did not receive the event")
	}
}

func Test_Bus_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	for i := 0; i < 5; i++ {
		bus.Publish(context.Background(), events.TopicMembers, events.ActionUpdated, "m1")
	}

	assert.Len(t, ch, 1)
}

func Test_Bus_CancelClosesChannel(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(1)
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after cancel must not panic
	bus.Publish(context.Background(), events.TopicBorrowings, events.ActionReturned, "x")
}

// streamRecorder adds CloseNotify (required by gin's Context.Stream) and
// serializes body access between the handler and the test goroutine.
type streamRecorder struct {
	*httptest.ResponseRecorder
	mu     sync.Mutex
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *streamRecorder) WriteString(s string) (int, error) { return r.Write([]byte(s)) }

func (r *streamRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Body.String()
}

func Test_Stream_WritesServerSentEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bus := events.NewBus()
	r := gin.New()
	events.RegisterRoutes(r, bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api-events", nil).WithContext(ctx)
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return bus.Len() == 1 }, time.Second, 5*time.Millisecond)
	bus.Publish(context.Background(), events.TopicBorrowings, events.ActionCreated, "loan-1")

	require.Eventually(t, func() bool { return strings.Contains(w.body(), "loan-1") }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	body := w.body()
	assert.Contains(t, body, "event:borrowings")
	assert.Contains(t, body, `"action":"created"`)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	assert.Equal(t, 0, bus.Len())
}
