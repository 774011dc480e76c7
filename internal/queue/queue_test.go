package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	msg := Message{Type: "attendance.marked", Body: []byte(`{"note":"a|b"}`)}
	assert.Equal(t, msg, deserialize(serialize(msg)))

	assert.Equal(t, Message{Body: []byte("legacy")}, deserialize("legacy"))
	assert.Equal(t, Message{Type: "empty", Body: []byte{}}, deserialize("empty|"))
}

func TestInMemoryDeliversInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := NewInMemory(4)

	for _, typ := range []string{"a", "b", "c"} {
		require.NoError(t, q.Publish(ctx, Message{Type: typ}))
	}
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	for _, want := range []string{"a", "b", "c"} {
		select {
		case msg := <-msgs:
			assert.Equal(t, want, msg.Type)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestInMemoryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(1)
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-msgs:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestInMemoryPublishRespectsContext(t *testing.T) {
	q := NewInMemory(1)
	require.NoError(t, q.Publish(context.Background(), Message{Type: "fill"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Publish(ctx, Message{Type: "blocked"}), context.DeadlineExceeded)
}
