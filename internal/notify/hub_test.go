package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID, room string) *Client {
	// No connection: tests interact with the send channel directly instead of
	// running the pumps.
	return NewClient(hub, nil, userID, room)
}

func register(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	select {
	case hub.register <- client:
	case <-time.After(time.Second):
		t.Fatal("register timed out")
	}
}

func receive(t *testing.T, client *Client) *Event {
	t.Helper()
	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestPublishReachesOnlyRoomSubscribers(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	listA := newTestClient(hub, "u1", "list-a")
	listA2 := newTestClient(hub, "u2", "list-a")
	listB := newTestClient(hub, "u3", "list-b")
	register(t, hub, listA)
	register(t, hub, listA2)
	register(t, hub, listB)

	hub.Publish("list-a", "tasks.updated", map[string]any{"taskListId": "list-a"})

	for _, client := range []*Client{listA, listA2} {
		event := receive(t, client)
		assert.Equal(t, "tasks.updated", event.Event)
		assert.Equal(t, "list-a", event.TaskListID)
	}

	select {
	case data := <-listB.send:
		t.Fatalf("subscriber of another list received event: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribers(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "u1", "list-a")
	register(t, hub, client)

	assert.Eventually(t, func() bool {
		return hub.Subscribers("list-a") == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, hub.Subscribers("list-b"))
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "u1", "list-a")
	register(t, hub, client)

	select {
	case hub.unregister <- client:
	case <-time.After(time.Second):
		t.Fatal("unregister timed out")
	}

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	assert.Eventually(t, func() bool {
		return hub.Subscribers("list-a") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestPublishToEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Nothing to assert beyond "does not block or panic".
	hub.Publish("nobody-here", "tasks.updated", nil)
}
