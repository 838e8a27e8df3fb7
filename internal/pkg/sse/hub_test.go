package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyThatEmployee(t *testing.T) {
	hub := NewHub()
	a, cleanupA := hub.Subscribe("a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("b")
	defer cleanupB()

	hub.Publish("a", Event{EmployeeID: "a", Event: "live_hours", Data: 1})

	select {
	case ev := <-a:
		assert.Equal(t, "live_hours", ev.Event)
	default:
		t.Fatal("expected an event for a")
	}
	select {
	case <-b:
		t.Fatal("b must not receive a's event")
	default:
	}
}

func TestHub_Counts(t *testing.T) {
	hub := NewHub()
	_, c1 := hub.Subscribe("a")
	_, c2 := hub.Subscribe("a")
	_, c3 := hub.Subscribe("b")

	assert.Equal(t, 2, hub.SubscriberCount("a"))
	assert.Equal(t, 3, hub.TotalSubscribers())
	assert.ElementsMatch(t, []string{"a", "b"}, hub.EmployeeIDs())

	c1()
	c1() // cleanup is safe to repeat
	c2()
	c3()
	assert.Zero(t, hub.TotalSubscribers())
	assert.Empty(t, hub.EmployeeIDs())
}

func TestHub_FullChannelDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("a")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("a", Event{Event: "live_hours", Data: i})
	}

	require.Len(t, ch, 10)
	first := <-ch
	assert.Equal(t, 0, first.Data)
}

func TestHub_CleanupClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("a")
	cleanup()

	_, open := <-ch
	assert.False(t, open)
}
