package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()
	scans, stopScans := hub.Subscribe("scans")
	defer stopScans()
	other, stopOther := hub.Subscribe("absences")
	defer stopOther()

	hub.Publish("scans", Event{Event: "scan", Data: "EMP001"})

	select {
	case ev := <-scans:
		assert.Equal(t, "scans", ev.Topic)
		assert.Equal(t, "scan", ev.Event)
		assert.Equal(t, "EMP001", ev.Data)
	default:
		t.Fatal("expected an event on the scans topic")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	default:
	}
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, stop := hub.Subscribe("scans")
	defer stop()

	for i := 0; i < 50; i++ {
		hub.Publish("scans", Event{Event: "scan"})
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, stop := hub.Subscribe("scans")
	require.Equal(t, 1, hub.SubscriberCount("scans"))

	stop()
	stop()

	assert.Equal(t, 0, hub.SubscriberCount("scans"))
	_, open := <-ch
	assert.False(t, open)
}
