package audit

import (
	"context"
	"testing"
	"time"
)

func TestDispatcherDeliversEvents(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8, DropIfFull: true}, sink)
	defer d.Close()

	d.Emit(context.Background(), Event{EventType: "login", UserID: "user-1", Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != "login" || event.UserID != "user-1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}
	// Nil receivers are safe.
	d.Emit(context.Background(), Event{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher must report zero drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// A slow consumer fills the one-slot buffer almost immediately.
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, slowSink{})

	for i := 0; i < 64; i++ {
		d.Emit(context.Background(), Event{EventType: "login"})
	}
	d.Close()

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	for i := 0; i < 4; i++ {
		d.Emit(context.Background(), Event{EventType: "logout"})
	}
	d.Close()

	received := 0
	for {
		select {
		case <-sink.Events():
			received++
			if received == 4 {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("expected 4 drained events, got %d", received)
		}
	}
}

// slowSink simulates a consumer that can stall the dispatcher goroutine.
type slowSink struct{}

func (slowSink) Emit(context.Context, Event) {
	time.Sleep(time.Millisecond)
}
