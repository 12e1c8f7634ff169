package event_test

import (
	"testing"

	"github.com/hvml/purc-go/event"
)

func TestEventStream(t *testing.T) {
	stream := event.NewStream[int](3)

	if !stream.Send(1) || !stream.Send(2) || !stream.Send(3) {
		t.Fatal("expected the first 3 sends to succeed")
	}
	if stream.Send(4) {
		t.Fatal("expected a send against a full buffer to report false")
	}

	close(stream)

	want := 1
	for event := range stream {
		if event != want {
			t.Fatalf("got %d, want %d", event, want)
		}
		want++
	}
}

func TestEventStreamZeroValueWontBlock(t *testing.T) {
	var stream event.Stream[string]

	if stream.Send("ok") || stream.Send("ok2") {
		t.Fatal("expected sends on the zero-value stream to report false")
	}
}
