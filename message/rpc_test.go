package message

import (
	"context"
	"encoding/json"
	"testing"

	"go.lsp.dev/jsonrpc2"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// fakeConn is a minimal jsonrpc2.Conn recording the last notification sent,
// grounded on the teacher's own test double for the same interface.
type fakeConn struct {
	method string
	params interface{}
}

func (c *fakeConn) Go(context.Context, jsonrpc2.Handler) {}
func (c *fakeConn) Close() error                         { return nil }
func (c *fakeConn) Done() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}
func (c *fakeConn) Err() error { return nil }
func (c *fakeConn) Notify(_ context.Context, method string, params interface{}) error {
	c.method = method
	c.params = params
	return nil
}
func (c *fakeConn) Call(context.Context, string, interface{}, interface{}) (jsonrpc2.ID, error) {
	return jsonrpc2.NewNumberID(0), nil
}

func TestEncodeNotificationShape(t *testing.T) {
	name := variant.MustString("click")
	data := variant.NewObject()
	slot := errors.NewSlot()
	if err := data.AsObject().Set(slot, "x", variant.NewNumber(3), false); err != nil {
		t.Fatalf("building payload: %v", err)
	}
	env := &Envelope{
		Type:      Event,
		Target:    Coroutine,
		EventName: name,
		Data:      data,
	}

	raw, err := EncodeNotification(env)
	if err != nil {
		t.Fatalf("EncodeNotification: %v", err)
	}

	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		t.Fatalf("unmarshal wire envelope: %v", err)
	}
	if w.Type != "event" || w.Target != "coroutine" || w.EventName != "click" {
		t.Fatalf("unexpected wire shape: %+v", w)
	}
	obj, ok := w.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data to decode as an object, got %T", w.Data)
	}
	if obj["x"] != float64(3) {
		t.Fatalf("got data.x = %v, want 3", obj["x"])
	}
}

func TestWireRoundTrip(t *testing.T) {
	src := variant.MustString("hi")
	env := &Envelope{
		Type:      Request,
		Target:    Widget,
		EventName: src,
		DataType:  "plain",
		Data:      variant.NewBoolean(true),
	}

	w := toWire(env)
	got, err := fromWire(w)
	if err != nil {
		t.Fatalf("fromWire: %v", err)
	}
	if got.Type != Request || got.Target != Widget || got.DataType != "plain" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	name, _ := got.EventName.AsString()
	if name != "hi" {
		t.Fatalf("got event name %q, want hi", name)
	}
	b, _ := got.Data.AsBool()
	if !b {
		t.Fatal("expected round-tripped data to be true")
	}
}

func TestForwardNotifiesOverConn(t *testing.T) {
	conn := &fakeConn{}
	env := &Envelope{Type: Event, Target: Session, EventName: variant.MustString("change")}

	if err := Forward(context.Background(), conn, env); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if conn.method != MethodEvent {
		t.Fatalf("got method %q, want %q", conn.method, MethodEvent)
	}
	w, ok := conn.params.(*wireEnvelope)
	if !ok {
		t.Fatalf("expected params to be a *wireEnvelope, got %T", conn.params)
	}
	if w.EventName != "change" {
		t.Fatalf("got event name %q, want change", w.EventName)
	}
}

func TestToInterfaceContainers(t *testing.T) {
	arr := variant.NewArray(variant.NewNumber(1), variant.NewNumber(2))
	got, ok := toInterface(arr).([]interface{})
	if !ok || len(got) != 2 {
		t.Fatalf("expected a two-element slice, got %#v", toInterface(arr))
	}

	back := fromInterface(got)
	if back.Kind() != variant.Array || back.AsArray().Len() != 2 {
		t.Fatalf("expected array round trip, got %v", back.Kind())
	}
}
