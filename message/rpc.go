package message

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// MethodEvent is the JSON-RPC 2.0 method name an Envelope is framed under
// when it crosses the renderer channel (spec.md §6). Forward always sends
// it as a notification, whatever the envelope's Type; Handler accepts it
// as either a notification or a call.
const MethodEvent = "purc/event"

// wireEnvelope is the JSON projection of Envelope. variant.Variant has no
// JSON mapping of its own (it is a tagged union carrying getters/setters
// and reference counts that make no sense on the wire), so this package
// flattens every field the renderer channel actually needs into plain
// JSON-able shapes and rebuilds the variant side on decode.
type wireEnvelope struct {
	Type         string      `json:"type"`
	Target       string      `json:"target"`
	TargetValue  uint64      `json:"targetValue"`
	ReduceOpt    int         `json:"reduceOpt"`
	SourceURI    string      `json:"sourceURI,omitempty"`
	ElementType  int         `json:"elementType"`
	ElementValue interface{} `json:"elementValue,omitempty"`
	EventName    string      `json:"eventName,omitempty"`
	DataType     string      `json:"dataType,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// EncodeNotification renders env as the params of a MethodEvent
// notification, ready for jsonrpc2.Conn.Notify.
func EncodeNotification(env *Envelope) (json.RawMessage, error) {
	return json.Marshal(toWire(env))
}

// DecodeRequest rebuilds an Envelope from the params of an incoming
// MethodEvent request or notification.
func DecodeRequest(r jsonrpc2.Request) (*Envelope, error) {
	if r.Method() != MethodEvent {
		return nil, errors.E(errors.NotSupported, "unknown renderer channel method: "+r.Method())
	}
	var w wireEnvelope
	if err := json.Unmarshal(r.Params(), &w); err != nil {
		return nil, errors.E(errors.BadEncoding, err)
	}
	return fromWire(&w)
}

// Forward relays env to the renderer over conn as a MethodEvent
// notification, the wire-level half of Channel.Send (spec.md §6).
func Forward(ctx context.Context, conn jsonrpc2.Conn, env *Envelope) error {
	return conn.Notify(ctx, MethodEvent, toWire(env))
}

// Handler adapts an inbound renderer channel into a Channel.In feed: every
// MethodEvent notification or request is decoded and pushed, and anything
// else is rejected the way the teacher's own sync.Server.Handler rejects
// methods it doesn't recognize.
func Handler(ch *Channel) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, r jsonrpc2.Request) error {
		if r.Method() != MethodEvent {
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
		env, err := DecodeRequest(r)
		if err != nil {
			return reply(ctx, nil, jsonrpc2.ErrInvalidParams)
		}
		ch.In.Send(env)
		return reply(ctx, true, nil)
	}
}

func toWire(env *Envelope) *wireEnvelope {
	w := &wireEnvelope{
		Type:        env.Type.String(),
		Target:      env.Target.String(),
		TargetValue: env.TargetValue,
		ReduceOpt:   int(env.ReduceOpt),
		ElementType: int(env.ElementType),
		DataType:    env.DataType,
	}
	if env.SourceURI != nil {
		w.SourceURI, _ = env.SourceURI.AsString()
	}
	if env.ElementValue != nil {
		w.ElementValue = toInterface(env.ElementValue)
	}
	if env.EventName != nil {
		w.EventName, _ = env.EventName.AsString()
	}
	if env.Data != nil {
		w.Data = toInterface(env.Data)
	}
	return w
}

func fromWire(w *wireEnvelope) (*Envelope, error) {
	env := &Envelope{
		Type:        parseType(w.Type),
		Target:      parseTarget(w.Target),
		TargetValue: w.TargetValue,
		ReduceOpt:   ReduceOpt(w.ReduceOpt),
		ElementType: ElementType(w.ElementType),
		DataType:    w.DataType,
	}
	if w.SourceURI != "" {
		v, err := variant.NewString(w.SourceURI)
		if err != nil {
			return nil, err
		}
		env.SourceURI = v
	}
	if w.ElementValue != nil {
		env.ElementValue = fromInterface(w.ElementValue)
	}
	if w.EventName != "" {
		v, err := variant.NewString(w.EventName)
		if err != nil {
			return nil, err
		}
		env.EventName = v
	}
	if w.Data != nil {
		env.Data = fromInterface(w.Data)
	}
	return env, nil
}

// toInterface converts a scalar or container variant into a JSON-able
// value. Dynamic, Native, and Exception variants have no wire
// representation and are encoded as null.
func toInterface(v *variant.Variant) interface{} {
	switch v.Kind() {
	case variant.Undefined, variant.Null:
		return nil
	case variant.Boolean:
		b, _ := v.AsBool()
		return b
	case variant.Number, variant.LongDouble:
		f, _ := v.AsFloat64()
		return f
	case variant.LongInt, variant.ULongInt:
		f, _ := v.AsFloat64()
		return f
	case variant.String, variant.AtomString:
		s, _ := v.AsString()
		return s
	case variant.ByteSequence:
		b, _ := v.AsBytes()
		return b
	case variant.Array:
		arr := v.AsArray()
		out := make([]interface{}, 0, arr.Len())
		arr.Iterate(func(_ int, val *variant.Variant) bool {
			out = append(out, toInterface(val))
			return true
		})
		return out
	case variant.Set:
		set := v.AsSet()
		out := make([]interface{}, 0, set.Len())
		set.Iterate(func(val *variant.Variant) bool {
			out = append(out, toInterface(val))
			return true
		})
		return out
	case variant.Object:
		obj := v.AsObject()
		out := make(map[string]interface{}, obj.Len())
		obj.Iterate(func(key string, val *variant.Variant) bool {
			out[key] = toInterface(val)
			return true
		})
		return out
	default:
		return nil
	}
}

// fromInterface is the converse of toInterface, decoding the
// encoding/json-produced shapes (nil, bool, float64, string, []byte,
// []interface{}, map[string]interface{}) back into variants.
func fromInterface(raw interface{}) *variant.Variant {
	switch val := raw.(type) {
	case nil:
		return variant.NewNull()
	case bool:
		return variant.NewBoolean(val)
	case float64:
		return variant.NewNumber(val)
	case string:
		return variant.MustString(val)
	case []byte:
		return variant.NewByteSequence(val)
	case []interface{}:
		arr := variant.NewArray()
		for _, item := range val {
			arr.AsArray().Append(fromInterface(item))
		}
		return arr
	case map[string]interface{}:
		obj := variant.NewObject()
		slot := errors.NewSlot()
		for key, item := range val {
			_ = obj.AsObject().Set(slot, key, fromInterface(item), true)
		}
		return obj
	default:
		return variant.NewUndefined()
	}
}

func parseType(s string) Type {
	switch s {
	case "event":
		return Event
	case "request":
		return Request
	case "response":
		return Response
	default:
		return Void
	}
}

func parseTarget(s string) Target {
	switch s {
	case "session":
		return Session
	case "workspace":
		return Workspace
	case "plainwindow":
		return PlainWindow
	case "widget":
		return Widget
	case "dom":
		return DOM
	case "user":
		return User
	case "coroutine":
		return Coroutine
	case "broadcast":
		return Broadcast
	default:
		return Session
	}
}
