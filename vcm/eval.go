package vcm

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// Eval evaluates node against stack, per the per-kind rules in spec.md
// §4.D. silently controls whether a failure also writes the process's
// last-error slot (see errors.Slot); Eval itself never touches a slot, it
// only shapes the returned error so a caller holding a slot can decide.
func Eval(node *Node, stack *Stack, silently bool) (*variant.Variant, error) {
	switch node.Kind {
	case Literal:
		return node.Value.Ref(), nil

	case VariableRef:
		v, ok := stack.Lookup(node.Name)
		if !ok {
			return nil, errors.E(errors.NotExists, "variable %q not found", node.Name)
		}
		return v.Ref(), nil

	case MemberAccess:
		base, err := Eval(node.Children[0], stack, silently)
		if err != nil {
			return nil, err
		}
		defer base.Unref()
		return evalMember(base, node.Member)

	case Call:
		callee, err := Eval(node.Children[0], stack, silently)
		if err != nil {
			return nil, err
		}
		defer callee.Unref()

		if callee.Kind() != variant.Dynamic && callee.Kind() != variant.Native {
			return nil, errors.E(errors.WrongDataType, "callee is not dynamic or native")
		}

		args := make([]*variant.Variant, 0, len(node.Children)-1)
		defer func() {
			for _, a := range args {
				a.Unref()
			}
		}()
		for _, c := range node.Children[1:] {
			v, err := Eval(c, stack, silently)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return callee.Call(args)

	case ConcatString:
		var sb strings.Builder
		for _, c := range node.Children {
			v, err := Eval(c, stack, silently)
			if err != nil {
				return nil, err
			}
			sb.WriteString(Stringify(v))
			v.Unref()
		}
		return variant.MustString(sb.String()), nil

	case ExpressionVariable:
		return Eval(node.Children[0], stack, silently)

	default:
		return nil, errors.E(errors.ErrInternal, "unknown VCM node kind %d", node.Kind)
	}
}

func evalMember(base *variant.Variant, member string) (*variant.Variant, error) {
	switch base.Kind() {
	case variant.Object:
		v, ok := base.AsObject().Get(member)
		if !ok {
			return nil, errors.E(errors.NotExists, "no such key %q", member)
		}
		return v, nil
	case variant.Array:
		idx, err := strconv.Atoi(member)
		if err != nil {
			return nil, errors.E(errors.WrongDataType, "array member access requires a numeric index, got %q", member)
		}
		v, ok := base.AsArray().Get(idx)
		if !ok {
			return nil, errors.E(errors.NotExists, "index %d out of range", idx)
		}
		return v, nil
	case variant.Native:
		return base.GetProperty(member, nil)
	default:
		return nil, errors.E(errors.WrongDataType, "kind %s has no members", base.Kind())
	}
}

// Stringify renders a variant per the concat-string type table: scalars
// render their literal form, containers render a minimal JSON-like
// summary sufficient for text interpolation.
func Stringify(v *variant.Variant) string {
	switch v.Kind() {
	case variant.Undefined:
		return "undefined"
	case variant.Null:
		return "null"
	case variant.Boolean:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case variant.Number, variant.LongInt, variant.ULongInt, variant.LongDouble:
		f, _ := v.AsFloat64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case variant.String, variant.AtomString:
		s, _ := v.AsString()
		return s
	case variant.ByteSequence:
		b, _ := v.AsBytes()
		return "b64:" + base64.StdEncoding.EncodeToString(b)
	case variant.Object:
		var sb strings.Builder
		sb.WriteByte('{')
		first := true
		v.AsObject().Iterate(func(key string, val *variant.Variant) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(strconv.Quote(key))
			sb.WriteByte(':')
			sb.WriteString(Stringify(val))
			return true
		})
		sb.WriteByte('}')
		return sb.String()
	case variant.Array:
		var sb strings.Builder
		sb.WriteByte('[')
		first := true
		v.AsArray().Iterate(func(_ int, val *variant.Variant) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(Stringify(val))
			return true
		})
		sb.WriteByte(']')
		return sb.String()
	case variant.Set:
		var sb strings.Builder
		sb.WriteByte('[')
		first := true
		v.AsSet().Iterate(func(val *variant.Variant) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(Stringify(val))
			return true
		})
		sb.WriteByte(']')
		return sb.String()
	default:
		return ""
	}
}
