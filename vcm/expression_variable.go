package vcm

import (
	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// Property names an expression-variable native object exposes (spec.md
// §4.D): `eval` re-evaluates on each access, `eval_const` memoizes the
// first result, `vcm_ev` identifies the object as an expression variable,
// `last_value` is a writable slot updated when the variable is observed.
const (
	PropertyEval      = "eval"
	PropertyEvalConst = "eval_const"
	PropertyVCMEv     = "vcm_ev"
	PropertyLastValue = "last_value"
)

// expressionVariable is the native entity wrapped by ToExpressionVariable.
type expressionVariable struct {
	expr       *Node
	stack      *Stack
	constValue *variant.Variant
	lastValue  *variant.Variant
}

// ToExpressionVariable wraps expr as a native-object variant exposing the
// eval/eval_const/vcm_ev/last_value property protocol, grounded on the
// original implementation's pcvcm_to_expression_variable.
func ToExpressionVariable(expr *Node, stack *Stack) *variant.Variant {
	ev := &expressionVariable{expr: expr, stack: stack}

	ops := &variant.NativeOps{
		PropertyGetter: func(entity interface{}, name string, args []*variant.Variant) (*variant.Variant, error) {
			e := entity.(*expressionVariable)
			switch name {
			case PropertyEval:
				return Eval(e.expr, e.stack, false)
			case PropertyEvalConst:
				if e.constValue == nil {
					v, err := Eval(e.expr, e.stack, false)
					if err != nil {
						return nil, err
					}
					e.constValue = v
				}
				return e.constValue.Ref(), nil
			case PropertyVCMEv:
				return variant.NewBoolean(true), nil
			case PropertyLastValue:
				if e.lastValue == nil {
					return variant.NewUndefined(), nil
				}
				return e.lastValue.Ref(), nil
			default:
				return nil, errors.E(errors.NotExists, "no such property %q", name)
			}
		},
		PropertySetter: func(entity interface{}, name string, args []*variant.Variant) (*variant.Variant, error) {
			e := entity.(*expressionVariable)
			if name != PropertyLastValue {
				return nil, errors.E(errors.NotExists, "no such property %q", name)
			}
			if len(args) == 0 {
				return nil, errors.E(errors.NotExists, "no such property %q", name)
			}
			if e.lastValue != nil {
				e.lastValue.Unref()
			}
			e.lastValue = args[0].Ref()
			return e.lastValue.Ref(), nil
		},
		OnObserve: func(entity interface{}, event string) error {
			e := entity.(*expressionVariable)
			v, err := Eval(e.expr, e.stack, false)
			if err != nil {
				return err
			}
			if e.lastValue != nil {
				e.lastValue.Unref()
			}
			e.lastValue = v
			return nil
		},
		OnRelease: func(entity interface{}) {
			e := entity.(*expressionVariable)
			if e.constValue != nil {
				e.constValue.Unref()
			}
			if e.lastValue != nil {
				e.lastValue.Unref()
			}
		},
	}

	return variant.NewNative(ev, ops)
}
