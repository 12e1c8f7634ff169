package vcm_test

import (
	"testing"

	"github.com/hvml/purc-go/variant"
	"github.com/hvml/purc-go/vcm"
)

func TestEvalLiteral(t *testing.T) {
	lit := vcm.NewLiteral(variant.NewLongInt(42))
	v, err := vcm.Eval(lit, vcm.NewStack(), false)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := v.AsFloat64()
	if f != 42 {
		t.Fatalf("got %v", f)
	}
}

func TestEvalVariableRefWalksScopesInnerFirst(t *testing.T) {
	outer := vcm.MapScope{"x": variant.NewLongInt(1)}
	inner := vcm.MapScope{"x": variant.NewLongInt(2)}
	stack := vcm.NewStack(outer, inner)

	v, err := vcm.Eval(vcm.NewVariableRef("x"), stack, false)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := v.AsFloat64()
	if f != 2 {
		t.Fatalf("got %v, want inner scope's value", f)
	}
}

func TestEvalVariableRefNotFound(t *testing.T) {
	_, err := vcm.Eval(vcm.NewVariableRef("missing"), vcm.NewStack(), false)
	if err == nil {
		t.Fatal("expected NOT_EXISTS error")
	}
}

func TestEvalMemberAccessObject(t *testing.T) {
	obj := variant.NewObject()
	slotObj := obj.AsObject()
	_ = slotObj.Set(nil, "name", variant.MustString("purc"), true)

	node := vcm.NewMemberAccess(vcm.NewLiteral(obj), "name")
	v, err := vcm.Eval(node, vcm.NewStack(), false)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := v.AsString()
	if s != "purc" {
		t.Fatalf("got %q", s)
	}
}

func TestEvalMemberAccessArrayByIndex(t *testing.T) {
	arr := variant.NewArray(variant.NewLongInt(10), variant.NewLongInt(20))
	node := vcm.NewMemberAccess(vcm.NewLiteral(arr), "1")
	v, err := vcm.Eval(node, vcm.NewStack(), false)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := v.AsFloat64()
	if f != 20 {
		t.Fatalf("got %v", f)
	}
}

func TestEvalCallDynamic(t *testing.T) {
	fn := variant.NewDynamic(func(args []*variant.Variant) (*variant.Variant, error) {
		a, _ := args[0].AsFloat64()
		b, _ := args[1].AsFloat64()
		return variant.NewNumber(a + b), nil
	}, nil)

	node := vcm.NewCall(vcm.NewLiteral(fn), vcm.NewLiteral(variant.NewNumber(1)), vcm.NewLiteral(variant.NewNumber(2)))
	v, err := vcm.Eval(node, vcm.NewStack(), false)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := v.AsFloat64()
	if f != 3 {
		t.Fatalf("got %v", f)
	}
}

func TestEvalCallRejectsNonCallable(t *testing.T) {
	node := vcm.NewCall(vcm.NewLiteral(variant.NewNull()))
	_, err := vcm.Eval(node, vcm.NewStack(), false)
	if err == nil {
		t.Fatal("expected error calling a non-callable variant")
	}
}

func TestEvalConcatString(t *testing.T) {
	node := vcm.NewConcatString(
		vcm.NewLiteral(variant.MustString("count: ")),
		vcm.NewLiteral(variant.NewLongInt(3)),
	)
	v, err := vcm.Eval(node, vcm.NewStack(), false)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := v.AsString()
	if s != "count: 3" {
		t.Fatalf("got %q", s)
	}
}

func TestEvalExpressionVariableReevaluatesSubtree(t *testing.T) {
	scope := vcm.MapScope{"n": variant.NewLongInt(1)}
	stack := vcm.NewStack(scope)
	node := vcm.NewExpressionVariable(vcm.NewVariableRef("n"))

	v1, err := vcm.Eval(node, stack, false)
	if err != nil {
		t.Fatal(err)
	}
	f1, _ := v1.AsFloat64()

	scope["n"] = variant.NewLongInt(5)
	v2, err := vcm.Eval(node, stack, false)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := v2.AsFloat64()

	if f1 != 1 || f2 != 5 {
		t.Fatalf("got %v then %v, want re-evaluation to see the updated scope", f1, f2)
	}
}

func TestStringifyScalars(t *testing.T) {
	cases := map[string]*variant.Variant{
		"undefined": variant.NewUndefined(),
		"null":      variant.NewNull(),
		"true":      variant.NewBoolean(true),
		"hello":     variant.MustString("hello"),
	}
	for want, v := range cases {
		if got := vcm.Stringify(v); got != want {
			t.Errorf("Stringify(%s) = %q, want %q", v.Kind(), got, want)
		}
	}
}
