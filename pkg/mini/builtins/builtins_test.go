package builtins_test

import (
	"testing"

	"github.com/sambeau/mini/pkg/mini/builtins"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/reader"
	"github.com/sambeau/mini/pkg/mini/value"
)

func eval1(t *testing.T, src string) value.Value {
	t.Helper()
	env := eval.NewRootEnvironment()
	builtins.Install(env, builtins.DefaultIO())
	exprs, err := reader.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	v, err := eval.EvaluateExpressions(exprs, env)
	if err != nil {
		t.Fatalf("EvaluateExpressions(%q): %v", src, err)
	}
	return v
}

func TestArithmeticPromotesToFloat(t *testing.T) {
	if v := eval1(t, "(+ 1 2)"); v.(*value.Integer).V != 3 {
		t.Errorf("(+ 1 2) = %s", v)
	}
	if v := eval1(t, "(+ 1 2.0)"); v.(*value.Float).V != 3.0 {
		t.Errorf("(+ 1 2.0) = %s", v)
	}
}

func TestDivideExactIsInteger(t *testing.T) {
	v := eval1(t, "(/ 10 5)")
	i, ok := v.(*value.Integer)
	if !ok || i.V != 2 {
		t.Errorf("(/ 10 5) = %#v, want Integer 2", v)
	}
}

func TestDivideInexactIsFloat(t *testing.T) {
	v := eval1(t, "(/ 10 3)")
	if _, ok := v.(*value.Float); !ok {
		t.Errorf("(/ 10 3) = %#v, want Float", v)
	}
}

func TestModFloorsTowardNegativeInfinity(t *testing.T) {
	v := eval1(t, "(mod -7 2)")
	if i, ok := v.(*value.Integer); !ok || i.V != 1 {
		t.Errorf("(mod -7 2) = %#v, want Integer 1", v)
	}
	v = eval1(t, "(mod 7 -2)")
	if i, ok := v.(*value.Integer); !ok || i.V != -1 {
		t.Errorf("(mod 7 -2) = %#v, want Integer -1", v)
	}
}

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	v := eval1(t, "(// -7 2)")
	if i, ok := v.(*value.Integer); !ok || i.V != -4 {
		t.Errorf("(// -7 2) = %#v, want Integer -4", v)
	}
	v = eval1(t, "(// 7 -2)")
	if i, ok := v.(*value.Integer); !ok || i.V != -4 {
		t.Errorf("(// 7 -2) = %#v, want Integer -4", v)
	}
}

func TestConcatenate(t *testing.T) {
	v := eval1(t, `(concatenate "foo" "bar")`)
	s, ok := v.(*value.String)
	if !ok || s.V != "foobar" {
		t.Errorf("got %#v, want \"foobar\"", v)
	}
}

func TestConsCarCdr(t *testing.T) {
	v := eval1(t, "(car (cons 1 2))")
	if i, ok := v.(*value.Integer); !ok || i.V != 1 {
		t.Errorf("car(cons(1,2)) = %#v, want 1", v)
	}
	v = eval1(t, "(cdr (cons 1 2))")
	if i, ok := v.(*value.Integer); !ok || i.V != 2 {
		t.Errorf("cdr(cons(1,2)) = %#v, want 2", v)
	}
}

func TestConsDictSetGet(t *testing.T) {
	v := eval1(t, `
		(define d1 (cons-dict-set nil :a 1))
		(define d2 (cons-dict-set d1 :b 2))
		(cons-dict-get d2 :a)
	`)
	if i, ok := v.(*value.Integer); !ok || i.V != 1 {
		t.Errorf("got %#v, want Integer 1", v)
	}
}

func TestConsDictGetMissingKeyErrors(t *testing.T) {
	env := eval.NewRootEnvironment()
	builtins.Install(env, builtins.DefaultIO())
	exprs, err := reader.Parse(`(cons-dict-get nil :missing)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := eval.EvaluateExpressions(exprs, env); err == nil {
		t.Error("expected KeyError on missing key")
	}
}

func TestSliceHandlesNilBounds(t *testing.T) {
	v := eval1(t, `(slice "hello world" 6 nil)`)
	if s, ok := v.(*value.String); !ok || s.V != "world" {
		t.Errorf("got %#v, want \"world\"", v)
	}
}
