package eval_test

import (
	"testing"

	"github.com/sambeau/mini/pkg/mini/builtins"
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/reader"
	"github.com/sambeau/mini/pkg/mini/value"
)

func newTestEnv() *eval.Environment {
	env := eval.NewRootEnvironment()
	builtins.Install(env, builtins.DefaultIO())
	return env
}

func run(t *testing.T, src string) value.Value {
	t.Helper()
	env := newTestEnv()
	exprs, err := reader.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	result, err := eval.EvaluateExpressions(exprs, env)
	if err != nil {
		t.Fatalf("EvaluateExpressions(%q): %v", src, err)
	}
	return result
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	env := newTestEnv()
	exprs, err := reader.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	_, err = eval.EvaluateExpressions(exprs, env)
	if err == nil {
		t.Fatalf("expected an error evaluating %q, got none", src)
	}
	return err
}

func TestAtomsSelfEvaluate(t *testing.T) {
	for _, src := range []string{"42", "3.5", `"hi"`, "true", "false", "nil", ":foo"} {
		env := newTestEnv()
		exprs, err := reader.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		v, err := eval.Evaluate(exprs[0], env)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", src, err)
		}
		if v.String() != exprs[0].String() {
			t.Errorf("%q: got %s, want %s", src, v.String(), exprs[0].String())
		}
	}
}

func TestDefineAndLookup(t *testing.T) {
	v := run(t, "(define x 5) x")
	i, ok := v.(*value.Integer)
	if !ok || i.V != 5 {
		t.Errorf("got %#v, want Integer 5", v)
	}
}

func TestRedefineFails(t *testing.T) {
	err := runErr(t, "(define x 1) (define x 2)")
	if got := errors.ClassOf(err); got != "AlreadyDefinedError" {
		t.Errorf("got class %s, want AlreadyDefinedError", got)
	}
}

func TestWrappedOperativeEvaluatesArguments(t *testing.T) {
	v := run(t, "(define square (wrap (operative (x) e (* x x)))) (square 5)")
	i, ok := v.(*value.Integer)
	if !ok || i.V != 25 {
		t.Errorf("got %#v, want Integer 25", v)
	}
}

func TestBareOperativeReceivesUnevaluatedArgs(t *testing.T) {
	v := run(t, "(define quote (operative (x) e x)) (quote (1 2 3))")
	if value.ListLength(v) != 3 {
		t.Errorf("got %s, want a 3-element list", v.String())
	}
}

func TestVariadicOperativeCapturesWholeList(t *testing.T) {
	v := run(t, "(define id (wrap (operative args e args))) (id 1 2 3)")
	if value.ListLength(v) != 3 {
		t.Errorf("got %s, want a 3-element list", v.String())
	}
}

func TestOperativeSeesDefinitionEnvironment(t *testing.T) {
	v := run(t, `
		(define f (wrap (operative (x) e x)))
		(define g (wrap (operative (x) e (f x))))
		(g 7)
	`)
	i, ok := v.(*value.Integer)
	if !ok || i.V != 7 {
		t.Errorf("got %#v, want Integer 7", v)
	}
}

func TestIfBranches(t *testing.T) {
	v := run(t, "(if (= 1 1) :yes :no)")
	sym, ok := v.(*value.Symbol)
	if !ok || sym.Name != "yes" {
		t.Errorf("got %#v, want :yes", v)
	}
}

func TestThrowsDetectsTypeError(t *testing.T) {
	v := run(t, `(throws? (car 5) "TypeError")`)
	if v != value.True {
		t.Errorf("got %s, want true", v.String())
	}
}

func TestUnwrapWrap(t *testing.T) {
	v := run(t, `
		(define f (operative (x) e x))
		(define wrapped (wrap f))
		(= (unwrap wrapped) f)
	`)
	if v != value.True {
		t.Errorf("unwrap(wrap(x)) != x: got %s", v.String())
	}
}
