package eval

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

// NativeFn is the shape every special form and the generated closure of a
// user `operative` reduce to: given the caller's unevaluated argument list
// and the environment in force at the call site, produce a result or an
// error. Argument evaluation, if any, has already happened by the time a
// NativeFn runs (Evaluate peels off a Wrapper layer first).
type NativeFn func(args value.Value, callEnv *Environment) (value.Value, error)

// Operative is a callable that receives its arguments unevaluated, the
// vau-calculus primitive everything else in mini is built from. Name is
// diagnostic only (used by String); Fn does the work.
type Operative struct {
	Name string
	Fn   NativeFn
}

func (o *Operative) Kind() value.Kind { return value.KindOperative }
func (o *Operative) String() string {
	if o.Name != "" {
		return "#<operative:" + o.Name + ">"
	}
	return "#<operative>"
}

// NewNativeOperative registers a host-provided operative under name.
func NewNativeOperative(name string, fn NativeFn) *Operative {
	return &Operative{Name: name, Fn: fn}
}

// Wrapper converts an Operative (or another Wrapper) into an applicative:
// invoking it evaluates each argument left-to-right in the caller's
// environment before delegating to Underlying. Wrappers may stack; each
// layer adds one evaluation pass.
type Wrapper struct {
	Underlying value.Value // *Operative or *Wrapper
}

func (w *Wrapper) Kind() value.Kind { return value.KindWrapper }
func (w *Wrapper) String() string   { return "#<wrapper " + w.Underlying.String() + ">" }

// Wrap builds a Wrapper over op, which must itself be an Operative or
// Wrapper.
func Wrap(op value.Value) (value.Value, error) {
	switch op.(type) {
	case *Operative, *Wrapper:
		return &Wrapper{Underlying: op}, nil
	default:
		return nil, errors.Newf(errors.ClassType, "wrap expected operative or wrapper, got %s", value.Inspect(op))
	}
}

// Unwrap returns a Wrapper's underlying callable, failing with UnwrapError
// on anything else.
func Unwrap(v value.Value) (value.Value, error) {
	w, ok := v.(*Wrapper)
	if !ok {
		return nil, errors.Newf(errors.ClassUnwrap, "unwrap expected Wrapper, got %s", value.Inspect(v))
	}
	return w.Underlying, nil
}

// invokeOperative dispatches to op's native function. It is the single
// place an *Operative actually runs, whether it came from the builtin
// table or from the `operative` special form.
func invokeOperative(op *Operative, args value.Value, callEnv *Environment) (value.Value, error) {
	return op.Fn(args, callEnv)
}
