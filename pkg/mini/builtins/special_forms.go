package builtins

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/value"
)

func installSpecialForms(env *eval.Environment) {
	specialForm(env, "define", defineForm)
	specialForm(env, "if", ifForm)
	specialForm(env, "operative", operativeForm)
	specialForm(env, "defined?", definedForm)
	specialForm(env, "assert", assertForm)
	specialForm(env, "throws?", throwsForm)
}

// defineForm implements `(define name expr...)`.
func defineForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) < 2 {
		return nil, errors.New(errors.ClassArgument, "define expects a name and at least one expression")
	}

	id, ok := items[0].(*value.Identifier)
	if !ok {
		if _, isPair := items[0].(*value.Pair); isPair {
			return nil, errors.New(errors.ClassNotImplemented, "destructuring define is not implemented")
		}
		return nil, errors.Newf(errors.ClassType, "define expected Identifier, got %s", value.Inspect(items[0]))
	}

	result, err := eval.EvaluateList(value.NewList(items[1:]...), callEnv)
	if err != nil {
		return nil, err
	}

	if err := callEnv.Define(id.Name, result); err != nil {
		return nil, err
	}
	return value.Nil, nil
}

// ifForm implements `(if cond then [else])`. Two-argument form with a
// FALSE condition returns Nil rather than erroring (the permissive choice
// among the drafts the reference behavior was split on).
func ifForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) != 2 && len(items) != 3 {
		return nil, errors.Newf(errors.ClassArgument, "if expected 2 or 3 arguments, received %d", len(items))
	}

	cond, err := eval.Evaluate(items[0], callEnv)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*value.Boolean)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "if expected Boolean condition, got %s", value.Inspect(cond))
	}

	if b.Bool() {
		return eval.Evaluate(items[1], callEnv)
	}
	if len(items) == 3 {
		return eval.Evaluate(items[2], callEnv)
	}
	return value.Nil, nil
}

// operativeForm implements `(operative params envname body...)`.
func operativeForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) < 3 {
		return nil, errors.New(errors.ClassArgument, "operative expects a parameter spec, an environment name, and a body")
	}

	params := items[0]
	envName, ok := items[1].(*value.Identifier)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "operative expected Identifier for calling-environment name, got %s", value.Inspect(items[1]))
	}

	op, err := eval.NewUserOperative("", params, envName, items[2:], callEnv)
	if err != nil {
		return nil, err
	}
	return op, nil
}

// definedForm implements `(defined? name)`.
func definedForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if err := wantArgs("defined?", items, 1); err != nil {
		return nil, err
	}
	id, ok := items[0].(*value.Identifier)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "defined? expected Identifier, got %s", value.Inspect(items[0]))
	}
	return value.BoolFor(callEnv.Defined(id.Name)), nil
}

// assertForm implements `(assert [desc] pred)`, evaluating its arguments
// in a fresh nested scope.
func assertForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) != 1 && len(items) != 2 {
		return nil, errors.Newf(errors.ClassArgument, "assert expected 1 or 2 arguments, received %d", len(items))
	}

	scope := callEnv.Nest()
	desc := "assertion failed"
	predExpr := items[0]
	if len(items) == 2 {
		d, err := eval.Evaluate(items[0], scope)
		if err != nil {
			return nil, err
		}
		if s, ok := d.(*value.String); ok {
			desc = s.V
		} else {
			desc = value.Inspect(d)
		}
		predExpr = items[1]
	}

	pred, err := eval.Evaluate(predExpr, scope)
	if err != nil {
		return nil, err
	}
	b, ok := pred.(*value.Boolean)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "assert expected Boolean predicate, got %s", value.Inspect(pred))
	}
	if !b.Bool() {
		return nil, errors.New(errors.ClassAssertion, desc)
	}
	return value.Nil, nil
}

// throwsForm implements `(throws? expr type-string)`.
func throwsForm(args value.Value, callEnv *eval.Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if err := wantArgs("throws?", items, 2); err != nil {
		return nil, err
	}

	typeVal, err := eval.Evaluate(items[1], callEnv)
	if err != nil {
		return nil, err
	}
	wantType, ok := typeVal.(*value.String)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "throws? expected String type name, got %s", value.Inspect(typeVal))
	}

	_, evalErr := eval.Evaluate(items[0], callEnv)
	if evalErr == nil {
		return value.False, nil
	}
	if errors.ClassOf(evalErr) == wantType.V {
		return value.True, nil
	}
	return nil, evalErr
}
