// Package eval implements the evaluator: the environment chain and the
// evaluation/application rules that give mini's operative/wrapper
// distinction its meaning.
package eval

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

// Evaluate implements the dispatch described in the evaluation rules:
// atoms self-evaluate, identifiers resolve through env, and a Pair applies
// the evaluated head to the unevaluated tail.
func Evaluate(expr value.Value, env *Environment) (value.Value, error) {
	switch v := expr.(type) {
	case value.NilValue, *value.Boolean, *value.Integer, *value.Float, *value.String, *value.Symbol:
		return expr, nil

	case *value.Identifier:
		if found, ok := env.Lookup(v.Name); ok {
			return found, nil
		}
		return nil, errors.NewUndefinedIdentifier(v.Name, env.AllNames())

	case *value.Pair:
		head, err := Evaluate(v.Car, env)
		if err != nil {
			return nil, err
		}
		return Apply(head, v.Cdr, env)

	default:
		return nil, errors.Newf(errors.ClassType, "cannot evaluate %s", value.Inspect(expr))
	}
}

// Apply dispatches a callable on an unevaluated argument list: an Operative
// receives it verbatim, a Wrapper evaluates every element left-to-right
// into a fresh list first, and anything else is a TypeError.
func Apply(callee value.Value, args value.Value, env *Environment) (value.Value, error) {
	switch c := callee.(type) {
	case *Operative:
		return invokeOperative(c, args, env)

	case *Wrapper:
		evaluated, err := evaluateArgList(args, env)
		if err != nil {
			return nil, err
		}
		return Apply(c.Underlying, evaluated, env)

	default:
		return nil, errors.Newf(errors.ClassType, "expected applicative, got %s", value.Inspect(callee))
	}
}

// evaluateArgList evaluates each element of an argument list strictly
// left-to-right, returning a new Nil-terminated list of the results.
func evaluateArgList(args value.Value, env *Environment) (value.Value, error) {
	items, err := value.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	evaluated := make([]value.Value, len(items))
	for i, item := range items {
		v, err := Evaluate(item, env)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}
	return value.NewList(evaluated...), nil
}

// EvaluateExpressions evaluates each of a slice of top-level expressions in
// sequence, returning the value of the last one, or Nil for an empty
// slice. Intermediate values are discarded. This is the REPL/file-runner
// entry point over a parsed program.
func EvaluateExpressions(exprs []value.Value, env *Environment) (value.Value, error) {
	result := value.Nil
	for _, expr := range exprs {
		v, err := Evaluate(expr, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// EvaluateList evaluates each expression of a Nil-terminated Pair chain in
// sequence, returning the last value (or Nil for an empty list). It is
// used to evaluate `define`'s expression(s).
func EvaluateList(list value.Value, env *Environment) (value.Value, error) {
	result := value.Nil
	cur := list
	for {
		p, ok := cur.(*value.Pair)
		if !ok {
			return result, nil
		}
		v, err := Evaluate(p.Car, env)
		if err != nil {
			return nil, err
		}
		result = v
		cur = p.Cdr
	}
}
