package builtins

import (
	"strings"

	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/value"
)

func installArithmetic(env *eval.Environment) {
	applicative(env, "=", eq)
	applicative(env, "<", ordering(func(c int) bool { return c < 0 }))
	applicative(env, ">", ordering(func(c int) bool { return c > 0 }))
	applicative(env, "<=", ordering(func(c int) bool { return c <= 0 }))
	applicative(env, ">=", ordering(func(c int) bool { return c >= 0 }))
	applicative(env, "+", arith("+", func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }))
	applicative(env, "-", arith("-", func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }))
	applicative(env, "*", arith("*", func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }))
	applicative(env, "mod", intArith("mod", floorMod))
	applicative(env, "//", intArith("//", floorDiv))
	applicative(env, "/", divide)
	applicative(env, "not", not)
}

func eq(args []value.Value) (value.Value, error) {
	if err := wantArgs("=", args, 2); err != nil {
		return nil, err
	}
	return value.BoolFor(value.Equal(args[0], args[1])), nil
}

// ordering builds a comparison builtin from a predicate over the sign of a
// three-way comparison: numbers compare numerically, strings and symbols
// lexicographically by name.
func ordering(accept func(cmp int) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs("comparison", args, 2); err != nil {
			return nil, err
		}
		c, err := compare(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return value.BoolFor(accept(c)), nil
	}
}

func compare(a, b value.Value) (int, error) {
	if value.IsNumber(a) && value.IsNumber(b) {
		af, _ := value.AsFloat64(a)
		bf, _ := value.AsFloat64(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	name := func(v value.Value) (string, bool) {
		switch vv := v.(type) {
		case *value.String:
			return vv.V, true
		case *value.Symbol:
			return vv.Name, true
		default:
			return "", false
		}
	}
	an, aok := name(a)
	bn, bok := name(b)
	if !aok || !bok {
		return 0, errors.Newf(errors.ClassType, "cannot compare %s and %s", value.Inspect(a), value.Inspect(b))
	}
	return strings.Compare(an, bn), nil
}

// arith builds a builtin that applies intOp when both operands are Integer
// and floatOp (with both operands widened) otherwise.
func arith(name string, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		ai, aIsInt := args[0].(*value.Integer)
		bi, bIsInt := args[1].(*value.Integer)
		if aIsInt && bIsInt {
			return &value.Integer{V: intOp(ai.V, bi.V)}, nil
		}
		af, aok := value.AsFloat64(args[0])
		bf, bok := value.AsFloat64(args[1])
		if !aok || !bok {
			return nil, errors.Newf(errors.ClassType, "%s expected numbers, got %s and %s", name, value.Inspect(args[0]), value.Inspect(args[1]))
		}
		return &value.Float{V: floatOp(af, bf)}, nil
	}
}

// floorDiv and floorMod round toward negative infinity rather than toward
// zero, matching the source language's native `//`/`%` (Go's `/`/`%` round
// toward zero, which would make `(mod -7 2)` negative).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

// intArith builds a builtin restricted to Integer operands, for `mod` and
// `//` which have no well-defined float form in this language.
func intArith(name string, op func(a, b int64) int64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		ai, aok := args[0].(*value.Integer)
		bi, bok := args[1].(*value.Integer)
		if !aok || !bok {
			return nil, errors.Newf(errors.ClassType, "%s expected Integer operands, got %s and %s", name, value.Inspect(args[0]), value.Inspect(args[1]))
		}
		if bi.V == 0 {
			return nil, errors.Newf(errors.ClassArgument, "%s by zero", name)
		}
		return &value.Integer{V: op(ai.V, bi.V)}, nil
	}
}

// divide yields an Integer when both operands are Integer and the division
// is exact, a Float otherwise.
func divide(args []value.Value) (value.Value, error) {
	if err := wantArgs("/", args, 2); err != nil {
		return nil, err
	}
	ai, aIsInt := args[0].(*value.Integer)
	bi, bIsInt := args[1].(*value.Integer)
	if aIsInt && bIsInt {
		if bi.V == 0 {
			return nil, errors.New(errors.ClassArgument, "/ by zero")
		}
		if ai.V%bi.V == 0 {
			return &value.Integer{V: ai.V / bi.V}, nil
		}
		return &value.Float{V: float64(ai.V) / float64(bi.V)}, nil
	}
	af, aok := value.AsFloat64(args[0])
	bf, bok := value.AsFloat64(args[1])
	if !aok || !bok {
		return nil, errors.Newf(errors.ClassType, "/ expected numbers, got %s and %s", value.Inspect(args[0]), value.Inspect(args[1]))
	}
	if bf == 0 {
		return nil, errors.New(errors.ClassArgument, "/ by zero")
	}
	return &value.Float{V: af / bf}, nil
}

func not(args []value.Value) (value.Value, error) {
	if err := wantArgs("not", args, 1); err != nil {
		return nil, err
	}
	b, ok := args[0].(*value.Boolean)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "not expected Boolean, got %s", value.Inspect(args[0]))
	}
	return value.BoolFor(!b.Bool()), nil
}
