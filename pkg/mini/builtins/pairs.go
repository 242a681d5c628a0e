package builtins

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/value"
)

func installPairs(env *eval.Environment) {
	applicative(env, "cons", cons)
	applicative(env, "car", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("car", args, 1); err != nil {
			return nil, err
		}
		return value.Car(args[0])
	})
	applicative(env, "cdr", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("cdr", args, 1); err != nil {
			return nil, err
		}
		return value.Cdr(args[0])
	})
	applicative(env, "length", length)
	applicative(env, "slice", slice)
	applicative(env, "concatenate", concatenate)
	applicative(env, "identifier->symbol", identifierToSymbol)
	applicative(env, "wrap", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("wrap", args, 1); err != nil {
			return nil, err
		}
		return eval.Wrap(args[0])
	})
	applicative(env, "unwrap", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("unwrap", args, 1); err != nil {
			return nil, err
		}
		return eval.Unwrap(args[0])
	})
}

func cons(args []value.Value) (value.Value, error) {
	if err := wantArgs("cons", args, 2); err != nil {
		return nil, err
	}
	return &value.Pair{Car: args[0], Cdr: args[1]}, nil
}

func length(args []value.Value) (value.Value, error) {
	if err := wantArgs("length", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(*value.String)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "length expected String, got %s", value.Inspect(args[0]))
	}
	return &value.Integer{V: int64(len(s.V))}, nil
}

// slice implements `(slice s a b)`, treating Nil at either bound as the
// corresponding end of the string.
func slice(args []value.Value) (value.Value, error) {
	if err := wantArgs("slice", args, 3); err != nil {
		return nil, err
	}
	s, ok := args[0].(*value.String)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "slice expected String, got %s", value.Inspect(args[0]))
	}

	n := len(s.V)
	start, err := sliceBound(args[1], 0)
	if err != nil {
		return nil, err
	}
	end, err := sliceBound(args[2], n)
	if err != nil {
		return nil, err
	}

	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return &value.String{V: s.V[start:end]}, nil
}

func sliceBound(v value.Value, ifNil int) (int, error) {
	if _, ok := v.(value.NilValue); ok {
		return ifNil, nil
	}
	i, ok := v.(*value.Integer)
	if !ok {
		return 0, errors.Newf(errors.ClassType, "slice expected Integer or Nil bound, got %s", value.Inspect(v))
	}
	return int(i.V), nil
}

func concatenate(args []value.Value) (value.Value, error) {
	if err := wantArgs("concatenate", args, 2); err != nil {
		return nil, err
	}
	a, ok := args[0].(*value.String)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "concatenate expected String, got %s", value.Inspect(args[0]))
	}
	b, ok := args[1].(*value.String)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "concatenate expected String, got %s", value.Inspect(args[1]))
	}
	return &value.String{V: a.V + b.V}, nil
}

func identifierToSymbol(args []value.Value) (value.Value, error) {
	if err := wantArgs("identifier->symbol", args, 1); err != nil {
		return nil, err
	}
	id, ok := args[0].(*value.Identifier)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "identifier->symbol expected Identifier, got %s", value.Inspect(args[0]))
	}
	return value.Intern(id.Name), nil
}
