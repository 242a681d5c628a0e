package eval

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

// NewUserOperative builds the closure produced by `(operative params envname
// body...)`: params is a parameter-list expression (a proper list of
// Identifiers, or a single Identifier to bind the whole unevaluated
// argument list, per spec), envname is an Identifier bound to the calling
// environment within the body, and body is the sequence of expressions run
// on each call. defEnv is the environment the operative closes over.
func NewUserOperative(name string, params value.Value, envName *value.Identifier, body []value.Value, defEnv *Environment) (*Operative, error) {
	if err := validateParamNames(params, envName); err != nil {
		return nil, err
	}

	fn := func(args value.Value, callEnv *Environment) (value.Value, error) {
		frame := defEnv.Nest()

		if err := bindParams(frame, params, args); err != nil {
			return nil, err
		}

		if envName != nil && envName.Name != "_" {
			if err := frame.Define(envName.Name, wrapEnvironment(callEnv)); err != nil {
				return nil, err
			}
		}

		result := value.Nil
		for _, expr := range body {
			v, err := Evaluate(expr, frame)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	}
	return &Operative{Name: name, Fn: fn}, nil
}

// validateParamNames enforces that every name introduced by params is
// distinct and none collides with the calling-environment name.
func validateParamNames(params value.Value, envName *value.Identifier) error {
	var names []string
	if id, ok := params.(*value.Identifier); ok {
		names = []string{id.Name}
	} else {
		fixed, rest, err := flattenParamList(params)
		if err != nil {
			return err
		}
		names = fixed
		if rest != "" {
			names = append(names, rest)
		}
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "_" {
			continue
		}
		if seen[n] {
			return errors.Newf(errors.ClassDefine, "duplicate parameter name %s", n)
		}
		seen[n] = true
		if envName != nil && n == envName.Name && n != "_" {
			return errors.Newf(errors.ClassDefine, "parameter name %s collides with the calling-environment name", n)
		}
	}
	return nil
}

// bindParams binds an unevaluated argument list into frame according to
// params: a single Identifier captures the whole list, a proper list of
// Identifiers binds positionally, and a proper list whose final cdr is an
// Identifier binds the leading names positionally and the rest variadically.
func bindParams(frame *Environment, params, args value.Value) error {
	if id, ok := params.(*value.Identifier); ok {
		if id.Name == "_" {
			return nil
		}
		return frame.Define(id.Name, args)
	}

	names, rest, err := flattenParamList(params)
	if err != nil {
		return err
	}

	argc := value.ListLength(args)
	cur := args
	for _, name := range names {
		p, ok := cur.(*value.Pair)
		if !ok {
			return errors.Newf(errors.ClassArgument, "operative expected %d arguments, received %d", len(names), argc)
		}
		if name != "_" {
			if err := frame.Define(name, p.Car); err != nil {
				return err
			}
		}
		cur = p.Cdr
	}

	if rest == "" {
		if cur != value.Nil {
			return errors.Newf(errors.ClassArgument, "operative expected %d arguments, received %d", len(names), argc)
		}
		return nil
	}
	if rest != "_" {
		return frame.Define(rest, cur)
	}
	return nil
}

// flattenParamList walks a parameter-list expression into its leading fixed
// names and, if the chain's final cdr is an Identifier rather than Nil, the
// variadic rest-name.
func flattenParamList(params value.Value) (names []string, rest string, err error) {
	cur := params
	for {
		switch v := cur.(type) {
		case value.NilValue:
			return names, "", nil
		case *value.Pair:
			id, ok := v.Car.(*value.Identifier)
			if !ok {
				return nil, "", errors.Newf(errors.ClassType, "parameter list expected Identifier, got %s", value.Inspect(v.Car))
			}
			names = append(names, id.Name)
			cur = v.Cdr
		case *value.Identifier:
			return names, v.Name, nil
		default:
			return nil, "", errors.Newf(errors.ClassType, "malformed parameter list: %s", value.Inspect(cur))
		}
	}
}
