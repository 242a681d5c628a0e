package builtins

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/value"
)

// A cons-dict node is `((key . value) . (left . right))`, an ordered
// binary tree keyed by `<` over the key values. The empty dictionary is
// Nil. set returns a new tree, sharing every branch it didn't need to
// rebuild on the path to the inserted key.

func installConsDict(env *eval.Environment) {
	applicative(env, "cons-dict-set", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("cons-dict-set", args, 3); err != nil {
			return nil, err
		}
		return consDictSet(args[0], args[1], args[2])
	})
	applicative(env, "cons-dict-get", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("cons-dict-get", args, 2); err != nil {
			return nil, err
		}
		return consDictGet(args[0], args[1])
	})
}

func consDictNode(key, val, left, right value.Value) value.Value {
	return &value.Pair{
		Car: &value.Pair{Car: key, Cdr: val},
		Cdr: &value.Pair{Car: left, Cdr: right},
	}
}

func consDictParts(node value.Value) (key, val, left, right value.Value, ok bool) {
	p, isPair := node.(*value.Pair)
	if !isPair {
		return nil, nil, nil, nil, false
	}
	kv, isPair := p.Car.(*value.Pair)
	if !isPair {
		return nil, nil, nil, nil, false
	}
	lr, isPair := p.Cdr.(*value.Pair)
	if !isPair {
		return nil, nil, nil, nil, false
	}
	return kv.Car, kv.Cdr, lr.Car, lr.Cdr, true
}

func consDictSet(dict, key, val value.Value) (value.Value, error) {
	if _, isNil := dict.(value.NilValue); isNil {
		return consDictNode(key, val, value.Nil, value.Nil), nil
	}

	k, v, left, right, ok := consDictParts(dict)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "cons-dict-set expected a cons-dict, got %s", value.Inspect(dict))
	}

	c, err := compare(key, k)
	if err != nil {
		return nil, err
	}
	switch {
	case c < 0:
		newLeft, err := consDictSet(left, key, val)
		if err != nil {
			return nil, err
		}
		return consDictNode(k, v, newLeft, right), nil
	case c > 0:
		newRight, err := consDictSet(right, key, val)
		if err != nil {
			return nil, err
		}
		return consDictNode(k, v, left, newRight), nil
	default:
		return consDictNode(key, val, left, right), nil
	}
}

func consDictGet(dict, key value.Value) (value.Value, error) {
	cur := dict
	for {
		if _, isNil := cur.(value.NilValue); isNil {
			return nil, errors.Newf(errors.ClassKey, "key not found: %s", value.Inspect(key))
		}
		k, v, left, right, ok := consDictParts(cur)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "cons-dict-get expected a cons-dict, got %s", value.Inspect(cur))
		}
		c, err := compare(key, k)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			cur = left
		case c > 0:
			cur = right
		default:
			return v, nil
		}
	}
}
