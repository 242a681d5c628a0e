package eval

import (
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

// Environment is a chained name->Value scope. Lookups walk the chain to the
// root; Define inserts into this environment only, the way `define` and a
// call frame's parameter binding do. The chain is a DAG rooted at the
// global environment: operatives capture their definition environment, so
// an environment lives as long as any closure or call frame references it.
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

// NewRootEnvironment creates the environment with no parent that a fresh
// interpreter's builtin table is installed into.
func NewRootEnvironment() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// Nest creates a child environment whose parent link points at env: the
// scope an operative call frame or `assert` opens.
func (env *Environment) Nest() *Environment {
	return &Environment{store: make(map[string]value.Value), outer: env}
}

// Lookup searches this environment, then its parent, then its parent's
// parent, to the root, returning (value, true) on a hit.
func (env *Environment) Lookup(name string) (value.Value, bool) {
	for e := env; e != nil; e = e.outer {
		if v, ok := e.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Defined reports whether name is bound anywhere in the chain.
func (env *Environment) Defined(name string) bool {
	_, ok := env.Lookup(name)
	return ok
}

// Define binds name to v in this environment only. It is an error to
// rebind a name already visible anywhere in the chain.
func (env *Environment) Define(name string, v value.Value) error {
	if env.Defined(name) {
		return errors.Newf(errors.ClassAlreadyDefined, "the identifier %s is already defined", name)
	}
	env.store[name] = v
	return nil
}

// EnvValue lets an Environment travel through the value model: it is what
// a user operative's <calling-env-name> parameter is bound to, and what
// the `evaluate` builtin expects as its second argument.
type EnvValue struct {
	Env *Environment
}

func (e *EnvValue) Kind() value.Kind { return value.KindEnvironment }
func (e *EnvValue) String() string   { return "#<environment>" }

// wrapEnvironment lifts env into the value model.
func wrapEnvironment(env *Environment) value.Value {
	return &EnvValue{Env: env}
}

// AsEnvironment lowers a Value produced by wrapEnvironment back to an
// *Environment, failing with TypeError on anything else.
func AsEnvironment(v value.Value) (*Environment, error) {
	ev, ok := v.(*EnvValue)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "expected environment, got %s", value.Inspect(v))
	}
	return ev.Env, nil
}

// Names returns every name bound in this environment only, not ancestors.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.store))
	for k := range env.store {
		names = append(names, k)
	}
	return names
}

// AllNames returns every name visible from env, nearest scope first, used
// for "did you mean" suggestions on UndefinedIdentifierError.
func (env *Environment) AllNames() []string {
	var names []string
	for e := env; e != nil; e = e.outer {
		names = append(names, e.Names()...)
	}
	return names
}
