// Package builtins populates a root environment with the fixed table of
// special-form operatives and applicative wrappers every mini program
// starts with.
package builtins

import (
	"bufio"
	"io"
	"os"

	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/value"
)

// IO bundles the streams builtin I/O reads from and writes to, so a host
// embedding the interpreter (or a test) can redirect them without touching
// globals.
type IO struct {
	In  *bufio.Reader
	Out io.Writer
}

// DefaultIO wires print/prompt to the process's standard streams.
func DefaultIO() *IO {
	return &IO{In: bufio.NewReader(os.Stdin), Out: os.Stdout}
}

// Install defines every builtin in env, which should be a fresh root
// environment with no parent.
func Install(env *eval.Environment, streams *IO) {
	mustDefine(env, "nil", value.Nil)
	mustDefine(env, "true", value.True)
	mustDefine(env, "false", value.False)

	installSpecialForms(env)
	installArithmetic(env)
	installPairs(env)
	installIO(env, streams)
	installConsDict(env)
}

// mustDefine panics on AlreadyDefinedError, which would indicate a
// duplicate entry in this table rather than anything a user could trigger.
func mustDefine(env *eval.Environment, name string, v value.Value) {
	if err := env.Define(name, v); err != nil {
		panic(err)
	}
}

// applicative registers name as a Wrapper over a native operative whose fn
// receives the already-evaluated argument slice (the Wrapper layer between
// the call site and the stored Operative handles evaluation).
func applicative(env *eval.Environment, name string, fn func(args []value.Value) (value.Value, error)) {
	op := eval.NewNativeOperative(name, func(args value.Value, callEnv *eval.Environment) (value.Value, error) {
		items, err := value.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		return fn(items)
	})
	wrapped, err := eval.Wrap(op)
	if err != nil {
		panic(err)
	}
	mustDefine(env, name, wrapped)
}

// specialForm registers name as a bare Operative: args arrive unevaluated.
func specialForm(env *eval.Environment, name string, fn eval.NativeFn) {
	mustDefine(env, name, eval.NewNativeOperative(name, fn))
}

func wantArgs(name string, args []value.Value, n int) error {
	if len(args) != n {
		return errors.Newf(errors.ClassArgument, "%s expected %d arguments, received %d", name, n, len(args))
	}
	return nil
}
