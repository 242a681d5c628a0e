package builtins

import (
	"fmt"
	"os"
	"strings"

	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/reader"
	"github.com/sambeau/mini/pkg/mini/value"
)

func installIO(env *eval.Environment, streams *IO) {
	applicative(env, "read", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("read", args, 1); err != nil {
			return nil, err
		}
		s, ok := args[0].(*value.String)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "read expected String, got %s", value.Inspect(args[0]))
		}
		return reader.ParseOne(s.V)
	})

	applicative(env, "evaluate", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("evaluate", args, 2); err != nil {
			return nil, err
		}
		target, err := eval.AsEnvironment(args[1])
		if err != nil {
			return nil, err
		}
		return eval.Evaluate(args[0], target)
	})

	applicative(env, "print", func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if s, ok := a.(*value.String); ok {
				parts[i] = s.V
			} else {
				parts[i] = a.String()
			}
		}
		fmt.Fprintln(streams.Out, strings.Join(parts, " "))
		return value.Nil, nil
	})

	applicative(env, "prompt", func(args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			if s, ok := args[0].(*value.String); ok {
				fmt.Fprint(streams.Out, s.V)
			}
		}
		line, err := streams.In.ReadString('\n')
		if err != nil && line == "" {
			return nil, errors.Newf(errors.ClassType, "prompt: %s", err)
		}
		return &value.String{V: strings.TrimRight(line, "\r\n")}, nil
	})

	applicative(env, "read-file", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("read-file", args, 1); err != nil {
			return nil, err
		}
		path, ok := args[0].(*value.String)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "read-file expected String, got %s", value.Inspect(args[0]))
		}
		data, err := os.ReadFile(path.V)
		if err != nil {
			return nil, errors.Newf(errors.ClassType, "read-file: %s", err)
		}
		return &value.String{V: string(data)}, nil
	})

	applicative(env, "write-file", func(args []value.Value) (value.Value, error) {
		if err := wantArgs("write-file", args, 2); err != nil {
			return nil, err
		}
		path, ok := args[0].(*value.String)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "write-file expected String path, got %s", value.Inspect(args[0]))
		}
		content, ok := args[1].(*value.String)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "write-file expected String content, got %s", value.Inspect(args[1]))
		}
		if err := os.WriteFile(path.V, []byte(content.V), 0o644); err != nil {
			return nil, errors.Newf(errors.ClassType, "write-file: %s", err)
		}
		return value.Nil, nil
	})
}
