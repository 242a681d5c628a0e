// Command mini runs the mini interpreter: with no arguments it starts a
// REPL, with one argument it executes that file as a script.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sambeau/mini/pkg/mini/builtins"
	"github.com/sambeau/mini/pkg/mini/config"
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/reader"
	"github.com/sambeau/mini/pkg/mini/repl"
	"github.com/sambeau/mini/pkg/mini/value"
	"github.com/sambeau/mini/pkg/mini/watch"
)

var Version = "0.1.0"

var (
	helpFlag    = flag.Bool("h", false, "Show help message")
	versionFlag = flag.Bool("V", false, "Show version information")
	evalFlag    = flag.String("e", "", "Evaluate code string")
	configFlag  = flag.String("config", "", "Path to a mini.yaml config file")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("mini version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mini: %v\n", err)
		os.Exit(1)
	}

	root := eval.NewRootEnvironment()
	builtins.Install(root, builtins.DefaultIO())

	preludeEnv, err := loadPrelude(root, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mini: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *evalFlag != "":
		os.Exit(runSource(*evalFlag, "<eval>", flag.Args(), preludeEnv))

	case len(flag.Args()) > 0:
		filename := flag.Args()[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mini: %v\n", err)
			os.Exit(1)
		}
		os.Exit(runSource(string(content), filename, flag.Args()[1:], preludeEnv))

	default:
		box := repl.NewEnvBox(preludeEnv.Nest())
		if cfg.Watch.Enabled && cfg.Prelude.Path != "" {
			w, err := watch.New(cfg.Prelude.Path, reloadPrelude(root, cfg, box), os.Stdout)
			if err != nil {
				fmt.Fprintf(os.Stderr, "mini: watch: %v\n", err)
			} else if err := w.Start(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "mini: watch: %v\n", err)
			} else {
				defer w.Close()
			}
		}
		repl.Start(box, os.Stdout)
	}
}

// reloadPrelude returns a watch.Watcher callback that re-reads and
// re-evaluates the prelude from scratch, nests a fresh REPL scope under it,
// and swaps it into box. A bad edit leaves the previous environment in
// place rather than killing the session.
func reloadPrelude(root *eval.Environment, cfg *config.Config, box *repl.EnvBox) func(string) error {
	return func(string) error {
		newPrelude, err := loadPrelude(root, cfg)
		if err != nil {
			return err
		}
		box.Set(newPrelude.Nest())
		return nil
	}
}

// loadPrelude reads predefineds.mini (beside the executable, or wherever
// config.Prelude.Path points) into a scope nested under root. Its absence
// is not an error: a fresh interpreter has no prelude to offer.
func loadPrelude(root *eval.Environment, cfg *config.Config) (*eval.Environment, error) {
	path := cfg.Prelude.Path
	if path == "" {
		exe, err := os.Executable()
		if err == nil {
			path = filepath.Join(filepath.Dir(exe), "predefineds.mini")
		}
	}

	scope := root.Nest()
	if path == "" {
		return scope, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return scope, nil
		}
		return nil, fmt.Errorf("reading prelude: %w", err)
	}

	exprs, err := reader.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing prelude: %w", err)
	}
	if _, err := eval.EvaluateExpressions(exprs, scope); err != nil {
		return nil, fmt.Errorf("evaluating prelude: %w", err)
	}
	return scope, nil
}

// runSource parses and evaluates src in a fresh scope nested under
// preludeEnv, binding __file__ and __arguments__ first. It returns the
// process exit code.
func runSource(src, filename string, args []string, preludeEnv *eval.Environment) int {
	scope := preludeEnv.Nest()

	abs := filename
	if filename != "<eval>" {
		if a, err := filepath.Abs(filename); err == nil {
			abs = a
		}
	}
	if err := scope.Define("__file__", &value.String{V: abs}); err != nil {
		printError(filename, err)
		return 1
	}

	argValues := make([]value.Value, len(args))
	for i, a := range args {
		argValues[i] = &value.String{V: a}
	}
	if err := scope.Define("__arguments__", value.NewList(argValues...)); err != nil {
		printError(filename, err)
		return 1
	}

	exprs, err := reader.Parse(src)
	if err != nil {
		printError(filename, err)
		return 1
	}

	if _, err := eval.EvaluateExpressions(exprs, scope); err != nil {
		printError(filename, err)
		return 1
	}
	return 0
}

func printError(filename string, err error) {
	if me, ok := err.(*errors.MiniError); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, me.PrettyString())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
}

func printHelp() {
	fmt.Printf(`mini - a small Lisp with first-class operatives, version %s

Usage:
  mini [options] [file] [args...]
  mini -e "code" [args...]

Options:
  -h              Show this help message
  -V              Show version information
  -e <code>       Evaluate code string
  -config <path>  Path to a mini.yaml config file

Examples:
  mini                      Start interactive REPL
  mini script.mini          Execute a mini script
  mini -e "(+ 1 2)"         Evaluate inline code
  mini script.mini a b c    Bind __arguments__ to ("a" "b" "c")
`, Version)
}
