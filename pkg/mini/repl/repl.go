// Package repl implements mini's interactive front-end: line editing,
// history, tab completion over the builtin table, and a read-eval-print
// loop that keeps running after a top-level error.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/eval"
	"github.com/sambeau/mini/pkg/mini/reader"
	"github.com/sambeau/mini/pkg/mini/value"
)

// EnvBox holds the REPL's current top-level environment behind a mutex, so
// a prelude watcher running on another goroutine can swap it out between
// input lines without racing the evaluator.
type EnvBox struct {
	mu  sync.Mutex
	env *eval.Environment
}

// NewEnvBox wraps env for use by Start.
func NewEnvBox(env *eval.Environment) *EnvBox {
	return &EnvBox{env: env}
}

// Get returns the current environment.
func (b *EnvBox) Get() *eval.Environment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.env
}

// Set replaces the current environment, used after a prelude reload.
func (b *EnvBox) Set(env *eval.Environment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.env = env
}

const PROMPT = ">>> "
const CONTINUATION_PROMPT = "... "

// completionWords lists the special forms and builtin applicatives offered
// on Tab; it is not consulted for correctness, only for editing ergonomics.
var completionWords = []string{
	"define", "if", "operative", "defined?", "assert", "throws?",
	"=", "<", ">", "<=", ">=", "+", "-", "*", "/", "//", "mod",
	"cons", "car", "cdr", "length", "slice", "concatenate", "not",
	"wrap", "unwrap", "identifier->symbol",
	"read", "evaluate", "print", "prompt", "read-file", "write-file",
	"cons-dict-set", "cons-dict-get",
	"true", "false", "nil",
}

// Start runs the REPL over the environment held by box (typically a scope
// nested under the prelude) until the user exits with Ctrl+D or `exit`.
// Reading box.Get() on every line lets a prelude watcher swap environments
// mid-session.
func Start(box *EnvBox, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(in string) []string {
		return filterCompletions(in)
	})

	historyFile := filepath.Join(os.TempDir(), ".mini_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "mini")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "")

	var buffer strings.Builder
	for {
		prompt := PROMPT
		if buffer.Len() > 0 {
			prompt = CONTINUATION_PROMPT
		}

		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				buffer.Reset()
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "")
				return
			}
			fmt.Fprintf(out, "error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			return
		}
		if buffer.Len() == 0 && trimmed == "" {
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(input)

		full := buffer.String()
		if unbalancedParens(full) {
			continue
		}

		line.AppendHistory(full)
		evalAndPrint(full, box.Get(), out)
		buffer.Reset()
	}
}

func evalAndPrint(src string, env *eval.Environment, out io.Writer) {
	exprs, err := reader.Parse(src)
	if err != nil {
		printError(out, err)
		return
	}
	result, err := eval.EvaluateExpressions(exprs, env)
	if err != nil {
		printError(out, err)
		return
	}
	if result != value.Nil {
		fmt.Fprintln(out, result.String())
	}
}

func printError(out io.Writer, err error) {
	if me, ok := err.(*errors.MiniError); ok {
		fmt.Fprintln(out, me.PrettyString())
		return
	}
	fmt.Fprintln(out, err.Error())
}

// unbalancedParens reports whether src has an open paren with no matching
// close, ignoring parens inside string literals.
func unbalancedParens(src string) bool {
	depth := 0
	inString := false
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
			}
		}
	}
	return depth > 0
}

func filterCompletions(in string) []string {
	trimmed := strings.TrimSpace(in)
	if trimmed == "" || in[len(in)-1] == ' ' {
		return nil
	}
	fields := strings.Fields(in)
	last := fields[len(fields)-1]

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, last) {
			matches = append(matches, word)
		}
	}
	return matches
}
