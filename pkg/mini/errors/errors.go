// Package errors provides the structured error type shared by every stage
// of the mini interpreter: the reader, the environment, and the evaluator.
//
// mini errors are tagged strings: a type prefix and a human message
// separated by a colon. `throws?` inspects only the prefix, so Error()
// must render as "<Class>: <Message>" with nothing in front of the class
// name. Position and hint information is carried alongside for diagnostics
// but never leaks into the prefix.
package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorClass is the type-prefix taxonomy used throughout mini. The string
// value IS the prefix that appears before the colon in Error().
type ErrorClass string

const (
	ClassType                ErrorClass = "TypeError"
	ClassArgument            ErrorClass = "ArgumentError"
	ClassDefine              ErrorClass = "DefineError"
	ClassAlreadyDefined      ErrorClass = "AlreadyDefinedError"
	ClassNotImplemented      ErrorClass = "NotImplementedError"
	ClassUndefinedIdentifier ErrorClass = "UndefinedIdentifierError"
	ClassAssertion           ErrorClass = "AssertionError"
	ClassKey                 ErrorClass = "KeyError"
	ClassUnwrap              ErrorClass = "UnwrapError"
	ClassParse               ErrorClass = "ParseError"
)

// MiniError is the single error type raised by every package in this
// module. It implements the standard error interface and also exposes the
// structured fields a host embedding the interpreter may want to inspect.
type MiniError struct {
	Class   ErrorClass
	Message string
	Hints   []string
	Start   int // byte offset, -1 if unknown
	End     int
}

// Error renders the error as "<Class>: <Message>", the exact form `throws?`
// splits on the first colon to recover the type prefix.
func (e *MiniError) Error() string {
	return string(e.Class) + ": " + e.Message
}

// PrettyString renders the error for a human reading a traceback, including
// hints and source span when known. It is never consulted by `throws?`.
func (e *MiniError) PrettyString() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Start >= 0 {
		sb.WriteString(" (at byte ")
		sb.WriteString(strconv.Itoa(e.Start))
		sb.WriteString(")")
	}
	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}
	return sb.String()
}

// WithSpan returns a copy of the error annotated with a source byte range.
func (e *MiniError) WithSpan(start, end int) *MiniError {
	cp := *e
	cp.Start, cp.End = start, end
	return &cp
}

// New builds a MiniError with no span information.
func New(class ErrorClass, message string) *MiniError {
	return &MiniError{Class: class, Message: message, Start: -1, End: -1}
}

// Newf builds a MiniError by formatting message with sprintf-style verbs.
func Newf(class ErrorClass, format string, args ...any) *MiniError {
	return New(class, fmt.Sprintf(format, args...))
}

// NewWithHints builds a MiniError carrying "did you mean" style hints.
func NewWithHints(class ErrorClass, message string, hints ...string) *MiniError {
	err := New(class, message)
	err.Hints = hints
	return err
}

// ClassOf extracts the type prefix from an arbitrary error the way `throws?`
// does: everything before the first colon, or the whole message if there is
// none (the permissive match called for in the spec's open questions).
func ClassOf(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, ':'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}

// NewUndefinedIdentifier builds an UndefinedIdentifierError, suggesting the
// closest bound name when one is a plausible typo fix.
func NewUndefinedIdentifier(name string, available []string) *MiniError {
	err := Newf(ClassUndefinedIdentifier, "Undefined identifier %s", name)
	if suggestion := FindClosestMatch(name, available); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}
	return err
}

// levenshteinDistance computes the edit distance between two strings,
// keeping only the previous and current row rather than a full matrix: the
// candidate lists this gets called against are bound-name lookups a few
// dozen entries long at most, never worth matrix-sized bookkeeping.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// FindClosestMatch returns the closest candidate to input within an edit
// distance threshold, or "" if nothing is close enough to be a useful
// suggestion. mini's whole bound-name vocabulary (special forms, builtins,
// prelude definitions) is short identifiers in the single dozens, so a
// single threshold tightened only for very short inputs is enough — there's
// no long-identifier tier worth budgeting a third edit for.
func FindClosestMatch(input string, candidates []string) string {
	if len(input) == 0 || len(candidates) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)

	var bestMatch string
	bestDistance := -1
	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if bestDistance == -1 || dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	threshold := 2
	if len(input) < 4 {
		threshold = 1
	}

	if bestDistance <= 0 || bestDistance > threshold {
		return ""
	}
	return bestMatch
}
