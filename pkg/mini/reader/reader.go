// Package reader turns mini source text into the value model directly:
// there is no separate AST, the token stream assembles Pair chains and
// atoms as it goes.
package reader

import (
	"strconv"
	"strings"

	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

type tokenKind int

const (
	tokLParen tokenKind = iota
	tokRParen
	tokNumber
	tokString
	tokIdentifier
	tokSymbol
)

type token struct {
	kind       tokenKind
	text       string
	start, end int
}

const identifierChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_?+-*/=<>"

func isIdentChar(b byte) bool {
	return strings.IndexByte(identifierChars, b) >= 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// tokenize scans src into a flat token stream, skipping whitespace and
// `#`-to-end-of-line comments. It returns a ParseError on an unrecognized
// character.
func tokenize(src string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(src)

	for i < n {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '#':
			for i < n && src[i] != '\n' {
				i++
			}

		case c == '(':
			tokens = append(tokens, token{tokLParen, "(", i, i + 1})
			i++

		case c == ')':
			tokens = append(tokens, token{tokRParen, ")", i, i + 1})
			i++

		case c == '"':
			start := i
			i++
			for i < n && src[i] != '"' {
				i++
			}
			if i >= n {
				return nil, errors.Newf(errors.ClassParse, "unterminated string at position %d", start)
			}
			tokens = append(tokens, token{tokString, src[start+1 : i], start, i + 1})
			i++

		case c == ':':
			start := i
			i++
			for i < n && isIdentChar(src[i]) {
				i++
			}
			tokens = append(tokens, token{tokSymbol, src[start+1 : i], start, i})

		case c == '-' && i+1 < n && isDigit(src[i+1]):
			start := i
			i++
			i = scanDigits(src, i)
			tokens = append(tokens, token{tokNumber, src[start:i], start, i})

		case isDigit(c):
			start := i
			i = scanDigits(src, i)
			tokens = append(tokens, token{tokNumber, src[start:i], start, i})

		case isIdentChar(c):
			start := i
			for i < n && isIdentChar(src[i]) {
				i++
			}
			tokens = append(tokens, token{tokIdentifier, src[start:i], start, i})

		default:
			return nil, errors.Newf(errors.ClassParse, "unknown token at position %d", i)
		}
	}

	return tokens, nil
}

// scanDigits consumes a run of digits starting at i, then an optional
// `.`-decimal run, returning the index just past the number.
func scanDigits(src string, i int) int {
	n := len(src)
	for i < n && isDigit(src[i]) {
		i++
	}
	if i < n && src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
		i++
		for i < n && isDigit(src[i]) {
			i++
		}
	}
	return i
}

// Parse reads src and returns its top-level expressions in order.
func Parse(src string) ([]value.Value, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	var exprs []value.Value
	for !p.atEnd() {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseOne reads src and returns exactly one top-level expression, failing
// with ArgumentError if src contains zero or more than one.
func ParseOne(src string) (value.Value, error) {
	exprs, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, errors.Newf(errors.ClassArgument, "read expected exactly one expression, got %d", len(exprs))
	}
	return exprs[0], nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() (token, bool) {
	if p.atEnd() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parseExpr() (value.Value, error) {
	t, ok := p.next()
	if !ok {
		return nil, errors.New(errors.ClassParse, "Unmatched parenthese (")
	}

	switch t.kind {
	case tokRParen:
		return nil, errors.New(errors.ClassParse, "Unmatched parenthese )")

	case tokLParen:
		return p.parseList(t.start)

	case tokNumber:
		return parseNumber(t), nil

	case tokString:
		return &value.String{V: t.text}, nil

	case tokSymbol:
		return value.Intern(t.text), nil

	case tokIdentifier:
		return &value.Identifier{Name: t.text, Span: value.Span{Start: t.start, End: t.end}}, nil

	default:
		return nil, errors.Newf(errors.ClassParse, "unknown token at position %d", t.start)
	}
}

func (p *parser) parseList(openPos int) (value.Value, error) {
	var items []value.Value
	for {
		t, ok := p.peek()
		if !ok {
			return nil, errors.New(errors.ClassParse, "Unmatched parenthese (")
		}
		if t.kind == tokRParen {
			p.pos++
			return value.NewList(items...), nil
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, expr)
	}
}

func parseNumber(t token) value.Value {
	if strings.ContainsRune(t.text, '.') {
		f, _ := strconv.ParseFloat(t.text, 64)
		return &value.Float{V: f}
	}
	n, _ := strconv.ParseInt(t.text, 10, 64)
	return &value.Integer{V: n}
}
