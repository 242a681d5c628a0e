// Package value implements the mini value model: the tagged union of atoms,
// pairs and callables described by the interpreter's data model. The
// callables and the environment chain values are bound in live in package
// eval, which builds on this one.
//
// Pair, Operative and Wrapper payloads are never mutated after
// construction; only Environment.Define grows the store a Value lives in.
package value

import (
	"strconv"
	"strings"
	"sync"

	"github.com/sambeau/mini/pkg/mini/errors"
)

// Kind tags the concrete variant of a Value for dispatch and diagnostics.
type Kind string

const (
	KindNil         Kind = "nil"
	KindBoolean     Kind = "boolean"
	KindInteger     Kind = "integer"
	KindFloat       Kind = "float"
	KindString      Kind = "string"
	KindSymbol      Kind = "symbol"
	KindIdentifier  Kind = "identifier"
	KindPair        Kind = "pair"
	KindOperative   Kind = "operative"
	KindWrapper     Kind = "wrapper"
	KindEnvironment Kind = "environment"
)

// Span records the byte range a reader-produced value came from. The
// evaluator never consults it; it exists purely to aid diagnostics.
type Span struct {
	Start, End int
}

// Value is implemented by every variant in the mini value model.
type Value interface {
	Kind() Kind
	String() string
}

// Nil is the singleton empty-list / absence-of-value atom.
type NilValue struct{}

func (NilValue) Kind() Kind     { return KindNil }
func (NilValue) String() string { return "nil" }

// Nil is the single Nil instance; compare with ==.
var Nil Value = NilValue{}

// Boolean is a singleton true/false atom; True and False below are the only
// instances, so identity comparison is sufficient.
type Boolean struct{ b bool }

func (v *Boolean) Kind() Kind { return KindBoolean }
func (v *Boolean) String() string {
	if v.b {
		return "true"
	}
	return "false"
}

// Bool returns the underlying Go bool.
func (v *Boolean) Bool() bool { return v.b }

var (
	True  Value = &Boolean{b: true}
	False Value = &Boolean{b: false}
)

// BoolFor returns the True or False singleton for the given Go bool.
func BoolFor(b bool) Value {
	if b {
		return True
	}
	return False
}

// Integer is a signed integer atom. int64 satisfies the spec's "at least
// 64-bit" requirement; see DESIGN.md for why this module doesn't reach for
// an arbitrary-precision type.
type Integer struct{ V int64 }

func (v *Integer) Kind() Kind     { return KindInteger }
func (v *Integer) String() string { return strconv.FormatInt(v.V, 10) }

// Float is an IEEE-754 double atom.
type Float struct{ V float64 }

func (v *Float) Kind() Kind     { return KindFloat }
func (v *Float) String() string { return strconv.FormatFloat(v.V, 'g', -1, 64) }

// String is an immutable string atom.
type String struct{ V string }

func (v *String) Kind() Kind     { return KindString }
func (v *String) String() string { return v.V }

// Symbol is an interned name compared by pointer identity, written :name in
// source. Two symbols with the same name are the same *Symbol.
type Symbol struct{ Name string }

func (v *Symbol) Kind() Kind     { return KindSymbol }
func (v *Symbol) String() string { return ":" + v.Name }

var (
	symbolsMu sync.Mutex
	symbols   = make(map[string]*Symbol)
)

// Intern returns the single Symbol instance for name, creating it on first
// use. Safe for concurrent use by embedders serializing access to a shared
// interpreter, though a single-threaded evaluation never needs the lock.
func Intern(name string) *Symbol {
	symbolsMu.Lock()
	defer symbolsMu.Unlock()
	if s, ok := symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	symbols[name] = s
	return s
}

// Identifier is a reader-produced name token. It evaluates by environment
// lookup and is never itself produced by evaluation; identifier->symbol is
// the only bridge from this type to Symbol.
type Identifier struct {
	Name string
	Span Span
}

func (v *Identifier) Kind() Kind     { return KindIdentifier }
func (v *Identifier) String() string { return v.Name }

// Pair is the sole compound structure. Lists are right-nested Pair chains
// terminated by Nil; Reader only ever produces well-formed lists, but cons
// can synthesize improper ones.
type Pair struct {
	Car, Cdr Value
}

func (v *Pair) Kind() Kind { return KindPair }
func (v *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	cur := Value(v)
	first := true
	for {
		p, ok := cur.(*Pair)
		if !ok {
			break
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(p.Car.String())
		cur = p.Cdr
	}
	if cur != Nil {
		sb.WriteString(" . ")
		sb.WriteString(cur.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// NewList builds a Nil-terminated Pair chain from items, right to left.
func NewList(items ...Value) Value {
	result := Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = &Pair{Car: items[i], Cdr: result}
	}
	return result
}

// ListToSlice walks a well-formed Pair chain into a Go slice. It returns a
// TypeError if the chain is improper (doesn't end in Nil).
func ListToSlice(list Value) ([]Value, error) {
	var out []Value
	cur := list
	for {
		if cur == Nil {
			return out, nil
		}
		p, ok := cur.(*Pair)
		if !ok {
			return nil, errors.Newf(errors.ClassType, "expected proper list, got improper tail %s", Inspect(cur))
		}
		out = append(out, p.Car)
		cur = p.Cdr
	}
}

// ListLength returns the number of elements in a well-formed Pair chain.
func ListLength(list Value) int {
	n := 0
	cur := list
	for {
		p, ok := cur.(*Pair)
		if !ok {
			return n
		}
		n++
		cur = p.Cdr
	}
}

// Car returns the car of a Pair, failing with TypeError otherwise.
func Car(v Value) (Value, error) {
	p, ok := v.(*Pair)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "car expected Pair, got %s", Inspect(v))
	}
	return p.Car, nil
}

// Cdr returns the cdr of a Pair, failing with TypeError otherwise.
func Cdr(v Value) (Value, error) {
	p, ok := v.(*Pair)
	if !ok {
		return nil, errors.Newf(errors.ClassType, "cdr expected Pair, got %s", Inspect(v))
	}
	return p.Cdr, nil
}

// Inspect names a value's kind for diagnostics, e.g. in TypeError messages.
func Inspect(v Value) string {
	if v == nil {
		return "<nothing>"
	}
	return string(v.Kind())
}

// Equal implements the deep structural equality `=` exposes: atoms compare
// by underlying value, symbols and booleans by identity, pairs recursively.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	switch av := a.(type) {
	case *Integer:
		bv, ok := b.(*Integer)
		return ok && av.V == bv.V
	case *Float:
		bv, ok := b.(*Float)
		return ok && av.V == bv.V
	case *String:
		bv, ok := b.(*String)
		return ok && av.V == bv.V
	case *Pair:
		bv, ok := b.(*Pair)
		return ok && Equal(av.Car, bv.Car) && Equal(av.Cdr, bv.Cdr)
	default:
		return false
	}
}

// IsNumber reports whether v is an Integer or Float.
func IsNumber(v Value) bool {
	switch v.(type) {
	case *Integer, *Float:
		return true
	default:
		return false
	}
}

// AsFloat64 widens an Integer or Float to float64.
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case *Integer:
		return float64(n.V), true
	case *Float:
		return n.V, true
	default:
		return 0, false
	}
}
