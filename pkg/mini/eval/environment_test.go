package eval

import (
	"testing"

	"github.com/sambeau/mini/pkg/mini/errors"
	"github.com/sambeau/mini/pkg/mini/value"
)

func TestDefineAndLookup(t *testing.T) {
	env := NewRootEnvironment()
	if err := env.Define("x", &value.Integer{V: 1}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	v, ok := env.Lookup("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if v.(*value.Integer).V != 1 {
		t.Errorf("got %v, want 1", v)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := NewRootEnvironment()
	root.Define("x", &value.Integer{V: 1})
	child := root.Nest()
	v, ok := child.Lookup("x")
	if !ok || v.(*value.Integer).V != 1 {
		t.Errorf("expected child to see parent's x, got %v, %v", v, ok)
	}
}

func TestDefineInChildDoesNotLeakToParent(t *testing.T) {
	root := NewRootEnvironment()
	child := root.Nest()
	child.Define("y", &value.Integer{V: 2})
	if root.Defined("y") {
		t.Error("expected y to not be visible in parent")
	}
}

func TestRedefineAnywhereInChainFails(t *testing.T) {
	root := NewRootEnvironment()
	root.Define("x", &value.Integer{V: 1})
	child := root.Nest()
	err := child.Define("x", &value.Integer{V: 2})
	if err == nil {
		t.Fatal("expected an error redefining x")
	}
	if errors.ClassOf(err) != "AlreadyDefinedError" {
		t.Errorf("got class %s, want AlreadyDefinedError", errors.ClassOf(err))
	}
}

func TestUndefinedLookupMisses(t *testing.T) {
	env := NewRootEnvironment()
	if _, ok := env.Lookup("nope"); ok {
		t.Error("expected lookup miss")
	}
}
