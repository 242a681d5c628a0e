package reader

import (
	"testing"

	"github.com/sambeau/mini/pkg/mini/value"
)

func TestParseAtoms(t *testing.T) {
	exprs, err := Parse(`42 -7 3.14 "hi" :sym true ident`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exprs) != 7 {
		t.Fatalf("expected 7 expressions, got %d", len(exprs))
	}

	i, ok := exprs[0].(*value.Integer)
	if !ok || i.V != 42 {
		t.Errorf("exprs[0] = %#v, want Integer 42", exprs[0])
	}
	neg, ok := exprs[1].(*value.Integer)
	if !ok || neg.V != -7 {
		t.Errorf("exprs[1] = %#v, want Integer -7", exprs[1])
	}
	f, ok := exprs[2].(*value.Float)
	if !ok || f.V != 3.14 {
		t.Errorf("exprs[2] = %#v, want Float 3.14", exprs[2])
	}
	s, ok := exprs[3].(*value.String)
	if !ok || s.V != "hi" {
		t.Errorf("exprs[3] = %#v, want String hi", exprs[3])
	}
	sym, ok := exprs[4].(*value.Symbol)
	if !ok || sym.Name != "sym" {
		t.Errorf("exprs[4] = %#v, want Symbol sym", exprs[4])
	}
	if id, ok := exprs[6].(*value.Identifier); !ok || id.Name != "ident" {
		t.Errorf("exprs[6] = %#v, want Identifier ident", exprs[6])
	}
}

func TestParseList(t *testing.T) {
	exprs, err := Parse(`(+ 1 2)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}
	items, err := value.ListToSlice(exprs[0])
	if err != nil {
		t.Fatalf("ListToSlice: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestParseSkipsComments(t *testing.T) {
	exprs, err := Parse("1 # a comment\n2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exprs) != 2 {
		t.Fatalf("expected 2 expressions, got %d", len(exprs))
	}
}

func TestParseUnmatchedParens(t *testing.T) {
	if _, err := Parse("(1 2"); err == nil {
		t.Error("expected unmatched paren error for missing )")
	}
	if _, err := Parse("1 2)"); err == nil {
		t.Error("expected unmatched paren error for stray )")
	}
}

func TestParseOneRejectsMultiple(t *testing.T) {
	if _, err := ParseOne("1 2"); err == nil {
		t.Error("expected ArgumentError for multiple expressions")
	}
}
