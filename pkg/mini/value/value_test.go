package value

import "testing"

func TestSymbolInterningIsPointerIdentity(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Error("expected Intern to return the same instance for the same name")
	}
	if Intern("bar") == a {
		t.Error("expected distinct names to intern to distinct instances")
	}
}

func TestBooleanSingletons(t *testing.T) {
	if BoolFor(true) != True {
		t.Error("BoolFor(true) should be the True singleton")
	}
	if BoolFor(false) != False {
		t.Error("BoolFor(false) should be the False singleton")
	}
}

func TestListRoundTrip(t *testing.T) {
	list := NewList(&Integer{V: 1}, &Integer{V: 2}, &Integer{V: 3})
	items, err := ListToSlice(list)
	if err != nil {
		t.Fatalf("ListToSlice: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, want := range []int64{1, 2, 3} {
		if got := items[i].(*Integer).V; got != want {
			t.Errorf("items[%d] = %d, want %d", i, got, want)
		}
	}
	if ListLength(list) != 3 {
		t.Errorf("ListLength = %d, want 3", ListLength(list))
	}
}

func TestListToSliceRejectsImproperList(t *testing.T) {
	improper := &Pair{Car: &Integer{V: 1}, Cdr: &Integer{V: 2}}
	if _, err := ListToSlice(improper); err == nil {
		t.Error("expected an error for an improper list")
	}
}

func TestEqualDeepStructural(t *testing.T) {
	a := NewList(&Integer{V: 1}, &String{V: "x"})
	b := NewList(&Integer{V: 1}, &String{V: "x"})
	if !Equal(a, b) {
		t.Error("expected structurally equal lists to be Equal")
	}

	c := NewList(&Integer{V: 1}, &String{V: "y"})
	if Equal(a, c) {
		t.Error("expected structurally different lists to not be Equal")
	}
}

func TestEqualSymbolsByIdentity(t *testing.T) {
	if !Equal(Intern("x"), Intern("x")) {
		t.Error("expected interned symbols with the same name to be Equal")
	}
}

func TestCarCdr(t *testing.T) {
	p := &Pair{Car: &Integer{V: 1}, Cdr: &Integer{V: 2}}
	car, err := Car(p)
	if err != nil || car.(*Integer).V != 1 {
		t.Errorf("Car = %v, %v", car, err)
	}
	cdr, err := Cdr(p)
	if err != nil || cdr.(*Integer).V != 2 {
		t.Errorf("Cdr = %v, %v", cdr, err)
	}
	if _, err := Car(&Integer{V: 1}); err == nil {
		t.Error("expected TypeError taking car of a non-Pair")
	}
}

func TestAsFloat64Widens(t *testing.T) {
	f, ok := AsFloat64(&Integer{V: 3})
	if !ok || f != 3.0 {
		t.Errorf("AsFloat64(Integer 3) = %v, %v", f, ok)
	}
	if _, ok := AsFloat64(&String{V: "x"}); ok {
		t.Error("expected AsFloat64 to reject String")
	}
}
