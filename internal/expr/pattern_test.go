package expr

import "testing"

func TestMatchWildcardConstant(t *testing.T) {
	pattern := Binary(OpLe, Variable("x"), WildcardConstant("bound"))
	n := Binary(OpLe, Variable("x"), Constant(7))
	caps, ok := Match(pattern, n)
	if !ok {
		t.Fatal("expected match")
	}
	if caps.Consts["bound"] != 7 {
		t.Fatalf("captured bound = %d, want 7", caps.Consts["bound"])
	}
}

func TestMatchWildcardVariable(t *testing.T) {
	pattern := Binary(OpEq, WildcardVariable("v"), Constant(0))
	n := Binary(OpEq, Variable("y"), Constant(0))
	caps, ok := Match(pattern, n)
	if !ok {
		t.Fatal("expected match")
	}
	if caps.Names["v"] != "y" {
		t.Fatalf("captured v = %q, want %q", caps.Names["v"], "y")
	}
}

func TestMatchWildcardOperatorFakeop(t *testing.T) {
	// Recognises "R(x,5)" for any two-argument op R, relational or not.
	pattern := WildcardOperator("rel", Variable("x"), Constant(5))
	le := Binary(OpLe, Variable("x"), Constant(5))
	caps, ok := Match(pattern, le)
	if !ok {
		t.Fatal("expected FAKEOP pattern to match le(x,5)")
	}
	if caps.Ops["rel"] != OpLe {
		t.Fatalf("captured op = %v, want OpLe", caps.Ops["rel"])
	}

	add := Binary(OpAdd, Variable("x"), Constant(5))
	if _, ok := Match(pattern, add); !ok {
		t.Fatal("FAKEOP pattern should match any operator with matching children, including add")
	}

	mismatch := Binary(OpLe, Variable("x"), Constant(6))
	if _, ok := Match(pattern, mismatch); ok {
		t.Fatal("pattern should not match when a fixed child differs")
	}
}

func TestMatchFirstPicksEarliestPattern(t *testing.T) {
	patterns := []*Node{
		Binary(OpEq, WildcardVariable("v"), WildcardConstant("k")),
		WildcardOperator("any", WildcardVariable("v"), WildcardConstant("k")),
	}
	n := Binary(OpEq, Variable("x"), Constant(3))
	idx, caps, ok := MatchFirst(patterns, n)
	if !ok || idx != 0 {
		t.Fatalf("expected first pattern to win, got idx=%d ok=%v", idx, ok)
	}
	if caps.Names["v"] != "x" || caps.Consts["k"] != 3 {
		t.Fatalf("unexpected captures: %+v", caps)
	}
}

func TestMatchFails(t *testing.T) {
	pattern := Binary(OpLe, WildcardVariable("v"), WildcardConstant("k"))
	n := Binary(OpLe, Constant(1), Constant(2))
	if _, ok := Match(pattern, n); ok {
		t.Fatal("expected no match: left operand is not a variable")
	}
}
