package expr

import (
	"testing"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

func canon(t *testing.T, src string) *Node {
	t.Helper()
	n, err := Parse(src, perr.Position{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Canonize(n)
}

func TestCanonizeIdempotent(t *testing.T) {
	srcs := []string{
		"gt(y,x)",
		"lt(x,5)",
		"abs(sub(a,b))",
		"not(not(x))",
		"not(lt(a,b))",
		"add(x)",
		"add(1,2,x)",
		"add(add(x,y),z)",
		"le(add(x,3),10)",
		"eq(mul(x,3),9)",
		"eq(mul(x,4),9)",
		"lt(sub(a,b),sub(c,d))",
		"and(or(x,y),or(y,x))",
	}
	for _, src := range srcs {
		once := canon(t, src)
		twice := Canonize(once.Clone())
		if !Equal(once, twice) {
			t.Errorf("Canonize(%q) not idempotent: once=%s twice=%s", src, once, twice)
		}
	}
	// The parser rejects add(x) (add takes at least two operands), so the
	// unary wrapper is built directly.
	once := Canonize(Unary(OpAdd, Variable("x")))
	if twice := Canonize(once.Clone()); !Equal(once, twice) {
		t.Errorf("Canonize(add(x)) not idempotent: once=%s twice=%s", once, twice)
	}
}

func TestCanonizeArithmeticInversion(t *testing.T) {
	// gt(y,x) with compareNodes(y,x) > 0 should invert to lt(x,y).
	got := canon(t, "gt(y,x)")
	want := canon(t, "lt(x,y)")
	if !Equal(got, want) {
		t.Errorf("Canonize(gt(y,x)) = %s, want %s", got, want)
	}
}

func TestCanonizeLtToLe(t *testing.T) {
	got := canon(t, "lt(x,5)")
	want := Binary(OpLe, Variable("x"), Constant(4))
	if !Equal(got, want) {
		t.Errorf("Canonize(lt(x,5)) = %s, want %s", got, want)
	}
}

func TestCanonizeAbsSubToDist(t *testing.T) {
	got := canon(t, "abs(sub(a,b))")
	want := Binary(OpDist, Variable("a"), Variable("b"))
	if !Equal(got, want) {
		t.Errorf("Canonize(abs(sub(a,b))) = %s, want %s", got, want)
	}
}

func TestCanonizeDoubleNegation(t *testing.T) {
	got := canon(t, "not(not(x))")
	if !Equal(got, Variable("x")) {
		t.Errorf("Canonize(not(not(x))) = %s, want x", got)
	}
}

func TestCanonizeNotLogicalInverse(t *testing.T) {
	got := canon(t, "not(lt(a,b))")
	want := canon(t, "ge(a,b)")
	if !Equal(got, want) {
		t.Errorf("Canonize(not(lt(a,b))) = %s, want %s", got, want)
	}
}

func TestCanonizeUnaryWrapperCollapse(t *testing.T) {
	got := Canonize(Unary(OpAdd, Variable("x")))
	if !Equal(got, Variable("x")) {
		t.Errorf("Canonize(add(x)) = %s, want x", got)
	}
}

func TestCanonizeConstantFolding(t *testing.T) {
	got := canon(t, "add(1,2,x)")
	want := canon(t, "add(x,3)")
	if !Equal(got, want) {
		t.Errorf("Canonize(add(1,2,x)) = %s, want %s", got, want)
	}
}

func TestCanonizeAssociativeFlatten(t *testing.T) {
	got := canon(t, "add(add(x,y),z)")
	want := canon(t, "add(x,y,z)")
	if !Equal(got, want) {
		t.Errorf("Canonize(add(add(x,y),z)) = %s, want %s", got, want)
	}
}

func TestCanonizeSumShift(t *testing.T) {
	got := canon(t, "le(add(x,3),10)")
	want := canon(t, "le(x,7)")
	if !Equal(got, want) {
		t.Errorf("Canonize(le(add(x,3),10)) = %s, want %s", got, want)
	}
}

func TestCanonizeScaledEquality(t *testing.T) {
	divisible := canon(t, "eq(mul(x,3),9)")
	want := canon(t, "eq(x,3)")
	if !Equal(divisible, want) {
		t.Errorf("Canonize(eq(mul(x,3),9)) = %s, want %s", divisible, want)
	}

	notDivisible := canon(t, "eq(mul(x,4),9)")
	if !Equal(notDivisible, Constant(0)) {
		t.Errorf("Canonize(eq(mul(x,4),9)) = %s, want 0", notDivisible)
	}
}

func TestCanonizeSubtractionNormalForm(t *testing.T) {
	got := canon(t, "lt(sub(a,b),sub(c,d))")
	want := canon(t, "lt(add(a,d),add(b,c))")
	if !Equal(got, want) {
		t.Errorf("Canonize(lt(sub(a,b),sub(c,d))) = %s, want %s", got, want)
	}
}

func TestCanonizeSymmetryOfSemanticallyEqualTrees(t *testing.T) {
	a := canon(t, "and(or(x,y),or(y,x))")
	b := canon(t, "and(or(y,x),or(x,y))")
	if !Equal(a, b) {
		t.Errorf("symmetric trees canonised differently: %s vs %s", a, b)
	}
}
