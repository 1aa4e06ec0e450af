package scan

import (
	"reflect"
	"testing"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
)

var zeroPos = perr.Position{Line: 1, Column: 1}

func TestScanValuesPlainList(t *testing.T) {
	got, err := ScanValues("1 3 5", zeroPos)
	if err != nil {
		t.Fatalf("ScanValues: %v", err)
	}
	want := []int64{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanValuesRangeExpansion(t *testing.T) {
	got, err := ScanValues("0..3", zeroPos)
	if err != nil {
		t.Fatalf("ScanValues: %v", err)
	}
	want := []int64{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanValuesMixed(t *testing.T) {
	got, err := ScanValues("1 3..5 10", zeroPos)
	if err != nil {
		t.Fatalf("ScanValues: %v", err)
	}
	want := []int64{1, 3, 4, 5, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanValuesInvertedRangeFails(t *testing.T) {
	if _, err := ScanValues("5..3", zeroPos); err == nil {
		t.Fatal("expected error for an inverted range")
	}
}

func TestScanTuplesParenthesised(t *testing.T) {
	tuples, hasStar, err := ScanTuples("(1,2,3)(4,5,6)", zeroPos, 3)
	if err != nil {
		t.Fatalf("ScanTuples: %v", err)
	}
	if hasStar {
		t.Fatal("expected hasStar == false")
	}
	want := [][]int64{{1, 2, 3}, {4, 5, 6}}
	if !reflect.DeepEqual(tuples, want) {
		t.Errorf("got %v, want %v", tuples, want)
	}
}

func TestScanTuplesWithStar(t *testing.T) {
	tuples, hasStar, err := ScanTuples("(1,*,3)", zeroPos, 3)
	if err != nil {
		t.Fatalf("ScanTuples: %v", err)
	}
	if !hasStar {
		t.Fatal("expected hasStar == true")
	}
	want := [][]int64{{1, ir.STAR, 3}}
	if !reflect.DeepEqual(tuples, want) {
		t.Errorf("got %v, want %v", tuples, want)
	}
}

func TestScanTuplesScalarShorthandRequiresArityOne(t *testing.T) {
	if _, _, err := ScanTuples("1 2 3", zeroPos, 3); err == nil {
		t.Fatal("expected error: bare scalars require arity 1")
	}
	tuples, _, err := ScanTuples("1 2 3", zeroPos, 1)
	if err != nil {
		t.Fatalf("ScanTuples: %v", err)
	}
	want := [][]int64{{1}, {2}, {3}}
	if !reflect.DeepEqual(tuples, want) {
		t.Errorf("got %v, want %v", tuples, want)
	}
}

func TestScanTuplesArityMismatch(t *testing.T) {
	if _, _, err := ScanTuples("(1,2)", zeroPos, 3); err == nil {
		t.Fatal("expected error: tuple width must equal arity")
	}
}

func TestScanVarRefsPlain(t *testing.T) {
	refs, err := ScanVarRefs("x y z", zeroPos)
	if err != nil {
		t.Fatalf("ScanVarRefs: %v", err)
	}
	if len(refs) != 3 || refs[0].Base != "x" || len(refs[0].Indices) != 0 {
		t.Fatalf("unexpected refs: %+v", refs)
	}
}

func TestScanVarRefsSlices(t *testing.T) {
	refs, err := ScanVarRefs("q[1..3] q[] q[..2] q[4..]", zeroPos)
	if err != nil {
		t.Fatalf("ScanVarRefs: %v", err)
	}
	if len(refs) != 4 {
		t.Fatalf("expected 4 refs, got %d", len(refs))
	}
	if refs[0].Indices[0].Kind != IndexRange || refs[0].Indices[0].Lo != 1 || refs[0].Indices[0].Hi != 3 {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if refs[1].Indices[0].Kind != IndexOpen {
		t.Errorf("refs[1] = %+v, want IndexOpen", refs[1])
	}
	if refs[2].Indices[0].Kind != IndexRange || refs[2].Indices[0].HasLo || !refs[2].Indices[0].HasHi || refs[2].Indices[0].Hi != 2 {
		t.Errorf("refs[2] = %+v", refs[2])
	}
	if refs[3].Indices[0].Kind != IndexRange || !refs[3].Indices[0].HasLo || refs[3].Indices[0].Lo != 4 || refs[3].Indices[0].HasHi {
		t.Errorf("refs[3] = %+v", refs[3])
	}
}

func TestIndexSpecExpand(t *testing.T) {
	open := IndexSpec{Kind: IndexOpen}
	if got := open.Expand(3); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("open.Expand(3) = %v", got)
	}
	fixed := IndexSpec{Kind: IndexFixed, Lo: 2}
	if got := fixed.Expand(5); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("fixed.Expand(5) = %v", got)
	}
	rng := IndexSpec{Kind: IndexRange, Lo: 1, Hi: 2, HasLo: true, HasHi: true}
	if got := rng.Expand(5); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("rng.Expand(5) = %v", got)
	}
	openTo := IndexSpec{Kind: IndexRange, Hi: 1, HasHi: true}
	if got := openTo.Expand(5); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("openTo.Expand(5) = %v", got)
	}
	openFrom := IndexSpec{Kind: IndexRange, Lo: 3, HasLo: true}
	if got := openFrom.Expand(5); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("openFrom.Expand(5) = %v", got)
	}
}

func TestMultiDimensionalSlice(t *testing.T) {
	refs, err := ScanVarRefs("m[1][2..3]", zeroPos)
	if err != nil {
		t.Fatalf("ScanVarRefs: %v", err)
	}
	if len(refs) != 1 || len(refs[0].Indices) != 2 {
		t.Fatalf("expected one ref with two bracket groups: %+v", refs)
	}
}
