package ir

import "testing"

func TestVarArrayAt(t *testing.T) {
	cells := make([]*Variable, 0, 6)
	for i := 0; i < 6; i++ {
		cells = append(cells, &Variable{ID: CellName("q", indexOf(i, 2, 3))})
	}
	arr := &VarArray{ID: "q", Dims: []int{2, 3}, Cells: cells}

	if got := arr.At(0, 0).ID; got != "q[0][0]" {
		t.Errorf("At(0,0).ID = %q, want q[0][0]", got)
	}
	if got := arr.At(1, 2).ID; got != "q[1][2]" {
		t.Errorf("At(1,2).ID = %q, want q[1][2]", got)
	}
}

// indexOf is a small test helper mirroring the row-major layout At() expects.
func indexOf(flat int, d0, d1 int) []int {
	return []int{flat / d1, flat % d1}
}

func TestCellName(t *testing.T) {
	if got := CellName("x", []int{3}); got != "x[3]" {
		t.Errorf("CellName = %q, want x[3]", got)
	}
	if got := CellName("m", []int{1, 2}); got != "m[1][2]" {
		t.Errorf("CellName = %q, want m[1][2]", got)
	}
	if got := CellName("base", nil); got != "base" {
		t.Errorf("CellName with no index = %q, want base", got)
	}
}

func TestVariableHasClass(t *testing.T) {
	v := &Variable{ID: "x", Classes: []string{"symmetryBreaking", "clues"}}
	if !v.HasClass("clues") {
		t.Error("expected HasClass(clues) == true")
	}
	if v.HasClass("other") {
		t.Error("expected HasClass(other) == false")
	}
}

func TestBaseHasClass(t *testing.T) {
	b := Base{ID: "c1", Classes: []string{"symmetryBreaking"}}
	if !b.HasClass("symmetryBreaking") {
		t.Error("expected HasClass(symmetryBreaking) == true")
	}
	if b.HasClass("clues") {
		t.Error("expected HasClass(clues) == false")
	}
}
