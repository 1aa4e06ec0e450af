package expr

import (
	"testing"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

func evalSrc(t *testing.T, src string, v Valuation) int64 {
	t.Helper()
	n, err := Parse(src, perr.Position{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	got, err := Eval(n, v)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return got
}

func TestEvalArithmetic(t *testing.T) {
	v := Valuation{"x": 7, "y": -3}
	tests := []struct {
		src  string
		want int64
	}{
		{"add(x,y)", 4},
		{"sub(x,y)", 10},
		{"mul(x,y)", -21},
		{"div(x,y)", -2},  // truncated toward zero: 7/-3 = -2.33 -> -2
		{"mod(x,y)", 1},   // 7 % -3 = 1 (Go truncated semantics)
		{"div(-7,3)", -2}, // -7/3 = -2.33 -> -2
		{"mod(-7,3)", -1},
		{"neg(x)", -7},
		{"abs(y)", 3},
		{"sqr(y)", 9},
		{"pow(2,5)", 32},
		{"min(x,y,0)", -3},
		{"max(x,y,0)", 7},
		{"dist(x,y)", 10},
	}
	for _, tt := range tests {
		if got := evalSrc(t, tt.src, v); got != tt.want {
			t.Errorf("Eval(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestEvalRelationalAndLogical(t *testing.T) {
	v := Valuation{"x": 3, "y": 5, "z": 5}
	tests := []struct {
		src  string
		want int64
	}{
		{"lt(x,y)", 1},
		{"le(y,z)", 1},
		{"ge(y,z)", 1},
		{"gt(x,y)", 0},
		{"eq(y,z)", 1},
		{"ne(x,y)", 1},
		{"ne(y,z)", 0},
		{"not(eq(x,y))", 1},
		{"and(lt(x,y),le(y,z))", 1},
		{"or(gt(x,y),eq(x,3))", 1},
		{"xor(1,0)", 1},
		{"xor(1,1)", 0},
		{"imp(0,0)", 1},
		{"imp(1,0)", 0},
		{"iff(eq(y,z),gt(y,x))", 1},
		{"if(eq(x,3),y,z)", 5},
		{"if(eq(x,9),y,z)", 5},
	}
	for _, tt := range tests {
		if got := evalSrc(t, tt.src, v); got != tt.want {
			t.Errorf("Eval(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestEvalIfSelectsThirdChildOnZero(t *testing.T) {
	v := Valuation{}
	if got := evalSrc(t, "if(0,1,2)", v); got != 2 {
		t.Fatalf("if(0,1,2) = %d, want 2 (zero selects third child)", got)
	}
	if got := evalSrc(t, "if(1,1,2)", v); got != 1 {
		t.Fatalf("if(1,1,2) = %d, want 1 (non-zero selects second child)", got)
	}
}

func TestEvalSetMembership(t *testing.T) {
	v := Valuation{"x": 2}
	if got := evalSrc(t, "in(x,set(1,2,3))", v); got != 1 {
		t.Fatalf("in(x,set(1,2,3)) = %d, want 1", got)
	}
	if got := evalSrc(t, "notin(x,set(1,2,3))", v); got != 0 {
		t.Fatalf("notin(x,set(1,2,3)) = %d, want 0", got)
	}
}

func TestEvalUnknownVariable(t *testing.T) {
	n, err := Parse("add(x,1)", perr.Position{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Eval(n, Valuation{}); err == nil {
		t.Fatal("expected error for unbound variable x")
	}
}
