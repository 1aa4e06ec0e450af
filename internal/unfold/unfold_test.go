package unfold

import (
	"testing"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
)

var zeroPos = perr.Position{Line: 1, Column: 1}

func mustParse(t *testing.T, src string) *expr.Node {
	t.Helper()
	n, err := expr.Parse(src, zeroPos)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return n
}

func TestSubstituteReplacesPlaceholders(t *testing.T) {
	tree := mustParse(t, "eq(%0,%1)")
	args := []*expr.Node{expr.Variable("a"), expr.Variable("b")}
	got := Substitute(tree, args)
	if got.String() != "eq(a,b)" {
		t.Fatalf("Substitute = %q, want eq(a,b)", got.String())
	}
	// original left untouched
	if tree.String() != "eq(%0,%1)" {
		t.Fatalf("original tree mutated: %q", tree.String())
	}
}

func TestSubstituteTextReplacesPlaceholders(t *testing.T) {
	args := []*expr.Node{expr.Constant(5), expr.Variable("x")}
	got := SubstituteText("(le,%0)(ge,%1)", args)
	want := "(le,5)(ge,x)"
	if got != want {
		t.Fatalf("SubstituteText = %q, want %q", got, want)
	}
}

func TestSlideWindowsNonCircular(t *testing.T) {
	base := []*expr.Node{expr.Variable("a"), expr.Variable("b"), expr.Variable("c"), expr.Variable("d")}
	windows := SlideWindows(base, 2, 1, false)
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	want := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}
	for i, w := range windows {
		if w[0].Name != want[i][0] || w[1].Name != want[i][1] {
			t.Errorf("window[%d] = (%s,%s), want (%s,%s)", i, w[0].Name, w[1].Name, want[i][0], want[i][1])
		}
	}
}

func TestSlideWindowsCircularWrapsAndCoversWholeList(t *testing.T) {
	base := []*expr.Node{expr.Variable("a"), expr.Variable("b"), expr.Variable("c"), expr.Variable("d")}
	windows := SlideWindows(base, 2, 1, true)
	if len(windows) != len(base) {
		t.Fatalf("got %d windows, want %d (one per list element)", len(windows), len(base))
	}
	last := windows[len(windows)-1]
	if last[0].Name != "d" || last[1].Name != "a" {
		t.Fatalf("last window = (%s,%s), want (d,a) [wraps around]", last[0].Name, last[1].Name)
	}
}

func TestGroupUnfoldsIntensionTemplateInOrder(t *testing.T) {
	x, y, z := &ir.Variable{ID: "x"}, &ir.Variable{ID: "y"}, &ir.Variable{ID: "z"}
	vars := map[string]*ir.Variable{"x": x, "y": y, "z": z}
	resolve := func(name string) (*ir.Variable, bool) { v, ok := vars[name]; return v, ok }

	tmpl := &ir.Template{
		Kind: ir.KindIntension,
		Payload: &ir.Intension{
			Tree: mustParse(t, "eq(%0,%1)"),
		},
		ArgVectors: [][]*expr.Node{
			{expr.Variable("x"), expr.Variable("y")},
			{expr.Variable("y"), expr.Variable("z")},
		},
	}

	bank := &capturingBank{}
	// Primitive recognition is off so eq(x,y) reaches the generic
	// intension callback instead of the primitive3 one.
	opts := callback.NewOptions(callback.WithRecognizeSpecialIntensionCases(false))
	Group("g1", tmpl, resolve, opts, bank)

	if len(bank.trees) != 2 {
		t.Fatalf("got %d intension calls, want 2", len(bank.trees))
	}
	if bank.trees[0] != "eq(x,y)" || bank.trees[1] != "eq(y,z)" {
		t.Fatalf("trees = %v, want [eq(x,y) eq(y,z)]", bank.trees)
	}
	if bank.ids[0] != "g1#0" || bank.ids[1] != "g1#1" {
		t.Fatalf("ids = %v, want [g1#0 g1#1]", bank.ids)
	}
}

func TestGroupUnfoldsScopeOnlyTemplate(t *testing.T) {
	x, y, z := &ir.Variable{ID: "x"}, &ir.Variable{ID: "y"}, &ir.Variable{ID: "z"}
	vars := map[string]*ir.Variable{"x": x, "y": y, "z": z}
	resolve := func(name string) (*ir.Variable, bool) { v, ok := vars[name]; return v, ok }

	tmpl := &ir.Template{
		Kind:    ir.KindAllDifferent,
		Payload: &ir.AllDifferent{},
		ArgVectors: [][]*expr.Node{
			{expr.Variable("x"), expr.Variable("y")},
			{expr.Variable("y"), expr.Variable("z")},
		},
	}
	bank := &capturingBank{}
	Group("g2", tmpl, resolve, callback.DefaultOptions(), bank)
	if len(bank.allDifferentScopes) != 2 {
		t.Fatalf("got %d allDifferent calls, want 2", len(bank.allDifferentScopes))
	}
	if bank.allDifferentScopes[0][0].ID != "x" || bank.allDifferentScopes[0][1].ID != "y" {
		t.Fatalf("first scope = %+v, want [x y]", bank.allDifferentScopes[0])
	}
}

// capturingBank implements callback.Bank, recording enough to verify
// unfolding order and substitution without a full recording harness.
type capturingBank struct {
	ids                []string
	trees              []string
	allDifferentScopes []ir.Scope
}

func (b *capturingBank) BeginInstance(kind callback.InstanceKind) {}
func (b *capturingBank) EndInstance()                             {}
func (b *capturingBank) BeginVariables()                          {}
func (b *capturingBank) EndVariables()                            {}
func (b *capturingBank) BeginVariableArray(id string)              {}
func (b *capturingBank) EndVariableArray()                        {}
func (b *capturingBank) BeginConstraints()                        {}
func (b *capturingBank) EndConstraints()                          {}
func (b *capturingBank) BeginBlock(classes []string)              {}
func (b *capturingBank) EndBlock()                                {}
func (b *capturingBank) BeginGroup(id string)                     {}
func (b *capturingBank) EndGroup()                                {}
func (b *capturingBank) BeginSlide(id string, circular bool)      {}
func (b *capturingBank) EndSlide()                                {}
func (b *capturingBank) BeginObjectives()                         {}
func (b *capturingBank) EndObjectives()                           {}
func (b *capturingBank) BeginAnnotations()                        {}
func (b *capturingBank) EndAnnotations()                          {}

func (b *capturingBank) BuildVariableInteger(id string, min, max int64)       {}
func (b *capturingBank) BuildVariableIntegerValues(id string, values []int64) {}

func (b *capturingBank) BuildConstraintPrimitive(id string, op ir.CondOp, x *ir.Variable, k int64) {}
func (b *capturingBank) BuildConstraintPrimitive3(id string, op ir.CondOp, x *ir.Variable, k int64, y *ir.Variable) {
}
func (b *capturingBank) BuildConstraintPrimitiveSet(id string, x *ir.Variable, in bool, lo, hi int64) {
}
func (b *capturingBank) BuildConstraintMult(id string, x, y, z *ir.Variable) {}

func (b *capturingBank) BuildConstraintIntension(id string, scope ir.Scope, tree *expr.Node) {
	b.ids = append(b.ids, id)
	b.trees = append(b.trees, tree.String())
}
func (b *capturingBank) BuildConstraintIntensionString(id string, scope ir.Scope, text string) {}

func (b *capturingBank) BuildConstraintExtension(id string, c *ir.Extension) {}
func (b *capturingBank) BuildConstraintRegular(id string, c *ir.Regular)     {}
func (b *capturingBank) BuildConstraintMDD(id string, c *ir.MDD)             {}

func (b *capturingBank) BuildConstraintAllDifferent(id string, c *ir.AllDifferent) {
	b.allDifferentScopes = append(b.allDifferentScopes, c.Scope)
}
func (b *capturingBank) BuildConstraintAllEqual(id string, c *ir.AllEqual) {}
func (b *capturingBank) BuildConstraintOrdered(id string, c *ir.Ordered)   {}
func (b *capturingBank) BuildConstraintLex(id string, c *ir.Lex)           {}

func (b *capturingBank) BuildConstraintSum(id string, c *ir.Sum) {}

func (b *capturingBank) BuildConstraintCount(id string, c *ir.Count) {}
func (b *capturingBank) BuildConstraintCountExactly(id string, scope ir.Scope, value ir.Operand, occurs ir.Operand) {
}
func (b *capturingBank) BuildConstraintCountAtLeast(id string, scope ir.Scope, value ir.Operand, k int64) {
}
func (b *capturingBank) BuildConstraintCountAtMost(id string, scope ir.Scope, value ir.Operand, k int64) {
}
func (b *capturingBank) BuildConstraintCountAmong(id string, scope ir.Scope, values []ir.Operand, k int64) {
}

func (b *capturingBank) BuildConstraintNValues(id string, c *ir.NValues)              {}
func (b *capturingBank) BuildConstraintAllEqualFromNValues(id string, scope ir.Scope) {}
func (b *capturingBank) BuildConstraintNotAllEqual(id string, scope ir.Scope)         {}

func (b *capturingBank) BuildConstraintCardinality(id string, c *ir.Cardinality)     {}
func (b *capturingBank) BuildConstraintMinimum(id string, c *ir.Minimum)             {}
func (b *capturingBank) BuildConstraintMaximum(id string, c *ir.Maximum)             {}
func (b *capturingBank) BuildConstraintElement(id string, c *ir.Element)             {}
func (b *capturingBank) BuildConstraintChannel(id string, c *ir.Channel)             {}
func (b *capturingBank) BuildConstraintStretch(id string, c *ir.Stretch)             {}
func (b *capturingBank) BuildConstraintNoOverlap(id string, c *ir.NoOverlap)         {}
func (b *capturingBank) BuildConstraintCumulative(id string, c *ir.Cumulative)       {}
func (b *capturingBank) BuildConstraintInstantiation(id string, c *ir.Instantiation) {}
func (b *capturingBank) BuildConstraintClause(id string, c *ir.Clause)               {}
func (b *capturingBank) BuildConstraintCircuit(id string, c *ir.Circuit)             {}

func (b *capturingBank) BuildObjectiveMinimizeVariable(x *ir.Variable)    {}
func (b *capturingBank) BuildObjectiveMaximizeVariable(x *ir.Variable)    {}
func (b *capturingBank) BuildObjectiveMinimizeExpression(tree *expr.Node) {}
func (b *capturingBank) BuildObjectiveMaximizeExpression(tree *expr.Node) {}
func (b *capturingBank) BuildObjectiveMinimize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
}
func (b *capturingBank) BuildObjectiveMaximize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
}

func (b *capturingBank) BuildAnnotationDecision(list ir.Scope) {}
