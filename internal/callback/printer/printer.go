// Package printer is a callback.Bank that renders an XCSP3 instance back
// to a readable, indented text form as it streams past: one line per
// declaration, constraint, objective, or block boundary (spec §6,
// supplemented feature #9's sibling: the "example sink" pattern, styled
// after the teacher's pkg/printer.Print(node) entrypoint).
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
)

var _ callback.Bank = (*Printer)(nil)

// Style names a detailed or compact printer style, mirroring the
// teacher's detailed-vs-compact printer styles. Printer does not read it:
// both styles produce the same output.
type Style int

const (
	StyleDetailed Style = iota
	StyleCompact
)

// Printer writes one line per callback event to W, indenting nested
// blocks/groups/slides.
type Printer struct {
	W     io.Writer
	Style Style

	depth int
	args  []*expr.Node
}

// New returns a Printer writing detailed-style output to w.
func New(w io.Writer) *Printer { return &Printer{W: w} }

func (p *Printer) line(format string, a ...any) {
	fmt.Fprint(p.W, strings.Repeat("  ", p.depth))
	fmt.Fprintf(p.W, format, a...)
	fmt.Fprintln(p.W)
}

// SetArguments records the current group/slide instantiation's argument
// vector, implementing internal/unfold.ArgumentsAware.
func (p *Printer) SetArguments(args []*expr.Node) { p.args = args }

// Lifecycle

func (p *Printer) BeginInstance(kind callback.InstanceKind) {
	p.line("instance %s", kindName(kind))
	p.depth++
}
func (p *Printer) EndInstance() { p.depth--; p.line("end instance") }

func (p *Printer) BeginVariables() { p.line("variables"); p.depth++ }
func (p *Printer) EndVariables()   { p.depth--; p.line("end variables") }

func (p *Printer) BeginVariableArray(id string) { p.line("array %s", id); p.depth++ }
func (p *Printer) EndVariableArray()            { p.depth-- }

func (p *Printer) BeginConstraints() { p.line("constraints"); p.depth++ }
func (p *Printer) EndConstraints()   { p.depth--; p.line("end constraints") }

func (p *Printer) BeginBlock(classes []string) {
	p.line("block%s", classSuffix(classes))
	p.depth++
}
func (p *Printer) EndBlock() { p.depth--; p.line("end block") }

func (p *Printer) BeginGroup(id string) { p.line("group %s", id); p.depth++ }
func (p *Printer) EndGroup()            { p.depth--; p.line("end group") }

func (p *Printer) BeginSlide(id string, circular bool) {
	p.line("slide %s circular=%v", id, circular)
	p.depth++
}
func (p *Printer) EndSlide() { p.depth--; p.line("end slide") }

func (p *Printer) BeginObjectives() { p.line("objectives"); p.depth++ }
func (p *Printer) EndObjectives()   { p.depth--; p.line("end objectives") }

func (p *Printer) BeginAnnotations() { p.line("annotations"); p.depth++ }
func (p *Printer) EndAnnotations()   { p.depth--; p.line("end annotations") }

// Variables

func (p *Printer) BuildVariableInteger(id string, min, max int64) {
	p.line("var %s %d..%d", id, min, max)
}

func (p *Printer) BuildVariableIntegerValues(id string, values []int64) {
	p.line("var %s %s", id, joinInt64(values))
}

// Constraints: primitive recognition

func (p *Printer) BuildConstraintPrimitive(id string, op ir.CondOp, x *ir.Variable, k int64) {
	p.line("%s: %s %s %d", id, x.ID, op, k)
}

func (p *Printer) BuildConstraintPrimitive3(id string, op ir.CondOp, x *ir.Variable, k int64, y *ir.Variable) {
	p.line("%s: %s+%d %s %s", id, x.ID, k, op, y.ID)
}

func (p *Printer) BuildConstraintPrimitiveSet(id string, x *ir.Variable, in bool, lo, hi int64) {
	verb := "in"
	if !in {
		verb = "notin"
	}
	p.line("%s: %s %s %d..%d", id, x.ID, verb, lo, hi)
}

func (p *Printer) BuildConstraintMult(id string, x, y, z *ir.Variable) {
	p.line("%s: %s*%s == %s", id, x.ID, y.ID, z.ID)
}

// Intension fallback

func (p *Printer) BuildConstraintIntension(id string, scope ir.Scope, tree *expr.Node) {
	p.line("%s: intension %s", id, tree.String())
}

func (p *Printer) BuildConstraintIntensionString(id string, scope ir.Scope, text string) {
	p.line("%s: intension %s", id, strings.TrimSpace(text))
}

func (p *Printer) BuildConstraintExtension(id string, c *ir.Extension) {
	kind := "supports"
	if !c.IsSupports {
		kind = "conflicts"
	}
	p.line("%s: extension(%s) %s %d tuples", id, c.Scope, kind, len(c.Tuples))
}

func (p *Printer) BuildConstraintRegular(id string, c *ir.Regular) {
	p.line("%s: regular(%s) %d transitions", id, c.Scope, len(c.Transitions))
}

func (p *Printer) BuildConstraintMDD(id string, c *ir.MDD) {
	p.line("%s: mdd(%s) %d transitions", id, c.Scope, len(c.Transitions))
}

func (p *Printer) BuildConstraintAllDifferent(id string, c *ir.AllDifferent) {
	p.line("%s: allDifferent(%s)", id, c.Scope)
}

func (p *Printer) BuildConstraintAllEqual(id string, c *ir.AllEqual) {
	p.line("%s: allEqual(%s)", id, c.Scope)
}

func (p *Printer) BuildConstraintOrdered(id string, c *ir.Ordered) {
	p.line("%s: ordered(%s) %s", id, c.Scope, c.Op)
}

func (p *Printer) BuildConstraintLex(id string, c *ir.Lex) {
	p.line("%s: lex %d rows %s", id, len(c.Lists), c.Op)
}

func (p *Printer) BuildConstraintSum(id string, c *ir.Sum) {
	var sb strings.Builder
	for i, t := range c.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%d*%s", t.Coeff, t.Var.ID)
	}
	p.line("%s: sum(%s) %s", id, sb.String(), c.Condition)
}

func (p *Printer) BuildConstraintCount(id string, c *ir.Count) {
	p.line("%s: count(%s) %s", id, c.Scope, c.Condition)
}

func (p *Printer) BuildConstraintCountExactly(id string, scope ir.Scope, value, occurs ir.Operand) {
	p.line("%s: count(%s) == %s exactly %s", id, scope, value, occurs)
}

func (p *Printer) BuildConstraintCountAtLeast(id string, scope ir.Scope, value ir.Operand, k int64) {
	p.line("%s: count(%s) >= %d occurrences of %s", id, scope, k, value)
}

func (p *Printer) BuildConstraintCountAtMost(id string, scope ir.Scope, value ir.Operand, k int64) {
	p.line("%s: count(%s) <= %d occurrences of %s", id, scope, k, value)
}

func (p *Printer) BuildConstraintCountAmong(id string, scope ir.Scope, values []ir.Operand, k int64) {
	p.line("%s: count(%s) among %d values == %d", id, scope, len(values), k)
}

func (p *Printer) BuildConstraintNValues(id string, c *ir.NValues) {
	p.line("%s: nValues(%s) %s", id, c.Scope, c.Condition)
}

func (p *Printer) BuildConstraintAllEqualFromNValues(id string, scope ir.Scope) {
	p.line("%s: allEqual(%s) [via nValues]", id, scope)
}

func (p *Printer) BuildConstraintNotAllEqual(id string, scope ir.Scope) {
	p.line("%s: notAllEqual(%s) [via nValues]", id, scope)
}

func (p *Printer) BuildConstraintCardinality(id string, c *ir.Cardinality) {
	p.line("%s: cardinality(%s) closed=%v", id, c.Scope, c.Closed)
}

func (p *Printer) BuildConstraintMinimum(id string, c *ir.Minimum) {
	p.line("%s: minimum(%s) %s", id, c.Scope, c.Condition)
}

func (p *Printer) BuildConstraintMaximum(id string, c *ir.Maximum) {
	p.line("%s: maximum(%s) %s", id, c.Scope, c.Condition)
}

func (p *Printer) BuildConstraintElement(id string, c *ir.Element) {
	p.line("%s: element(%s) == %s", id, c.Scope, c.Value)
}

func (p *Printer) BuildConstraintChannel(id string, c *ir.Channel) {
	p.line("%s: channel(%s)", id, c.Scope)
}

func (p *Printer) BuildConstraintStretch(id string, c *ir.Stretch) {
	p.line("%s: stretch(%s) %d values", id, c.Scope, len(c.Values))
}

func (p *Printer) BuildConstraintNoOverlap(id string, c *ir.NoOverlap) {
	tasks := 0
	if len(c.Origins) > 0 {
		tasks = len(c.Origins[0])
	}
	p.line("%s: noOverlap %d tasks", id, tasks)
}

func (p *Printer) BuildConstraintCumulative(id string, c *ir.Cumulative) {
	p.line("%s: cumulative %d tasks %s", id, len(c.Origins), c.Condition)
}

func (p *Printer) BuildConstraintInstantiation(id string, c *ir.Instantiation) {
	p.line("%s: instantiation(%s) == %s", id, c.Scope, joinInt64(c.Values))
}

func (p *Printer) BuildConstraintClause(id string, c *ir.Clause) {
	p.line("%s: clause +%d -%d", id, len(c.Positive), len(c.Negative))
}

func (p *Printer) BuildConstraintCircuit(id string, c *ir.Circuit) {
	p.line("%s: circuit(%s)", id, c.Scope)
}

// Objectives

func (p *Printer) BuildObjectiveMinimizeVariable(x *ir.Variable) { p.line("minimize %s", x.ID) }
func (p *Printer) BuildObjectiveMaximizeVariable(x *ir.Variable) { p.line("maximize %s", x.ID) }

func (p *Printer) BuildObjectiveMinimizeExpression(tree *expr.Node) {
	p.line("minimize %s", tree.String())
}
func (p *Printer) BuildObjectiveMaximizeExpression(tree *expr.Node) {
	p.line("maximize %s", tree.String())
}

func (p *Printer) BuildObjectiveMinimize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
	p.line("minimize %s(%s)", objKindName(kind), list)
}
func (p *Printer) BuildObjectiveMaximize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
	p.line("maximize %s(%s)", objKindName(kind), list)
}

// Annotations

func (p *Printer) BuildAnnotationDecision(list ir.Scope) { p.line("decision(%s)", list) }

func kindName(k callback.InstanceKind) string {
	if k == callback.COP {
		return "COP"
	}
	return "CSP"
}

func objKindName(k callback.ObjectiveKind) string {
	switch k {
	case callback.ObjSum:
		return "sum"
	case callback.ObjProduct:
		return "product"
	case callback.ObjMin:
		return "min"
	case callback.ObjMax:
		return "max"
	case callback.ObjNValues:
		return "nValues"
	case callback.ObjLex:
		return "lex"
	case callback.ObjExpression:
		return "expression"
	}
	return "?"
}

func joinInt64(vals []int64) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

func classSuffix(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	return " [" + strings.Join(classes, " ") + "]"
}
