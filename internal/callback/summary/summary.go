// Package summary is a callback.Bank that counts declarations and
// constraints per family instead of rendering them, the "summary sink"
// pattern of the original's XCSP3SummaryCallbacks.h (SPEC_FULL supplemented
// feature #9), driving the CLI's summarize subcommand as a second example
// sink distinct from internal/callback/printer.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
)

var _ callback.Bank = (*Summary)(nil)

// Summary tallies one count per constraint family plus variable,
// objective, and annotation totals as a parse streams past.
type Summary struct {
	Kind InstanceKind

	NumVariables  int
	NumArrays     int
	NumGroups     int
	NumSlides     int
	NumBlocks     int
	NumObjectives int
	NumDecisions  int

	ByKind map[string]int
}

type InstanceKind = callback.InstanceKind

// New returns an empty Summary ready to be driven by a parse.
func New() *Summary {
	return &Summary{ByKind: make(map[string]int)}
}

func (s *Summary) bump(kind string) { s.ByKind[kind]++ }

// Lifecycle

func (s *Summary) BeginInstance(kind callback.InstanceKind) { s.Kind = kind }
func (s *Summary) EndInstance()                             {}

func (s *Summary) BeginVariables() {}
func (s *Summary) EndVariables()   {}

func (s *Summary) BeginVariableArray(id string) { s.NumArrays++ }
func (s *Summary) EndVariableArray()            {}

func (s *Summary) BeginConstraints() {}
func (s *Summary) EndConstraints()   {}

func (s *Summary) BeginBlock(classes []string) { s.NumBlocks++ }
func (s *Summary) EndBlock()                   {}

func (s *Summary) BeginGroup(id string) { s.NumGroups++ }
func (s *Summary) EndGroup()            {}

func (s *Summary) BeginSlide(id string, circular bool) { s.NumSlides++ }
func (s *Summary) EndSlide()                           {}

func (s *Summary) BeginObjectives() {}
func (s *Summary) EndObjectives()   {}

func (s *Summary) BeginAnnotations() {}
func (s *Summary) EndAnnotations()   {}

// Variables

func (s *Summary) BuildVariableInteger(id string, min, max int64) { s.NumVariables++ }
func (s *Summary) BuildVariableIntegerValues(id string, values []int64) { s.NumVariables++ }

// Constraints

func (s *Summary) BuildConstraintPrimitive(id string, op ir.CondOp, x *ir.Variable, k int64) {
	s.bump("primitive")
}
func (s *Summary) BuildConstraintPrimitive3(id string, op ir.CondOp, x *ir.Variable, k int64, y *ir.Variable) {
	s.bump("primitive")
}
func (s *Summary) BuildConstraintPrimitiveSet(id string, x *ir.Variable, in bool, lo, hi int64) {
	s.bump("primitive")
}
func (s *Summary) BuildConstraintMult(id string, x, y, z *ir.Variable) { s.bump("primitive") }

func (s *Summary) BuildConstraintIntension(id string, scope ir.Scope, tree *expr.Node) {
	s.bump("intension")
}
func (s *Summary) BuildConstraintIntensionString(id string, scope ir.Scope, text string) {
	s.bump("intension")
}

func (s *Summary) BuildConstraintExtension(id string, c *ir.Extension) { s.bump("extension") }
func (s *Summary) BuildConstraintRegular(id string, c *ir.Regular)     { s.bump("regular") }
func (s *Summary) BuildConstraintMDD(id string, c *ir.MDD)             { s.bump("mdd") }
func (s *Summary) BuildConstraintAllDifferent(id string, c *ir.AllDifferent) {
	s.bump("allDifferent")
}
func (s *Summary) BuildConstraintAllEqual(id string, c *ir.AllEqual) { s.bump("allEqual") }
func (s *Summary) BuildConstraintOrdered(id string, c *ir.Ordered)   { s.bump("ordered") }
func (s *Summary) BuildConstraintLex(id string, c *ir.Lex)           { s.bump("lex") }
func (s *Summary) BuildConstraintSum(id string, c *ir.Sum)           { s.bump("sum") }

func (s *Summary) BuildConstraintCount(id string, c *ir.Count) { s.bump("count") }
func (s *Summary) BuildConstraintCountExactly(id string, scope ir.Scope, value, occurs ir.Operand) {
	s.bump("count")
}
func (s *Summary) BuildConstraintCountAtLeast(id string, scope ir.Scope, value ir.Operand, k int64) {
	s.bump("count")
}
func (s *Summary) BuildConstraintCountAtMost(id string, scope ir.Scope, value ir.Operand, k int64) {
	s.bump("count")
}
func (s *Summary) BuildConstraintCountAmong(id string, scope ir.Scope, values []ir.Operand, k int64) {
	s.bump("count")
}

func (s *Summary) BuildConstraintNValues(id string, c *ir.NValues) { s.bump("nValues") }
func (s *Summary) BuildConstraintAllEqualFromNValues(id string, scope ir.Scope) {
	s.bump("allEqual")
}
func (s *Summary) BuildConstraintNotAllEqual(id string, scope ir.Scope) { s.bump("nValues") }

func (s *Summary) BuildConstraintCardinality(id string, c *ir.Cardinality) { s.bump("cardinality") }
func (s *Summary) BuildConstraintMinimum(id string, c *ir.Minimum)         { s.bump("minimum") }
func (s *Summary) BuildConstraintMaximum(id string, c *ir.Maximum)         { s.bump("maximum") }
func (s *Summary) BuildConstraintElement(id string, c *ir.Element)         { s.bump("element") }
func (s *Summary) BuildConstraintChannel(id string, c *ir.Channel)         { s.bump("channel") }
func (s *Summary) BuildConstraintStretch(id string, c *ir.Stretch)         { s.bump("stretch") }
func (s *Summary) BuildConstraintNoOverlap(id string, c *ir.NoOverlap)     { s.bump("noOverlap") }
func (s *Summary) BuildConstraintCumulative(id string, c *ir.Cumulative)   { s.bump("cumulative") }
func (s *Summary) BuildConstraintInstantiation(id string, c *ir.Instantiation) {
	s.bump("instantiation")
}
func (s *Summary) BuildConstraintClause(id string, c *ir.Clause)   { s.bump("clause") }
func (s *Summary) BuildConstraintCircuit(id string, c *ir.Circuit) { s.bump("circuit") }

// Objectives

func (s *Summary) BuildObjectiveMinimizeVariable(x *ir.Variable) { s.NumObjectives++ }
func (s *Summary) BuildObjectiveMaximizeVariable(x *ir.Variable) { s.NumObjectives++ }
func (s *Summary) BuildObjectiveMinimizeExpression(tree *expr.Node) { s.NumObjectives++ }
func (s *Summary) BuildObjectiveMaximizeExpression(tree *expr.Node) { s.NumObjectives++ }
func (s *Summary) BuildObjectiveMinimize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
	s.NumObjectives++
}
func (s *Summary) BuildObjectiveMaximize(kind callback.ObjectiveKind, list ir.Scope, coeffs []int64) {
	s.NumObjectives++
}

// Annotations

func (s *Summary) BuildAnnotationDecision(list ir.Scope) { s.NumDecisions++ }

// JSON renders the tallies as a JSON object, building it incrementally
// with sjson.Set the way the teacher's go-snaps dependency chain builds
// its own diff payloads.
func (s *Summary) JSON() (string, error) {
	out := "{}"
	var err error
	out, err = sjson.Set(out, "kind", kindName(s.Kind))
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numVariables", s.NumVariables)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numArrays", s.NumArrays)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numGroups", s.NumGroups)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numSlides", s.NumSlides)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numBlocks", s.NumBlocks)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numObjectives", s.NumObjectives)
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "numDecisions", s.NumDecisions)
	if err != nil {
		return "", err
	}
	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		out, err = sjson.Set(out, "constraints."+k, s.ByKind[k])
		if err != nil {
			return "", err
		}
	}
	return out, nil
}

// CSV renders one "family,count" row per constraint family encountered,
// sorted by family name, for the summarize subcommand's --csv output.
func (s *Summary) CSV() string {
	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	var sb strings.Builder
	sb.WriteString("family,count\n")
	for _, k := range kinds {
		fmt.Fprintf(&sb, "%s,%d\n", k, s.ByKind[k])
	}
	return sb.String()
}

func kindName(k callback.InstanceKind) string {
	if k == callback.COP {
		return "COP"
	}
	return "CSP"
}
