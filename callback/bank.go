// Package callback defines the sink contract the parser drives: one
// method per lifecycle event and constraint/objective/annotation shape
// (spec §6 "Callback bank"). A Bank implementation is the only thing a
// caller of this module needs to supply.
package callback

import (
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
)

// InstanceKind distinguishes a constraint satisfaction instance from an
// optimisation one.
type InstanceKind int

const (
	CSP InstanceKind = iota
	COP
)

// ObjectiveKind enumerates the aggregation an objective expresses over
// its target list (spec §6 "Objectives").
type ObjectiveKind int

const (
	ObjSum ObjectiveKind = iota
	ObjProduct
	ObjMin
	ObjMax
	ObjNValues
	ObjLex
	ObjExpression
)

// Bank is the full callback surface a parse drives, grouped the way
// XCSP3CoreCallbacksBase.h groups it (spec §6, supplemented feature #3).
// Every method fires synchronously on the parser's goroutine, in document
// order (spec §5 "Ordering guarantees").
type Bank interface {
	Lifecycle
	Variables
	Constraints
	Objectives
	Annotations
}

// Lifecycle brackets the structural sections of an instance.
type Lifecycle interface {
	BeginInstance(kind InstanceKind)
	EndInstance()

	BeginVariables()
	EndVariables()
	BeginVariableArray(id string)
	EndVariableArray()

	BeginConstraints()
	EndConstraints()
	BeginBlock(classes []string)
	EndBlock()
	BeginGroup(id string)
	EndGroup()
	BeginSlide(id string, circular bool)
	EndSlide()

	BeginObjectives()
	EndObjectives()
	BeginAnnotations()
	EndAnnotations()
}

// Variables reports declared variables as their closing tag is processed.
type Variables interface {
	BuildVariableInteger(id string, min, max int64)
	BuildVariableIntegerValues(id string, values []int64)
}

// Constraints is one method per constraint family, overloaded on operand
// category (integer vs. variable) the way the original header overloads
// heights/lengths/ends/origins with and without an index, a start index,
// or an except set (supplemented feature #3).
type Constraints interface {
	// Primitives recognised from intension by the dispatcher (§4.4).
	BuildConstraintPrimitive(id string, op ir.CondOp, x *ir.Variable, k int64)
	BuildConstraintPrimitive3(id string, op ir.CondOp, x *ir.Variable, k int64, y *ir.Variable)
	BuildConstraintPrimitiveSet(id string, x *ir.Variable, in bool, lo, hi int64)
	BuildConstraintMult(id string, x, y, z *ir.Variable)

	// Generic intension fallback.
	BuildConstraintIntension(id string, scope ir.Scope, tree *expr.Node)
	BuildConstraintIntensionString(id string, scope ir.Scope, text string)

	BuildConstraintExtension(id string, c *ir.Extension)

	BuildConstraintRegular(id string, c *ir.Regular)
	BuildConstraintMDD(id string, c *ir.MDD)

	BuildConstraintAllDifferent(id string, c *ir.AllDifferent)
	BuildConstraintAllEqual(id string, c *ir.AllEqual)
	BuildConstraintOrdered(id string, c *ir.Ordered)
	BuildConstraintLex(id string, c *ir.Lex)

	BuildConstraintSum(id string, c *ir.Sum)

	BuildConstraintCount(id string, c *ir.Count)
	BuildConstraintCountExactly(id string, scope ir.Scope, value ir.Operand, occurs ir.Operand)
	BuildConstraintCountAtLeast(id string, scope ir.Scope, value ir.Operand, k int64)
	BuildConstraintCountAtMost(id string, scope ir.Scope, value ir.Operand, k int64)
	BuildConstraintCountAmong(id string, scope ir.Scope, values []ir.Operand, k int64)

	BuildConstraintNValues(id string, c *ir.NValues)
	BuildConstraintAllEqualFromNValues(id string, scope ir.Scope)
	BuildConstraintNotAllEqual(id string, scope ir.Scope)

	BuildConstraintCardinality(id string, c *ir.Cardinality)

	BuildConstraintMinimum(id string, c *ir.Minimum)
	BuildConstraintMaximum(id string, c *ir.Maximum)
	BuildConstraintElement(id string, c *ir.Element)

	BuildConstraintChannel(id string, c *ir.Channel)
	BuildConstraintStretch(id string, c *ir.Stretch)
	BuildConstraintNoOverlap(id string, c *ir.NoOverlap)
	BuildConstraintCumulative(id string, c *ir.Cumulative)

	BuildConstraintInstantiation(id string, c *ir.Instantiation)
	BuildConstraintClause(id string, c *ir.Clause)
	BuildConstraintCircuit(id string, c *ir.Circuit)
}

// Objectives reports the COP objective, overloaded on shape (a single
// variable, a full expression, or an aggregation over a list with
// optional coefficients).
type Objectives interface {
	BuildObjectiveMinimizeVariable(x *ir.Variable)
	BuildObjectiveMaximizeVariable(x *ir.Variable)
	BuildObjectiveMinimizeExpression(tree *expr.Node)
	BuildObjectiveMaximizeExpression(tree *expr.Node)
	BuildObjectiveMinimize(kind ObjectiveKind, list ir.Scope, coeffs []int64)
	BuildObjectiveMaximize(kind ObjectiveKind, list ir.Scope, coeffs []int64)
}

// Annotations exposes the one annotation shape the original surfaces
// (supplemented feature #5: buildAnnotationDecision only).
type Annotations interface {
	BuildAnnotationDecision(list ir.Scope)
}
