// Package ir is the constraint intermediate representation: variables,
// conditions, and one tagged record per constraint family (spec §3,
// "Constraint IR").
package ir

import (
	"math"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/domain"
	"github.com/xcsp3go/xcsp3/internal/expr"
)

// STAR is the extension-tuple wildcard sentinel (spec §6: "STAR = INT32_MAX").
// Tuple cells are int64 so wide domains never collide with the sentinel.
const STAR int64 = math.MaxInt32

// Variable is a declared integer variable: an identifier, its domain, and
// any class tags carried by its <var> or enclosing <array> element.
type Variable struct {
	ID      string
	Domain  *domain.Domain
	Classes []string
}

// HasClass reports whether tag appears in the variable's class list.
func (v *Variable) HasClass(tag string) bool {
	for _, c := range v.Classes {
		if c == tag {
			return true
		}
	}
	return false
}

// VarArray is a multi-dimensional grid of variables sharing a base name
// (spec §3 "Variable"). Dims holds the size of each dimension; Cells is
// stored in row-major order.
type VarArray struct {
	ID      string
	Dims    []int
	Cells   []*Variable
	Classes []string
}

// At returns the variable at the given index tuple.
func (a *VarArray) At(idx ...int) *Variable {
	offset := 0
	for i, d := range idx {
		offset = offset*a.Dims[i] + d
	}
	return a.Cells[offset]
}

// CellName renders the dotted/bracketed name for a cell, e.g. "q[1][2]".
func CellName(base string, idx []int) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, i := range idx {
		sb.WriteByte('[')
		sb.WriteString(itoa(i))
		sb.WriteByte(']')
	}
	return sb.String()
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Rank disambiguates ties in index-based constraints (element, minimum,
// maximum): spec GLOSSARY "Rank".
type Rank int

const (
	RankAny Rank = iota
	RankFirst
	RankLast
)

// CondOp is the comparison operator of a Condition (spec supplemented
// feature #2a, from XCSP3Constraint.h).
type CondOp int

const (
	CondLT CondOp = iota
	CondLE
	CondGE
	CondGT
	CondNE
	CondEQ
	CondIN
	CondNOTIN
)

// OperandKind tags which alternative of Condition.Operand is populated.
type OperandKind int

const (
	OperandConst OperandKind = iota
	OperandVar
	OperandInterval
)

// Operand is the tagged union of what a Condition compares against: a
// constant, a variable, or an interval (for in/notin).
type Operand struct {
	Kind OperandKind
	Const int64
	Var   *Variable
	Lo, Hi int64
}

// Condition pairs a comparison operator with an Operand, the shape used
// throughout the global constraint family (spec GLOSSARY "Condition").
type Condition struct {
	Op      CondOp
	Operand Operand
}

// Scope is the ordered list of variables a constraint ranges over.
type Scope []*Variable

// Base carries the fields common to every constraint IR record (spec §3
// "Constraint IR: common fields").
type Base struct {
	ID      string
	Classes []string
	Scope   Scope
}

// HasClass reports whether tag is present among the constraint's class
// tags.
func (b Base) HasClass(tag string) bool {
	for _, c := range b.Classes {
		if c == tag {
			return true
		}
	}
	return false
}

// Template is a group/slide's parameterised constraint body: a Constraint
// value (one of the Build*-shaped records below) built with placeholder
// expression nodes (%0, %1, ...) standing in for concrete operands (spec
// §4.5). Constraint itself doesn't need an interface: the unfolder walks
// the Kind-tagged union in internal/unfold and re-dispatches the
// substituted clone through internal/dispatch.
type Template struct {
	Kind      Kind
	Payload   any // one of the *Constraint family structs below, template-shaped
	ArgVectors [][]*expr.Node
}

// Kind tags which constraint family a Template/Constraint payload holds.
type Kind int

const (
	KindExtension Kind = iota
	KindIntension
	KindRegular
	KindMDD
	KindAllDifferent
	KindAllEqual
	KindOrdered
	KindLex
	KindSum
	KindCount
	KindNValues
	KindCardinality
	KindMinimum
	KindMaximum
	KindElement
	KindChannel
	KindStretch
	KindNoOverlap
	KindCumulative
	KindInstantiation
	KindClause
	KindCircuit
)
