package ir

import "github.com/xcsp3go/xcsp3/internal/expr"

// Extension holds an explicit tuple list, either supports (allowed) or
// conflicts (forbidden). Tuple cells use STAR for "*" wildcards.
type Extension struct {
	Base
	Tuples     [][]int64
	IsSupports bool
	HasStar    bool
}

// Intension holds a single predicate expression over the scope.
type Intension struct {
	Base
	Tree       *expr.Node
	AsString   string // original textual form, kept when intensionUsingString is set
}

// Regular is a deterministic finite automaton over the scope's values.
type Regular struct {
	Base
	States      []string
	Transitions []Transition
	Start       string
	Final       []string
}

// Transition is one (state, value, state) edge of a Regular/MDD automaton.
type Transition struct {
	From  string
	Value int64
	To    string
}

// MDD is a multi-valued decision diagram over the scope, using the same
// transition shape as Regular (spec §4.6 handler list groups them together).
type MDD struct {
	Base
	Transitions []Transition
}

// AllDifferent requires every scope variable to take a distinct value,
// except values in Except.
type AllDifferent struct {
	Base
	Except []int64
}

// AllEqual requires every scope variable to take the same value.
type AllEqual struct {
	Base
}

// Ordered requires the scope to be strictly or non-strictly monotonic,
// optionally offset by Lengths (for "ordered with lengths").
type Ordered struct {
	Base
	Op      CondOp // LT, LE, GE, or GT
	Lengths []Operand
}

// Lex requires lexicographic ordering between consecutive rows of Lists.
type Lex struct {
	Base
	Lists [][]*Variable
	Op    CondOp
}

// SumTerm is one (coefficient, variable) pair of a Sum constraint.
type SumTerm struct {
	Coeff int64
	Var   *Variable
}

// Sum is a linear constraint over weighted scope variables against a
// condition (spec §4.4 "Sum normalisation").
type Sum struct {
	Base
	Terms     []SumTerm
	Condition Condition
}

// Count constrains how many scope variables take a value from Values
// against Condition (spec §4.4 "Count specialisations").
type Count struct {
	Base
	Values    []Operand
	Condition Condition
}

// NValues constrains the number of distinct values taken by the scope
// (spec §4.4 "NValues specialisations").
type NValues struct {
	Base
	Except    []int64
	Condition Condition
}

// Cardinality constrains, for each value in Values, how many scope
// variables take it (Occurs, integer or variable-bounded per value).
type Cardinality struct {
	Base
	Values   []Operand
	Occurs   []Condition
	Closed   bool
}

// Minimum/Maximum constrain the min/max of the scope (or of scope[Index]
// when indexed) against Condition.
type Minimum struct {
	Base
	Index     *Variable // nil for the plain (non-indexed) form
	Rank      Rank
	StartIdx  int
	Condition Condition
}

type Maximum struct {
	Base
	Index     *Variable
	Rank      Rank
	StartIdx  int
	Condition Condition
}

// Element asserts that Scope[Index] == Value (or List[Index-StartIdx] for
// the indexed-list overload).
type Element struct {
	Base
	Index    *Variable
	StartIdx int
	Rank     Rank
	Value    Operand
}

// Channel links two (or one) variable lists: scope[i] == j <=> list2[j]
// == i, the classic channelling constraint, with an optional single
// linked Value for the unary form.
type Channel struct {
	Base
	List2    []*Variable
	StartIdx int
	Value    *Variable
}

// Stretch constrains the lengths of maximal runs of equal values in the
// scope (Widths give per-value min/max run length; Patterns restrict
// which values may follow which).
type Stretch struct {
	Base
	Values   []int64
	Widths   []Operand // one [min,max] interval operand per value, as Lo/Hi
	Patterns [][2]int64
}

// NoOverlap is scheduling non-overlap over 1..n dimensions: Origins and
// Lengths are parallel, dimension-major lists of rows.
type NoOverlap struct {
	Base
	Origins  [][]Operand // one row per dimension, one Operand per task
	Lengths  [][]Operand
	ZeroOK   bool
}

// Cumulative bounds resource usage over time: tasks run [Origin,
// Origin+Length) consuming Height, total must respect Condition.
type Cumulative struct {
	Base
	Origins   []Operand
	Lengths   []Operand
	Heights   []Operand
	Ends      []Operand // optional, parallel to Origins when present
	Condition Condition
}

// Instantiation assigns each scope variable a fixed value from Values (a
// concrete solution check / decision fixing).
type Instantiation struct {
	Base
	Values []int64
}

// Clause is a disjunction over positive/negative literals (variables that
// must be true, i.e. nonzero, and variables that must be false).
type Clause struct {
	Base
	Positive []*Variable
	Negative []*Variable
}

// Circuit requires the scope, read as a successor function, to form a
// single Hamiltonian circuit, optionally of fixed Size.
type Circuit struct {
	Base
	StartIdx int
	Size     Operand // zero value (OperandConst{0}) means unconstrained
}
