// Package dispatch implements the manager/dispatcher (spec §4.4): class-tag
// discard filtering, intension primitive recognition, count/nValues
// specialisation, and sum normalisation, translating a finalised
// internal/ir constraint into the right internal/callback.Bank call.
package dispatch

import (
	"sort"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
)

// Discarded reports whether base carries a class tag present in the
// user's discard set (spec §4.4 step 1). A discarded constraint is
// dropped silently, not an error (spec §7 "Discarded classes are not
// errors").
func Discarded(base ir.Base, opts callback.ParserOptions) bool {
	for _, c := range base.Classes {
		if opts.DiscardedClasses[c] {
			return true
		}
	}
	return false
}

// Intension canonises tree and, if enabled, recognises a primitive shape
// before falling back to the generic callback (spec §4.4 step 2).
func Intension(id string, scope ir.Scope, tree *expr.Node, opts callback.ParserOptions, raw string, bank callback.Bank) {
	canon := expr.Canonize(tree)

	if opts.RecognizeSpecialIntensionCases {
		if op, name, k, ok := matchPrimitive(canon); ok {
			x := findVar(scope, name)
			bank.BuildConstraintPrimitive(id, op, x, k)
			return
		}
		if op, nameX, k, nameY, ok := matchPrimitive3(canon); ok {
			bank.BuildConstraintPrimitive3(id, op, findVar(scope, nameX), k, findVar(scope, nameY))
			return
		}
		if name, in, lo, hi, ok := matchPrimitiveSet(canon); ok {
			bank.BuildConstraintPrimitiveSet(id, findVar(scope, name), in, lo, hi)
			return
		}
		if nameX, nameY, nameZ, ok := matchMult(canon); ok {
			bank.BuildConstraintMult(id, findVar(scope, nameX), findVar(scope, nameY), findVar(scope, nameZ))
			return
		}
	}

	if opts.IntensionUsingString {
		bank.BuildConstraintIntensionString(id, scope, raw)
		return
	}
	bank.BuildConstraintIntension(id, scope, canon)
}

func findVar(scope ir.Scope, name string) *ir.Variable {
	for _, v := range scope {
		if v.ID == name {
			return v
		}
	}
	return nil
}

// relOps is the operator set every primitive pattern in spec §4.4 is
// drawn from.
var relOps = []expr.Op{expr.OpLe, expr.OpGe, expr.OpEq, expr.OpNe}

// reflectOp returns the operator that reads the same comparison with its
// two operands swapped: "k R x" means the same thing as "x reflectOp(R)
// k". eq/ne are symmetric and pass through unchanged.
func reflectOp(op expr.Op) expr.Op {
	switch op {
	case expr.OpLe:
		return expr.OpGe
	case expr.OpGe:
		return expr.OpLe
	}
	return op
}

// matchPrimitive recognises "R(x,k)" or its mirror "R(k,x)", R in
// {le,ge,eq,ne}, k a constant. The mirror form reads as "k R x", which is
// "x reflectOp(R) k" once x is moved to the left.
func matchPrimitive(n *expr.Node) (ir.CondOp, string, int64, bool) {
	for _, op := range relOps {
		p := expr.Binary(op, expr.WildcardVariable("x"), expr.WildcardConstant("k"))
		if caps, ok := expr.Match(p, n); ok {
			return toCondOp(op), caps.Names["x"], caps.Consts["k"], true
		}
		p = expr.Binary(op, expr.WildcardConstant("k"), expr.WildcardVariable("x"))
		if caps, ok := expr.Match(p, n); ok {
			return toCondOp(reflectOp(op)), caps.Names["x"], caps.Consts["k"], true
		}
	}
	return 0, "", 0, false
}

// matchPrimitive3 recognises "R(add(x,k),y)", falling back to "R(x,y)"
// with an implicit k=0. Canonicalisation's symmetric sort (for the
// symmetric R in {eq,ne}) ranks a bare variable ahead of an add(...)
// subtree, so the mirrored "R(y,add(x,k))" order is tried as well; that
// mirror reads as "y R (x+k)", i.e. "(x+k) reflectOp(R) y", so the
// reported op must be reflected too. The same sort puts add's constant
// first, so both add(x,k) and add(k,x) are tried.
func matchPrimitive3(n *expr.Node) (ir.CondOp, string, int64, string, bool) {
	for _, op := range relOps {
		for _, addPattern := range []*expr.Node{
			expr.Binary(expr.OpAdd, expr.WildcardVariable("x"), expr.WildcardConstant("k")),
			expr.Binary(expr.OpAdd, expr.WildcardConstant("k"), expr.WildcardVariable("x")),
		} {
			p := expr.Binary(op, addPattern, expr.WildcardVariable("y"))
			if caps, ok := expr.Match(p, n); ok {
				return toCondOp(op), caps.Names["x"], caps.Consts["k"], caps.Names["y"], true
			}
			p = expr.Binary(op, expr.WildcardVariable("y"), addPattern)
			if caps, ok := expr.Match(p, n); ok {
				return toCondOp(reflectOp(op)), caps.Names["x"], caps.Consts["k"], caps.Names["y"], true
			}
		}
		plain := expr.Binary(op, expr.WildcardVariable("x"), expr.WildcardVariable("y"))
		if caps, ok := expr.Match(plain, n); ok {
			return toCondOp(op), caps.Names["x"], 0, caps.Names["y"], true
		}
	}
	return 0, "", 0, "", false
}

// matchPrimitiveSet recognises "in(x, set(c1,...,cn))"/"notin(...)" with
// n >= 2, when the set's values form a contiguous interval.
func matchPrimitiveSet(n *expr.Node) (string, bool, int64, int64, bool) {
	if n.Kind != expr.KindOp || len(n.Children) != 2 {
		return "", false, 0, 0, false
	}
	if n.Op != expr.OpIn && n.Op != expr.OpNotIn {
		return "", false, 0, 0, false
	}
	x, set := n.Children[0], n.Children[1]
	if x.Kind != expr.KindVariable || set.Kind != expr.KindSet || len(set.Children) < 2 {
		return "", false, 0, 0, false
	}
	vals := make([]int64, len(set.Children))
	for i, c := range set.Children {
		if c.Kind != expr.KindConstant {
			return "", false, 0, 0, false
		}
		vals[i] = c.Const
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1]+1 {
			return "", false, 0, 0, false
		}
	}
	return x.Name, n.Op == expr.OpIn, vals[0], vals[len(vals)-1], true
}

// matchMult recognises "eq(mul(x,y), z)". Canonicalisation's symmetric
// sort ranks a bare variable ahead of an operator subtree, so the
// mirrored order "eq(z, mul(x,y))" is the one that actually reaches here
// and is tried first.
func matchMult(n *expr.Node) (string, string, string, bool) {
	mulPattern := expr.Binary(expr.OpMul, expr.WildcardVariable("x"), expr.WildcardVariable("y"))
	p := expr.Binary(expr.OpEq, expr.WildcardVariable("z"), mulPattern)
	if caps, ok := expr.Match(p, n); ok {
		return caps.Names["x"], caps.Names["y"], caps.Names["z"], true
	}
	p = expr.Binary(expr.OpEq, mulPattern, expr.WildcardVariable("z"))
	if caps, ok := expr.Match(p, n); ok {
		return caps.Names["x"], caps.Names["y"], caps.Names["z"], true
	}
	return "", "", "", false
}

func toCondOp(op expr.Op) ir.CondOp {
	switch op {
	case expr.OpLe:
		return ir.CondLE
	case expr.OpGe:
		return ir.CondGE
	case expr.OpEq:
		return ir.CondEQ
	case expr.OpNe:
		return ir.CondNE
	}
	return ir.CondEQ
}

// Count applies the count specialisations of spec §4.4: for one counted
// value, exactly (eq against a constant or variable) and atMost/atLeast
// (le/ge against a constant); for several values, among (eq against a
// constant). It fires the generic count callback otherwise.
func Count(id string, c *ir.Count, opts callback.ParserOptions, bank callback.Bank) {
	if opts.RecognizeSpecialCountCases && c.Condition.Op == ir.CondEQ && len(c.Values) == 1 {
		switch c.Condition.Operand.Kind {
		case ir.OperandConst:
			bank.BuildConstraintCountExactly(id, c.Scope, c.Values[0], c.Condition.Operand)
			return
		case ir.OperandVar:
			bank.BuildConstraintCountExactly(id, c.Scope, c.Values[0], c.Condition.Operand)
			return
		}
	}
	if opts.RecognizeSpecialCountCases && len(c.Values) == 1 && c.Condition.Operand.Kind == ir.OperandConst {
		switch c.Condition.Op {
		case ir.CondLE:
			bank.BuildConstraintCountAtMost(id, c.Scope, c.Values[0], c.Condition.Operand.Const)
			return
		case ir.CondGE:
			bank.BuildConstraintCountAtLeast(id, c.Scope, c.Values[0], c.Condition.Operand.Const)
			return
		}
	}
	if opts.RecognizeSpecialCountCases && len(c.Values) > 1 && c.Condition.Op == ir.CondEQ && c.Condition.Operand.Kind == ir.OperandConst {
		bank.BuildConstraintCountAmong(id, c.Scope, c.Values, c.Condition.Operand.Const)
		return
	}
	bank.BuildConstraintCount(id, c)
}

// NValues applies the nValues specialisations of spec §4.4.
func NValues(id string, c *ir.NValues, opts callback.ParserOptions, bank callback.Bank) {
	if opts.RecognizeNValuesCases && c.Condition.Operand.Kind == ir.OperandConst {
		switch {
		case c.Condition.Op == ir.CondEQ && c.Condition.Operand.Const == 1:
			bank.BuildConstraintAllEqualFromNValues(id, c.Scope)
			return
		case c.Condition.Op == ir.CondGT && c.Condition.Operand.Const == 1:
			bank.BuildConstraintNotAllEqual(id, c.Scope)
			return
		case c.Condition.Op == ir.CondEQ && c.Condition.Operand.Const == int64(len(c.Scope)):
			bank.BuildConstraintAllDifferent(id, &ir.AllDifferent{Base: c.Base})
			return
		}
	}
	bank.BuildConstraintNValues(id, c)
}

// Dispatch routes a finalised constraint record to its Bank method, for
// the families with a specialisation table (intension, count, nValues,
// sum) through the dedicated entry points above. It does not apply the
// class-tag discard filter itself: the XML driver checks Discarded before
// a constraint is dispatched or kept as a group/slide template. Used directly by the XML
// driver for ungrouped constraints and by internal/unfold once a
// group/slide template has been substituted for one argument vector.
func Dispatch(id string, kind ir.Kind, payload any, opts callback.ParserOptions, bank callback.Bank) {
	switch kind {
	case ir.KindExtension:
		bank.BuildConstraintExtension(id, payload.(*ir.Extension))
	case ir.KindIntension:
		c := payload.(*ir.Intension)
		Intension(id, c.Scope, c.Tree, opts, c.AsString, bank)
	case ir.KindRegular:
		bank.BuildConstraintRegular(id, payload.(*ir.Regular))
	case ir.KindMDD:
		bank.BuildConstraintMDD(id, payload.(*ir.MDD))
	case ir.KindAllDifferent:
		bank.BuildConstraintAllDifferent(id, payload.(*ir.AllDifferent))
	case ir.KindAllEqual:
		bank.BuildConstraintAllEqual(id, payload.(*ir.AllEqual))
	case ir.KindOrdered:
		bank.BuildConstraintOrdered(id, payload.(*ir.Ordered))
	case ir.KindLex:
		bank.BuildConstraintLex(id, payload.(*ir.Lex))
	case ir.KindSum:
		c := Sum(payload.(*ir.Sum), opts)
		bank.BuildConstraintSum(id, c)
	case ir.KindCount:
		Count(id, payload.(*ir.Count), opts, bank)
	case ir.KindNValues:
		NValues(id, payload.(*ir.NValues), opts, bank)
	case ir.KindCardinality:
		bank.BuildConstraintCardinality(id, payload.(*ir.Cardinality))
	case ir.KindMinimum:
		bank.BuildConstraintMinimum(id, payload.(*ir.Minimum))
	case ir.KindMaximum:
		bank.BuildConstraintMaximum(id, payload.(*ir.Maximum))
	case ir.KindElement:
		bank.BuildConstraintElement(id, payload.(*ir.Element))
	case ir.KindChannel:
		bank.BuildConstraintChannel(id, payload.(*ir.Channel))
	case ir.KindStretch:
		bank.BuildConstraintStretch(id, payload.(*ir.Stretch))
	case ir.KindNoOverlap:
		bank.BuildConstraintNoOverlap(id, payload.(*ir.NoOverlap))
	case ir.KindCumulative:
		bank.BuildConstraintCumulative(id, payload.(*ir.Cumulative))
	case ir.KindInstantiation:
		bank.BuildConstraintInstantiation(id, payload.(*ir.Instantiation))
	case ir.KindClause:
		bank.BuildConstraintClause(id, payload.(*ir.Clause))
	case ir.KindCircuit:
		bank.BuildConstraintCircuit(id, payload.(*ir.Circuit))
	}
}

// Sum merges duplicate-variable coefficients, drops zero coefficients,
// and sorts by variable identifier for an order-independent result
// (spec §4.4 "Sum normalisation", §9 open question).
func Sum(c *ir.Sum, opts callback.ParserOptions) *ir.Sum {
	if !opts.NormalizeSum {
		return c
	}
	byVar := make(map[string]int64, len(c.Terms))
	varOf := make(map[string]*ir.Variable, len(c.Terms))
	order := make([]string, 0, len(c.Terms))
	for _, t := range c.Terms {
		if _, seen := byVar[t.Var.ID]; !seen {
			order = append(order, t.Var.ID)
		}
		byVar[t.Var.ID] += t.Coeff
		varOf[t.Var.ID] = t.Var
	}
	sort.Strings(order)

	merged := make([]ir.SumTerm, 0, len(order))
	for _, id := range order {
		if coeff := byVar[id]; coeff != 0 {
			merged = append(merged, ir.SumTerm{Coeff: coeff, Var: varOf[id]})
		}
	}
	out := *c
	out.Terms = merged
	return &out
}
