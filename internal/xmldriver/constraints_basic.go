package xmldriver

import (
	"strings"

	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// parseExtension builds an Extension from <list> plus <supports> or
// <conflicts> (spec §8 scenario 7, §4.3 "*" wildcard).
func (d *Driver) parseExtension(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope

	isSupports := true
	text := ""
	if c, ok := f.child("supports"); ok {
		text = c.text
	} else if c, ok := f.child("conflicts"); ok {
		isSupports = false
		text = c.text
	}
	arity := len(scope)
	if arity == 0 {
		arity = 1 // template bodies with a fully-placeholder scope
	}
	tuples, hasStar, err := scan.ScanTuples(text, f.pos, arity)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindExtension, &ir.Extension{Base: base, Tuples: tuples, IsSupports: isSupports, HasStar: hasStar}, nil
}

// parseIntension builds an Intension from the tag's own prefix-notation
// text body (spec §4.2.1, §8 scenario 3).
func (d *Driver) parseIntension(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	tree, err := expr.Parse(text, f.pos)
	if err != nil {
		return 0, nil, err
	}
	if !lenient {
		for _, name := range expr.VariableNames(tree) {
			if _, ok := d.vars[name]; !ok {
				return 0, nil, perr.NewUnknownVariableError(f.pos, name)
			}
			base.Scope = append(base.Scope, d.vars[name])
		}
	}
	return ir.KindIntension, &ir.Intension{Base: base, Tree: tree, AsString: strings.TrimSpace(text)}, nil
}

// parseAllDifferent builds an AllDifferent from <list> plus an optional
// <except> tuple set.
func (d *Driver) parseAllDifferent(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.AllDifferent{Base: base}
	if ex, ok := f.child("except"); ok {
		vals, err := scan.ScanValues(ex.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		c.Except = vals
	}
	return ir.KindAllDifferent, c, nil
}

// parseAllEqual builds an AllEqual from <list> or the bare text shorthand.
func (d *Driver) parseAllEqual(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	return ir.KindAllEqual, &ir.AllEqual{Base: base}, nil
}

// parseOrdered builds an Ordered from <list>, <operator>, and an optional
// <lengths> (the "ordered with lengths" variant).
func (d *Driver) parseOrdered(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	op := ir.CondLT
	if opC, ok := f.child("operator"); ok {
		if got, ok := condOpNames[strings.TrimSpace(opC.text)]; ok {
			op = got
		}
	}
	c := &ir.Ordered{Base: base, Op: op}
	if lc, ok := f.child("lengths"); ok {
		lens, err := d.parseOperandList(lc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		c.Lengths = lens
	}
	return ir.KindOrdered, c, nil
}

// parseLex builds a Lex from two or more <list> rows plus <operator>
// (spec §4.6 handler list "lex").
func (d *Driver) parseLex(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	rows := f.children["list"]
	lists := make([][]*ir.Variable, 0, len(rows))
	for _, row := range rows {
		scope, err := d.resolveScope(row.text, f.pos, lenient)
		if err != nil {
			return 0, nil, err
		}
		lists = append(lists, []*ir.Variable(scope))
		base.Scope = append(base.Scope, scope...)
	}
	op := ir.CondLT
	if opC, ok := f.child("operator"); ok {
		if got, ok := condOpNames[strings.TrimSpace(opC.text)]; ok {
			op = got
		}
	}
	return ir.KindLex, &ir.Lex{Base: base, Lists: lists, Op: op}, nil
}

// parseSum builds a Sum from <list>, an optional <coeffs>, and
// <condition> (spec §4.4 "Sum normalisation" consumes this downstream).
func (d *Driver) parseSum(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope

	coeffs := make([]int64, len(scope))
	for i := range coeffs {
		coeffs[i] = 1
	}
	if cc, ok := f.child("coeffs"); ok {
		vals, err := scan.ScanValues(cc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		if len(vals) == len(scope) {
			coeffs = vals
		}
	}
	terms := make([]ir.SumTerm, len(scope))
	for i, v := range scope {
		terms[i] = ir.SumTerm{Coeff: coeffs[i], Var: v}
	}
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindSum, &ir.Sum{Base: base, Terms: terms, Condition: cond}, nil
}
