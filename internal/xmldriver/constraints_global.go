package xmldriver

import (
	"strings"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// parseMinimum builds a Minimum from <list>, an optional <index>, and
// <condition> (spec GLOSSARY "Rank").
func (d *Driver) parseMinimum(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, idx, err := d.parseIndexedList(f, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindMinimum, &ir.Minimum{Base: base, Index: idx, Rank: parseRank(f.attrs), StartIdx: parseStartIndex(f.attrs), Condition: cond}, nil
}

// parseMaximum mirrors parseMinimum for <maximum>.
func (d *Driver) parseMaximum(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, idx, err := d.parseIndexedList(f, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindMaximum, &ir.Maximum{Base: base, Index: idx, Rank: parseRank(f.attrs), StartIdx: parseStartIndex(f.attrs), Condition: cond}, nil
}

// parseIndexedList resolves <list> plus an optional <index> variable,
// shared by minimum/maximum/element.
func (d *Driver) parseIndexedList(f *frame, lenient bool) (ir.Scope, *ir.Variable, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return nil, nil, err
	}
	var idx *ir.Variable
	if ic, ok := f.child("index"); ok {
		name := strings.TrimSpace(ic.text)
		if v, ok := d.vars[name]; ok {
			idx = v
		} else if !lenient && !strings.HasPrefix(name, "%") {
			return nil, nil, perr.NewUnknownVariableError(f.pos, name)
		}
	}
	return scope, idx, nil
}

// parseElement builds an Element from <list>, an optional <index>, and a
// <value> (spec §8 element family).
func (d *Driver) parseElement(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, idx, err := d.parseIndexedList(f, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	value := ir.Operand{Kind: ir.OperandConst}
	if vc, ok := f.child("value"); ok {
		value, err = d.parseIntOrVar(strings.TrimSpace(vc.text), f.pos)
		if err != nil {
			if lenient {
				value, err = ir.Operand{Kind: ir.OperandConst}, nil
			} else {
				return 0, nil, err
			}
		}
	}
	return ir.KindElement, &ir.Element{Base: base, Index: idx, StartIdx: parseStartIndex(f.attrs), Rank: parseRank(f.attrs), Value: value}, nil
}

// parseChannel builds a Channel from one or two <list> rows, or a single
// <list> plus a <value> (the unary channelling form).
func (d *Driver) parseChannel(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	rows := f.children["list"]
	if len(rows) == 0 {
		return 0, nil, perr.NewCompactSyntaxError(f.pos, "<channel> is missing its <list>")
	}
	scope, err := d.resolveScope(rows[0].text, f.pos, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.Channel{Base: base, StartIdx: parseStartIndex(f.attrs)}
	if len(rows) > 1 {
		list2, err := d.resolveScope(rows[1].text, f.pos, lenient)
		if err != nil {
			return 0, nil, err
		}
		c.List2 = list2
	}
	if vc, ok := f.child("value"); ok {
		name := strings.TrimSpace(vc.text)
		if v, ok := d.vars[name]; ok {
			c.Value = v
		}
	}
	return ir.KindChannel, c, nil
}

// parseStretch builds a Stretch from <list>, <values>, <widths>, and an
// optional <patterns>.
func (d *Driver) parseStretch(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.Stretch{Base: base}
	if vc, ok := f.child("values"); ok {
		vals, err := scan.ScanValues(vc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		c.Values = vals
	}
	if wc, ok := f.child("widths"); ok {
		tuples, _, err := scan.ScanTuples(wc.text, f.pos, 2)
		if err != nil {
			return 0, nil, err
		}
		widths := make([]ir.Operand, len(tuples))
		for i, t := range tuples {
			widths[i] = ir.Operand{Kind: ir.OperandInterval, Lo: t[0], Hi: t[1]}
		}
		c.Widths = widths
	}
	if pc, ok := f.child("patterns"); ok {
		tuples, _, err := scan.ScanTuples(pc.text, f.pos, 2)
		if err != nil {
			return 0, nil, err
		}
		patterns := make([][2]int64, len(tuples))
		for i, t := range tuples {
			patterns[i] = [2]int64{t[0], t[1]}
		}
		c.Patterns = patterns
	}
	return ir.KindStretch, c, nil
}

// parseNoOverlap builds a NoOverlap from <list> (origins, one row per
// dimension already expanded by the caller as a flat operand list) and
// <lengths>. Multi-dimensional origins/lengths are passed as parallel
// <list>/<lengths> pairs, one pair per dimension (a simplification of
// XCSP3's tuple-per-task form, noted in DESIGN.md).
func (d *Driver) parseNoOverlap(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	origRows := f.children["list"]
	lenRows := f.children["lengths"]
	if len(origRows) == 0 {
		return 0, nil, perr.NewCompactSyntaxError(f.pos, "<noOverlap> is missing its <list>")
	}
	origins := make([][]ir.Operand, len(origRows))
	var scope ir.Scope
	for i, row := range origRows {
		ops, err := d.parseOperandList(row.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		origins[i] = ops
		for _, op := range ops {
			if op.Kind == ir.OperandVar {
				scope = append(scope, op.Var)
			}
		}
	}
	lengths := make([][]ir.Operand, len(lenRows))
	for i, row := range lenRows {
		ops, err := d.parseOperandList(row.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		lengths[i] = ops
	}
	base.Scope = scope
	zeroOK := false
	if v, ok := f.attrs.Get("zeroIgnored"); ok {
		zeroOK = v == "true"
	}
	return ir.KindNoOverlap, &ir.NoOverlap{Base: base, Origins: origins, Lengths: lengths, ZeroOK: zeroOK}, nil
}

// parseCumulative builds a Cumulative from <origins>, <lengths>,
// <heights>, an optional <ends>, and <condition>.
func (d *Driver) parseCumulative(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	origins, err := d.childOperandList(f, "origins")
	if err != nil {
		return 0, nil, err
	}
	lengths, err := d.childOperandList(f, "lengths")
	if err != nil {
		return 0, nil, err
	}
	heights, err := d.childOperandList(f, "heights")
	if err != nil {
		return 0, nil, err
	}
	ends, err := d.childOperandList(f, "ends")
	if err != nil {
		return 0, nil, err
	}
	var scope ir.Scope
	for _, group := range [][]ir.Operand{origins, lengths, heights, ends} {
		for _, op := range group {
			if op.Kind == ir.OperandVar {
				scope = append(scope, op.Var)
			}
		}
	}
	base.Scope = scope
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindCumulative, &ir.Cumulative{Base: base, Origins: origins, Lengths: lengths, Heights: heights, Ends: ends, Condition: cond}, nil
}

func (d *Driver) childOperandList(f *frame, tag string) ([]ir.Operand, error) {
	c, ok := f.child(tag)
	if !ok {
		return nil, nil
	}
	return d.parseOperandList(c.text, f.pos)
}

// parseCircuit builds a Circuit from <list> and an optional <size>.
func (d *Driver) parseCircuit(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	size := ir.Operand{Kind: ir.OperandConst, Const: 0}
	if sc, ok := f.child("size"); ok {
		size, err = d.parseIntOrVar(strings.TrimSpace(sc.text), f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	return ir.KindCircuit, &ir.Circuit{Base: base, StartIdx: parseStartIndex(f.attrs), Size: size}, nil
}
