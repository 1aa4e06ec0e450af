package xmldriver

import (
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// parseCount builds a Count from <list>, <values>, <condition> (spec
// §4.4 "Count specialisations").
func (d *Driver) parseCount(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	var values []ir.Operand
	if vc, ok := f.child("values"); ok {
		values, err = d.parseOperandList(vc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	return ir.KindCount, &ir.Count{Base: base, Values: values, Condition: cond}, nil
}

// parseNValues builds an NValues from <list>, an optional <except>, and
// <condition> (spec §4.4 "NValues specialisations").
func (d *Driver) parseNValues(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, text, lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.NValues{Base: base}
	if ex, ok := f.child("except"); ok {
		vals, err := scan.ScanValues(ex.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		c.Except = vals
	}
	cond, err := d.condition(f)
	if err != nil {
		return 0, nil, err
	}
	c.Condition = cond
	return ir.KindNValues, c, nil
}

// parseCardinality builds a Cardinality from <list>, <values>, and a
// parallel <occurs> (supplemented: XCSP3's real cardinality schema pairs
// each value with an occurrence count or range; spec.md's subtag list
// omits "occurs" but the family is named in §4.6, so this tag is carried
// the same way "coeffs"/"lengths" are).
func (d *Driver) parseCardinality(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	var values []ir.Operand
	if vc, ok := f.child("values"); ok {
		values, err = d.parseOperandList(vc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	var occurs []ir.Condition
	if oc, ok := f.child("occurs"); ok {
		ops, err := d.parseOperandList(oc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
		occurs = make([]ir.Condition, len(ops))
		for i, op := range ops {
			occurs[i] = ir.Condition{Op: ir.CondEQ, Operand: op}
		}
	}
	closed := false
	if v, ok := f.attrs.Get("closed"); ok {
		closed = v == "true"
	}
	return ir.KindCardinality, &ir.Cardinality{Base: base, Values: values, Occurs: occurs, Closed: closed}, nil
}
