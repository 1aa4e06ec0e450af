package xmldriver

import (
	"github.com/xcsp3go/xcsp3/internal/dispatch"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
)

// baseOf extracts the common Base out of a constraint IR payload, mirroring
// internal/dispatch.Dispatch's own kind switch so the driver can apply the
// class-tag discard filter (spec §4.4 step 1) before a group/slide template
// is even built.
func baseOf(kind ir.Kind, payload any) ir.Base {
	switch kind {
	case ir.KindExtension:
		return payload.(*ir.Extension).Base
	case ir.KindIntension:
		return payload.(*ir.Intension).Base
	case ir.KindRegular:
		return payload.(*ir.Regular).Base
	case ir.KindMDD:
		return payload.(*ir.MDD).Base
	case ir.KindAllDifferent:
		return payload.(*ir.AllDifferent).Base
	case ir.KindAllEqual:
		return payload.(*ir.AllEqual).Base
	case ir.KindOrdered:
		return payload.(*ir.Ordered).Base
	case ir.KindLex:
		return payload.(*ir.Lex).Base
	case ir.KindSum:
		return payload.(*ir.Sum).Base
	case ir.KindCount:
		return payload.(*ir.Count).Base
	case ir.KindNValues:
		return payload.(*ir.NValues).Base
	case ir.KindCardinality:
		return payload.(*ir.Cardinality).Base
	case ir.KindMinimum:
		return payload.(*ir.Minimum).Base
	case ir.KindMaximum:
		return payload.(*ir.Maximum).Base
	case ir.KindElement:
		return payload.(*ir.Element).Base
	case ir.KindChannel:
		return payload.(*ir.Channel).Base
	case ir.KindStretch:
		return payload.(*ir.Stretch).Base
	case ir.KindNoOverlap:
		return payload.(*ir.NoOverlap).Base
	case ir.KindCumulative:
		return payload.(*ir.Cumulative).Base
	case ir.KindInstantiation:
		return payload.(*ir.Instantiation).Base
	case ir.KindClause:
		return payload.(*ir.Clause).Base
	case ir.KindCircuit:
		return payload.(*ir.Circuit).Base
	}
	return ir.Base{}
}

// endConstraint finalises one constraint-family tag: parses its buffered
// children into the matching IR payload, then either stashes it as the
// enclosing group/slide's template (spec §4.5) or dispatches it directly
// (spec §4.4).
func (d *Driver) endConstraint(tag string, f *frame, text string) error {
	id, _ := f.attrs.Get("id")
	lenient := d.group != nil
	classes := d.currentClasses(f.class())

	kind, payload, err := d.buildConstraint(tag, f, text, classes, lenient)
	if err != nil {
		return err
	}

	base := baseOf(kind, payload)
	if dispatch.Discarded(base, d.opts) {
		return nil
	}

	if d.group != nil {
		if d.group.tmpl == nil {
			d.group.tmpl = &ir.Template{Kind: kind, Payload: payload}
		}
		return nil
	}
	dispatch.Dispatch(id, kind, payload, d.opts, d.bank)
	return nil
}

// buildConstraint dispatches to the per-family parser by tag name.
func (d *Driver) buildConstraint(tag string, f *frame, text string, classes []string, lenient bool) (ir.Kind, any, error) {
	base := ir.Base{Classes: classes}
	switch tag {
	case "extension":
		return d.parseExtension(f, base, lenient)
	case "intension":
		return d.parseIntension(f, text, base, lenient)
	case "regular":
		return d.parseRegular(f, base, lenient)
	case "mdd":
		return d.parseMDD(f, base, lenient)
	case "allDifferent":
		return d.parseAllDifferent(f, text, base, lenient)
	case "allEqual":
		return d.parseAllEqual(f, text, base, lenient)
	case "ordered":
		return d.parseOrdered(f, text, base, lenient)
	case "lex":
		return d.parseLex(f, base, lenient)
	case "sum":
		return d.parseSum(f, text, base, lenient)
	case "count":
		return d.parseCount(f, base, lenient)
	case "nValues":
		return d.parseNValues(f, text, base, lenient)
	case "cardinality":
		return d.parseCardinality(f, base, lenient)
	case "minimum":
		return d.parseMinimum(f, base, lenient)
	case "maximum":
		return d.parseMaximum(f, base, lenient)
	case "element":
		return d.parseElement(f, text, base, lenient)
	case "channel":
		return d.parseChannel(f, base, lenient)
	case "stretch":
		return d.parseStretch(f, base, lenient)
	case "noOverlap":
		return d.parseNoOverlap(f, base, lenient)
	case "cumulative":
		return d.parseCumulative(f, base, lenient)
	case "instantiation":
		return d.parseInstantiation(f, base, lenient)
	case "clause":
		return d.parseClause(f, text, base, lenient)
	case "circuit":
		return d.parseCircuit(f, text, base, lenient)
	}
	return 0, nil, perr.NewUnknownTagError(f.pos, tag)
}

// scopeFromList resolves the constraint's <list> child (or, absent that,
// its own text body — the shorthand many single-list families permit).
func (d *Driver) scopeFromList(f *frame, fallback string, lenient bool) (ir.Scope, error) {
	text := fallback
	if c, ok := f.child("list"); ok {
		text = c.text
	}
	return d.resolveScope(text, f.pos, lenient)
}

func (d *Driver) condition(f *frame) (ir.Condition, error) {
	c, ok := f.child("condition")
	if !ok {
		return ir.Condition{}, perr.NewCompactSyntaxError(f.pos, "missing <condition>")
	}
	return parseCondition(c.text, f.pos, d.lookupVar)
}
