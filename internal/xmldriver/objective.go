package xmldriver

import (
	"strings"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

var objectiveKindNames = map[string]callback.ObjectiveKind{
	"sum":        callback.ObjSum,
	"product":    callback.ObjProduct,
	"minimum":    callback.ObjMin,
	"maximum":    callback.ObjMax,
	"nValues":    callback.ObjNValues,
	"lex":        callback.ObjLex,
	"expression": callback.ObjExpression,
}

// endObjective finalises a <minimize>/<maximize> tag, dispatching to
// whichever of the six Bank.Objectives overloads matches its shape: a
// bare variable, a predicate expression, or a list aggregation with an
// optional coefficient vector.
func (d *Driver) endObjective(f *frame, text string, minimize bool) error {
	if _, ok := f.child("list"); ok {
		scope, err := d.scopeFromList(f, "", false)
		if err != nil {
			return err
		}
		var coeffs []int64
		if cc, ok := f.child("coeffs"); ok {
			coeffs, err = scan.ScanValues(cc.text, f.pos)
			if err != nil {
				return err
			}
		}
		kind := callback.ObjSum
		if v, ok := f.attrs.Get("type"); ok {
			if k, ok := objectiveKindNames[v]; ok {
				kind = k
			}
		}
		if minimize {
			d.bank.BuildObjectiveMinimize(kind, scope, coeffs)
		} else {
			d.bank.BuildObjectiveMaximize(kind, scope, coeffs)
		}
		return nil
	}

	name := strings.TrimSpace(text)
	if v, ok := d.vars[name]; ok {
		if minimize {
			d.bank.BuildObjectiveMinimizeVariable(v)
		} else {
			d.bank.BuildObjectiveMaximizeVariable(v)
		}
		return nil
	}

	tree, err := expr.Parse(text, f.pos)
	if err != nil {
		return err
	}
	if minimize {
		d.bank.BuildObjectiveMinimizeExpression(tree)
	} else {
		d.bank.BuildObjectiveMaximizeExpression(tree)
	}
	return nil
}
