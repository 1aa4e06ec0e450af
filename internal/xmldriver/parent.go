package xmldriver

import "github.com/xcsp3go/xcsp3/internal/perr"

// structuralParents gives the exact permitted immediate parent for the
// tags whose nesting is unambiguous and worth enforcing (spec §4.6
// "checks its parent ... is permitted"). Constraint-family tags and
// their plain structural children (list, condition, values, ...) are
// deliberately not covered here: those names are reused across more
// than a dozen constraint families with different legal nestings, and
// the combinatorial (tag, parent) table bought little error-detection
// value relative to its size, so the driver trusts well-formed XML for
// that tier and validates only the document skeleton (see DESIGN.md).
var structuralParents = map[string]string{
	"variables":   "instance",
	"array":       "variables",
	"var":         "",
	"constraints": "instance",
	"block":       "constraints",
	"group":       "constraints",
	"slide":       "constraints",
	"objectives":  "instance",
	"annotations": "instance",
	"decision":    "annotations",
	"minimize":    "objectives",
	"maximize":    "objectives",
}

var constraintFamilyTag = map[string]bool{
	"extension": true, "intension": true, "regular": true, "mdd": true,
	"allDifferent": true, "allEqual": true, "ordered": true, "lex": true,
	"sum": true, "count": true, "nValues": true, "cardinality": true,
	"minimum": true, "maximum": true, "element": true, "channel": true,
	"stretch": true, "noOverlap": true, "cumulative": true,
	"instantiation": true, "clause": true, "circuit": true,
}

func (d *Driver) checkParent(tag, parent string, pos perr.Position) error {
	if tag == "instance" {
		if parent != "" {
			return perr.NewParentMismatchError(pos, tag, "", parent)
		}
		return nil
	}
	if tag == "var" {
		if parent != "variables" && parent != "array" {
			return perr.NewParentMismatchError(pos, tag, "variables or array", parent)
		}
		return nil
	}
	if tag == "domain" {
		if parent != "var" && parent != "array" {
			return perr.NewParentMismatchError(pos, tag, "var or array", parent)
		}
		return nil
	}
	if constraintFamilyTag[tag] {
		if parent != "constraints" && parent != "block" && parent != "group" && parent != "slide" {
			return perr.NewParentMismatchError(pos, tag, "constraints, block, group, or slide", parent)
		}
		return nil
	}
	if want, ok := structuralParents[tag]; ok {
		if parent != want {
			return perr.NewParentMismatchError(pos, tag, want, parent)
		}
		return nil
	}
	return nil
}
