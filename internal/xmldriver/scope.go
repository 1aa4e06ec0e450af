package xmldriver

import (
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// resolveScope expands a <list>-shaped compact text body ("x y z",
// "x[] y[2..3]") into the concrete variables it denotes (spec §4.3
// "x[i..j] expands along one array dimension"). Undeclared identifiers
// fail with UnknownVariableError unless lenient is true, in which case a
// group/slide template placeholder ("%0", "%...") is silently skipped —
// the unfolder resolves those once the concrete argument vector is known
// (spec §4.5) and the template's own Scope is discarded by
// internal/unfold.WithScope.
func (d *Driver) resolveScope(text string, pos perr.Position, lenient bool) (ir.Scope, error) {
	refs, err := scan.ScanVarRefs(text, pos)
	if err != nil {
		return nil, err
	}
	var scope ir.Scope
	for _, ref := range refs {
		if strings.HasPrefix(ref.Base, "%") {
			if lenient {
				continue
			}
			return nil, perr.NewUnknownVariableError(pos, ref.Base)
		}
		if len(ref.Indices) == 0 {
			v, ok := d.vars[ref.Base]
			if !ok {
				if lenient {
					continue
				}
				return nil, perr.NewUnknownVariableError(pos, ref.Base)
			}
			scope = append(scope, v)
			continue
		}
		arr, ok := d.arrays[ref.Base]
		if !ok {
			if lenient {
				continue
			}
			return nil, perr.NewUnknownVariableError(pos, ref.Base)
		}
		if len(ref.Indices) != len(arr.Dims) {
			if lenient {
				continue
			}
			return nil, perr.NewCompactSyntaxError(pos, ref.Base)
		}
		idxLists := make([][]int, len(ref.Indices))
		for i, spec := range ref.Indices {
			idxLists[i] = spec.Expand(arr.Dims[i])
		}
		for _, idx := range cartesian(idxLists) {
			scope = append(scope, arr.At(idx...))
		}
	}
	return scope, nil
}

// cartesian returns the row-major cartesian product of dims, the index
// tuples a multi-dimensional slice expands to (spec §4.3 "multiple
// bracket groups multiply dimensions").
func cartesian(dims [][]int) [][]int {
	if len(dims) == 0 {
		return nil
	}
	out := [][]int{{}}
	for _, d := range dims {
		var next [][]int
		for _, prefix := range out {
			for _, v := range d {
				idx := make([]int, len(prefix)+1)
				copy(idx, prefix)
				idx[len(prefix)] = v
				next = append(next, idx)
			}
		}
		out = next
	}
	return out
}

// parseIntOrVar resolves a single operand token that is either a decimal
// integer or a declared variable's identifier, the shape <index>, <value>
// and scalar <size> bodies take.
func (d *Driver) parseIntOrVar(text string, pos perr.Position) (ir.Operand, error) {
	text = strings.TrimSpace(text)
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ir.Operand{Kind: ir.OperandConst, Const: v}, nil
	}
	if v, ok := d.vars[text]; ok {
		return ir.Operand{Kind: ir.OperandVar, Var: v}, nil
	}
	return ir.Operand{}, perr.NewUnknownVariableError(pos, text)
}

// parseOperandList resolves a whitespace-separated sequence of operands,
// each either an integer or a variable identifier (spec §4.6 "origins",
// "lengths", "heights", "ends" bodies, integer-or-variable per XCSP3's
// overload catalogue).
func (d *Driver) parseOperandList(text string, pos perr.Position) ([]ir.Operand, error) {
	fields := strings.Fields(text)
	out := make([]ir.Operand, 0, len(fields))
	for _, f := range fields {
		op, err := d.parseIntOrVar(f, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

func parseRank(attrs attrGetter) ir.Rank {
	v, ok := attrs.Get("rank")
	if !ok {
		return ir.RankAny
	}
	switch v {
	case "first":
		return ir.RankFirst
	case "last":
		return ir.RankLast
	}
	return ir.RankAny
}

func parseStartIndex(attrs attrGetter) int {
	v, ok := attrs.Get("startIndex")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// attrGetter is the subset of xmlevents.Attrs this package reads
// attributes through, kept narrow so helpers don't need the xmlevents
// import just for the type name.
type attrGetter interface {
	Get(name string) (string, bool)
}
