package xmldriver

import (
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/domain"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// parseDomainText builds an interned Domain from a <domain>/<var> body,
// keeping "v..w" ranges as single entities rather than expanding them
// (spec §4.1: domain construction is append-only and monotonicity is
// checked per-entity, so expanding to a flat value list first would lose
// the distinction the Builder needs to enforce).
func parseDomainText(table *domain.Table, text string, pos perr.Position) (*domain.Domain, error) {
	b := domain.NewBuilder()
	for _, tok := range strings.Fields(text) {
		if lo, hi, ok := strings.Cut(tok, ".."); ok {
			loV, err1 := strconv.ParseInt(lo, 10, 64)
			hiV, err2 := strconv.ParseInt(hi, 10, 64)
			if err1 != nil || err2 != nil {
				return nil, perr.NewDomainFormatError(pos, tok)
			}
			if err := b.AddInterval(pos, loV, hiV); err != nil {
				return nil, err
			}
			continue
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, perr.NewDomainFormatError(pos, tok)
		}
		if err := b.AddValue(pos, v); err != nil {
			return nil, err
		}
	}
	return b.Build(table)
}

// reportVariable fires the right Bank overload for dom: a range for a
// single-interval domain, an explicit value list otherwise (spec §8
// scenarios 1-2).
func reportVariable(bank interface {
	BuildVariableInteger(id string, min, max int64)
	BuildVariableIntegerValues(id string, values []int64)
}, id string, dom *domain.Domain) {
	if dom.IsInterval() {
		bank.BuildVariableInteger(id, dom.Min(), dom.Max())
		return
	}
	bank.BuildVariableIntegerValues(id, dom.Values())
}

// endVar finalises a <var id="x"> lo..hi </var> (or the longhand with a
// nested <domain> child) into a declared ir.Variable, reported to the
// bank in document order (spec §5 "Variable declarations are reported in
// source order").
func (d *Driver) endVar(f *frame, text string) error {
	id, ok := f.attrs.Get("id")
	if !ok {
		return perr.NewCompactSyntaxError(f.pos, "<var> is missing its id attribute")
	}
	body := text
	if child, ok := f.child("domain"); ok {
		body = child.text
	}
	dom, err := parseDomainText(d.domainTable, body, f.pos)
	if err != nil {
		return err
	}
	v := &ir.Variable{ID: id, Domain: dom, Classes: d.currentClasses(f.class())}
	d.vars[id] = v
	reportVariable(d.bank, id, dom)
	return nil
}

// endArray finalises an <array id="q" size="[3][4]"> element: a grid of
// cells sharing a base name, one or more domains assigned per-cell via
// either the array's own body text (one shared domain) or one or more
// <domain for="..."> children using the same bracket-slice syntax as a
// compact variable reference (spec §4.3, supplemented: XCSP3's real
// array schema allows several domains partitioning the grid by pattern,
// not named as a handler in spec.md §4.6's list but present in every
// XCSP3 instance with non-uniform array domains).
func (d *Driver) endArray(f *frame) error {
	id, ok := f.attrs.Get("id")
	if !ok {
		return perr.NewCompactSyntaxError(f.pos, "<array> is missing its id attribute")
	}
	sizeAttr, ok := f.attrs.Get("size")
	if !ok {
		return perr.NewCompactSyntaxError(f.pos, "<array> is missing its size attribute")
	}
	dims, err := parseArraySize(sizeAttr, f.pos)
	if err != nil {
		return err
	}

	total := 1
	for _, dsz := range dims {
		total *= dsz
	}
	arr := &ir.VarArray{ID: id, Dims: dims, Cells: make([]*ir.Variable, total), Classes: d.currentClasses(f.class())}
	classes := arr.Classes

	domainChildren := f.children["domain"]
	if len(domainChildren) == 0 {
		dom, err := parseDomainText(d.domainTable, f.text.String(), f.pos)
		if err != nil {
			return err
		}
		for i := 0; i < total; i++ {
			idx := unflatten(i, dims)
			name := ir.CellName(id, idx)
			v := &ir.Variable{ID: name, Domain: dom, Classes: classes}
			arr.Cells[i] = v
			d.vars[name] = v
			reportVariable(d.bank, name, dom)
		}
	} else {
		assigned := make([]bool, total)
		for _, dc := range domainChildren {
			forAttr, _ := dc.attrs.Get("for")
			dom, err := parseDomainText(d.domainTable, dc.text, f.pos)
			if err != nil {
				return err
			}
			refs, err := scan.ScanVarRefs("_"+forAttr, f.pos)
			if err != nil {
				return err
			}
			if len(refs) != 1 {
				return perr.NewCompactSyntaxError(f.pos, forAttr)
			}
			idxLists := make([][]int, len(dims))
			for i := range dims {
				if i < len(refs[0].Indices) {
					idxLists[i] = refs[0].Indices[i].Expand(dims[i])
				} else {
					idxLists[i] = (scan.IndexSpec{Kind: scan.IndexOpen}).Expand(dims[i])
				}
			}
			for _, idx := range cartesian(idxLists) {
				off := flatten(idx, dims)
				if assigned[off] {
					continue
				}
				assigned[off] = true
				name := ir.CellName(id, idx)
				v := &ir.Variable{ID: name, Domain: dom, Classes: classes}
				arr.Cells[off] = v
				d.vars[name] = v
				reportVariable(d.bank, name, dom)
			}
		}
	}

	d.arrays[id] = arr
	return nil
}

// parseArraySize parses a "[3][4]" size attribute into per-dimension
// sizes.
func parseArraySize(s string, pos perr.Position) ([]int, error) {
	var dims []int
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			return nil, perr.NewCompactSyntaxError(pos, s)
		}
		j := strings.IndexByte(s[i:], ']')
		if j < 0 {
			return nil, perr.NewCompactSyntaxError(pos, s)
		}
		n, err := strconv.Atoi(s[i+1 : i+j])
		if err != nil {
			return nil, perr.NewCompactSyntaxError(pos, s)
		}
		dims = append(dims, n)
		i += j + 1
	}
	if len(dims) == 0 {
		return nil, perr.NewCompactSyntaxError(pos, s)
	}
	return dims, nil
}

func unflatten(off int, dims []int) []int {
	idx := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		idx[i] = off % dims[i]
		off /= dims[i]
	}
	return idx
}

func flatten(idx []int, dims []int) int {
	off := 0
	for i, d := range idx {
		off = off*dims[i] + d
	}
	return off
}
