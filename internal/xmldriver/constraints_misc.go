package xmldriver

import (
	"strings"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/scan"
)

// parseInstantiation builds an Instantiation from <list> and parallel
// <values>.
func (d *Driver) parseInstantiation(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	var values []int64
	if vc, ok := f.child("values"); ok {
		values, err = scan.ScanValues(vc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	return ir.KindInstantiation, &ir.Instantiation{Base: base, Values: values}, nil
}

// parseClause builds a Clause from a literal list where a leading "-"
// negates the following variable's literal (spec §4.6 "clause"; not a
// compact-notation shape covered by internal/scan, so parsed directly).
func (d *Driver) parseClause(f *frame, text string, base ir.Base, lenient bool) (ir.Kind, any, error) {
	body := text
	if c, ok := f.child("list"); ok {
		body = c.text
	}
	c := &ir.Clause{Base: base}
	for _, tok := range strings.Fields(body) {
		neg := strings.HasPrefix(tok, "-")
		name := strings.TrimPrefix(tok, "-")
		v, ok := d.vars[name]
		if !ok {
			if lenient || strings.HasPrefix(name, "%") {
				continue
			}
			return 0, nil, perr.NewUnknownVariableError(f.pos, name)
		}
		if neg {
			c.Negative = append(c.Negative, v)
		} else {
			c.Positive = append(c.Positive, v)
		}
		c.Scope = append(c.Scope, v)
	}
	return ir.KindClause, c, nil
}

// splitParenGroups splits a run of "(...)(...)..." into the text inside
// each matching pair, used by transition lists whose cells are
// identifiers rather than the integers internal/scan.ScanTuples expects.
func splitParenGroups(s string, pos perr.Position) ([]string, error) {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] != '(' {
			return nil, perr.NewCompactSyntaxError(pos, s[i:])
		}
		j := strings.IndexByte(s[i:], ')')
		if j < 0 {
			return nil, perr.NewCompactSyntaxError(pos, s[i:])
		}
		out = append(out, s[i+1:i+j])
		i += j + 1
	}
	return out, nil
}

// parseTransitions parses "(state,value,state)" triples shared by
// <regular> and <mdd>.
func parseTransitions(text string, pos perr.Position) ([]ir.Transition, error) {
	groups, err := splitParenGroups(text, pos)
	if err != nil {
		return nil, err
	}
	out := make([]ir.Transition, 0, len(groups))
	for _, g := range groups {
		parts := strings.Split(g, ",")
		if len(parts) != 3 {
			return nil, perr.NewCompactSyntaxError(pos, g)
		}
		val, err := scan.ScanValues(strings.TrimSpace(parts[1]), pos)
		if err != nil || len(val) != 1 {
			return nil, perr.NewCompactSyntaxError(pos, parts[1])
		}
		out = append(out, ir.Transition{
			From:  strings.TrimSpace(parts[0]),
			Value: val[0],
			To:    strings.TrimSpace(parts[2]),
		})
	}
	return out, nil
}

// parseRegular builds a Regular from <list>, <transitions>, <start>, and
// <final>.
func (d *Driver) parseRegular(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.Regular{Base: base}
	if tc, ok := f.child("transitions"); ok {
		c.Transitions, err = parseTransitions(tc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	if sc, ok := f.child("start"); ok {
		c.Start = strings.TrimSpace(sc.text)
	}
	if fc, ok := f.child("final"); ok {
		c.Final = strings.Fields(fc.text)
	}
	var states []string
	seen := map[string]bool{}
	for _, t := range c.Transitions {
		for _, s := range []string{t.From, t.To} {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}
	c.States = states
	return ir.KindRegular, c, nil
}

// parseMDD builds an MDD from <list> and <transitions>.
func (d *Driver) parseMDD(f *frame, base ir.Base, lenient bool) (ir.Kind, any, error) {
	scope, err := d.scopeFromList(f, "", lenient)
	if err != nil {
		return 0, nil, err
	}
	base.Scope = scope
	c := &ir.MDD{Base: base}
	if tc, ok := f.child("transitions"); ok {
		c.Transitions, err = parseTransitions(tc.text, f.pos)
		if err != nil {
			return 0, nil, err
		}
	}
	return ir.KindMDD, c, nil
}
