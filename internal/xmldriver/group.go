package xmldriver

import (
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/unfold"
)

// endGroup finalises a <group>: each buffered <args> child is one
// argument vector, substituted into the template and dispatched in
// document order.
func (d *Driver) endGroup(f *frame) error {
	if d.group == nil || d.group.tmpl == nil {
		return nil
	}
	tmpl := d.group.tmpl
	for _, ac := range f.children["args"] {
		tmpl.ArgVectors = append(tmpl.ArgVectors, parseArgVector(ac.text))
	}
	unfold.Group(d.group.id, tmpl, d.lookupVar, d.opts, d.bank)
	return nil
}

// endSlide finalises a <slide>: its template's argument vectors are
// consecutive windows of the slide's own base <list>.
func (d *Driver) endSlide(f *frame) error {
	if d.group == nil || d.group.tmpl == nil {
		return nil
	}
	tmpl := d.group.tmpl
	lc, ok := f.child("list")
	if !ok {
		return perr.NewCompactSyntaxError(f.pos, "<slide> is missing its base <list>")
	}
	base := parseArgVector(lc.text)

	arity := placeholderArity(tmpl)
	if arity <= 0 {
		arity = 2
	}
	offset := 1
	if v, ok := f.attrs.Get("offset"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	tmpl.ArgVectors = unfold.SlideWindows(base, arity, offset, d.group.circular)
	unfold.Group(d.group.id, tmpl, d.lookupVar, d.opts, d.bank)
	return nil
}

// endDecision resolves a <decision> scope and reports it to the bank.
func (d *Driver) endDecision(f *frame, text string) error {
	scope, err := d.resolveScope(text, f.pos, false)
	if err != nil {
		return err
	}
	d.bank.BuildAnnotationDecision(scope)
	return nil
}

// parseArgVector tokenises a group <args> body or a slide base <list>
// body into a vector of expression leaves: each whitespace-separated
// token is either a decimal constant or a variable reference.
func parseArgVector(text string) []*expr.Node {
	fields := strings.Fields(text)
	out := make([]*expr.Node, 0, len(fields))
	for _, tok := range fields {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			out = append(out, expr.Constant(n))
			continue
		}
		out = append(out, expr.Variable(tok))
	}
	return out
}

// placeholderArity scans an intension template for the highest "%k"
// placeholder index referenced, used to size a slide's sliding window
// when its template doesn't name an arity explicitly. Non-intension
// families return -1 since their scope was discarded during lenient
// template parsing; endSlide falls back to arity 2 in that case.
func placeholderArity(tmpl *ir.Template) int {
	if tmpl.Kind != ir.KindIntension {
		return -1
	}
	in := tmpl.Payload.(*ir.Intension)
	return maxPlaceholder(in.Tree) + 1
}

func maxPlaceholder(n *expr.Node) int {
	if n == nil {
		return -1
	}
	best := -1
	if n.IsPlaceholder() {
		best = n.PlaceholderIndex()
	}
	for _, c := range n.Children {
		if k := maxPlaceholder(c); k > best {
			best = k
		}
	}
	return best
}
