// Package unfold implements the group/slide meta-constraint unfolder
// (spec §4.5): deep-cloning a template constraint once per argument
// vector, substituting placeholders, and re-dispatching each
// instantiation through internal/dispatch.
package unfold

import (
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/dispatch"
	"github.com/xcsp3go/xcsp3/internal/expr"
	"github.com/xcsp3go/xcsp3/internal/ir"
)

// Substitute clones tree and replaces every placeholder leaf "%k" with
// args[k] (spec §4.5 step 2). Non-placeholder nodes are cloned
// unchanged; "%..." placeholders are left as-is (they stand for the
// whole remaining tail, not a single argument).
func Substitute(tree *expr.Node, args []*expr.Node) *expr.Node {
	if tree == nil {
		return nil
	}
	if tree.IsPlaceholder() {
		if k := tree.PlaceholderIndex(); k >= 0 && k < len(args) {
			return args[k].Clone()
		}
		return tree.Clone()
	}
	clone := *tree
	if len(tree.Children) > 0 {
		clone.Children = make([]*expr.Node, len(tree.Children))
		for i, c := range tree.Children {
			clone.Children[i] = Substitute(c, args)
		}
	}
	return &clone
}

// SubstituteText rewrites every "%k" occurrence in text with the
// printable form of args[k], used for the condition-string and
// intension-string placeholder forms (spec §4.5 "Placeholders within
// condition strings").
func SubstituteText(text string, args []*expr.Node) string {
	if text == "" {
		return text
	}
	var sb strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '%' {
			j := i + 1
			for j < len(text) && text[j] >= '0' && text[j] <= '9' {
				j++
			}
			if j > i+1 {
				k, _ := strconv.Atoi(text[i+1 : j])
				if k < len(args) {
					sb.WriteString(args[k].String())
					i = j
					continue
				}
			}
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

// Resolver turns an expression node standing for one argument-vector
// slot into the concrete variable it names, or ok=false when the slot
// is not a plain variable reference (e.g. a literal constant argument).
type Resolver func(name string) (*ir.Variable, bool)

// ResolveScope turns an argument vector into the ir.Scope visible to
// non-intension constraint families, where the whole vector stands in
// for the instantiation's variable list.
func ResolveScope(args []*expr.Node, resolve Resolver) ir.Scope {
	scope := make(ir.Scope, 0, len(args))
	for _, a := range args {
		if a.Kind != expr.KindVariable {
			continue
		}
		if v, ok := resolve(a.Name); ok {
			scope = append(scope, v)
		}
	}
	return scope
}

// WithScope returns a shallow copy of payload with its embedded Base's
// Scope replaced by scope, covering every constraint family whose
// group/slide template varies only its variable list (spec §4.5: "For
// each operand that is a placeholder %k, substitute args[k]" — for
// these families every operand is scope-shaped). Intension is handled
// separately by the caller since its template varies a Tree, not Scope.
func WithScope(payload any, scope ir.Scope) any {
	switch c := payload.(type) {
	case *ir.Extension:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Regular:
		out := *c
		out.Scope = scope
		return &out
	case *ir.MDD:
		out := *c
		out.Scope = scope
		return &out
	case *ir.AllDifferent:
		out := *c
		out.Scope = scope
		return &out
	case *ir.AllEqual:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Ordered:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Lex:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Sum:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Count:
		out := *c
		out.Scope = scope
		return &out
	case *ir.NValues:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Cardinality:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Minimum:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Maximum:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Element:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Channel:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Stretch:
		out := *c
		out.Scope = scope
		return &out
	case *ir.NoOverlap:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Cumulative:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Instantiation:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Clause:
		out := *c
		out.Scope = scope
		return &out
	case *ir.Circuit:
		out := *c
		out.Scope = scope
		return &out
	}
	return payload
}

// ArgumentsAware is implemented by a callback.Bank that wants to inspect
// the current instantiation's raw argument vector before the
// corresponding constraint callback fires (spec §4.5 "arguments()").
type ArgumentsAware interface {
	SetArguments(args []*expr.Node)
}

// Group substitutes templateID-prefixed IDs ("g1#0", "g1#1", ...) and
// dispatches one constraint per argument vector in document order (spec
// §5 "For a group or slide, the inner-constraint callbacks fire in
// argument-vector order").
func Group(templateID string, tmpl *ir.Template, resolve Resolver, opts callback.ParserOptions, bank callback.Bank) {
	for i, args := range tmpl.ArgVectors {
		instID := templateID + "#" + strconv.Itoa(i)
		if aware, ok := bank.(ArgumentsAware); ok {
			aware.SetArguments(args)
		}

		if tmpl.Kind == ir.KindIntension {
			orig := tmpl.Payload.(*ir.Intension)
			scope := ResolveScope(args, resolve)
			if len(scope) == 0 {
				scope = orig.Scope
			}
			inst := &ir.Intension{
				Base:     ir.Base{ID: instID, Classes: orig.Classes, Scope: scope},
				Tree:     Substitute(orig.Tree, args),
				AsString: SubstituteText(orig.AsString, args),
			}
			dispatch.Dispatch(instID, ir.KindIntension, inst, opts, bank)
			continue
		}

		scope := ResolveScope(args, resolve)
		inst := WithScope(tmpl.Payload, scope)
		dispatch.Dispatch(instID, tmpl.Kind, inst, opts, bank)
	}
}

// SlideWindows derives a slide's argument vectors from its base list
// (spec §4.5 "Slide is a group whose argument vectors are derived").
// Non-circular slides stop once a window would run past the list;
// circular slides wrap modulo len(base) and always produce exactly
// len(base) windows (spec §8 "Slide circular: exactly |list|
// instantiations").
func SlideWindows(base []*expr.Node, arity, offset int, circular bool) [][]*expr.Node {
	n := len(base)
	if n == 0 || arity <= 0 || offset <= 0 {
		return nil
	}
	var windows [][]*expr.Node
	if circular {
		for i := 0; i < n; i++ {
			w := make([]*expr.Node, arity)
			for k := 0; k < arity; k++ {
				w[k] = base[(i*offset+k)%n]
			}
			windows = append(windows, w)
		}
		return windows
	}
	for start := 0; start+arity <= n; start += offset {
		w := make([]*expr.Node, arity)
		copy(w, base[start:start+arity])
		windows = append(windows, w)
	}
	return windows
}
