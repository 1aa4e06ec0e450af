// Package xmldriver implements the tag-handler stack state machine that
// turns xmlevents callbacks into finalised internal/ir constraints
// dispatched through internal/dispatch (spec §4.6 "XML Driver").
package xmldriver

import (
	"strings"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/domain"
	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
	"github.com/xcsp3go/xcsp3/internal/xmlevents"
)

// frame is one live tag on the handler stack: its own accumulated text,
// attributes, and the finalised bodies of any child tags it cares about,
// keyed by child tag name (spec §4.6 "a stack of tag actions").
type frame struct {
	tag   string
	pos   perr.Position
	attrs xmlevents.Attrs
	text  strings.Builder

	children map[string][]childResult
}

type childResult struct {
	text  string
	attrs xmlevents.Attrs
}

func (f *frame) addChild(tag, text string, attrs xmlevents.Attrs) {
	if f.children == nil {
		f.children = make(map[string][]childResult)
	}
	f.children[tag] = append(f.children[tag], childResult{text, attrs})
}

func (f *frame) child(tag string) (childResult, bool) {
	cs := f.children[tag]
	if len(cs) == 0 {
		return childResult{}, false
	}
	return cs[0], true
}

func (f *frame) class() []string {
	if v, ok := f.attrs.Get("class"); ok {
		return strings.Fields(v)
	}
	return nil
}

// Driver is the XCSP3 tag-handler state machine. One Driver is good for
// exactly one parse (spec §5 "each parse owns one driver").
type Driver struct {
	opts callback.ParserOptions
	bank callback.Bank

	stack       []*frame
	classStack  [][]string
	domainTable *domain.Table
	vars        map[string]*ir.Variable
	arrays      map[string]*ir.VarArray

	group *groupState
}

type groupState struct {
	id       string
	isSlide  bool
	circular bool
	tmpl     *ir.Template
}

// New returns a Driver that dispatches finalised constraints to bank
// according to opts.
func New(opts callback.ParserOptions, bank callback.Bank) *Driver {
	return &Driver{
		opts:        opts,
		bank:        bank,
		domainTable: domain.NewTable(),
		vars:        make(map[string]*ir.Variable),
		arrays:      make(map[string]*ir.VarArray),
	}
}

func (d *Driver) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *Driver) parentTag() string {
	if len(d.stack) < 2 {
		return ""
	}
	return d.stack[len(d.stack)-2].tag
}

// plainChildTags are structural sub-elements whose only job is to carry
// text/attributes up to their owning constraint tag; the driver never
// pushes handler-specific logic for them beyond buffering.
var plainChildTags = map[string]bool{
	"list": true, "values": true, "value": true, "condition": true,
	"index": true, "matrix": true, "start": true, "final": true,
	"transitions": true, "patterns": true, "origins": true, "lengths": true,
	"widths": true, "heights": true, "ends": true, "except": true,
	"operator": true, "conflicts": true, "supports": true, "coeffs": true,
	"size": true, "decision": true, "args": true, "occurs": true,
}

// StartElement implements xmlevents.Handler.
func (d *Driver) StartElement(tag string, attrs xmlevents.Attrs, pos perr.Position) error {
	parent := ""
	if f := d.top(); f != nil {
		parent = f.tag
	}
	if err := d.checkParent(tag, parent, pos); err != nil {
		return err
	}

	switch tag {
	case "instance":
		kind := callback.CSP
		if t, _ := attrs.Get("type"); t == "COP" {
			kind = callback.COP
		}
		d.bank.BeginInstance(kind)
	case "variables":
		d.bank.BeginVariables()
	case "array":
		d.bank.BeginVariableArray(mustAttr(attrs, "id"))
	case "constraints":
		d.bank.BeginConstraints()
	case "block":
		classes := strings.Fields(attrValue(attrs, "class"))
		d.classStack = append(d.classStack, classes)
		d.bank.BeginBlock(classes)
	case "group":
		d.group = &groupState{id: mustAttr(attrs, "id")}
		d.bank.BeginGroup(d.group.id)
	case "slide":
		d.group = &groupState{id: mustAttr(attrs, "id"), isSlide: true, circular: attrValue(attrs, "circular") == "true"}
		d.bank.BeginSlide(d.group.id, d.group.circular)
	case "objectives":
		d.bank.BeginObjectives()
	case "annotations":
		d.bank.BeginAnnotations()
	}

	d.stack = append(d.stack, &frame{tag: tag, pos: pos, attrs: attrs})
	return nil
}

// Characters implements xmlevents.Handler.
func (d *Driver) Characters(chunk string, pos perr.Position) error {
	f := d.top()
	if f == nil {
		return nil
	}
	if strings.TrimSpace(chunk) == "" {
		f.text.WriteString(chunk)
		return nil
	}
	if !tagAllowsText[f.tag] {
		return perr.NewUnexpectedTextError(pos, f.tag)
	}
	f.text.WriteString(chunk)
	return nil
}

// tagAllowsText marks the tags whose body is meaningful character data
// rather than purely structural (spec §4.6 "meaningful text under a tag
// that forbids it raises UnexpectedTextError").
var tagAllowsText = map[string]bool{
	"var": true, "domain": true, "list": true, "values": true, "value": true,
	"condition": true, "index": true, "matrix": true, "start": true,
	"final": true, "transitions": true, "patterns": true, "origins": true,
	"lengths": true, "widths": true, "heights": true, "ends": true,
	"except": true, "operator": true, "conflicts": true, "supports": true,
	"coeffs": true, "size": true, "decision": true, "args": true, "occurs": true,
	"extension": true, "intension": true, "regular": true, "mdd": true,
	"allDifferent": true, "allEqual": true, "ordered": true, "lex": true,
	"sum": true, "count": true, "nValues": true, "cardinality": true,
	"minimum": true, "maximum": true, "element": true, "channel": true,
	"stretch": true, "noOverlap": true, "cumulative": true,
	"instantiation": true, "clause": true, "circuit": true,
	"minimize": true, "maximize": true,
}

// EndElement implements xmlevents.Handler.
func (d *Driver) EndElement(tag string, pos perr.Position) error {
	f := d.top()
	d.stack = d.stack[:len(d.stack)-1]
	text := f.text.String()

	if parent := d.top(); parent != nil && plainChildTags[tag] {
		parent.addChild(tag, text, f.attrs)
	}

	var err error
	switch tag {
	case "var":
		err = d.endVar(f, text)
	case "domain":
		// buffered by parent <var>/<array>'s child map; nothing to do here
		// beyond the addChild above, already handled since "domain" isn't
		// in plainChildTags. Re-route explicitly.
		if parent := d.top(); parent != nil {
			parent.addChild("domain", text, f.attrs)
		}
	case "array":
		err = d.endArray(f)
		d.bank.EndVariableArray()
	case "variables":
		d.bank.EndVariables()
	case "constraints":
		d.bank.EndConstraints()
	case "block":
		d.classStack = d.classStack[:len(d.classStack)-1]
		d.bank.EndBlock()
	case "group":
		err = d.endGroup(f)
		d.bank.EndGroup()
		d.group = nil
	case "slide":
		err = d.endSlide(f)
		d.bank.EndSlide()
		d.group = nil
	case "objectives":
		d.bank.EndObjectives()
	case "annotations":
		d.bank.EndAnnotations()
	case "decision":
		err = d.endDecision(f, text)
	case "instance":
		d.bank.EndInstance()

	case "minimize":
		err = d.endObjective(f, text, true)
	case "maximize":
		err = d.endObjective(f, text, false)

	case "extension", "intension", "regular", "mdd", "allDifferent",
		"allEqual", "ordered", "lex", "sum", "count", "nValues",
		"cardinality", "minimum", "maximum", "element", "channel",
		"stretch", "noOverlap", "cumulative", "instantiation", "clause",
		"circuit":
		err = d.endConstraint(tag, f, text)
	}
	return err
}

func mustAttr(a xmlevents.Attrs, name string) string {
	v, _ := a.Get(name)
	return v
}

func attrValue(a xmlevents.Attrs, name string) string {
	v, _ := a.Get(name)
	return v
}

func (d *Driver) currentClasses(ownClasses []string) []string {
	var out []string
	for _, c := range d.classStack {
		out = append(out, c...)
	}
	return append(out, ownClasses...)
}

func (d *Driver) lookupVar(name string) (*ir.Variable, bool) {
	v, ok := d.vars[name]
	return v, ok
}
