package xmlevents

import (
	"strings"
	"testing"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

type recorder struct {
	events []string
	lines  []int
}

func (r *recorder) StartElement(tag string, attrs Attrs, pos perr.Position) error {
	r.events = append(r.events, "start:"+tag)
	r.lines = append(r.lines, pos.Line)
	return nil
}
func (r *recorder) EndElement(tag string, pos perr.Position) error {
	r.events = append(r.events, "end:"+tag)
	r.lines = append(r.lines, pos.Line)
	return nil
}
func (r *recorder) Characters(chunk string, pos perr.Position) error {
	if strings.TrimSpace(chunk) == "" {
		return nil
	}
	r.events = append(r.events, "text:"+chunk)
	r.lines = append(r.lines, pos.Line)
	return nil
}

func TestRunEmitsStartEndAndTextInOrder(t *testing.T) {
	doc := `<instance>
  <variables>
    <var id="x">0 1</var>
  </variables>
</instance>`

	r := &recorder{}
	if err := Run(strings.NewReader(doc), r); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{
		"start:instance",
		"start:variables",
		"start:var",
		"text:0 1",
		"end:var",
		"end:variables",
		"end:instance",
	}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, r.events[i], want[i])
		}
	}
}

func TestRunTracksAttributes(t *testing.T) {
	doc := `<var id="x" type="int">1 2 3</var>`
	var gotID string
	h := &attrCapture{fn: func(tag string, attrs Attrs) {
		if tag == "var" {
			gotID, _ = attrs.Get("id")
		}
	}}
	if err := Run(strings.NewReader(doc), h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotID != "x" {
		t.Fatalf("id attribute = %q, want x", gotID)
	}
}

func TestRunReportsIncreasingLineNumbers(t *testing.T) {
	doc := "<a>\n<b>\n<c>text</c>\n</b>\n</a>"
	r := &recorder{}
	if err := Run(strings.NewReader(doc), r); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 1; i < len(r.lines); i++ {
		if r.lines[i] < r.lines[i-1] {
			t.Fatalf("line numbers not monotonic: %v", r.lines)
		}
	}
}

type attrCapture struct {
	fn func(tag string, attrs Attrs)
}

func (a *attrCapture) StartElement(tag string, attrs Attrs, pos perr.Position) error {
	a.fn(tag, attrs)
	return nil
}
func (a *attrCapture) EndElement(tag string, pos perr.Position) error    { return nil }
func (a *attrCapture) Characters(chunk string, pos perr.Position) error { return nil }
