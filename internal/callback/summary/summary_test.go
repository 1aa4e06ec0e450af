package summary_test

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/xcsp3go/xcsp3"
	"github.com/xcsp3go/xcsp3/internal/callback/summary"
)

const fixture = `<instance>
  <variables>
    <var id="x"> 0..9 </var>
    <var id="y"> 0..9 </var>
    <var id="z"> 0..9 </var>
  </variables>
  <constraints>
    <allDifferent> x y z </allDifferent>
    <intension> le(x,y) </intension>
  </constraints>
</instance>`

// TestJSONReflectsTallies drives Summary through a real parse and checks
// the rendered JSON with gjson, the same query library the teacher's
// dependency chain uses to inspect JSON fixtures.
func TestJSONReflectsTallies(t *testing.T) {
	s := summary.New()
	if err := xcsp3.Parse(strings.NewReader(fixture), s); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out, err := s.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if got := gjson.Get(out, "kind").String(); got != "CSP" {
		t.Errorf("kind = %q, want CSP", got)
	}
	if got := gjson.Get(out, "numVariables").Int(); got != 3 {
		t.Errorf("numVariables = %d, want 3", got)
	}
	if got := gjson.Get(out, "constraints.allDifferent").Int(); got != 1 {
		t.Errorf("constraints.allDifferent = %d, want 1", got)
	}
	if got := gjson.Get(out, "constraints.primitive").Int(); got != 1 {
		t.Errorf("constraints.primitive = %d, want 1 (le(x,y) recognised as a primitive)", got)
	}
	if gjson.Get(out, "constraints.intension").Exists() {
		t.Errorf("did not expect a generic intension tally once primitive recognition fired")
	}
}

// TestCSVListsFamiliesSorted exercises the plain-text sibling of JSON.
func TestCSVListsFamiliesSorted(t *testing.T) {
	s := summary.New()
	if err := xcsp3.Parse(strings.NewReader(fixture), s); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	csv := s.CSV()
	allDiffAt := strings.Index(csv, "allDifferent,1")
	primitiveAt := strings.Index(csv, "primitive,1")
	if allDiffAt < 0 || primitiveAt < 0 {
		t.Fatalf("missing expected rows in CSV:\n%s", csv)
	}
	if allDiffAt > primitiveAt {
		t.Errorf("expected families sorted alphabetically, got:\n%s", csv)
	}
}
