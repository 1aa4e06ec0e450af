package printer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/xcsp3go/xcsp3"
	"github.com/xcsp3go/xcsp3/internal/callback/printer"
)

const printerFixture = `<instance>
  <variables>
    <var id="x"> 0..3 </var>
    <array id="t" size="[2]">
      <domain> 0..1 </domain>
    </array>
  </variables>
  <constraints>
    <allDifferent> x t[0] t[1] </allDifferent>
  </constraints>
</instance>`

// TestPrintStreamMatchesSnapshot renders a small instance end to end and
// checks it against a recorded snapshot, the teacher's go-snaps fixture
// pattern (internal/interp/fixture_test.go's snaps.MatchSnapshot call).
func TestPrintStreamMatchesSnapshot(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	if err := xcsp3.Parse(strings.NewReader(printerFixture), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	snaps.MatchSnapshot(t, "print_stream", buf.String())
}

// TestCompactStyleIsSelectable confirms setting Style doesn't break
// rendering; the compact style still reports every declaration.
func TestCompactStyleIsSelectable(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.Style = printer.StyleCompact
	if err := xcsp3.Parse(strings.NewReader(printerFixture), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(buf.String(), "allDifferent") {
		t.Errorf("expected the allDifferent constraint to still be rendered, got:\n%s", buf.String())
	}
}
