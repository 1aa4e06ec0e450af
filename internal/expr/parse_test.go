package expr

import (
	"testing"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

func mustParse(t *testing.T, s string) *Node {
	t.Helper()
	n, err := Parse(s, perr.Position{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", s, err)
	}
	return n
}

func TestParsePrimitives(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"5", "5"},
		{"-5", "-5"},
		{"x", "x"},
		{"add(x,1)", "add(x,1)"},
		{"le(add(x,1),y)", "le(add(x,1),y)"},
		{"not(eq(x,y))", "not(eq(x,y))"},
		{"set(1,2,3)", "set(1,2,3)"},
		{"in(x,set(1,2,3))", "in(x,set(1,2,3))"},
		{"if(eq(x,0),1,2)", "if(eq(x,0),1,2)"},
	}
	for _, tt := range tests {
		n := mustParse(t, tt.src)
		if got := n.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestParsePlaceholder(t *testing.T) {
	n := mustParse(t, "add(%1,%2)")
	if !n.Children[0].IsPlaceholder() || n.Children[0].PlaceholderIndex() != 1 {
		t.Fatalf("expected %%1 placeholder, got %+v", n.Children[0])
	}
	if !n.Children[1].IsPlaceholder() || n.Children[1].PlaceholderIndex() != 2 {
		t.Fatalf("expected %%2 placeholder, got %+v", n.Children[1])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"add(x)",        // below MinArity
		"sub(x,y,z)",    // above MaxArity
		"frobnicate(x)", // unknown operator
		"add(x,",        // unterminated
		"add(x,y))",     // trailing garbage
		"@",              // unexpected character
	}
	for _, src := range cases {
		if _, err := Parse(src, perr.Position{Line: 1, Column: 1}); err == nil {
			t.Errorf("Parse(%q) expected error, got none", src)
		} else if _, ok := err.(perr.ParseError); !ok {
			t.Errorf("Parse(%q) error %v is not a perr.ParseError", src, err)
		}
	}
}
