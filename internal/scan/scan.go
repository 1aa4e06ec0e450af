// Package scan implements the compact-notation scanner: the character-class
// driven expander for XCSP3's textual shortcuts (spec §4.3) — integer
// ranges ("v..w"), array slices ("x[i..j]"), tuple literals, and the
// extension wildcard "*".
package scan

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokStar
	tokDotDot
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokComma
	tokIdent
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scanner tokenises compact-notation text by character class, the way
// internal/lexer.Lexer dispatches on l.ch, but over the small fixed
// alphabet XCSP3 compact notation needs.
type scanner struct {
	src  string
	toks []token
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	i, n := 0, len(s)
	for i < n {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '*':
			toks = append(toks, token{tokStar, "*", i})
			i++
		case c == '[':
			toks = append(toks, token{tokLBracket, "[", i})
			i++
		case c == ']':
			toks = append(toks, token{tokRBracket, "]", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '.':
			if i+1 < n && s[i+1] == '.' {
				toks = append(toks, token{tokDotDot, "..", i})
				i += 2
				continue
			}
			return nil, &scanFail{i, s[i:]}
		case c == '-' || (c >= '0' && c <= '9'):
			start := i
			i++
			for i < n && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			toks = append(toks, token{tokInt, s[start:i], start})
		case unicode.IsLetter(rune(c)) || c == '_':
			start := i
			i++
			for i < n && (unicode.IsLetter(rune(s[i])) || unicode.IsDigit(rune(s[i])) || s[i] == '_' || s[i] == '.') {
				i++
			}
			toks = append(toks, token{tokIdent, s[start:i], start})
		case c == '%':
			// Group/slide placeholder ("%0", "%1", ... or "%..." for the
			// rest), spec §3 "Parameter placeholder". Scanned as a single
			// identifier token so ScanVarRefs can carry it through a
			// template's <list> the same way a real variable name would.
			start := i
			i++
			if i+2 < n && s[i] == '.' && s[i+1] == '.' && s[i+2] == '.' {
				i += 3
			} else {
				for i < n && s[i] >= '0' && s[i] <= '9' {
					i++
				}
			}
			toks = append(toks, token{tokIdent, s[start:i], start})
		default:
			return nil, &scanFail{i, s[i:]}
		}
	}
	toks = append(toks, token{tokEOF, "", n})
	return toks, nil
}

type scanFail struct {
	pos      int
	fragment string
}

func (e *scanFail) Error() string { return "unexpected character near " + e.fragment }

func newScanner(s string) (*scanner, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	return &scanner{src: s, toks: toks}, nil
}

func (sc *scanner) cur() token  { return sc.toks[sc.pos] }
func (sc *scanner) advance()    { sc.pos++ }
func (sc *scanner) atEOF() bool { return sc.cur().kind == tokEOF }

func offset(base perr.Position, i int) perr.Position {
	return perr.Position{Line: base.Line, Column: base.Column + i}
}

func fail(base perr.Position, s string, at int) error {
	frag := s
	if at < len(s) {
		frag = s[at:]
	}
	if len(frag) > 16 {
		frag = frag[:16]
	}
	return perr.NewCompactSyntaxError(offset(base, at), strings.TrimSpace(frag))
}

// ScanValues expands a whitespace-separated sequence of integers and
// "v..w" ranges into a flat, ascending list of values (spec §4.3, used
// for <domain> and <values> bodies).
func ScanValues(s string, base perr.Position) ([]int64, error) {
	sc, err := newScanner(s)
	if err != nil {
		se := err.(*scanFail)
		return nil, fail(base, s, se.pos)
	}
	var out []int64
	for !sc.atEOF() {
		t := sc.cur()
		if t.kind != tokInt {
			return nil, fail(base, s, t.pos)
		}
		lo, _ := strconv.ParseInt(t.text, 10, 64)
		sc.advance()
		if sc.cur().kind == tokDotDot {
			sc.advance()
			ht := sc.cur()
			if ht.kind != tokInt {
				return nil, fail(base, s, ht.pos)
			}
			hi, _ := strconv.ParseInt(ht.text, 10, 64)
			sc.advance()
			if lo > hi {
				return nil, fail(base, s, t.pos)
			}
			for v := lo; v <= hi; v++ {
				out = append(out, v)
			}
		} else {
			out = append(out, lo)
		}
	}
	return out, nil
}

// ScanTuples expands a whitespace-separated sequence of tuples into a
// list of fixed-width tuples. Each tuple is either parenthesised
// ("(1,2,3)") or, when the scope has a single member, a bare scalar.
// "*" becomes ir.STAR and sets hasStar. Scalars outside parentheses are
// only valid when arity == 1.
func ScanTuples(s string, base perr.Position, arity int) (tuples [][]int64, hasStar bool, err error) {
	sc, e := newScanner(s)
	if e != nil {
		se := e.(*scanFail)
		return nil, false, fail(base, s, se.pos)
	}
	for !sc.atEOF() {
		var tuple []int64
		if sc.cur().kind == tokLParen {
			sc.advance()
			for {
				v, star, e := scanCell(sc, base, s)
				if e != nil {
					return nil, false, e
				}
				tuple = append(tuple, v)
				hasStar = hasStar || star
				if sc.cur().kind == tokComma {
					sc.advance()
					continue
				}
				break
			}
			if sc.cur().kind != tokRParen {
				return nil, false, fail(base, s, sc.cur().pos)
			}
			sc.advance()
		} else {
			if arity != 1 {
				return nil, false, fail(base, s, sc.cur().pos)
			}
			v, star, e := scanCell(sc, base, s)
			if e != nil {
				return nil, false, e
			}
			tuple = []int64{v}
			hasStar = hasStar || star
		}
		if len(tuple) != arity {
			return nil, false, fail(base, s, sc.cur().pos)
		}
		tuples = append(tuples, tuple)
	}
	return tuples, hasStar, nil
}

func scanCell(sc *scanner, base perr.Position, src string) (int64, bool, error) {
	t := sc.cur()
	switch t.kind {
	case tokStar:
		sc.advance()
		return ir.STAR, true, nil
	case tokInt:
		v, _ := strconv.ParseInt(t.text, 10, 64)
		sc.advance()
		return v, false, nil
	default:
		return 0, false, fail(base, src, t.pos)
	}
}

// IndexKind tags which alternative of IndexSpec is populated.
type IndexKind int

const (
	IndexFixed IndexKind = iota
	IndexRange
	IndexOpen // the full extent along this dimension ("x[]")
)

// IndexSpec is one bracket group of an array slice reference
// ("x[i..j]", "x[]", "x[..5]", "x[3..]").
type IndexSpec struct {
	Kind   IndexKind
	Lo, Hi int // only meaningful for IndexFixed/IndexRange; Hi is inclusive.
	HasLo  bool
	HasHi  bool
}

// VarRef is a parsed array-slice reference: a base identifier plus zero
// or more bracket groups. A plain variable name has no Indices.
type VarRef struct {
	Base    string
	Indices []IndexSpec
}

// ScanVarRefs parses a whitespace-separated sequence of identifiers,
// each optionally followed by one or more "[...]" slice groups (spec
// §4.3 "x[i..j] expands along one array dimension").
func ScanVarRefs(s string, base perr.Position) ([]VarRef, error) {
	sc, err := newScanner(s)
	if err != nil {
		se := err.(*scanFail)
		return nil, fail(base, s, se.pos)
	}
	var out []VarRef
	for !sc.atEOF() {
		t := sc.cur()
		if t.kind != tokIdent {
			return nil, fail(base, s, t.pos)
		}
		ref := VarRef{Base: t.text}
		sc.advance()
		for sc.cur().kind == tokLBracket {
			sc.advance()
			spec, e := scanIndexSpec(sc, base, s)
			if e != nil {
				return nil, e
			}
			if sc.cur().kind != tokRBracket {
				return nil, fail(base, s, sc.cur().pos)
			}
			sc.advance()
			ref.Indices = append(ref.Indices, spec)
		}
		out = append(out, ref)
	}
	return out, nil
}

func scanIndexSpec(sc *scanner, base perr.Position, src string) (IndexSpec, error) {
	if sc.cur().kind == tokRBracket {
		return IndexSpec{Kind: IndexOpen}, nil
	}
	if sc.cur().kind == tokDotDot {
		sc.advance()
		ht := sc.cur()
		if ht.kind != tokInt {
			return IndexSpec{}, fail(base, src, ht.pos)
		}
		hi, _ := strconv.Atoi(ht.text)
		sc.advance()
		return IndexSpec{Kind: IndexRange, Hi: hi, HasHi: true}, nil
	}
	if sc.cur().kind != tokInt {
		return IndexSpec{}, fail(base, src, sc.cur().pos)
	}
	lo, _ := strconv.Atoi(sc.cur().text)
	sc.advance()
	if sc.cur().kind == tokDotDot {
		sc.advance()
		if sc.cur().kind == tokRBracket {
			return IndexSpec{Kind: IndexRange, Lo: lo, HasLo: true}, nil
		}
		if sc.cur().kind != tokInt {
			return IndexSpec{}, fail(base, src, sc.cur().pos)
		}
		hi, _ := strconv.Atoi(sc.cur().text)
		sc.advance()
		return IndexSpec{Kind: IndexRange, Lo: lo, Hi: hi, HasLo: true, HasHi: true}, nil
	}
	return IndexSpec{Kind: IndexFixed, Lo: lo, HasLo: true}, nil
}

// Expand resolves a single IndexSpec against a dimension's size, returning
// the concrete list of indices it denotes.
func (s IndexSpec) Expand(dimSize int) []int {
	switch s.Kind {
	case IndexFixed:
		return []int{s.Lo}
	case IndexOpen:
		out := make([]int, dimSize)
		for i := range out {
			out[i] = i
		}
		return out
	case IndexRange:
		lo, hi := 0, dimSize-1
		if s.HasLo {
			lo = s.Lo
		}
		if s.HasHi {
			hi = s.Hi
		}
		out := make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
		return out
	}
	return nil
}
