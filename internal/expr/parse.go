package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

// Parser performs a top-down recursive-descent parse of a prefix-notation
// expression string into a Node tree (spec §4.2.1). Identifiers that look
// like "%k" become parameter placeholders; bare integers become
// constants; everything else is a variable reference unless it is a
// known operator symbol followed by "(".
type Parser struct {
	toks []exprToken
	pos  int
	src  string
	base perr.Position
}

// NewParser returns a Parser over expression source s. base is the
// position of s's first character within the enclosing document, used to
// annotate errors.
func NewParser(s string, base perr.Position) (*Parser, error) {
	toks, err := scanTokens(s)
	if err != nil {
		se := err.(*scanError)
		return nil, perr.NewExpressionSyntaxError(offsetPos(base, se.pos), se.fragment)
	}
	return &Parser{toks: toks, src: s, base: base}, nil
}

func offsetPos(base perr.Position, offset int) perr.Position {
	return perr.Position{Line: base.Line, Column: base.Column + offset}
}

func (p *Parser) cur() exprToken  { return p.toks[p.pos] }
func (p *Parser) advance()        { p.pos++ }

// Parse parses a complete expression and requires the token stream to be
// exhausted afterwards.
func Parse(s string, base perr.Position) (*Node, error) {
	p, err := NewParser(s, base)
	if err != nil {
		return nil, err
	}
	return p.ParseExpression()
}

// ParseExpression parses a single expression from the current position.
func (p *Parser) ParseExpression() (*Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, p.cur().pos), p.remainder())
	}
	return node, nil
}

func (p *Parser) remainder() string {
	if p.cur().pos >= len(p.src) {
		return ""
	}
	return p.src[p.cur().pos:]
}

func (p *Parser) parsePrimary() (*Node, error) {
	t := p.cur()
	switch t.kind {
	case tokInt:
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, t.pos), t.text)
		}
		p.advance()
		return Constant(v), nil

	case tokIdent:
		name := t.text
		p.advance()
		if p.cur().kind == tokLParen {
			return p.parseCall(name, t.pos)
		}
		return Variable(name), nil

	default:
		return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, t.pos), p.remainder())
	}
}

func (p *Parser) parseCall(name string, startPos int) (*Node, error) {
	if strings.EqualFold(name, "set") {
		return p.parseSet(startPos)
	}

	op, ok := LookupOp(name)
	if !ok {
		return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, startPos), name)
	}

	if err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	var children []*Node
	if p.cur().kind != tokRParen {
		for {
			child, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	info := Info(op)
	if len(children) < info.MinArity || (info.MaxArity >= 0 && len(children) > info.MaxArity) {
		return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, startPos),
			fmt.Sprintf("%s expects %d..%d arguments, got %d", name, info.MinArity, info.MaxArity, len(children)))
	}
	return &Node{Kind: KindOp, Op: op, Children: children}, nil
}

func (p *Parser) parseSet(startPos int) (*Node, error) {
	if err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var children []*Node
	if p.cur().kind != tokRParen {
		for {
			t := p.cur()
			if t.kind != tokInt {
				return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, t.pos), t.text)
			}
			v, err := strconv.ParseInt(t.text, 10, 64)
			if err != nil {
				return nil, perr.NewExpressionSyntaxError(offsetPos(p.base, t.pos), t.text)
			}
			p.advance()
			children = append(children, Constant(v))
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return &Node{Kind: KindSet, Op: OpSet, Children: children}, nil
}

func (p *Parser) expect(k tokenKind) error {
	if p.cur().kind != k {
		return perr.NewExpressionSyntaxError(offsetPos(p.base, p.cur().pos), p.remainder())
	}
	p.advance()
	return nil
}
