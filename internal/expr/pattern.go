package expr

// Captures holds the values bound by a successful Match: the constants,
// variable names and operators that a pattern's wildcards stood for.
type Captures struct {
	Consts map[string]int64
	Names  map[string]string
	Ops    map[string]Op
}

func newCaptures() *Captures {
	return &Captures{
		Consts: make(map[string]int64),
		Names:  make(map[string]string),
		Ops:    make(map[string]Op),
	}
}

// WildcardConstant builds a pattern leaf that matches any constant node,
// binding its value under label.
func WildcardConstant(label string) *Node {
	return &Node{Kind: KindWildcard, Name: label, WildcardConstant: true}
}

// WildcardVariable builds a pattern leaf that matches any variable node,
// binding its name under label.
func WildcardVariable(label string) *Node {
	return &Node{Kind: KindWildcard, Name: label, WildcardVariable: true}
}

// WildcardOperator builds a pattern node that matches an operator node of
// any operator (the "FAKEOP" wildcard, spec §4.2.4/§9) provided its
// children match the given sub-patterns, binding the matched operator
// under label.
func WildcardOperator(label string, children ...*Node) *Node {
	return &Node{Kind: KindWildcard, Name: label, WildcardOperator: true, Children: children}
}

// Match attempts to match pattern against n, returning the bound
// captures on success. n is expected to already be in canonical form;
// patterns are written against that canonical shape.
func Match(pattern, n *Node) (*Captures, bool) {
	caps := newCaptures()
	if matchNode(pattern, n, caps) {
		return caps, true
	}
	return nil, false
}

// MatchFirst tries each pattern in order and returns the index and
// captures of the first match (spec §4.4 primitive recognition table:
// patterns are tried in a fixed priority order, first match wins).
func MatchFirst(patterns []*Node, n *Node) (int, *Captures, bool) {
	for i, p := range patterns {
		if caps, ok := Match(p, n); ok {
			return i, caps, true
		}
	}
	return -1, nil, false
}

func matchNode(p, n *Node, caps *Captures) bool {
	if p.Kind == KindWildcard {
		switch {
		case p.WildcardConstant:
			if n.Kind != KindConstant {
				return false
			}
			caps.Consts[p.Name] = n.Const
			return true
		case p.WildcardVariable:
			if n.Kind != KindVariable {
				return false
			}
			caps.Names[p.Name] = n.Name
			return true
		case p.WildcardOperator:
			if n.Kind != KindOp || len(p.Children) != len(n.Children) {
				return false
			}
			caps.Ops[p.Name] = n.Op
			for i := range p.Children {
				if !matchNode(p.Children[i], n.Children[i], caps) {
					return false
				}
			}
			return true
		}
		return false
	}

	if p.Kind != n.Kind {
		return false
	}
	switch p.Kind {
	case KindConstant:
		return p.Const == n.Const
	case KindVariable:
		return p.Name == n.Name
	case KindSet, KindOp:
		if p.Op != n.Op || len(p.Children) != len(n.Children) {
			return false
		}
		for i := range p.Children {
			if !matchNode(p.Children[i], n.Children[i], caps) {
				return false
			}
		}
		return true
	}
	return false
}
