package expr

// Canonize returns an equivalent tree in canonical form (spec §4.2.3).
// The procedure is deterministic and idempotent: canonising twice yields
// an equal tree. It canonises children first, then repeatedly applies
// the rewrite rules below until none applies — each rule strictly
// decreases a lexicographic measure (tree size, then operator count,
// then child ordering), so the loop is guaranteed to terminate.
func Canonize(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.Kind != KindOp {
		return n
	}

	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = Canonize(c)
	}
	cur := &Node{Kind: KindOp, Op: n.Op, Children: children}

	next, changed := canonizeStep(cur)
	if !changed {
		return next
	}
	// A rewrite can introduce fresh subtrees (rule 5, 10, 11, 13 build
	// new add/dist nodes around already-canonical parts) that are not
	// themselves in canonical form yet, so re-run the whole procedure
	// rather than just retrying canonizeStep on the same node.
	return Canonize(next)
}

// isAssociative reports whether op's nested occurrences should be
// flattened into a single n-ary node (rule 12).
func isAssociative(op Op) bool {
	switch op {
	case OpAdd, OpMul, OpAnd, OpOr, OpMin, OpMax, OpIff, OpXor:
		return true
	}
	return false
}

func canonizeStep(n *Node) (*Node, bool) {
	info := Info(n.Op)

	// Rule 12: associative flattening.
	if isAssociative(n.Op) {
		if flat, changed := flattenAssoc(n); changed {
			return flat, true
		}
	}

	// Rule 9: fold adjacent constant operands of add/mul.
	if n.Op == OpAdd || n.Op == OpMul {
		if folded, ok := foldConstants(n); ok {
			return folded, true
		}
	}

	// Rule 2: symmetric operators sort children by the total order.
	if info.Symmetric && len(n.Children) > 1 {
		sorted := append([]*Node(nil), n.Children...)
		sortSymmetricChildren(sorted)
		if !sameOrder(sorted, n.Children) {
			return &Node{Kind: KindOp, Op: n.Op, Children: sorted}, true
		}
	}

	// Rule 3: fixed-arity non-symmetric relational inversion. Constant
	// operands are left alone here: rule 4 below owns the lt/constant
	// normal form, and letting this rule touch them would fight it.
	if inv, ok := arithInverse[n.Op]; ok && len(n.Children) == 2 {
		l, r := n.Children[0], n.Children[1]
		if l.Kind != KindConstant && r.Kind != KindConstant && compareNodes(l, r) > 0 {
			return Binary(inv, r, l), true
		}
	}

	// Rule 4: lt(x,k) -> le(x,k-1); lt(k,x) -> le(k+1,x).
	if n.Op == OpLt && len(n.Children) == 2 {
		if n.Children[1].Kind == KindConstant {
			return Binary(OpLe, n.Children[0], Constant(n.Children[1].Const-1)), true
		}
		if n.Children[0].Kind == KindConstant {
			return Binary(OpLe, Constant(n.Children[0].Const+1), n.Children[1]), true
		}
	}

	// Rule 4 (symmetric half): gt(x,k) -> ge(x,k+1); gt(k,x) -> ge(k-1,x).
	// Keeps the canonical relational set to {le,ge,eq,ne}, matching the
	// set rule 4 already enforces for lt/le.
	if n.Op == OpGt && len(n.Children) == 2 {
		if n.Children[1].Kind == KindConstant {
			return Binary(OpGe, n.Children[0], Constant(n.Children[1].Const+1)), true
		}
		if n.Children[0].Kind == KindConstant {
			return Binary(OpGe, Constant(n.Children[0].Const-1), n.Children[1]), true
		}
	}

	// Rule 5: abs(sub(a,b)) -> dist(a,b).
	if n.Op == OpAbs && len(n.Children) == 1 {
		if sub := n.Children[0]; sub.Kind == KindOp && sub.Op == OpSub {
			return Binary(OpDist, sub.Children[0], sub.Children[1]), true
		}
	}

	// Rule 6: not(not(e)) -> e; neg(neg(e)) -> e.
	if (n.Op == OpNot || n.Op == OpNeg) && len(n.Children) == 1 {
		if inner := n.Children[0]; inner.Kind == KindOp && inner.Op == n.Op && len(inner.Children) == 1 {
			return inner.Children[0], true
		}
	}

	// Rule 7: not(R(...)) with a logical inverse -> inverse(...).
	if n.Op == OpNot && len(n.Children) == 1 {
		if inner := n.Children[0]; inner.Kind == KindOp {
			if inv, ok := logicalInverse[inner.Op]; ok {
				return &Node{Kind: KindOp, Op: inv, Children: inner.Children}, true
			}
		}
	}

	// Rule 8: unary wrappers over symmetric reducers collapse.
	if info.Symmetric && len(n.Children) == 1 {
		return n.Children[0], true
	}

	// Rule 10: R(add(x,c1), c2) -> R(x, c2-c1); symmetric variant.
	if isSumShiftRelation(n.Op) && len(n.Children) == 2 {
		if x, c1, ok := splitAddConst(n.Children[0]); ok && n.Children[1].Kind == KindConstant {
			return Binary(n.Op, x, Constant(n.Children[1].Const-c1)), true
		}
		if n.Children[0].Kind == KindConstant {
			if x, c1, ok := splitAddConst(n.Children[1]); ok {
				return Binary(n.Op, Constant(n.Children[0].Const-c1), x), true
			}
		}
	}

	// Rule 11: eq(mul(x,c1), c2).
	if n.Op == OpEq && len(n.Children) == 2 {
		if x, c1, ok := splitMulConst(n.Children[0]); ok && n.Children[1].Kind == KindConstant && c1 != 0 {
			c2 := n.Children[1].Const
			if c2%c1 != 0 {
				return Constant(0), true
			}
			return Binary(OpEq, x, Constant(c2/c1)), true
		}
		if n.Children[0].Kind == KindConstant {
			if x, c1, ok := splitMulConst(n.Children[1]); ok && c1 != 0 {
				c2 := n.Children[0].Const
				if c2%c1 != 0 {
					return Constant(0), true
				}
				return Binary(OpEq, x, Constant(c2/c1)), true
			}
		}
	}

	// Rule 13: R(sub(a,b), sub(c,d)) -> R(add(a,d), add(b,c)).
	if info.Relational && len(n.Children) == 2 {
		l, r := n.Children[0], n.Children[1]
		if l.Kind == KindOp && l.Op == OpSub && r.Kind == KindOp && r.Op == OpSub {
			a, b := l.Children[0], l.Children[1]
			c, d := r.Children[0], r.Children[1]
			return Binary(n.Op, NAry(OpAdd, a, d), NAry(OpAdd, b, c)), true
		}
	}

	return n, false
}

func isSumShiftRelation(op Op) bool {
	switch op {
	case OpEq, OpNe, OpLe, OpLt:
		return true
	}
	return false
}

// splitAddConst reports whether n is a 2-child add(x, c) or add(c, x),
// returning the non-constant operand and the constant.
func splitAddConst(n *Node) (*Node, int64, bool) {
	if n.Kind != KindOp || n.Op != OpAdd || len(n.Children) != 2 {
		return nil, 0, false
	}
	a, b := n.Children[0], n.Children[1]
	if a.Kind == KindConstant && b.Kind != KindConstant {
		return b, a.Const, true
	}
	if b.Kind == KindConstant && a.Kind != KindConstant {
		return a, b.Const, true
	}
	return nil, 0, false
}

// splitMulConst is splitAddConst's analogue for mul.
func splitMulConst(n *Node) (*Node, int64, bool) {
	if n.Kind != KindOp || n.Op != OpMul || len(n.Children) != 2 {
		return nil, 0, false
	}
	a, b := n.Children[0], n.Children[1]
	if a.Kind == KindConstant && b.Kind != KindConstant {
		return b, a.Const, true
	}
	if b.Kind == KindConstant && a.Kind != KindConstant {
		return a, b.Const, true
	}
	return nil, 0, false
}

func sameOrder(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// flattenAssoc inlines nested occurrences of the same associative
// operator into n's own child list (rule 12).
func flattenAssoc(n *Node) (*Node, bool) {
	changed := false
	var flat []*Node
	for _, c := range n.Children {
		if c.Kind == KindOp && c.Op == n.Op {
			flat = append(flat, c.Children...)
			changed = true
		} else {
			flat = append(flat, c)
		}
	}
	if !changed {
		return n, false
	}
	return &Node{Kind: KindOp, Op: n.Op, Children: flat}, true
}

// foldConstants combines every constant-kind child of an add/mul node
// into a single constant (rule 9).
func foldConstants(n *Node) (*Node, bool) {
	var rest []*Node
	count := 0
	acc := int64(0)
	if n.Op == OpMul {
		acc = 1
	}
	for _, c := range n.Children {
		if c.Kind == KindConstant {
			count++
			if n.Op == OpAdd {
				acc += c.Const
			} else {
				acc *= c.Const
			}
		} else {
			rest = append(rest, c)
		}
	}
	if count < 2 {
		return n, false
	}
	newChildren := append(rest, Constant(acc))
	if len(newChildren) == 1 {
		return newChildren[0], true
	}
	return &Node{Kind: KindOp, Op: n.Op, Children: newChildren}, true
}
