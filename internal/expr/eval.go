package expr

import (
	"fmt"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

// Valuation maps variable names to integer values for evaluation (spec
// §4.2.2).
type Valuation map[string]int64

// Eval evaluates the tree bottom-up under v. Relational and logical
// operators return 0 or 1. div/mod use truncated integer semantics.
func Eval(n *Node, v Valuation) (int64, error) {
	switch n.Kind {
	case KindConstant:
		return n.Const, nil

	case KindVariable:
		val, ok := v[n.Name]
		if !ok {
			return 0, perr.NewUnknownVariableError(perr.Position{}, n.Name)
		}
		return val, nil

	case KindSet:
		return 0, fmt.Errorf("expr: a set node cannot be evaluated directly")

	case KindOp:
		return evalOp(n, v)
	}
	return 0, fmt.Errorf("expr: cannot evaluate node of kind %d", n.Kind)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func evalOp(n *Node, v Valuation) (int64, error) {
	// in/notin require the second operand to remain a literal set node;
	// handle before evaluating children generically.
	if n.Op == OpIn || n.Op == OpNotIn {
		if len(n.Children) != 2 || n.Children[1].Kind != KindSet {
			return 0, perr.NewUnsupportedSetOperandError(perr.Position{})
		}
		x, err := Eval(n.Children[0], v)
		if err != nil {
			return 0, err
		}
		member := false
		for _, c := range n.Children[1].Children {
			if c.Const == x {
				member = true
				break
			}
		}
		if n.Op == OpNotIn {
			member = !member
		}
		return boolToInt(member), nil
	}

	args := make([]int64, len(n.Children))
	for i, c := range n.Children {
		val, err := Eval(c, v)
		if err != nil {
			return 0, err
		}
		args[i] = val
	}

	switch n.Op {
	case OpNeg:
		return -args[0], nil
	case OpAbs:
		if args[0] < 0 {
			return -args[0], nil
		}
		return args[0], nil
	case OpAdd:
		var sum int64
		for _, a := range args {
			sum += a
		}
		return sum, nil
	case OpSub:
		return args[0] - args[1], nil
	case OpMul:
		prod := int64(1)
		for _, a := range args {
			prod *= a
		}
		return prod, nil
	case OpDiv:
		if args[1] == 0 {
			return 0, fmt.Errorf("expr: division by zero")
		}
		return args[0] / args[1], nil // truncated, per spec §4.2.2
	case OpMod:
		if args[1] == 0 {
			return 0, fmt.Errorf("expr: modulo by zero")
		}
		return args[0] % args[1], nil
	case OpSqr:
		return args[0] * args[0], nil
	case OpPow:
		result := int64(1)
		for i := int64(0); i < args[1]; i++ {
			result *= args[0]
		}
		return result, nil
	case OpMin:
		m := args[0]
		for _, a := range args[1:] {
			if a < m {
				m = a
			}
		}
		return m, nil
	case OpMax:
		m := args[0]
		for _, a := range args[1:] {
			if a > m {
				m = a
			}
		}
		return m, nil
	case OpDist:
		d := args[0] - args[1]
		if d < 0 {
			d = -d
		}
		return d, nil
	case OpLt:
		return boolToInt(args[0] < args[1]), nil
	case OpLe:
		return boolToInt(args[0] <= args[1]), nil
	case OpGe:
		return boolToInt(args[0] >= args[1]), nil
	case OpGt:
		return boolToInt(args[0] > args[1]), nil
	case OpNe:
		allDistinctPairwiseDiffer := true
		for i := range args {
			for j := i + 1; j < len(args); j++ {
				if args[i] == args[j] {
					allDistinctPairwiseDiffer = false
				}
			}
		}
		return boolToInt(allDistinctPairwiseDiffer), nil
	case OpEq:
		for _, a := range args[1:] {
			if a != args[0] {
				return 0, nil
			}
		}
		return 1, nil
	case OpNot:
		return boolToInt(args[0] == 0), nil
	case OpAnd:
		for _, a := range args {
			if a == 0 {
				return 0, nil
			}
		}
		return 1, nil
	case OpOr:
		for _, a := range args {
			if a != 0 {
				return 1, nil
			}
		}
		return 0, nil
	case OpXor:
		parity := int64(0)
		for _, a := range args {
			if a != 0 {
				parity ^= 1
			}
		}
		return parity, nil
	case OpImp:
		return boolToInt(args[0] == 0 || args[1] != 0), nil
	case OpIff:
		for i := 1; i < len(args); i++ {
			if (args[i-1] != 0) != (args[i] != 0) {
				return 0, nil
			}
		}
		return 1, nil
	case OpIf:
		// spec §9 open question: zero selects the third child, any
		// non-zero value selects the second.
		if args[0] != 0 {
			return args[1], nil
		}
		return args[2], nil
	}
	return 0, fmt.Errorf("expr: unhandled operator %v in evaluation", Info(n.Op).Name)
}
