package xmldriver

import (
	"strconv"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/ir"
	"github.com/xcsp3go/xcsp3/internal/perr"
)

var condOpNames = map[string]ir.CondOp{
	"lt": ir.CondLT, "le": ir.CondLE, "ge": ir.CondGE, "gt": ir.CondGT,
	"ne": ir.CondNE, "eq": ir.CondEQ, "in": ir.CondIN, "notin": ir.CondNOTIN,
}

// parseCondition parses the "(op,operand)" textual form of a <condition>
// body (spec §3 GLOSSARY "Condition"). operand is an integer constant, a
// variable identifier, or a "lo..hi" interval (for in/notin).
func parseCondition(text string, pos perr.Position, lookup func(string) (*ir.Variable, bool)) (ir.Condition, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	parts := strings.SplitN(text, ",", 2)
	if len(parts) != 2 {
		return ir.Condition{}, perr.NewCompactSyntaxError(pos, text)
	}
	op, ok := condOpNames[strings.TrimSpace(parts[0])]
	if !ok {
		return ir.Condition{}, perr.NewCompactSyntaxError(pos, parts[0])
	}
	operand, err := parseOperand(strings.TrimSpace(parts[1]), pos, lookup)
	if err != nil {
		return ir.Condition{}, err
	}
	return ir.Condition{Op: op, Operand: operand}, nil
}

func parseOperand(text string, pos perr.Position, lookup func(string) (*ir.Variable, bool)) (ir.Operand, error) {
	if lo, hi, ok := strings.Cut(text, ".."); ok {
		loV, err1 := strconv.ParseInt(lo, 10, 64)
		hiV, err2 := strconv.ParseInt(hi, 10, 64)
		if err1 != nil || err2 != nil {
			return ir.Operand{}, perr.NewCompactSyntaxError(pos, text)
		}
		return ir.Operand{Kind: ir.OperandInterval, Lo: loV, Hi: hiV}, nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ir.Operand{Kind: ir.OperandConst, Const: v}, nil
	}
	if v, ok := lookup(text); ok {
		return ir.Operand{Kind: ir.OperandVar, Var: v}, nil
	}
	return ir.Operand{}, perr.NewUnknownVariableError(pos, text)
}
