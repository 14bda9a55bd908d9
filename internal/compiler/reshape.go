package compiler

import (
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// infixMarker is a compile-time-only pseudo-value: it stands in for a
// surface infix spelling ("+", "and", "-->", ...) while a collection's
// terms are still in source order, and never survives past foldOperators.
type infixMarker struct {
	value.Base
	Op token.InfixOp
}

func (infixMarker) Kind() value.Kind           { return value.KindNothing }
func (infixMarker) Render(value.Format) string { return "<infix>" }
func (m infixMarker) Copy() value.Value        { return m }

// foldFunctions resolves `func` markers against the grammar's actual
// token order ('func' '(' params ')' ':' body ';'): the marker is
// immediately followed by its params group and then its body group.
// This mirrors def's own eval-time wording of building a function from
// the terms that follow it, rather than the ones preceding it.
func foldFunctions(terms []value.Value) []value.Value {
	out := make([]value.Value, 0, len(terms))
	for i := 0; i < len(terms); i++ {
		if op, ok := terms[i].(value.OpCall); ok && op.Op == token.FUNC && i+2 < len(terms) {
			params := paramNames(terms[i+1])
			body := asBodyExpression(terms[i+2])
			out = append(out, value.NewFunction(params, body, nil))
			i += 2
			continue
		}
		out = append(out, terms[i])
	}
	return out
}

// paramNames reads a closed params group. Its Expression is already in
// final (reversed) storage order, so the natural left-to-right
// parameter order is recovered by walking it backwards.
func paramNames(v value.Value) []string {
	e, ok := v.(value.Expression)
	if !ok {
		if s, ok := v.(value.Symbol); ok {
			return []string{s.Name}
		}
		return nil
	}
	var names []string
	for i := len(e.Elems) - 1; i >= 0; i-- {
		if s, ok := e.Elems[i].(value.Symbol); ok {
			names = append(names, s.Name)
		}
	}
	return names
}

func asBodyExpression(v value.Value) value.Expression {
	if e, ok := v.(value.Expression); ok {
		return e
	}
	return value.NewExpression(v)
}

type condBranch struct {
	cond, body value.Expression
}

// foldConditionals turns an if/elif*/else? run into a single nested
// L_IMP chain: `imply` pops its condition's result off the data stack
// and its (consequent, alternative) pair straight off the code stack,
// unevaluated, so only the taken branch's terms ever run. Each level's
// alternative is either the next elif's own chain or, at the bottom,
// the else body (or an empty expression when there is none, which
// evaluates to nothing).
func foldConditionals(terms []value.Value) []value.Value {
	out := make([]value.Value, 0, len(terms))
	i := 0
	for i < len(terms) {
		op, ok := terms[i].(value.OpCall)
		if !ok || op.Op != token.IF || i+2 >= len(terms) {
			out = append(out, terms[i])
			i++
			continue
		}

		branches := []condBranch{{asBodyExpression(terms[i+1]), asBodyExpression(terms[i+2])}}
		j := i + 3
		for j+2 < len(terms) {
			eop, ok := terms[j].(value.OpCall)
			if !ok || eop.Op != token.ELIF {
				break
			}
			branches = append(branches, condBranch{asBodyExpression(terms[j+1]), asBodyExpression(terms[j+2])})
			j += 3
		}

		alt := value.NewExpression()
		if j < len(terms) {
			if eop, ok := terms[j].(value.OpCall); ok && eop.Op == token.ELSE && j+1 < len(terms) {
				alt = asBodyExpression(terms[j+1])
				j += 2
			}
		}

		for k := len(branches) - 1; k >= 0; k-- {
			pair := value.NewList(alt, branches[k].body)
			// Elems execute last-to-first, so cond must run before
			// L_IMP dispatches, and pair must still be sitting on the
			// code stack (not yet stepped) for L_IMP's popCode to see.
			level := append([]value.Value{pair, value.OpCall{Op: token.L_IMP}}, branches[k].cond.Elems...)
			alt = value.NewExpression(level...)
		}

		out = append(out, alt)
		i = j
	}
	return out
}

// foldOperators is the single left-to-right pass that rewrites prefix
// and infix operator forms into their postfix shape. It handles three
// cases:
//
//   - An infixMarker for one of the push-arrow spellings (<--, <->,
//     -->): these reorder operands rather than just swap an opcode, so
//     the already-emitted left operand is popped back off the output
//     and re-pushed alongside the right operand in the order that
//     spelling implies, followed by a join op-call.
//   - Any other infixMarker: rewritten to `A B op'` using the fixed
//     infix->postfix table, except `then`, which becomes `A imply B`
//     so its consequent B stays raw on the code stack for l_imp.
//   - neg/idnt: these opcodes are ambiguous between prefix negation
//     ("-x") and infix subtraction/addition ("3 - 4"), since the
//     tokenizer emits the same token for both. This pass resolves the
//     ambiguity the same way ordinary infix operators are recognized:
//     if a left operand already precedes it, it's infix; otherwise it's
//     the prefix form, left untouched here (the evaluator's neg/idnt
//     dispatch pulls its own operand directly off the code stack, so no
//     compile-time wrapping is needed for the prefix case).
//   - Everything else passes through unchanged.
//
// Chained infix without parens folds left-to-right: this language has
// no built-in operator precedence, so parentheses are how a program
// overrides the default left-to-right grouping.
func foldOperators(terms []value.Value) []value.Value {
	out := make([]value.Value, 0, len(terms))
	i := 0
	for i < len(terms) {
		t := terms[i]

		if m, ok := t.(infixMarker); ok {
			switch m.Op {
			case token.InfixPushLeft, token.InfixPushBoth, token.InfixPushRight:
				if len(out) == 0 || i+1 >= len(terms) {
					i++
					continue
				}
				lhs := out[len(out)-1]
				out = out[:len(out)-1]
				rhs := terms[i+1]
				if m.Op == token.InfixPushLeft {
					out = append(out, rhs, lhs, value.OpCall{Op: token.JOIN})
				} else {
					out = append(out, lhs, rhs, value.OpCall{Op: token.JOIN})
				}
				i += 2
				continue
			default:
				pc, ok := token.PostfixOpCode[m.Op]
				if !ok || len(out) == 0 {
					i++
					continue
				}
				if i+1 >= len(terms) {
					// Trailing infix: both operands already sit in out
					// in source order (e.g. "n n *"), so the marker
					// just becomes the postfix opcode with no operand
					// to pull forward.
					out = append(out, value.OpCall{Op: pc})
					i++
					continue
				}
				rhs := terms[i+1]
				if m.Op == token.InfixThen {
					// l_imp pulls its consequent raw off the code
					// stack, so it follows the opcode, unevaluated.
					out = append(out, value.OpCall{Op: pc}, rhs)
				} else {
					out = append(out, rhs, value.OpCall{Op: pc})
				}
				i += 2
				continue
			}
		}

		if op, ok := t.(value.OpCall); ok && (op.Op == token.NEG || op.Op == token.IDNT) {
			if len(out) > 0 {
				pc := token.ADD
				if op.Op == token.NEG {
					pc = token.SUB
				}
				if i+1 < len(terms) {
					rhs := terms[i+1]
					out = append(out, rhs, value.OpCall{Op: pc})
					i += 2
					continue
				}
				// Trailing +/-: the left operand is already the tail
				// of out (e.g. "x '1' +"); just emit the postfix opcode.
				out = append(out, value.OpCall{Op: pc})
				i++
				continue
			}
		}

		out = append(out, t)
		i++
	}
	return out
}
