package eval

import (
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// dispatchBinary pops two values, applies the arithmetic, relational,
// or logical operation, and pushes the result. l_imp (postfix `then`)
// is the one binary opcode that does not follow this shape: its second
// operand comes off the code stack, unevaluated, so it is handled
// first and separately.
func (ev *Evaluator) dispatchBinary(op token.OpCode) {
	if op == token.L_IMP {
		ev.evalImply()
		return
	}

	a, b := ev.popTwoData()
	switch op {
	case token.ADD:
		ev.pushData(a.Add(b))
	case token.SUB:
		ev.pushData(a.Sub(b))
	case token.MUL:
		ev.pushData(a.Mul(b))
	case token.DIV:
		ev.pushData(a.Div(b))
	case token.MOD:
		ev.pushData(a.Mod(b))
	case token.FDIV:
		ev.pushData(floorDiv(a, b))
	case token.REM:
		ev.pushData(remainder(a, b))
	case token.EXP:
		ev.pushData(a.Pow(b))
	case token.ROOT:
		ev.pushData(a.Root(b))
	case token.EQ:
		ev.pushData(value.FromBool(a.Compare(b) == value.Equal))
	case token.NE:
		ev.pushData(value.FromBool(a.Compare(b) != value.Equal))
	case token.LT:
		ev.pushData(value.FromBool(a.Compare(b) == value.Less))
	case token.LE:
		ev.pushData(value.FromBool(ordIn(a.Compare(b), value.Less, value.Equal)))
	case token.GT:
		ev.pushData(value.FromBool(a.Compare(b) == value.Greater))
	case token.GE:
		ev.pushData(value.FromBool(ordIn(a.Compare(b), value.Greater, value.Equal)))
	case token.L_AND:
		ev.pushData(a.And(b))
	case token.L_OR:
		ev.pushData(a.Or(b))
	case token.L_XOR:
		ev.pushData(a.Xor(b))
	default:
		ev.reportError(value.TypeMismatch("unrecognized binary op " + op.String()))
	}
}

func ordIn(o value.Ordering, opts ...value.Ordering) bool {
	for _, want := range opts {
		if o == want {
			return true
		}
	}
	return false
}

// floorDiv/remainder dispatch to Number's own methods when both
// operands are numbers, matching the pattern every other arithmetic
// case above already follows through the Value interface; fdiv/rem
// have no place in the closed Value interface itself since they are
// number-specific refinements of Div/Mod, not part of every kind's
// vocabulary.
func floorDiv(a, b value.Value) value.Value {
	na, ok := a.(value.Number)
	if !ok {
		return value.Nothing{}
	}
	return na.FloorDiv(b)
}

func remainder(a, b value.Value) value.Value {
	na, ok := a.(value.Number)
	if !ok {
		return value.Nothing{}
	}
	return na.Rem(b)
}

// evalImply implements l_imp: p (the condition's result) is already on
// data; q is the branch selector sitting raw on the code stack. When q
// is the 2-element [alternative, consequent] pair the compiler builds
// for if/elif/else, the taken branch is spliced onto the code stack to
// run. A bare "cond then body" (the infix `then` spelling with no
// compiler-built pair) runs body only when p is truthy and otherwise
// contributes nothing.
func (ev *Evaluator) evalImply() {
	p := ev.popData()
	q := ev.popCode()

	if pair, ok := q.(value.List); ok && len(pair.Elems) == 2 {
		if value.Truthy(p) {
			ev.pushExpression(asExpression(pair.Elems[1]))
		} else {
			ev.pushExpression(asExpression(pair.Elems[0]))
		}
		return
	}

	if value.Truthy(p) {
		ev.step(q)
		return
	}
	ev.pushData(value.Nothing{})
}
