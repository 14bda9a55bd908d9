package eval

import (
	"fmt"
	"strings"

	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// dispatchFundamental handles every fundamental opcode except if/elif/
// else/func, which the compiler folds away before the evaluator ever
// sees them (see internal/compiler's foldConditionals/foldFunctions).
func (ev *Evaluator) dispatchFundamental(op token.OpCode) {
	switch op {
	case token.IDNT:
		ev.pushData(ev.popCode())
	case token.NEG:
		v := ev.specialize(ev.resolveSymbol(ev.popCode()))
		ev.pushData(v.Minus())
	case token.NOT:
		v := ev.resolveSymbol(ev.popCode())
		ev.pushData(v.Negate())

	case token.DEQUE:
		ev.pushData(value.NewList(ev.dataSnapshot()...))
	case token.EMIT:
		ev.emit(ev.popData())
	case token.ENDL:
		fmt.Fprintln(ev.out)
	case token.INPUT:
		ev.readInput()

	case token.ASSIGN:
		ev.evalAssign()
	case token.LET:
		ev.evalLet()
	case token.DEF:
		ev.evalDef()
	case token.END_SCOPE:
		ev.popScope()

	case token.IS:
		a, b := ev.popTwoData()
		ev.pushData(value.FromBool(a.Kind() == b.Kind()))
	case token.SIZE:
		v := ev.popData()
		ev.pushData(value.NewReal(float64(v.Size())))
	case token.TYPE:
		v := ev.popData()
		ev.pushData(value.NewText(v.Kind().String()))
	case token.BOOL:
		v := ev.popData()
		ev.pushData(value.FromBool(v.IsTruthy()))
	case token.BOOL_ALPHA:
		ev.boolNumeric = false
	case token.BOOL_NUMERIC:
		ev.boolNumeric = true
	case token.NO_EXCEPT:
		ev.noExcept = true

	case token.MAP_OP, token.NOOP, token.NONE:
		// map_op is consumed by the compiler when it closes a { }
		// frame; noop/none never do anything if they reach here.

	default:
		ev.reportError(value.TypeMismatch("unrecognized fundamental op " + op.String()))
	}
}

// emit renders a value to the output sink, honoring bool_numeric/
// bool_alpha's effect on how a Boolean prints.
func (ev *Evaluator) emit(v value.Value) {
	f := value.Format{}
	if ev.boolNumeric {
		f.Type = 'd'
	}
	fmt.Fprint(ev.out, v.Render(f))
}

// readInput reads one line, compiles it, and splices the result onto
// the code stack so it runs as the next thing evaluated.
func (ev *Evaluator) readInput() {
	line, err := ev.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		ev.reportError(value.ParseError("no more input"))
		return
	}
	expr, cerr := compileLine(line)
	if cerr != nil {
		ev.reportError(value.ParseError(cerr.Error()))
		return
	}
	ev.pushExpression(expr)
}

func (ev *Evaluator) popScope() {
	if len(ev.scopes) <= 1 {
		ev.reportError(value.StackUnderflow("end_scope with no call frame"))
		return
	}
	ev.scopes = ev.scopes[:len(ev.scopes)-1]
	ev.depth--
}

// evalAssign pops value then target (postfix `target value assign`
// pushes target first, so it comes off second): a plain symbol target
// binds in the innermost scope; the data-stack sentinel target resets
// the data stack itself to a pushed sequence's elements.
func (ev *Evaluator) evalAssign() {
	v := ev.popData()
	target := ev.popData()

	if sym, ok := target.(value.Symbol); ok {
		ev.bindInnermost(sym.Name, v)
		return
	}
	if isDataStackSentinel(target) {
		switch sv := v.(type) {
		case value.Expression:
			ev.data = append([]value.Value(nil), sv.Elems...)
			return
		case value.List:
			ev.data = append([]value.Value(nil), sv.Elems...)
			return
		}
	}
	ev.reportError(value.BadAssignment("assign target is neither a symbol nor the data-stack sentinel"))
}

// evalLet pulls the raw (name, value, op) triple directly off the code
// stack for a plain "name = value" clause, or (name, index, value, op)
// for an indexed "name index = value" clause. The plain form binds
// value in the innermost scope, synthesizing a def-style self-bind
// when value is a bare function rather than routing it through reduce
// (which would invoke it as an ordinary call). The indexed form
// rewrites to a set call against name's current binding and rebinds
// the result, since set returns an updated value rather than mutating
// in place.
func (ev *Evaluator) evalLet() {
	nameTerm := ev.popCode()
	name, ok := nameTerm.(value.Symbol)
	if !ok {
		ev.reportError(value.BadAssignment("let target must be a symbol"))
		return
	}

	second := ev.popCode()
	third := ev.popCode()

	if eqOp, ok := third.(value.OpCall); ok && eqOp.Op == token.EQ {
		if fn, ok := ev.resolveSymbol(second).(value.Function); ok {
			specialized, _ := ev.specialize(fn).(value.Function)
			ev.bindInnermost(name.Name, specialized.BindSelf(name.Name))
			return
		}
		ev.bindInnermost(name.Name, ev.specialize(ev.reduce(second)))
		return
	}

	fourth := ev.popCode()
	if eqOp, ok := fourth.(value.OpCall); !ok || eqOp.Op != token.EQ {
		ev.reportError(value.BadAssignment("let clause missing '='"))
		return
	}

	target, found := ev.lookup(name.Name)
	if !found {
		ev.reportError(value.UndefVar(name.Name))
		return
	}
	key := ev.specialize(ev.reduce(second))
	val := ev.specialize(ev.reduce(third))
	ev.bindInnermost(name.Name, target.Set(key, val))
}

// evalDef builds a function from the three terms that follow it
// (name, params, body), captures the enclosing scope, self-binds for
// recursion, and binds the result in the innermost scope.
func (ev *Evaluator) evalDef() {
	nameTerm := ev.popCode()
	paramsTerm := ev.popCode()
	bodyTerm := ev.popCode()

	name, ok := nameTerm.(value.Symbol)
	if !ok {
		ev.reportError(value.BadAssignment("def target must be a symbol"))
		return
	}
	fn := value.NewFunction(paramNames(paramsTerm), asExpression(bodyTerm), nil)
	specialized, _ := ev.specialize(fn).(value.Function)
	bound := specialized.BindSelf(name.Name)
	ev.bindInnermost(name.Name, bound)
}

// paramNames reads a closed params group the same way the compiler's
// func-literal folding does: a single symbol, or an expression whose
// elements (already reversed into storage order) are walked backwards
// to recover left-to-right declaration order.
func paramNames(v value.Value) []string {
	if s, ok := v.(value.Symbol); ok {
		return []string{s.Name}
	}
	e, ok := v.(value.Expression)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(e.Elems))
	for i := len(e.Elems) - 1; i >= 0; i-- {
		if s, ok := e.Elems[i].(value.Symbol); ok {
			names = append(names, s.Name)
		}
	}
	return names
}
