package eval

import (
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// dispatchSequential handles lead/join/drop/next, which act on an
// ordinary sequence value popped off data, and the deque_* family,
// which instead reach past a sequence value and act on the evaluator's
// own data stack directly whenever their operand is the data-stack
// sentinel rather than a real sequence.
func (ev *Evaluator) dispatchSequential(op token.OpCode) {
	switch op {
	case token.LEAD:
		v := ev.popData()
		ev.pushData(v.Lead())
	case token.JOIN:
		a, b := ev.popTwoData()
		ev.pushData(a.Push(b))
	case token.DROP:
		v := ev.popData()
		ev.pushData(v.Drop())
	case token.NEXT:
		v := ev.popData()
		ev.code = append(ev.code, v.Drop())

	case token.DEQUE_LEAD: // lead_: peek the far (front) end
		v := ev.popData()
		if isDataStackSentinel(v) {
			ev.pushData(ev.frontOrNothing())
			return
		}
		ev.pushData(v.Lead())
	case token.DEQUE_LAST: // _last: peek the near (top) end
		v := ev.popData()
		if isDataStackSentinel(v) {
			ev.pushData(ev.backOrNothing())
			return
		}
		ev.pushData(v.Lead())
	case token.DEQUE_JOIN: // join_: push onto the front
		v := ev.popData()
		x := ev.popData()
		if isDataStackSentinel(v) {
			ev.data = append([]value.Value{x}, ev.data...)
			return
		}
		ev.pushData(v.Push(x))
	case token.DEQUE_PUSH: // _join: push onto the back
		v := ev.popData()
		x := ev.popData()
		if isDataStackSentinel(v) {
			ev.pushData(x)
			return
		}
		ev.pushData(v.Push(x))
	case token.DEQUE_DROP: // drop_: remove from the front
		v := ev.popData()
		if isDataStackSentinel(v) {
			ev.dropFront()
			return
		}
		ev.pushData(v.Drop())
	case token.DEQUE_SHIFT: // _drop: remove from the back
		v := ev.popData()
		if isDataStackSentinel(v) {
			ev.popData()
			return
		}
		ev.pushData(v.Drop())
	default:
		ev.reportError(value.TypeMismatch("unrecognized sequence op " + op.String()))
	}
}

func (ev *Evaluator) frontOrNothing() value.Value {
	if len(ev.data) == 0 {
		return value.Nothing{}
	}
	return ev.data[0]
}

func (ev *Evaluator) backOrNothing() value.Value {
	if len(ev.data) == 0 {
		return value.Nothing{}
	}
	return ev.data[len(ev.data)-1]
}

func (ev *Evaluator) dropFront() {
	if len(ev.data) == 0 {
		return
	}
	ev.data = ev.data[1:]
}
