package eval

import (
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// dispatch routes an op-call term to its opcode-range handler. Range
// membership is a pair of integer comparisons (token.OpCode's own
// IsFundamental/IsSequential/... methods), giving O(1) classification
// regardless of how many operators exist in a range.
func (ev *Evaluator) dispatch(op value.OpCall) {
	switch {
	case op.Op.IsFundamental():
		ev.dispatchFundamental(op.Op)
	case op.Op.IsSequential():
		ev.dispatchSequential(op.Op)
	case op.Op.IsIndex():
		ev.dispatchIndex(op.Op)
	case op.Op.IsBinary():
		ev.dispatchBinary(op.Op)
	case op.Op.IsAlgorithm():
		ev.dispatchAlgorithm(op.Op)
	default:
		ev.reportError(value.TypeMismatch("unrecognized op-call " + op.Op.String()))
	}
}

// popTwoData pops the two most recent data values in push order (a
// pushed before b), matching how the compiler emits `a b op` postfix
// pairs: op sees b on top, a beneath it.
func (ev *Evaluator) popTwoData() (a, b value.Value) {
	b = ev.popData()
	a = ev.popData()
	return a, b
}

func (ev *Evaluator) dispatchAlgorithm(op token.OpCode) {
	switch op {
	case token.REV:
		v := ev.popData()
		ev.pushData(v.Reverse())
	default:
		ev.reportError(value.TypeMismatch("unrecognized algorithm op " + op.String()))
	}
}
