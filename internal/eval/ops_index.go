package eval

import (
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// dispatchIndex handles get/set/has/del. Each pops its operands off
// data in postfix push order (target pushed first, then the index
// arguments), matching binary's a/b convention.
func (ev *Evaluator) dispatchIndex(op token.OpCode) {
	switch op {
	case token.GET:
		target, key := ev.popTwoData()
		ev.pushData(target.Get(key))
	case token.HAS:
		target, key := ev.popTwoData()
		ev.pushData(target.Has(key))
	case token.DEL:
		target, key := ev.popTwoData()
		ev.pushData(target.Del(key))
	case token.SET:
		val := ev.popData()
		key := ev.popData()
		target := ev.popData()
		ev.pushData(target.Set(key, val))
	default:
		ev.reportError(value.TypeMismatch("unrecognized index op " + op.String()))
	}
}
