package value

import "github.com/nrperez/oliver/internal/token"

// OpCall is a tagged operator selector: an opcode drawn from the closed
// enumeration in the token package. Encountering one during evaluation
// dispatches to the operator group its opcode range identifies.
type OpCall struct {
	Base
	Op token.OpCode
}

func (o OpCall) Kind() Kind                       { return KindOpCall }
func (o OpCall) IsTruthy() bool                   { return true }
func (o OpCall) Render(Format) string             { return o.Op.String() }
func (o OpCall) Copy() Value                      { return OpCall{Op: o.Op} }
func (o OpCall) OpCode() (token.OpCode, bool)     { return o.Op, true }

func (o OpCall) Compare(other Value) Ordering {
	c, ok := other.(OpCall)
	if !ok || c.Op != o.Op {
		return Unordered
	}
	return Equal
}
