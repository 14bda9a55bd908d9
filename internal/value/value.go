// Package value implements Oliver's polymorphic runtime value: a single
// tagged union over the closed set of kinds an Oliver program can
// produce, each answering the same vocabulary of inspection, comparison,
// logic, arithmetic, sequence and index operations. Operations never
// panic; a kind that does not support an operation returns Nothing (or
// Unordered, for Compare) rather than erroring.
package value

import "github.com/nrperez/oliver/internal/token"

// Kind identifies which variant of Value is active.
type Kind int

const (
	KindNothing Kind = iota
	KindBoolean
	KindNumber
	KindText
	KindSymbol
	KindOpCall
	KindError
	KindExpression
	KindList
	KindObject
	KindFunction
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindSymbol:
		return "symbol"
	case KindOpCall:
		return "op_call"
	case KindError:
		return "error"
	case KindExpression:
		return "expression"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Ordering is the result of Compare: a partial order over values.
type Ordering int

const (
	Less Ordering = iota
	Equal
	Greater
	Unordered
)

// Value is the closed interface every Oliver runtime kind implements.
// Default (no-op) behavior for operations a kind does not support lives
// in Base, which every concrete kind embeds.
type Value interface {
	Kind() Kind
	IsTruthy() bool
	Size() int
	IntegerView() (int64, bool)
	Render(f Format) string
	Compare(other Value) Ordering
	Copy() Value

	And(other Value) Value
	Or(other Value) Value
	Xor(other Value) Value
	Negate() Value

	Plus() Value
	Minus() Value
	Add(other Value) Value
	Sub(other Value) Value
	Mul(other Value) Value
	Div(other Value) Value
	Mod(other Value) Value
	Pow(other Value) Value
	Root(other Value) Value
	RealPart() Value
	ImagPart() Value
	Abs() Value

	Lead() Value
	Push(x Value) Value
	Drop() Value
	Reverse() Value

	Get(key Value) Value
	Set(key, val Value) Value
	Del(key Value) Value
	Has(key Value) Value

	OpCode() (token.OpCode, bool)
}

// Shift is lead+drop packaged as a pair. It is a free function rather
// than an interface method since it returns two values.
func Shift(v Value) (lead, rest Value) {
	return v.Lead(), v.Drop()
}

// Base supplies the "unordered / nothing / no-op" default for every
// operation. Concrete kinds embed Base and override only the operations
// that are meaningful for them.
type Base struct{}

func (Base) IsTruthy() bool                { return false }
func (Base) Size() int                     { return 0 }
func (Base) IntegerView() (int64, bool)    { return 0, false }
func (Base) Compare(Value) Ordering        { return Unordered }
func (Base) And(Value) Value               { return Nothing{} }
func (Base) Or(Value) Value                { return Nothing{} }
func (Base) Xor(Value) Value               { return Nothing{} }
func (Base) Negate() Value                 { return Nothing{} }
func (Base) Plus() Value                   { return Nothing{} }
func (Base) Minus() Value                  { return Nothing{} }
func (Base) Add(Value) Value               { return Nothing{} }
func (Base) Sub(Value) Value               { return Nothing{} }
func (Base) Mul(Value) Value               { return Nothing{} }
func (Base) Div(Value) Value               { return Nothing{} }
func (Base) Mod(Value) Value               { return Nothing{} }
func (Base) Pow(Value) Value               { return Nothing{} }
func (Base) Root(Value) Value              { return Nothing{} }
func (Base) RealPart() Value               { return Nothing{} }
func (Base) ImagPart() Value               { return Nothing{} }
func (Base) Abs() Value                    { return Nothing{} }
func (Base) Lead() Value                   { return Nothing{} }
func (Base) Push(Value) Value              { return Nothing{} }
func (Base) Drop() Value                   { return Nothing{} }
func (Base) Reverse() Value                { return Nothing{} }
func (Base) Get(Value) Value               { return Nothing{} }
func (Base) Set(_, _ Value) Value          { return Nothing{} }
func (Base) Del(Value) Value               { return Nothing{} }
func (Base) Has(Value) Value               { return Boolean{Term: 0, Certainty: 1} }
func (Base) OpCode() (token.OpCode, bool)  { return 0, false }

// Truthy reports the truthiness of any value; a small helper so callers
// in the evaluator don't need to type-switch.
func Truthy(v Value) bool {
	if v == nil {
		return false
	}
	return v.IsTruthy()
}

// RenderPlain renders a value with the default (empty) format.
func RenderPlain(v Value) string {
	if v == nil {
		return ""
	}
	return v.Render(Format{})
}
