package value

import (
	"strconv"
	"strings"
)

// Text is an immutable string. It is truthy iff non-empty, orders
// lexicographically, and its "absolute value" (Abs) is its length.
type Text struct {
	Base
	Val string
}

func NewText(s string) Text { return Text{Val: s} }

func (t Text) Kind() Kind           { return KindText }
func (t Text) IsTruthy() bool       { return t.Val != "" }
func (t Text) Size() int            { return len([]rune(t.Val)) }
func (t Text) Copy() Value          { return Text{Val: t.Val} }

func (t Text) Render(f Format) string {
	s := t.Val
	if f.Repr {
		s = strconv.Quote(s)
	}
	return f.pad(s, false)
}

func (t Text) Compare(other Value) Ordering {
	o, ok := other.(Text)
	if !ok {
		return Unordered
	}
	switch strings.Compare(t.Val, o.Val) {
	case -1:
		return Less
	case 0:
		return Equal
	default:
		return Greater
	}
}

func (t Text) Add(other Value) Value {
	o, ok := other.(Text)
	if !ok {
		return Nothing{}
	}
	return Text{Val: t.Val + o.Val}
}

func (t Text) Abs() Value { return NewReal(float64(t.Size())) }

func (t Text) IntegerView() (int64, bool) {
	return 0, false
}

func (t Text) Get(key Value) Value {
	idx, ok := key.IntegerView()
	if !ok {
		return Nothing{}
	}
	r := []rune(t.Val)
	if idx < 0 || idx >= int64(len(r)) {
		return Nothing{}
	}
	return Text{Val: string(r[idx])}
}

func (t Text) Has(key Value) Value {
	idx, ok := key.IntegerView()
	if !ok {
		return FromBool(false)
	}
	r := []rune(t.Val)
	return FromBool(idx >= 0 && idx < int64(len(r)))
}
