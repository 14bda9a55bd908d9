package value

import "strings"

// Symbol is a named identifier, resolved against the scope chain at
// evaluation time. Two symbols compare lexicographically by name.
type Symbol struct {
	Base
	Name string
}

func (s Symbol) Kind() Kind           { return KindSymbol }
func (s Symbol) IsTruthy() bool       { return s.Name != "" }
func (s Symbol) Size() int            { return len(s.Name) }
func (s Symbol) Render(Format) string { return s.Name }
func (s Symbol) Copy() Value          { return Symbol{Name: s.Name} }

func (s Symbol) Compare(other Value) Ordering {
	o, ok := other.(Symbol)
	if !ok {
		return Unordered
	}
	switch strings.Compare(s.Name, o.Name) {
	case -1:
		return Less
	case 0:
		return Equal
	default:
		return Greater
	}
}
