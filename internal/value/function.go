package value

import "strings"

// Function is a (parameters, body, captured-scope) tuple. Captured is a
// name->value snapshot taken at definition time; a self-recursive
// function stores a copy of itself in Captured under its own name and
// under "self".
//
// Function.Copy is intentionally shallow over Captured: a function that
// captured itself would otherwise recurse forever trying to deep-copy
// its own self-reference. The self-entry is a snapshot taken once at
// bind time, not re-derived on every Copy, trading a strong reference
// cycle for a fixed space cost.
type Function struct {
	Base
	Params   []string
	Body     Expression
	Captured map[string]Value
}

func NewFunction(params []string, body Expression, captured map[string]Value) Function {
	if captured == nil {
		captured = make(map[string]Value)
	}
	return Function{Params: params, Body: body, Captured: captured}
}

// BindSelf returns a copy of f whose captured scope also maps name and
// "self" to the function itself, enabling recursive calls. The
// self-referencing entry is captured once, without a further BindSelf,
// so the cycle has finite depth in memory (one level) rather than being
// infinitely unrolled.
func (f Function) BindSelf(name string) Function {
	captured := make(map[string]Value, len(f.Captured)+2)
	for k, v := range f.Captured {
		captured[k] = v
	}
	self := Function{Params: f.Params, Body: f.Body, Captured: f.Captured}
	captured[name] = self
	captured["self"] = self
	return Function{Params: f.Params, Body: f.Body, Captured: captured}
}

func (f Function) Kind() Kind     { return KindFunction }
func (f Function) IsTruthy() bool { return true }
func (f Function) Size() int      { return len(f.Params) }

func (f Function) Copy() Value {
	captured := make(map[string]Value, len(f.Captured))
	for k, v := range f.Captured {
		captured[k] = v // shallow: see doc comment above
	}
	return Function{Params: append([]string(nil), f.Params...), Body: f.Body.Copy().(Expression), Captured: captured}
}

func (f Function) Render(Format) string {
	return "func(" + strings.Join(f.Params, " ") + ") " + f.Body.Render(Format{})
}

func (f Function) Compare(other Value) Ordering {
	o, ok := other.(Function)
	if !ok {
		return Unordered
	}
	if len(f.Params) != len(o.Params) {
		return Unordered
	}
	for i := range f.Params {
		if f.Params[i] != o.Params[i] {
			return Unordered
		}
	}
	if f.Body.Compare(o.Body) != Equal {
		return Unordered
	}
	return Equal
}
