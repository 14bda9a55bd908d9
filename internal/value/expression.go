package value

// Expression is an ordered sequence of values used as code: when the
// evaluator encounters one as a term, it pushes the expression's
// elements back onto the code stack to be executed in order, rather
// than treating the sequence itself as a data value (that is List's
// job).
type Expression struct {
	Base
	seq
}

func NewExpression(elems ...Value) Expression { return Expression{seq: seq{Elems: elems}} }

func (e Expression) Kind() Kind     { return KindExpression }
func (e Expression) IsTruthy() bool { return len(e.Elems) > 0 }
func (e Expression) Size() int      { return e.size() }
func (e Expression) Copy() Value    { return Expression{seq: seq{Elems: copyElems(e.Elems)}} }
func (e Expression) Render(f Format) string {
	return e.leadFirst("(", ")", f)
}

func (e Expression) Compare(other Value) Ordering {
	o, ok := other.(Expression)
	if !ok {
		return Unordered
	}
	return compareSeq(e.Elems, o.Elems)
}

func (e Expression) Lead() Value    { return e.lead() }
func (e Expression) Push(x Value) Value { return Expression{seq: seq{Elems: e.push(x)}} }
func (e Expression) Drop() Value    { return Expression{seq: seq{Elems: e.drop()}} }
func (e Expression) Reverse() Value { return Expression{seq: seq{Elems: e.reverse()}} }

func (e Expression) Add(other Value) Value {
	o, ok := other.(Expression)
	if !ok {
		return Nothing{}
	}
	return Expression{seq: seq{Elems: e.add(o.seq)}}
}

func (e Expression) Get(key Value) Value {
	idx, ok := key.IntegerView()
	if !ok || idx < 0 || idx >= int64(len(e.Elems)) {
		return Nothing{}
	}
	return e.Elems[idx]
}

func (e Expression) Has(key Value) Value {
	idx, ok := key.IntegerView()
	return FromBool(ok && idx >= 0 && idx < int64(len(e.Elems)))
}
