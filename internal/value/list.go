package value

// List has the same contract as Expression but is reified as data: the
// evaluator never unwraps a List's elements onto the code stack, it
// pushes the List itself as a value.
type List struct {
	Base
	seq
}

func NewList(elems ...Value) List { return List{seq: seq{Elems: elems}} }

func (l List) Kind() Kind     { return KindList }
func (l List) IsTruthy() bool { return len(l.Elems) > 0 }
func (l List) Size() int      { return l.size() }
func (l List) Copy() Value    { return List{seq: seq{Elems: copyElems(l.Elems)}} }
func (l List) Render(f Format) string {
	return l.leadFirst("[", "]", f)
}

func (l List) Compare(other Value) Ordering {
	o, ok := other.(List)
	if !ok {
		return Unordered
	}
	return compareSeq(l.Elems, o.Elems)
}

func (l List) Lead() Value        { return l.lead() }
func (l List) Push(x Value) Value { return List{seq: seq{Elems: l.push(x)}} }
func (l List) Drop() Value        { return List{seq: seq{Elems: l.drop()}} }
func (l List) Reverse() Value     { return List{seq: seq{Elems: l.reverse()}} }

func (l List) Add(other Value) Value {
	o, ok := other.(List)
	if !ok {
		return Nothing{}
	}
	return List{seq: seq{Elems: l.add(o.seq)}}
}

func (l List) Get(key Value) Value {
	idx, ok := key.IntegerView()
	if !ok || idx < 0 || idx >= int64(len(l.Elems)) {
		return Nothing{}
	}
	return l.Elems[idx]
}

func (l List) Set(key, val Value) Value {
	idx, ok := key.IntegerView()
	if !ok || idx < 0 {
		return InvalidIndex("list index must be a non-negative integer")
	}
	out := copyElems(l.Elems)
	if idx >= int64(len(out)) {
		grown := make([]Value, idx+1)
		copy(grown, out)
		for i := len(out); i < len(grown); i++ {
			grown[i] = Nothing{}
		}
		out = grown
	}
	out[idx] = val
	return List{seq: seq{Elems: out}}
}

func (l List) Del(key Value) Value {
	idx, ok := key.IntegerView()
	if !ok || idx < 0 || idx >= int64(len(l.Elems)) {
		return InvalidIndex("list index out of range")
	}
	out := make([]Value, 0, len(l.Elems)-1)
	out = append(out, l.Elems[:idx]...)
	out = append(out, l.Elems[idx+1:]...)
	return List{seq: seq{Elems: out}}
}

func (l List) Has(key Value) Value {
	idx, ok := key.IntegerView()
	return FromBool(ok && idx >= 0 && idx < int64(len(l.Elems)))
}
