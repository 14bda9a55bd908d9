package value

import (
	"sort"
	"strings"
)

// Object is an insertion-agnostic mapping from rendered-string keys to
// values, plus an optional Type slot. Go's map has no stable iteration
// order, so Render sorts keys for a deterministic (if arbitrary)
// textual form.
type Object struct {
	Base
	Fields map[string]Value
	Type   string
}

func NewObject() Object { return Object{Fields: make(map[string]Value)} }

func (o Object) Kind() Kind     { return KindObject }
func (o Object) IsTruthy() bool { return len(o.Fields) > 0 }
func (o Object) Size() int      { return len(o.Fields) }

func (o Object) Copy() Value {
	out := make(map[string]Value, len(o.Fields))
	for k, v := range o.Fields {
		out[k] = v.Copy()
	}
	return Object{Fields: out, Type: o.Type}
}

func (o Object) Render(f Format) string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + o.Fields[k].Render(f)
	}
	prefix := ""
	if o.Type != "" {
		prefix = o.Type + " "
	}
	return prefix + "{" + strings.Join(parts, " ") + "}"
}

func (o Object) Compare(other Value) Ordering {
	other2, ok := other.(Object)
	if !ok || len(o.Fields) != len(other2.Fields) || o.Type != other2.Type {
		return Unordered
	}
	for k, v := range o.Fields {
		ov, ok := other2.Fields[k]
		if !ok || v.Compare(ov) != Equal {
			return Unordered
		}
	}
	return Equal
}

func (o Object) Get(key Value) Value {
	k := RenderPlain(key)
	if v, ok := o.Fields[k]; ok {
		return v
	}
	return Nothing{}
}

func (o Object) Set(key, val Value) Value {
	k := RenderPlain(key)
	out := make(map[string]Value, len(o.Fields)+1)
	for fk, fv := range o.Fields {
		out[fk] = fv
	}
	out[k] = val
	return Object{Fields: out, Type: o.Type}
}

func (o Object) Del(key Value) Value {
	k := RenderPlain(key)
	out := make(map[string]Value, len(o.Fields))
	for fk, fv := range o.Fields {
		if fk != k {
			out[fk] = fv
		}
	}
	return Object{Fields: out, Type: o.Type}
}

func (o Object) Has(key Value) Value {
	_, ok := o.Fields[RenderPlain(key)]
	return FromBool(ok)
}
