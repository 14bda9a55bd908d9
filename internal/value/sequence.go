package value

import "strings"

// seq holds behavior shared between Expression and List: both keep
// elements in storage order with the logical "lead" (top) always equal
// to the last element of the underlying slice. Push appends physically;
// Drop trims the tail; Reverse flips the whole slice.
type seq struct {
	Elems []Value
}

func (s seq) size() int { return len(s.Elems) }

func (s seq) lead() Value {
	if len(s.Elems) == 0 {
		return Nothing{}
	}
	return s.Elems[len(s.Elems)-1]
}

func (s seq) push(x Value) []Value {
	out := make([]Value, len(s.Elems)+1)
	copy(out, s.Elems)
	out[len(s.Elems)] = x
	return out
}

func (s seq) drop() []Value {
	if len(s.Elems) == 0 {
		return nil
	}
	out := make([]Value, len(s.Elems)-1)
	copy(out, s.Elems[:len(s.Elems)-1])
	return out
}

func (s seq) reverse() []Value {
	out := make([]Value, len(s.Elems))
	for i, v := range s.Elems {
		out[len(s.Elems)-1-i] = v
	}
	return out
}

func (s seq) add(other seq) []Value {
	out := make([]Value, 0, len(s.Elems)+len(other.Elems))
	out = append(out, s.Elems...)
	out = append(out, other.Elems...)
	return out
}

// leadFirst renders elements in lead-first order (reverse of storage).
func (s seq) leadFirst(open, close string, f Format) string {
	parts := make([]string, len(s.Elems))
	for i, v := range s.Elems {
		parts[len(s.Elems)-1-i] = v.Render(f)
	}
	return open + strings.Join(parts, " ") + close
}

func compareSeq(a, b []Value) Ordering {
	if len(a) != len(b) {
		return Unordered
	}
	for i := range a {
		if a[i].Compare(b[i]) != Equal {
			return Unordered
		}
	}
	return Equal
}

func copyElems(elems []Value) []Value {
	out := make([]Value, len(elems))
	for i, v := range elems {
		out[i] = v.Copy()
	}
	return out
}
