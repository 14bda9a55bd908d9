package value

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Number is a complex-valued double, matching host complex-double
// semantics. It is truthy iff non-zero and not NaN. Ordering
// is defined only when both operands are real and non-NaN; otherwise
// Compare returns Unordered.
type Number struct {
	Base
	Val complex128
}

// NewReal builds a purely real number.
func NewReal(r float64) Number { return Number{Val: complex(r, 0)} }

// NewComplex builds a number from real and imaginary parts.
func NewComplex(re, im float64) Number { return Number{Val: complex(re, im)} }

// NaNNumber is the sentinel result of an operation defined as nan on
// complex/NaN input (division by zero, pow/fdiv/rem on complex
// operands).
func NaNNumber() Number { return Number{Val: complex(math.NaN(), math.NaN())} }

func (n Number) isNaN() bool {
	return math.IsNaN(real(n.Val)) || math.IsNaN(imag(n.Val))
}

func (n Number) isReal() bool { return imag(n.Val) == 0 }

func (n Number) Kind() Kind { return KindNumber }

func (n Number) IsTruthy() bool {
	return !n.isNaN() && n.Val != 0
}

func (n Number) IntegerView() (int64, bool) {
	if !n.isReal() || n.isNaN() {
		return 0, false
	}
	r := real(n.Val)
	if r != math.Trunc(r) {
		return 0, false
	}
	if r < math.MinInt64 || r > math.MaxInt64 {
		return 0, false
	}
	return int64(r), true
}

func (n Number) Copy() Value { return Number{Val: n.Val} }

func (n Number) Compare(other Value) Ordering {
	o, ok := other.(Number)
	if !ok || !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() {
		return Unordered
	}
	a, b := real(n.Val), real(o.Val)
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func (n Number) Plus() Value  { return n }
func (n Number) Minus() Value { return Number{Val: -n.Val} }

func (n Number) Add(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	return Number{Val: n.Val + o.Val}
}

func (n Number) Sub(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	return Number{Val: n.Val - o.Val}
}

func (n Number) Mul(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	return Number{Val: n.Val * o.Val}
}

func (n Number) Div(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if n.isNaN() || o.isNaN() || o.Val == 0 {
		return NaNNumber()
	}
	return Number{Val: n.Val / o.Val}
}

func (n Number) Mod(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() || real(o.Val) == 0 {
		return NaNNumber()
	}
	return NewReal(math.Mod(real(n.Val), real(o.Val)))
}

// FloorDiv implements the // / fdiv operator.
func (n Number) FloorDiv(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() || real(o.Val) == 0 {
		return NaNNumber()
	}
	return NewReal(math.Floor(real(n.Val) / real(o.Val)))
}

// Rem implements the %% / rem operator: the remainder of floor division.
func (n Number) Rem(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() || real(o.Val) == 0 {
		return NaNNumber()
	}
	a, b := real(n.Val), real(o.Val)
	return NewReal(a - b*math.Floor(a/b))
}

func (n Number) Pow(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() {
		// complex operands treat pow as nan, not a zero placeholder.
		return NaNNumber()
	}
	return NewReal(math.Pow(real(n.Val), real(o.Val)))
}

func (n Number) Root(other Value) Value {
	o, ok := other.(Number)
	if !ok {
		return Nothing{}
	}
	if !n.isReal() || !o.isReal() || n.isNaN() || o.isNaN() || real(o.Val) == 0 {
		return NaNNumber()
	}
	deg := real(o.Val)
	base := real(n.Val)
	if base < 0 && math.Mod(deg, 2) == 0 {
		return NaNNumber()
	}
	sign := 1.0
	if base < 0 {
		sign = -1
		base = -base
	}
	return NewReal(sign * math.Pow(base, 1/deg))
}

func (n Number) RealPart() Value { return NewReal(real(n.Val)) }
func (n Number) ImagPart() Value { return NewReal(imag(n.Val)) }

func (n Number) Abs() Value {
	if n.isNaN() {
		return NaNNumber()
	}
	return NewReal(cmplx.Abs(n.Val))
}

func (n Number) Render(f Format) string {
	if n.isNaN() {
		return "nan"
	}
	re, im := real(n.Val), imag(n.Val)
	if im != 0 {
		sign := "+"
		if im < 0 {
			sign = "-"
			im = -im
		}
		return renderFloat(re, f) + sign + renderFloat(im, f) + "i"
	}
	return renderFloat(re, f)
}

func renderFloat(v float64, f Format) string {
	prec := -1
	if f.HasPrecision {
		prec = f.Precision
	}
	var s string
	switch f.Type {
	case 'x', 'X':
		s = strconv.FormatInt(int64(v), 16)
		if f.Type == 'X' {
			s = strings.ToUpper(s)
		}
		if f.Alt {
			s = "0x" + s
		}
	case 'o', 'O':
		s = strconv.FormatInt(int64(v), 8)
		if f.Alt {
			s = "0o" + s
		}
	case 'b', 'B':
		s = strconv.FormatInt(int64(v), 2)
		if f.Alt {
			s = "0b" + s
		}
	case 'e', 'E':
		s = strconv.FormatFloat(v, byte(f.Type), maxInt(prec, 6), 64)
	case 'f', 'F':
		s = strconv.FormatFloat(v, 'f', maxInt(prec, 6), 64)
	case 'd', 'D':
		s = strconv.FormatInt(int64(v), 10)
	case 'g', 'G':
		s = strconv.FormatFloat(v, byte(f.Type), prec, 64)
	default:
		s = strconv.FormatFloat(v, 'g', prec, 64)
	}
	if f.Sign == '+' && v >= 0 {
		s = "+" + s
	}
	return f.pad(s, true)
}

func maxInt(a, b int) int {
	if a < 0 {
		return b
	}
	return a
}
