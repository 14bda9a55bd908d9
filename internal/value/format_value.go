package value

// FormatValue is the runtime value produced by a format literal
// (backtick-delimited source text). It wraps the parsed Format
// directives and, when passed as the format argument to another
// value's Render, controls that value's textual form.
type FormatValue struct {
	Base
	Spec   string
	Parsed Format
}

func NewFormatValue(spec string) FormatValue {
	return FormatValue{Spec: spec, Parsed: ParseFormat(spec)}
}

func (fv FormatValue) Kind() Kind           { return KindFormat }
func (fv FormatValue) IsTruthy() bool       { return fv.Spec != "" }
func (fv FormatValue) Size() int            { return len(fv.Spec) }
func (fv FormatValue) Render(Format) string { return "`" + fv.Spec + "`" }
func (fv FormatValue) Copy() Value          { return FormatValue{Spec: fv.Spec, Parsed: fv.Parsed} }

func (fv FormatValue) Compare(other Value) Ordering {
	o, ok := other.(FormatValue)
	if !ok {
		return Unordered
	}
	if fv.Spec == o.Spec {
		return Equal
	}
	return Unordered
}
