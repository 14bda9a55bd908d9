package value

// ErrorVal carries a human-readable message. It renders as the message
// itself; the evaluator's no-exceptions flag decides whether one is
// surfaced via emission or dropped silently.
type ErrorVal struct {
	Base
	Message string
}

func NewError(msg string) ErrorVal { return ErrorVal{Message: msg} }

func (e ErrorVal) Kind() Kind           { return KindError }
func (e ErrorVal) IsTruthy() bool       { return false }
func (e ErrorVal) Size() int            { return len(e.Message) }
func (e ErrorVal) Render(Format) string { return e.Message }
func (e ErrorVal) Copy() Value          { return ErrorVal{Message: e.Message} }

func (e ErrorVal) Compare(other Value) Ordering {
	o, ok := other.(ErrorVal)
	if !ok {
		return Unordered
	}
	if e.Message == o.Message {
		return Equal
	}
	return Unordered
}

// Well-known error kinds. Each is surfaced as an ErrorVal whose message
// names the kind; the evaluator wraps these constructors with call-site
// detail (which symbol was undefined, which index was invalid, etc).
func StackOverflow(detail string) ErrorVal   { return NewError("stack-overflow: " + detail) }
func StackUnderflow(detail string) ErrorVal  { return NewError("stack-underflow: " + detail) }
func CodeUnderflow(detail string) ErrorVal   { return NewError("code-underflow: " + detail) }
func UndefVar(name string) ErrorVal          { return NewError("undef_var: " + name) }
func BadAssignment(detail string) ErrorVal   { return NewError("bad-assignment: " + detail) }
func InvalidIndex(detail string) ErrorVal    { return NewError("invalid-index: " + detail) }
func TypeMismatch(detail string) ErrorVal    { return NewError("type-mismatch: " + detail) }
func ParseError(detail string) ErrorVal      { return NewError("parse-error: " + detail) }
