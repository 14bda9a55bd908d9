package value

// Nothing is the singleton absence value. It is falsy, unordered
// against everything (including another Nothing), and size 0.
type Nothing struct{ Base }

func (Nothing) Kind() Kind                { return KindNothing }
func (Nothing) Render(Format) string      { return "nothing" }
func (Nothing) Copy() Value               { return Nothing{} }
func (Nothing) Compare(Value) Ordering    { return Unordered }
