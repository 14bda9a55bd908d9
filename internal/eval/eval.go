// Package eval implements Oliver's stack-machine evaluator: a
// single-threaded, iterative interpreter that consumes a compiled
// expression via two explicit stacks (code and data), a lexical scope
// chain, and a small set of opcode-range dispatch tables. It never
// recurses on the host stack for Oliver-level function calls or
// conditionals; both are expressed by rearranging the flat code stack
// and letting the same fetch/dispatch loop keep running.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nrperez/oliver/internal/compiler"
	"github.com/nrperez/oliver/internal/lexer"
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// Option configures an Evaluator at construction time, mirroring the
// functional-options shape used throughout this codebase's public
// surface.
type Option func(*Evaluator)

// WithMaxDepth bounds function-call nesting. Exceeding it produces a
// stack-overflow error value rather than a host stack overflow.
func WithMaxDepth(n int) Option { return func(e *Evaluator) { e.maxDepth = n } }

// WithMaxDataStack bounds the data stack's size.
func WithMaxDataStack(n int) Option { return func(e *Evaluator) { e.maxDataStack = n } }

// WithNoExcept controls whether evaluation errors are surfaced as
// emitted text (false, the default) or absorbed silently (true).
func WithNoExcept(b bool) Option { return func(e *Evaluator) { e.noExcept = b } }

// WithOutput sets the sink `emit`/`endl` write to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option { return func(e *Evaluator) { e.out = w } }

// WithInput sets the source `input` reads lines from. Defaults
// to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(e *Evaluator) { e.in = bufio.NewReader(r) }
}

// Evaluator holds the two stacks, the scope chain, and the small amount
// of runtime configuration (call depth, data-stack size, error policy,
// I/O) needed to run a compiled program.
type Evaluator struct {
	code []value.Value
	data []value.Value

	scopes []map[string]value.Value
	depth  int

	maxDepth     int
	maxDataStack int
	noExcept     bool
	boolNumeric  bool

	out io.Writer
	in  *bufio.Reader
}

// isDataStackSentinel reports whether v is the deque op-call used as a
// value: encountered as a raw (unevaluated) code term in a function's
// argument list or as an assign target, it names the current data
// stack rather than triggering deque's own push-a-snapshot behavior.
func isDataStackSentinel(v value.Value) bool {
	op, ok := v.(value.OpCall)
	return ok && op.Op == token.DEQUE
}

// New builds an Evaluator with one empty top-level scope.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		scopes:       []map[string]value.Value{make(map[string]value.Value)},
		maxDepth:     512,
		maxDataStack: 4096,
		out:          os.Stdout,
		in:           bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run pushes program's elements onto the code stack and executes until
// the code stack is empty. It returns the value left on top of the
// data stack, or Nothing if the data stack ended empty.
func (ev *Evaluator) Run(program value.Expression) value.Value {
	ev.code = append(ev.code, program.Elems...)
	for len(ev.code) > 0 {
		term := ev.popCode()
		ev.step(term)
	}
	if len(ev.data) == 0 {
		return value.Nothing{}
	}
	return ev.data[len(ev.data)-1]
}

// step resolves a symbol (looping until it isn't one), then dispatches
// on the resolved term's kind. An unresolved symbol leaves its
// undef_var error on top of the data stack as the term's result.
func (ev *Evaluator) step(term value.Value) {
	for {
		sym, ok := term.(value.Symbol)
		if !ok {
			break
		}
		v, found := ev.lookup(sym.Name)
		if !found {
			ev.reportError(value.UndefVar(sym.Name))
			return
		}
		term = v
	}
	switch t := term.(type) {
	case value.Expression:
		ev.pushExpression(t)
	case value.Function:
		ev.callFunction(t)
	case value.OpCall:
		ev.dispatch(t)
	default:
		ev.pushData(t)
	}
}

// resolveSymbol loops while the term is a plain symbol, following the
// scope chain innermost-first.
func (ev *Evaluator) resolveSymbol(term value.Value) value.Value {
	for {
		sym, ok := term.(value.Symbol)
		if !ok {
			return term
		}
		v, found := ev.lookup(sym.Name)
		if !found {
			ev.reportError(value.UndefVar(sym.Name))
			return value.Nothing{}
		}
		term = v
	}
}

func (ev *Evaluator) lookup(name string) (value.Value, bool) {
	for i := len(ev.scopes) - 1; i >= 0; i-- {
		if v, ok := ev.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (ev *Evaluator) bindInnermost(name string, v value.Value) {
	ev.scopes[len(ev.scopes)-1][name] = v
}

// specialize captures the current scope chain into a function's
// Captured map (innermost wins), per neg's fundamental contract
// ("specialize functions by binding the current scope") and def's
// ("bind the enclosing scope").
func (ev *Evaluator) specialize(v value.Value) value.Value {
	fn, ok := v.(value.Function)
	if !ok {
		return v
	}
	captured := make(map[string]value.Value, len(fn.Captured))
	for k, val := range fn.Captured {
		captured[k] = val
	}
	for _, scope := range ev.scopes {
		for k, val := range scope {
			captured[k] = val
		}
	}
	return value.NewFunction(fn.Params, fn.Body, captured)
}

// pushExpression unwraps singleton nesting (an expression whose only
// element is itself an expression) before splicing the elements onto
// the code stack.
func (ev *Evaluator) pushExpression(e value.Expression) {
	for len(e.Elems) == 1 {
		inner, ok := e.Elems[0].(value.Expression)
		if !ok {
			break
		}
		e = inner
	}
	ev.code = append(ev.code, e.Elems...)
}

// callFunction instantiates a call frame: binds parameters from the
// code stack, pushes a new innermost scope, and arranges the body to
// run followed by an end_scope sentinel that tears the scope back down.
// Argument pulling stops at an enclosing call's end_scope sentinel (or
// an empty code stack); remaining parameters are bound to Nothing.
func (ev *Evaluator) callFunction(f value.Function) {
	if ev.depth >= ev.maxDepth {
		ev.pushData(value.StackOverflow(fmt.Sprintf("call depth exceeds %d", ev.maxDepth)))
		return
	}
	scope := make(map[string]value.Value, len(f.Captured)+len(f.Params))
	for k, v := range f.Captured {
		scope[k] = v
	}
	endScope := value.OpCall{Op: token.END_SCOPE}
	for _, p := range f.Params {
		if len(ev.code) == 0 || ev.code[len(ev.code)-1] == value.Value(endScope) {
			scope[p] = value.Nothing{}
			continue
		}
		arg := ev.popCode()
		if isDataStackSentinel(arg) {
			scope[p] = value.NewList(ev.dataSnapshot()...)
			continue
		}
		arg = ev.resolveSymbol(arg)
		scope[p] = ev.specialize(arg)
	}
	ev.depth++
	ev.scopes = append(ev.scopes, scope)
	ev.code = append(ev.code, value.OpCall{Op: token.END_SCOPE})
	ev.code = append(ev.code, f.Body.Elems...)
}

func (ev *Evaluator) popCode() value.Value {
	if len(ev.code) == 0 {
		return value.CodeUnderflow("empty code stack")
	}
	v := ev.code[len(ev.code)-1]
	ev.code = ev.code[:len(ev.code)-1]
	return v
}

func (ev *Evaluator) popData() value.Value {
	if len(ev.data) == 0 {
		ev.reportError(value.StackUnderflow("empty data stack"))
		return value.Nothing{}
	}
	v := ev.data[len(ev.data)-1]
	ev.data = ev.data[:len(ev.data)-1]
	return v
}

// dataSnapshot copies the data stack in its own storage order, which
// already matches List's lead-is-last-element convention.
func (ev *Evaluator) dataSnapshot() []value.Value {
	return append([]value.Value(nil), ev.data...)
}

func (ev *Evaluator) pushData(v value.Value) {
	if len(ev.data) >= ev.maxDataStack {
		ev.reportError(value.StackOverflow(fmt.Sprintf("data stack exceeds %d", ev.maxDataStack)))
		return
	}
	ev.data = append(ev.data, v)
}

// reportError implements the no-exceptions policy: the error always
// becomes data (so a program can inspect it), and is additionally
// written to the output sink unless the evaluator was configured with
// WithNoExcept(true).
func (ev *Evaluator) reportError(e value.ErrorVal) {
	if !ev.noExcept {
		fmt.Fprintln(ev.out, e.Message)
	}
	ev.data = append(ev.data, e)
}

// asExpression coerces a popped code term to an Expression, wrapping a
// bare value as a one-element expression so callers that expect a
// pushable body (if/def/let/func all pull expression-shaped operands
// off the code stack) don't need a type switch at every call site.
func asExpression(v value.Value) value.Expression {
	if e, ok := v.(value.Expression); ok {
		return e
	}
	return value.NewExpression(v)
}

// reduce fully evaluates a single raw term (as pulled off the code
// stack by the let fundamental) down to one data
// value, reusing the same code/data stacks and scope chain: it splices
// the term in as if it were the next thing to run, then drives the
// ordinary fetch/dispatch loop until the code stack returns to its
// prior depth, and hands back whatever landed on top of data. This is
// the same iterative machine Run uses, just bounded to one term
// instead of the whole program.
func (ev *Evaluator) reduce(term value.Value) value.Value {
	term = ev.resolveSymbol(term)
	base := len(ev.code)
	switch t := term.(type) {
	case value.Expression:
		ev.pushExpression(t)
	case value.Function:
		ev.callFunction(t)
	case value.OpCall:
		ev.dispatch(t)
		return ev.popData()
	default:
		return term
	}
	for len(ev.code) > base {
		ev.step(ev.popCode())
	}
	return ev.popData()
}

// compileLine turns a freshly read source line into an executable
// expression, used by the input fundamental.
func compileLine(line string) (value.Expression, error) {
	toks, err := lexer.Tokenize(strings.NewReader(line))
	if err != nil {
		return value.Expression{}, err
	}
	return compiler.Compile(toks)
}
