// Package oliver is the public embedding API for the Oliver
// interpreter: a Runtime wraps a compiler+evaluator pair, optionally
// backed by a session store, behind a small functional-options surface.
package oliver

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nrperez/oliver/internal/compiler"
	"github.com/nrperez/oliver/internal/eval"
	"github.com/nrperez/oliver/internal/lexer"
	"github.com/nrperez/oliver/internal/store"
	"github.com/nrperez/oliver/internal/value"
)

// Runtime is the Oliver interpreter runtime: one evaluator with a
// persistent scope chain across calls to Eval, plus an optional
// session store recording what ran.
type Runtime struct {
	evaluator *eval.Evaluator
	store     store.Store
	compiled  map[string]compiledSource

	maxDepth     int
	maxDataStack int
	noExcept     bool
	out          io.Writer
	in           io.Reader
}

// compiledSource is what Runtime.Eval caches per distinct source
// string: the compiled expression tree it runs and the token dump it
// records for that source, so a cache hit still has a token dump to
// hand the store without re-tokenizing.
type compiledSource struct {
	program value.Expression
	tokens  string
}

// New builds a Runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		maxDepth:     512,
		maxDataStack: 4096,
		out:          os.Stdout,
		in:           os.Stdin,
		compiled:     make(map[string]compiledSource),
	}
	for _, opt := range opts {
		opt(r)
	}

	evalOpts := []eval.Option{
		eval.WithMaxDepth(r.maxDepth),
		eval.WithMaxDataStack(r.maxDataStack),
		eval.WithNoExcept(r.noExcept),
		eval.WithOutput(r.out),
		eval.WithInput(r.in),
	}
	r.evaluator = eval.New(evalOpts...)
	return r
}

// Eval tokenizes, compiles, and runs source against the runtime's
// persistent evaluator state, returning the value left on top of the
// data stack. Re-evaluating source already seen this process skips
// tokenizing/compiling and reuses the cached expression tree. When a
// session store is configured, every run (source, its token dump, its
// compiled postfix rendering, and the result) is also recorded under a
// fresh session id.
func (r *Runtime) Eval(source string) (value.Value, error) {
	cs, cached := r.compiled[source]
	if !cached {
		toks, err := lexer.Tokenize(strings.NewReader(source))
		if err != nil {
			return nil, fmt.Errorf("oliver: tokenize: %w", err)
		}
		program, err := compiler.Compile(toks)
		if err != nil {
			return nil, fmt.Errorf("oliver: compile: %w", err)
		}
		cs = compiledSource{program: program, tokens: renderTokens(toks)}
		r.compiled[source] = cs
	}

	result := r.evaluator.Run(cs.program)

	if r.store != nil {
		compiledRendering := value.RenderPlain(cs.program)
		_ = r.store.CacheProgram(source, compiledRendering)
		_ = r.store.RecordSession(store.Session{
			ID:        uuid.New().String(),
			Source:    source,
			Tokens:    cs.tokens,
			Compiled:  compiledRendering,
			Result:    value.RenderPlain(result),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return result, nil
}

// EvalFile reads path and evaluates its contents.
func (r *Runtime) EvalFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Eval(string(data))
}

// Sessions returns the most recently recorded sessions (newest first),
// or nil when no store is configured.
func (r *Runtime) Sessions(limit int) ([]store.Session, error) {
	if r.store == nil {
		return nil, nil
	}
	return r.store.ListSessions(limit)
}

// Close releases the runtime's store, if any.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// renderTokens produces the debug token dump §6 of the language design
// names, one token's text per space-separated field, quoting literal
// text so a reader can tell a Quote token's delimiter from a bare word.
func renderTokens(toks []lexer.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		if t.Kind == lexer.Quote {
			parts[i] = string(t.Delim) + t.Text + string(t.Delim)
			continue
		}
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// ParseLimit parses a -history/-n style limit flag, treating a
// negative or non-numeric value as "no limit" (0).
func ParseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
