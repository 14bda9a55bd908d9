package oliver

import (
	"io"

	"github.com/nrperez/oliver/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore backs the runtime's session log and program cache
// with a SQLite file at path. Errors opening the file are swallowed,
// leaving the runtime storeless rather than failing New.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err == nil {
			r.store = s
		}
	}
}

// WithMemoryStore backs the runtime with an in-memory session log,
// useful for tests and for `-history` within a single REPL run.
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithOutput sets the sink `emit`/`endl` write to.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) { r.out = w }
}

// WithInput sets the source `input` reads lines from.
func WithInput(rd io.Reader) Option {
	return func(r *Runtime) { r.in = rd }
}

// WithMaxDepth bounds function-call nesting.
func WithMaxDepth(n int) Option {
	return func(r *Runtime) { r.maxDepth = n }
}

// WithMaxDataStack bounds the data stack's size.
func WithMaxDataStack(n int) Option {
	return func(r *Runtime) { r.maxDataStack = n }
}

// WithNoExcept controls whether evaluation errors are surfaced as
// emitted text (false, the default) or absorbed silently (true).
func WithNoExcept(b bool) Option {
	return func(r *Runtime) { r.noExcept = b }
}
