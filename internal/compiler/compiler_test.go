package compiler

import (
	"strings"
	"testing"

	"github.com/nrperez/oliver/internal/lexer"
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

func compile(t *testing.T, src string) value.Expression {
	t.Helper()
	toks, err := lexer.Tokenize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	expr, err := Compile(toks)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return expr
}

func TestNumberLiteral(t *testing.T) {
	expr := compile(t, "'5'")
	if len(expr.Elems) != 1 {
		t.Fatalf("got %d elems, want 1: %+v", len(expr.Elems), expr.Elems)
	}
	n, ok := expr.Elems[0].(value.Number)
	if !ok {
		t.Fatalf("got %#v, want value.Number", expr.Elems[0])
	}
	if n.Render(value.Format{}) != "5" {
		t.Errorf("got %s, want 5", n.Render(value.Format{}))
	}
}

func TestInfixToPostfixReordering(t *testing.T) {
	// "( a + b )" compiles to a nested expression holding the postfix
	// run a b add. Storage order is reversed (logical lead is the slice
	// tail, the first term to run), so the '+' opcall, which runs last,
	// sits at index 0.
	expr := compile(t, "( a + b )")
	if len(expr.Elems) != 1 {
		t.Fatalf("got %d elems, want 1: %+v", len(expr.Elems), expr.Elems)
	}
	inner, ok := expr.Elems[0].(value.Expression)
	if !ok || len(inner.Elems) != 3 {
		t.Fatalf("got %#v, want a 3-element value.Expression", expr.Elems[0])
	}
	if op, ok := inner.Elems[0].(value.OpCall); !ok || op.Op != token.ADD {
		t.Errorf("got %#v at index 0, want the add OpCall (the '+' operator)", inner.Elems[0])
	}
}

func TestBooleanAndNothingWords(t *testing.T) {
	expr := compile(t, "true false nothing")
	if len(expr.Elems) != 3 {
		t.Fatalf("got %d elems, want 3: %+v", len(expr.Elems), expr.Elems)
	}
	// storage order is reversed relative to source, so index 0 is
	// "nothing", the last term read.
	if _, ok := expr.Elems[0].(value.Nothing); !ok {
		t.Errorf("got %#v, want value.Nothing", expr.Elems[0])
	}
}

func TestListLiteralReversesElements(t *testing.T) {
	expr := compile(t, "[ '1' '2' '3' ]")
	if len(expr.Elems) != 1 {
		t.Fatalf("got %d elems, want 1", len(expr.Elems))
	}
	list, ok := expr.Elems[0].(value.List)
	if !ok {
		t.Fatalf("got %#v, want value.List", expr.Elems[0])
	}
	// storage is reversed to [3 2 1], so the lead (slice tail) is the
	// first element read, 1.
	if list.Lead().Render(value.Format{}) != "1" {
		t.Errorf("got lead %s, want 1", list.Lead().Render(value.Format{}))
	}
}

func TestObjectLiteral(t *testing.T) {
	expr := compile(t, `{ "k" "v" }`)
	if len(expr.Elems) != 1 {
		t.Fatalf("got %d elems, want 1", len(expr.Elems))
	}
	obj, ok := expr.Elems[0].(value.Object)
	if !ok {
		t.Fatalf("got %#v, want value.Object", expr.Elems[0])
	}
	got := obj.Get(value.NewText("k"))
	txt, ok := got.(value.Text)
	if !ok || txt.Val != "v" {
		t.Errorf("got %#v, want text \"v\"", got)
	}
}

func TestUnmatchedClosingTokenErrors(t *testing.T) {
	toks, err := lexer.Tokenize(strings.NewReader(")"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	// drop the implicit outer '(' so the interior ')' is the offending
	// one — Tokenize itself always wraps input, so build the token
	// slice by hand to exercise the unmatched-closer path directly.
	stray := append([]lexer.Token{}, toks[1:]...)
	if _, err := Compile(stray); err == nil {
		t.Errorf("expected an error compiling a stray closing token")
	}
}

func TestVariableNameCompilesToSymbol(t *testing.T) {
	expr := compile(t, "myVar")
	if len(expr.Elems) != 1 {
		t.Fatalf("got %d elems, want 1", len(expr.Elems))
	}
	sym, ok := expr.Elems[0].(value.Symbol)
	if !ok || sym.Name != "myVar" {
		t.Errorf("got %#v, want Symbol{myVar}", expr.Elems[0])
	}
}
