package eval

import (
	"strings"
	"testing"

	"github.com/nrperez/oliver/internal/compiler"
	"github.com/nrperez/oliver/internal/lexer"
	"github.com/nrperez/oliver/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	toks, err := lexer.Tokenize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	expr, err := compiler.Compile(toks)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return New().Run(expr)
}

func TestArithmeticInfixToPostfix(t *testing.T) {
	// No operator precedence: chained infix folds strictly left-to-right,
	// so this is (2+3)*4, not 2+(3*4).
	got := run(t, `( '2' + '3' * '4' )`)
	if value.RenderPlain(got) != "20" {
		t.Errorf("got %s, want 20", value.RenderPlain(got))
	}
}

func TestLetBindingAndLookup(t *testing.T) {
	got := run(t, `let x = '7' x '1' +`)
	if value.RenderPlain(got) != "8" {
		t.Errorf("got %s, want 8", value.RenderPlain(got))
	}
}

func TestConditional(t *testing.T) {
	got := run(t, `if ( '3' > '2' ) : "yes" ; else : "no" ;`)
	txt, ok := got.(value.Text)
	if !ok || txt.Val != "yes" {
		t.Errorf("got %#v, want text \"yes\"", got)
	}
}

func TestFunctionDefinitionAndApplication(t *testing.T) {
	got := run(t, `def sq ( n ) : n n * ; sq '5'`)
	if value.RenderPlain(got) != "25" {
		t.Errorf("got %s, want 25", value.RenderPlain(got))
	}
}

func TestLetBindingFunctionValueDoesNotInvokeIt(t *testing.T) {
	got := run(t, `let f = func ( n ) : n n * ; f '6'`)
	if value.RenderPlain(got) != "36" {
		t.Errorf("got %s, want 36", value.RenderPlain(got))
	}
}

func TestLetIndexedRewritesToSet(t *testing.T) {
	got := run(t, `let o = { "k" "v" } let o "k" = "updated" o "k" get`)
	txt, ok := got.(value.Text)
	if !ok || txt.Val != "updated" {
		t.Errorf("got %#v, want text \"updated\"", got)
	}
}

func TestObjectSetGet(t *testing.T) {
	got := run(t, `let o = { "k" "v" } o "k" get`)
	txt, ok := got.(value.Text)
	if !ok || txt.Val != "v" {
		t.Errorf("got %#v, want text \"v\"", got)
	}
}

func TestUndefinedVariableEmitsErrorAndDrainsCode(t *testing.T) {
	var out strings.Builder
	toks, err := lexer.Tokenize(strings.NewReader("y"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	expr, err := compiler.Compile(toks)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ev := New(WithOutput(&out))
	got := ev.Run(expr)

	if !strings.Contains(out.String(), "undef_var") {
		t.Errorf("expected emitted output to mention undef_var, got %q", out.String())
	}
	if errVal, ok := got.(value.ErrorVal); !ok || !strings.Contains(errVal.Message, "undef_var") {
		t.Errorf("expected data stack top to be an undef_var error, got %#v", got)
	}
	if len(ev.code) != 0 {
		t.Errorf("expected empty code stack after run, got %d elements", len(ev.code))
	}
}

func TestEmptyExpressionEvaluatesToNothing(t *testing.T) {
	got := New().Run(value.NewExpression())
	if _, ok := got.(value.Nothing); !ok {
		t.Errorf("got %#v, want Nothing", got)
	}
}

func TestRecursionDepthLimit(t *testing.T) {
	ev := New(WithMaxDepth(4))
	toks, _ := lexer.Tokenize(strings.NewReader(`def loop ( n ) : n loop ; loop '1'`))
	expr, _ := compiler.Compile(toks)
	got := ev.Run(expr)
	errVal, ok := got.(value.ErrorVal)
	if !ok || !strings.Contains(errVal.Message, "stack-overflow") {
		t.Errorf("got %#v, want stack-overflow error", got)
	}
}

func TestEmitAndEndl(t *testing.T) {
	var out strings.Builder
	toks, err := lexer.Tokenize(strings.NewReader(`"hi" emit endl`))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	expr, err := compiler.Compile(toks)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	New(WithOutput(&out)).Run(expr)
	if out.String() != "hi\n" {
		t.Errorf("got %q, want \"hi\\n\"", out.String())
	}
}
