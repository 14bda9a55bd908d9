package oliver

import (
	"strings"
	"testing"

	"github.com/nrperez/oliver/internal/value"
)

func TestEvalArithmetic(t *testing.T) {
	r := New(WithMemoryStore())
	defer r.Close()

	got, err := r.Eval(`( '2' + '3' * '4' )`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.RenderPlain(got) != "14" {
		t.Errorf("got %s, want 14", value.RenderPlain(got))
	}
}

func TestEvalPersistsScopeAcrossCalls(t *testing.T) {
	r := New()
	defer r.Close()

	if _, err := r.Eval(`let x = '7'`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.Eval(`x '1' +`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.RenderPlain(got) != "8" {
		t.Errorf("got %s, want 8", value.RenderPlain(got))
	}
}

func TestEvalRecordsSession(t *testing.T) {
	r := New(WithMemoryStore())
	defer r.Close()

	if _, err := r.Eval(`'1' '1' +`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions, err := r.Sessions(0)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if !strings.Contains(sessions[0].Compiled, "add") {
		t.Errorf("expected compiled rendering to mention 'add', got %q", sessions[0].Compiled)
	}
	if sessions[0].Result != "2" {
		t.Errorf("expected recorded result '2', got %q", sessions[0].Result)
	}
}

func TestEvalWithoutStoreHasNoSessions(t *testing.T) {
	r := New()
	defer r.Close()

	if _, err := r.Eval(`'1'`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions, err := r.Sessions(0)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if sessions != nil {
		t.Errorf("expected no sessions without a store, got %v", sessions)
	}
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{"5": 5, "0": 0, "-1": 0, "nope": 0}
	for in, want := range cases {
		if got := ParseLimit(in); got != want {
			t.Errorf("ParseLimit(%q) = %d, want %d", in, got, want)
		}
	}
}
