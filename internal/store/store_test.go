package store

import (
	"os"
	"testing"
)

func TestMemorySessions(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	if err := s.RecordSession(Session{ID: "a", Source: "1 1 +", Result: "2", CreatedAt: "2026-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if err := s.RecordSession(Session{ID: "b", Source: "2 2 +", Result: "4", CreatedAt: "2026-01-01T00:00:01Z"}); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	got, err := s.GetSession("a")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Result != "2" {
		t.Errorf("expected result '2', got %q", got.Result)
	}

	list, err := s.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" {
		t.Errorf("expected newest-first [b, a], got %+v", list)
	}

	if _, err := s.GetSession("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryProgramCache(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	if _, ok, err := s.CachedProgram("1 1 +"); ok || err != nil {
		t.Fatalf("expected cache miss, got ok=%v err=%v", ok, err)
	}
	if err := s.CacheProgram("1 1 +", "1 1 add"); err != nil {
		t.Fatalf("CacheProgram failed: %v", err)
	}
	compiled, ok, err := s.CachedProgram("1 1 +")
	if err != nil || !ok || compiled != "1 1 add" {
		t.Errorf("expected cache hit '1 1 add', got %q ok=%v err=%v", compiled, ok, err)
	}
}

func TestSQLiteSessions(t *testing.T) {
	f, err := os.CreateTemp("", "oliver-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	if err := s.RecordSession(Session{ID: "a", Source: "1 1 +", Tokens: "( 1 1 + )", Compiled: "1 1 add", Result: "2", CreatedAt: "2026-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	got, err := s.GetSession("a")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Result != "2" || got.Compiled != "1 1 add" {
		t.Errorf("unexpected session: %+v", got)
	}

	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("failed to reopen sqlite store: %v", err)
	}
	defer s2.Close()

	got, err = s2.GetSession("a")
	if err != nil || got.Result != "2" {
		t.Errorf("expected session to survive reopen, got %+v err=%v", got, err)
	}
}

func TestSQLiteProgramCache(t *testing.T) {
	f, err := os.CreateTemp("", "oliver-cache-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	if err := s.CacheProgram("2 3 *", "2 3 mul"); err != nil {
		t.Fatalf("CacheProgram: %v", err)
	}
	if err := s.CacheProgram("2 3 *", "2 3 mul2"); err != nil {
		t.Fatalf("CacheProgram overwrite: %v", err)
	}
	compiled, ok, err := s.CachedProgram("2 3 *")
	if err != nil || !ok || compiled != "2 3 mul2" {
		t.Errorf("expected updated cache entry, got %q ok=%v err=%v", compiled, ok, err)
	}
}
