package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "pdfbrief", "credentials.json"))
}

func TestLoadMissingFileReturnsEmptyToken(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token for missing file, got %q", token)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("tok1"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "tok1" {
		t.Errorf("expected token %q, got %q", "tok1", token)
	}
}

func TestSaveUsesOwnerOnlyPermissions(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("secret"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file mode 0600, got %o", perm)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("tok1"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("first Clear error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "" {
		t.Errorf("expected no token after Clear, got %q", token)
	}
}

func TestSaveOverwritesPreviousToken(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("old"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := s.Save("new"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "new" {
		t.Errorf("expected token %q, got %q", "new", token)
	}
}
