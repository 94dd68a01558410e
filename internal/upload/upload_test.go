package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateAcceptsPDFWithinLimit(t *testing.T) {
	if err := Validate("thesis.pdf", 5*1024*1024); err != nil {
		t.Errorf("expected valid file, got %v", err)
	}
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	if err := Validate("REPORT.PDF", 1024); err != nil {
		t.Errorf("expected valid file, got %v", err)
	}
	if err := Validate("Mixed.PdF", 1024); err != nil {
		t.Errorf("expected valid file, got %v", err)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	if err := Validate("report.txt", 1024); !errors.Is(err, ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
}

func TestValidateChecksTypeBeforeSize(t *testing.T) {
	// An oversized non-PDF must be rejected for type, not size.
	err := Validate("report.txt", 50*1024*1024)
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("expected ErrNotPDF for oversized txt, got %v", err)
	}
}

func TestValidateRejectsOversizedPDF(t *testing.T) {
	err := Validate("report.pdf", 11*1024*1024)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestValidateAcceptsExactLimit(t *testing.T) {
	if err := Validate("report.pdf", MaxFileSize); err != nil {
		t.Errorf("expected file at exact limit to pass, got %v", err)
	}
	if err := Validate("report.pdf", MaxFileSize+1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge just past limit, got %v", err)
	}
}

func TestNewAttemptRejectsInvalidWithoutTouchingPhase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	attempt, err := NewAttempt(path)
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
	if attempt != nil {
		t.Error("no attempt should exist for an invalid file")
	}
}

func TestNewAttemptStartsIdle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thesis.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	attempt, err := NewAttempt(path)
	if err != nil {
		t.Fatalf("NewAttempt error: %v", err)
	}
	if attempt.Phase != PhaseIdle {
		t.Errorf("expected idle phase, got %v", attempt.Phase)
	}
	if attempt.Name != "thesis.pdf" {
		t.Errorf("expected name thesis.pdf, got %q", attempt.Name)
	}
	if attempt.Size != 8 {
		t.Errorf("expected size 8, got %d", attempt.Size)
	}
}

func TestNewAttemptMissingFile(t *testing.T) {
	if _, err := NewAttempt(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFirstNarrowsSelection(t *testing.T) {
	if _, ok := First(nil); ok {
		t.Error("empty selection should yield nothing")
	}
	path, ok := First([]string{"a.pdf", "b.pdf"})
	if !ok || path != "a.pdf" {
		t.Errorf("expected first candidate a.pdf, got %q ok=%v", path, ok)
	}
}
