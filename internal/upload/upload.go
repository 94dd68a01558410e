package upload

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxFileSize is the largest PDF the service accepts.
const MaxFileSize = 10 * 1024 * 1024

var (
	// ErrNotPDF means the candidate file does not carry a .pdf name.
	ErrNotPDF = errors.New("only PDF files are allowed")
	// ErrTooLarge means the candidate file exceeds MaxFileSize.
	ErrTooLarge = errors.New("file size must be less than 10MB")
)

// Phase tracks one upload interaction. The value is view-local: it is
// discarded on success and reset to idle on failure so the user can retry.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseUploading
	PhaseSucceeded
	PhaseFailed
)

// Attempt is the ephemeral state of a single upload interaction.
type Attempt struct {
	Path  string
	Name  string
	Size  int64
	Phase Phase
}

// Validate checks a candidate file, order-sensitive and short-circuiting:
// the name is checked before the size, so a mis-typed file is rejected for
// type regardless of how large it is. Pure: no I/O.
func Validate(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return ErrNotPDF
	}
	if size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// NewAttempt stats the file at path and validates it. Only a passing
// candidate produces an attempt; nothing is ever uploaded for an invalid
// file.
func NewAttempt(path string) (*Attempt, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if err := Validate(info.Name(), info.Size()); err != nil {
		return nil, err
	}
	return &Attempt{
		Path:  path,
		Name:  info.Name(),
		Size:  info.Size(),
		Phase: PhaseIdle,
	}, nil
}

// First narrows a multi-file selection to its first candidate, matching the
// single-file upload policy.
func First(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}
