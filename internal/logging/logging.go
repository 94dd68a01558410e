package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The TUI owns the terminal, so log output
// goes to the configured file; with no file configured the logger is a
// no-op. The returned closer is nil when nothing was opened.
func New(file, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	if file == "" {
		return zerolog.Nop(), nil, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).With().
		Timestamp().
		Logger().
		Level(lvl)

	return logger, f, nil
}
