package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Writer emits workflow outputs. Inside GitHub Actions it appends to the
// file named by GITHUB_OUTPUT, everywhere else it writes to fallback.
type Writer struct {
	logger   zerolog.Logger
	fallback io.Writer
}

func New(logger zerolog.Logger, fallback io.Writer) *Writer {
	return &Writer{logger: logger, fallback: fallback}
}

func (w *Writer) Emit(name, value string) error {
	w.logger.Info().Str("name", name).Str("value", value).Msg("output")

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		if _, err := fmt.Fprintf(w.fallback, "%s=%s\n", name, value); err != nil {
			return fmt.Errorf("failed to write output %s: %w", name, err)
		}

		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}

	return nil
}
