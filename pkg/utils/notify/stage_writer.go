package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparator wraps an io.Writer and writes a blank line before every
// title once something has been written.
//
//	out := notify.NewStageSeparator(cmd.OutOrStdout())
//	cmd.SetOut(out)
type StageSeparator struct {
	mu         sync.Mutex
	underlying io.Writer
	hasWritten bool
}

// NewStageSeparator wraps underlying.
func NewStageSeparator(underlying io.Writer) *StageSeparator {
	return &StageSeparator{underlying: underlying}
}

// Write implements io.Writer.
func (w *StageSeparator) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && isTitle(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", err)
		}
	}

	n, err := w.underlying.Write(data)
	if n > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return n, fmt.Errorf("failed to write data: %w", err)
	}

	return n, nil
}

// Unwrap returns the wrapped writer.
func (w *StageSeparator) Unwrap() io.Writer {
	return w.underlying
}

// isTitle reports whether data starts with a pictographic emoji rather than
// one of the message symbols.
func isTitle(data []byte) bool {
	first, _ := utf8.DecodeRune(data)

	switch first {
	case utf8.RuneError, '►', '✔', '✗', '⚠', 'ℹ', '⏲':
		return false
	}

	return unicode.Is(unicode.So, first)
}
