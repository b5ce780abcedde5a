package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const logPrefix = "popcorn"

// setupLogging points the standard logger at path. The TUI owns the
// terminal, so with no path configured log output is discarded.
func setupLogging(path string) (func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, logPrefix)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
