// Package logging configures structured logging with a tint handler. The
// terminal belongs to the tview application while it runs, so log output
// goes to a file under the xdg state directory instead of stderr.
//
// The LOG_LEVEL environment variable selects the level: debug, info, warn,
// error (default: info).
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"

	"github.com/adrg/xdg"
	"github.com/lmittmann/tint"
)

// Setup opens the application log file and returns a logger writing to it,
// along with a close function for shutdown.
func Setup() (*slog.Logger, func(), error) {
	dir := path.Join(xdg.StateHome, c.DefaultDataParentDir)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make all directories %v: %w", dir, err)
	}

	file := path.Join(dir, c.DefaultLogFile)

	//nolint:gosec
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %v: %w", file, err)
	}

	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      levelFromEnv(),
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}))

	return logger, func() { _ = f.Close() }, nil
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
