package debug

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	once    sync.Once
	logger  *slog.Logger
	logPath = filepath.Join(os.TempDir(), "courier-debug.log")
)

// SetPath overrides the debug log location. Must be called before the first
// GetLogger call to take effect.
func SetPath(path string) {
	if path != "" {
		logPath = path
	}
}

// GetLogger returns a singleton slog logger instance
func GetLogger() *slog.Logger {
	once.Do(func() {
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
			return
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	})
	return logger
}
