// Package logger configures the application logger. The TUI owns
// stdout, so logs go to a file under the data directory instead.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup initializes a zerolog logger writing to the given file path.
//   - path: log file location; its parent directory is created as needed.
//     An empty path disables logging entirely.
//   - level: log level string (trace, debug, info, warn, error)
//
// The returned closer flushes and releases the log file; call it on
// shutdown. Setup never fails: if the file cannot be opened, logging is
// silently disabled rather than breaking the program.
func Setup(path, level string) (zerolog.Logger, func() error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writer io.Writer = io.Discard
	closer := func() error { return nil }

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, ferr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if ferr == nil {
				writer = f
				closer = f.Close
			}
		}
	}

	log := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return log, closer
}
