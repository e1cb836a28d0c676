package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu    sync.RWMutex
	base  = zerolog.New(io.Discard)
	debug bool
)

// Init configures JSONL logging into <baseDir>/app.log.
// When alsoStderr is set every line is mirrored to stderr.
func Init(baseDir string, alsoStderr bool) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(baseDir, "app.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	var out io.Writer = f
	if alsoStderr {
		out = zerolog.MultiLevelWriter(f, os.Stderr)
	}
	SetOutput(out)
	return nil
}

// SetOutput redirects log lines to w. Tests use it to capture output.
func SetOutput(w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	mu.Lock()
	base = zerolog.New(w).With().Timestamp().Logger()
	mu.Unlock()
}

func SetDebug(enabled bool) {
	mu.Lock()
	debug = enabled
	mu.Unlock()
}

func Debug(msg string, fields map[string]any) {
	mu.RLock()
	enabled := debug
	mu.RUnlock()
	if !enabled {
		return
	}
	write(zerolog.DebugLevel, msg, fields)
}

func Info(msg string, fields map[string]any) {
	write(zerolog.InfoLevel, msg, fields)
}

func Warn(msg string, fields map[string]any) {
	write(zerolog.WarnLevel, msg, fields)
}

func Error(msg string, fields map[string]any) {
	write(zerolog.ErrorLevel, msg, fields)
}

func write(level zerolog.Level, msg string, fields map[string]any) {
	mu.RLock()
	l := base
	mu.RUnlock()
	ev := l.WithLevel(level)
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}
