package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Init sets the minimum level and switches to console output when pretty
// is true. Unknown levels fall back to info.
func Init(level string, pretty bool) {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetOutput redirects logs, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

func output(e *zerolog.Event, msg string, fields Fields) {
	if fields != nil {
		e = e.Fields(map[string]interface{}(fields))
	}
	e.Msg(msg)
}

func Debug(msg string, fields Fields) {
	output(current().Debug(), msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(current().Info(), msg, fields)
}

func Warn(msg string, fields Fields) {
	output(current().Warn(), msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output(current().Error().Err(err), msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output(current().Fatal().Err(err), msg, fields)
}
