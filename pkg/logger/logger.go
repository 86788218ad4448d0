package logger

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	// stdout is reserved for clipboard payloads.
	SetOutput(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	})
}

// SetOutput replaces the destination of the package logger.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield false.
func ParseLevel(level string) (zerolog.Level, bool) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

func SetLevel(level string) {
	zerologLevel, _ := ParseLevel(level)
	zerolog.SetGlobalLevel(zerologLevel)
}

// LegacyLevel translates the numeric --log-level of the predecessor tool
// (0 = debug ... 4 = critical) to a level name.
func LegacyLevel(n int) string {
	switch {
	case n <= 0:
		return "debug"
	case n == 1:
		return "info"
	case n == 2:
		return "warn"
	default:
		return "error"
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}
