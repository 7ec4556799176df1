package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the singleton logger instance, initializing it on first call from
// the ENV and LOG_LEVEL environment variables.
func Get() *zerolog.Logger {
	once.Do(func() {
		level := parseLevel(os.Getenv("LOG_LEVEL"))
		zerolog.SetGlobalLevel(level)
		logger = build(os.Stderr, os.Getenv("ENV"), level)
	})
	return logger
}

// New creates a logger writing to w. An empty, "development" or "dev" mode gives
// colored console output; any other mode gives JSON with UNIX timestamps.
// level defaults to info when empty or invalid. Only the returned logger's level
// is set; the global level still applies as a floor.
func New(w io.Writer, mode, level string) *zerolog.Logger {
	return build(w, mode, parseLevel(level))
}

func build(w io.Writer, mode string, level zerolog.Level) *zerolog.Logger {
	var zl zerolog.Logger
	if IsDevelopment(mode) {
		zl = newDevelopment(w)
	} else {
		zl = newProduction(w)
	}
	zl = zl.Level(level)
	return &zl
}

// IsDevelopment reports whether mode selects console output.
func IsDevelopment(mode string) bool {
	switch mode {
	case "", "dev", "development":
		return true
	}
	return false
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL \"%s\"; defaulting to 'info'\n", s)
		return zerolog.InfoLevel
	}
	return level
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok {
		return strings.ToUpper(fmt.Sprintf("%s", i))
	}
	switch ll {
	case "trace":
		return colorize("TRC", colorMagenta)
	case "debug":
		return colorize("DBG", colorYellow)
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorRed)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize("FTL", colorRed)
	case "panic":
		return colorize("PNC", colorRed)
	default:
		return colorize(strings.ToUpper(ll), colorBold)
	}
}

func newDevelopment(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:         w,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func newProduction(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).With().Timestamp().Logger()
}
