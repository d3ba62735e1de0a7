package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base  zerolog.Logger
	ready bool
)

// Options controls the global logger. Zero values fall back to LOG_LEVEL
// and LOG_PRETTY from the environment.
type Options struct {
	Level   string // debug|info|warn|error (default: info)
	Pretty  bool   // human readable console output instead of JSON
	Service string // added as the "service" field when set
	Output  io.Writer
}

// Init configures the global JSON logger.
func Init(opts Options) {
	if opts.Level == "" {
		opts.Level = getenv("LOG_LEVEL", "info")
	}
	if !opts.Pretty {
		opts.Pretty = strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	base = ctx.Logger().Level(parseLevel(opts.Level))
	ready = true
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if !ready {
		Init(Options{})
	}
	return &base
}

// WithContext stores l in ctx so request scoped fields (request_id) follow
// the call chain into services.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored by WithContext, or the global one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return L()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
