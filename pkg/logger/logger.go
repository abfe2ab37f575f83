package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       string
	Format      string
	Output      io.Writer
}

type ctxKey struct{}

// New builds the process logger. Format "console" switches to the human readable writer.
func New(opts Options) zerolog.Logger {
	var output io.Writer = opts.Output
	if output == nil {
		output = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(ParseLevel(opts.Level))
}

func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// Component returns a child logger tagged the way log lines are grouped, e.g. "[pix][usecase]".
func Component(base zerolog.Logger, area, layer string) zerolog.Logger {
	return base.With().Str("component", "["+area+"]["+layer+"]").Logger()
}

// RequestFields identifies the inbound request a log line belongs to.
type RequestFields struct {
	ID     string
	Method string
	Path   string
}

// WithRequest stores the request fields in ctx so every layer can attach them to its own logger.
func WithRequest(ctx context.Context, f RequestFields) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// FromContext returns def enriched with the request fields carried by ctx, if any. The caller's
// component tag is preserved.
func FromContext(ctx context.Context, def zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return def
	}
	f, ok := ctx.Value(ctxKey{}).(RequestFields)
	if !ok {
		return def
	}
	return def.With().
		Str("request_id", f.ID).
		Str("method", f.Method).
		Str("path", f.Path).
		Logger()
}
