// Package log builds the [slog.Handler]s behind the --log-level and
// --log-format flags and carries request loggers through [context.Context],
// stamping otel trace IDs when a span is recording.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/trace"

	charmlog "github.com/charmbracelet/log"
)

// Format selects the output encoding of a handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")

	// Levels and Formats list the accepted flag values, in help order.
	Levels  = []string{"error", "warn", "info", "debug"}
	Formats = []string{string(FormatText), string(FormatJSON)}

	levelNames = map[string]slog.Level{
		"error":   slog.LevelError,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
	}
)

// NewHandler builds the handler selected by the level and format flag
// values. Text renders through charmbracelet/log; JSON uses the stdlib
// handler with source positions for machine consumption.
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if f == FormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		}), nil
	}

	return newTextHandler(w, lvl), nil
}

// ParseLevel maps a level name to its [slog.Level]. Matching is
// case-insensitive and accepts "warning" as an alias for "warn".
func ParseLevel(level string) (slog.Level, error) {
	lvl, ok := levelNames[strings.ToLower(level)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}

	return lvl, nil
}

// ParseFormat maps a format name to its [Format], case-insensitively.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	switch f {
	case FormatText, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

func newTextHandler(w io.Writer, level slog.Level) slog.Handler {
	//nolint:gosec // G115: input from ParseLevel.
	lvl := int32(level)

	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
	})
	logger.SetColorProfile(termenv.ColorProfile())

	return logger
}

type contextKey struct{}

// NewContext returns a context carrying logger. [WithContext] recovers it
// anywhere downstream of the dispatch pipeline.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithContext returns the logger carried by ctx, falling back to the
// default logger. When a span is recording it is stamped with a short
// trace_id attribute so entries can be correlated with the trace.
func WithContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(contextKey{}).(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		return logger.With(slog.String("trace_id", sc.TraceID().String()[:8]))
	}

	return logger
}
