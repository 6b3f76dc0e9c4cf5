package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdbg-dev/kdbg/pkg/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    slog.Level
		wantErr error
	}{
		"error":           {input: "error", want: slog.LevelError},
		"warn":            {input: "warn", want: slog.LevelWarn},
		"warning alias":   {input: "warning", want: slog.LevelWarn},
		"info":            {input: "info", want: slog.LevelInfo},
		"debug":           {input: "debug", want: slog.LevelDebug},
		"mixed case":      {input: "DeBuG", want: slog.LevelDebug},
		"unknown":         {input: "trace", wantErr: log.ErrUnknownLogLevel},
		"empty":           {input: "", wantErr: log.ErrUnknownLogLevel},
		"numeric garbage": {input: "42", wantErr: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    log.Format
		wantErr error
	}{
		"text":       {input: "text", want: log.FormatText},
		"json":       {input: "json", want: log.FormatJSON},
		"mixed case": {input: "JSON", want: log.FormatJSON},
		"unknown":    {input: "logfmt", wantErr: log.ErrUnknownLogFormat},
		"empty":      {input: "", wantErr: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.NewHandler(&buf, "info", "json")
	require.NoError(t, err)
	require.NotNil(t, h)

	logger := slog.New(h)
	logger.Info("hello", slog.String("key", "value"))
	logger.Debug("suppressed")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"key":"value"`)
	assert.NotContains(t, out, "suppressed")

	_, err = log.NewHandler(&buf, "nope", "json")
	require.ErrorIs(t, err, log.ErrInvalidArgument)
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)

	_, err = log.NewHandler(&buf, "info", "nope")
	require.ErrorIs(t, err, log.ErrInvalidArgument)
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.NewHandler(&buf, "info", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	ctx := log.NewContext(context.Background(), logger)

	// Without a recording span the carried logger comes back unchanged.
	assert.Same(t, logger, log.WithContext(ctx))

	log.WithContext(ctx).Info("carried")
	assert.Contains(t, buf.String(), `"msg":"carried"`)

	// A bare context falls back to the default logger.
	assert.Same(t, slog.Default(), log.WithContext(context.Background()))
}
