package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a logger writing to w. When console is true the
// output is human readable, otherwise one JSON object per line.
func NewZerologLogger(w io.Writer, console bool) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	return &ZerologLogger{
		logger: zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	}
}

// Zerolog exposes the underlying zerolog logger
func (z *ZerologLogger) Zerolog() zerolog.Logger {
	return z.logger
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func withFields(e *zerolog.Event, fields []Fields) *zerolog.Event {
	for _, f := range fields {
		e = e.Fields(map[string]any(f))
	}
	return e
}

func (z *ZerologLogger) Debug(msg string, fields ...Fields) {
	withFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologLogger) Info(msg string, fields ...Fields) {
	withFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologLogger) Warn(msg string, fields ...Fields) {
	withFields(z.logger.Warn(), fields).Msg(msg)
}

func (z *ZerologLogger) Error(err error, msg string, fields ...Fields) {
	withFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologLogger) Fatal(err error, msg string, fields ...Fields) {
	withFields(z.logger.Fatal().Err(err), fields).Msg(msg)
}

func (z *ZerologLogger) WithFields(fields Fields) Logger {
	return &ZerologLogger{logger: z.logger.With().Fields(map[string]any(fields)).Logger()}
}

func (z *ZerologLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

func (z *ZerologLogger) SetLevel(level Level) {
	z.logger = z.logger.Level(toZerologLevel(level))
}
