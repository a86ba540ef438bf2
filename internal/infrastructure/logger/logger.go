package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper over zerolog shared by every layer of the service.
type Logger struct {
	zl zerolog.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

func New() *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	zl := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl}
}

// Init configures the process-wide logger. Only the first call has an effect.
func Init(level string, fields map[string]string) {
	once.Do(func() {
		l := New().WithLevel(ParseLevel(level))
		ctx := l.zl.With()
		for k, v := range fields {
			ctx = ctx.Str(k, v)
		}
		l.zl = ctx.Logger()
		defaultLogger = l
	})
}

// Default returns the process-wide logger, initialising it at info level if needed.
func Default() *Logger {
	Init("info", nil)
	return defaultLogger
}

// Nop discards everything; handy in tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{zl: l.zl.Output(w)}
}

func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	return &Logger{zl: l.zl.Level(level)}
}

// WithField returns a child logger carrying key=value on every entry.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog exposes the underlying logger for call sites that need structured fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(err error, format string, v ...interface{}) {
	l.zl.Error().Err(err).Msgf(format, v...)
}

func (l *Logger) Fatal(err error, msg string) {
	l.zl.Fatal().Err(err).Msg(msg)
}

func (l *Logger) Fatalf(err error, format string, v ...interface{}) {
	l.zl.Fatal().Err(err).Msgf(format, v...)
}
