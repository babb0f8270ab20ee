// Copyright 2024 The babeld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is the logging facade used by all babeld packages. It wraps a
// zap logger and accepts context as alternating key/value pairs.
package log

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/babelrouting/babeld/pkg/private/serrors"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultStacktraceLevel is the default level at which stack traces are
	// attached to log entries.
	DefaultStacktraceLevel = "none"
)

// Level of a log entry.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (debug|info|error).
	Level string `toml:"level,omitempty"`
	// Format of the console logging (human|json).
	Format string `toml:"format,omitempty"`
	// StacktraceLevel sets from which level stacktraces are included.
	StacktraceLevel string `toml:"stacktrace_level,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file
	// name and line number.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields in cfg to their default values (if they
// have one).
func (c *ConsoleConfig) InitDefaults() {
	if c.Level == "" {
		c.Level = DefaultConsoleLevel
	}
	if c.Format == "" {
		c.Format = "human"
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = DefaultStacktraceLevel
	}
}

// Config is the configuration for the logger.
type Config struct {
	Console ConsoleConfig `toml:"console,omitempty"`
}

// InitDefaults populates unset fields in cfg to their default values (if they
// have one).
func (c *Config) InitDefaults() {
	c.Console.InitDefaults()
}

var (
	zlog  *zap.Logger
	level zap.AtomicLevel
)

func init() {
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zlog = zap.NewNop()
}

// Setup configures the root logger according to cfg. It is not safe to call
// Setup concurrently with logging.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	o := applyOptions(opts)

	var lvl zapcore.Level
	if err := lvl.Set(cfg.Console.Level); err != nil {
		return serrors.Wrap("unable to parse log.console.level", err,
			"level", cfg.Console.Level)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Console.Format) {
	case "human":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if isatty.IsTerminal(os.Stderr.Fd()) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return serrors.New("unknown log.console.format", "format", cfg.Console.Format)
	}

	level.SetLevel(lvl)
	zapOpts := append(o.zapOptions(), zap.AddCallerSkip(1))
	if !cfg.Console.DisableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	if cfg.Console.StacktraceLevel != "none" {
		var st zapcore.Level
		if err := st.Set(cfg.Console.StacktraceLevel); err != nil {
			return serrors.Wrap("unable to parse log.console.stacktrace_level", err,
				"level", cfg.Console.StacktraceLevel)
		}
		zapOpts = append(zapOpts, zap.AddStacktrace(st))
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	zlog = zap.New(core, zapOpts...)
	zap.ReplaceGlobals(zlog.WithOptions(zap.AddCallerSkip(-1)))
	return nil
}

// SetLevel changes the level of the root logger at runtime.
func SetLevel(lvl string) error {
	return level.UnmarshalText([]byte(lvl))
}

// LevelHandler serves the console log level over HTTP. GET returns the
// current level, PUT changes it.
func LevelHandler() http.Handler {
	return level
}

// Flush writes the logs to the underlying buffer.
func Flush() {
	_ = zlog.Sync()
}

// HandlePanic catches panics and logs them. The process exits after logging.
// It must be deferred directly in the goroutine that may panic.
func HandlePanic() {
	if msg := recover(); msg != nil {
		zlog.Error("Panic", zap.Any("msg", msg), zap.String("stack", string(debug.Stack())))
		zlog.Error("=====================> Service panicked!")
		Flush()
		fmt.Fprintf(os.Stderr, "panic: %v\n%s", msg, debug.Stack())
		os.Exit(255)
	}
}

type logger struct {
	logger *zap.Logger
}

// New creates a logger with the given context.
func New(ctx ...any) Logger {
	return &logger{logger: zlog.With(convertCtx(ctx)...)}
}

// FromZap wraps a zap logger. The wrapped logger is not affected by Setup or
// SetLevel.
func FromZap(z *zap.Logger) Logger {
	return &logger{logger: z}
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	return &logger{logger: zlog}
}

// Discard sets the logger up to discard all log entries. This is useful for
// testing.
func Discard() {
	zlog = zap.NewNop()
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

// Debug logs at debug level.
func Debug(msg string, ctx ...any) {
	zlog.Debug(msg, convertCtx(ctx)...)
}

// Info logs at info level.
func Info(msg string, ctx ...any) {
	zlog.Info(msg, convertCtx(ctx)...)
}

// Error logs at error level.
func Error(msg string, ctx ...any) {
	zlog.Error(msg, convertCtx(ctx)...)
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}
