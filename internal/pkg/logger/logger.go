// Package logger adapts zap to the ports.Logger interface.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDebug turns on verbose logging when set to a non-empty value other than "0".
const EnvDebug = "AICLI_DEBUG"

// ZapLogger routes structured log lines to stderr through zap.
type ZapLogger struct {
	base *zap.Logger
}

// New builds a console logger. Verbose enables debug and info output;
// otherwise only warnings and errors are written.
func New(verbose bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	base, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{base: base}, nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base}
}

// NewNop discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{base: zap.NewNop()}
}

// VerboseFromEnv reports whether AICLI_DEBUG asks for verbose output.
func VerboseFromEnv() bool {
	value := os.Getenv(EnvDebug)
	return value != "" && value != "0" && value != "false"
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.base.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func toFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}
