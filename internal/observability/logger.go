package observability

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options описывает, куда и как писать логи.
type Options struct {
	LogPath    string // пусто - только stderr
	LogLevel   string
	LogFormat  string // console | json
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger keeps the key/value call style used across the app:
//
//	logger.Info("Page fetched", "url", u, "bytes", n)
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(opts Options) *Logger {
	level := parseLevel(opts.LogLevel)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var encoder zapcore.Encoder
	if opts.LogFormat == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if opts.LogPath != "" {
		// Файл всегда в JSON, чтобы его можно было разбирать
		rotating := &lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotating), level))
	}

	return NewWithCore(zapcore.NewTee(cores...))
}

// NewWithCore builds a Logger on top of an existing zap core (tests use zaptest/observer).
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}
}

func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, fields...)
}

// With returns a child logger with the given key/value pairs attached.
func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(fields...)}
}

// Sync flushes buffered entries. Ошибки sync для stderr игнорируются.
func (l *Logger) Sync() error {
	if err := l.sugar.Sync(); err != nil && !isStdSyncError(err) {
		return fmt.Errorf("sync logger: %w", err)
	}
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// stderr on Linux returns EINVAL/ENOTTY on fsync
func isStdSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
