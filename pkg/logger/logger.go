// Package logger wraps logrus with context-aware helpers.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roguepikachu/snippets/pkg/ctxutil"
	"github.com/sirupsen/logrus"
)

// Options controls how InitLogging configures the global logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// InitLogging configures the logger level, formatter and destination.
func InitLogging(opts Options) {
	if opts.Output != nil {
		logrus.SetOutput(opts.Output)
	}
	logrus.Debug("....Configuring Logger....")
	logLevel := opts.Level
	if logLevel == "" {
		logLevel = "debug" // default if not set
	}
	setLogLevel(logLevel)
	if strings.ToLower(opts.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// OpenOutput resolves a log destination. An empty path or "-" means stderr.
// The returned close func is always non-nil.
func OpenOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	default:
		logrus.Infof("NO/Invalid LOG_LEVEL is provided, defaulting logging level to DEBUG, provided loggingLevel=[%s]", level)
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.Debugf("Setting logging level to %s", level)
}

// With returns an entry carrying the given fields plus any request metadata found in ctx.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// WithField is a single-field shorthand for With.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return entry(ctx).WithField(key, value)
}

func entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return e
	}
	if rid := ctxutil.RequestID(ctx); rid != "" {
		e = e.WithField("request_id", rid)
	}
	if cmd := ctxutil.Command(ctx); cmd != "" {
		e = e.WithField("command", cmd)
	}
	return e
}

func Info(ctx context.Context, msg string, args ...any) {
	entry(ctx).Infof(msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	entry(ctx).Debugf(msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	entry(ctx).Errorf(msg, args...)
}

func Trace(ctx context.Context, msg string, args ...any) {
	entry(ctx).Tracef(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	entry(ctx).Warnf(msg, args...)
}

func Fatal(ctx context.Context, msg string, args ...any) {
	entry(ctx).Fatalf(msg, args...)
}
