package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter is the Logger used outside of tests. All derived loggers
// share the parent's logrus.Logger and therefore its level and output.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusAdapter returns a Logger on stderr. Level is one of debug, info,
// warn or error; format is json or text.
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithOutput(level, format, os.Stderr)
}

// NewLogrusAdapterWithOutput is NewLogrusAdapter writing to out.
func NewLogrusAdapterWithOutput(level, format string, out io.Writer) Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(formatterFor(format))

	lvl, ok := parseLevel(level)
	base.SetLevel(lvl)
	if !ok {
		base.Warnf("Invalid log level '%s', using 'info'", level)
	}
	return NewLogrusAdapterFromLogger(base)
}

// NewLogrusAdapterFromLogger wraps base, or a fresh logrus.Logger when
// base is nil.
func NewLogrusAdapterFromLogger(base *logrus.Logger) Logger {
	if base == nil {
		base = logrus.New()
	}
	return &LogrusAdapter{logger: base, entry: logrus.NewEntry(base)}
}

// NewNopLogger discards everything. Components fall back to it when
// constructed without a logger.
func NewNopLogger() Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return NewLogrusAdapterFromLogger(base)
}

func parseLevel(level string) (logrus.Level, bool) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel, false
	}
	return lvl, true
}

func formatterFor(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) Logger {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

func (l *LogrusAdapter) with(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(convertFields(fields))
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.with(fields).Debug(msg) }
func (l *LogrusAdapter) Info(msg string, fields ...Field)  { l.with(fields).Info(msg) }
func (l *LogrusAdapter) Warn(msg string, fields ...Field)  { l.with(fields).Warn(msg) }
func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.with(fields).Error(msg) }

// Fatal logs msg and exits with status 1.
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) { l.with(fields).Fatal(msg) }

// Fatalf logs a formatted message and exits with status 1.
func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) { l.entry.Fatalf(msg, args...) }

func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.with(fields))
}

func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
