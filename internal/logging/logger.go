// Package logging is the structured logging layer shared by the pipeline.
// Components take a Logger; the container hands them the logrus adapter.
package logging

import "time"

// Logger is the structured logger every component depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal and Fatalf terminate the process after logging.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Duration reports d in milliseconds under FieldDuration.
func Duration(d time.Duration) Field {
	return Field{Key: FieldDuration, Value: d.Milliseconds()}
}
