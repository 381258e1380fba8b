// Package logging is the structured logging layer used by every finflow
// component. Components depend on Logger and receive it through their
// constructors; LogrusAdapter backs it in production and MockLogger in tests.
package logging

// Logger writes leveled messages with structured fields. Derived loggers
// returned by the With* methods carry their fields into every later message.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value any) Logger
	WithFields(fields ...Field) Logger
}

// Field is one key/value pair attached to a log message.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}
