package port

// Fields - structured key/value data attached to a log record.
type Fields map[string]interface{}

// LoggerPort decouples the core from a concrete logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	// Error records msg together with err, if any.
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields returns a child logger that always carries fields.
	WithFields(fields Fields) LoggerPort
}
