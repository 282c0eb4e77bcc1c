package output

// LoggerPort is the leveled, structured logger used across the
// application layers. Args are alternating key/value pairs.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithField and WithFields return a child logger that attaches the
	// given fields to every entry.
	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort

	// Close flushes any buffered entries.
	Close() error
}
