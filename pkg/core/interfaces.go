package core

// Logger is the logging surface the renderer needs
type Logger interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NopLogger discards all messages
type NopLogger struct{}

func (NopLogger) Infof(format string, args ...interface{})  {}
func (NopLogger) Debugf(format string, args ...interface{}) {}
