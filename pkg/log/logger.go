package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a logging verbosity threshold
type Level int

// Verbosity levels, from most to least verbose
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`,
)

var leveled logging.LeveledBackend

// Logger is what the renderer and the CLI commands log through.
// It also satisfies core.Logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
}

// New returns the logger for the named module
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all log output to sink, keeping the current level
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveled != nil {
		level = leveled.GetLevel("")
	}

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// SetLevel sets the verbosity of every module
func SetLevel(level Level) {
	if l, ok := backendLevels[level]; ok {
		leveled.SetLevel(l, "")
	}
}

// Enabled reports whether messages at level are written
func Enabled(level Level) bool {
	l, ok := backendLevels[level]
	return ok && leveled.IsEnabledFor(l, "")
}

func init() {
	SetSink(os.Stderr)
}
