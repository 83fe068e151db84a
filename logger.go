package rpmmacro

import "github.com/juju/loggo"

// Logger receives categorized messages from the expander: error
// (fatal-looking but expansion may continue), warning (e.g. missing
// whitespace before a %define body), and debug (tracing output from
// %trace).
type Logger interface {
	Errorf(format string, args ...any)
	Warningf(format string, args ...any)
	Debugf(format string, args ...any)
}

// LoggoLogger backs Logger with github.com/juju/loggo, splitting a single
// debug-gated log call into the three separate channels (error/warning/
// debug) the expander distinguishes.
type LoggoLogger struct {
	logger loggo.Logger
}

// NewLoggoLogger returns a Logger writing to the named loggo module
// (conventionally "rpmmacro").
func NewLoggoLogger(name string) *LoggoLogger {
	return &LoggoLogger{logger: loggo.GetLogger(name)}
}

func (l *LoggoLogger) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}

func (l *LoggoLogger) Warningf(format string, args ...any) {
	l.logger.Warningf(format, args...)
}

func (l *LoggoLogger) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

// DiscardLogger is a zero-dependency Logger that drops every message, for
// embedders who don't want loggo wired in at all.
type DiscardLogger struct{}

func (DiscardLogger) Errorf(string, ...any)   {}
func (DiscardLogger) Warningf(string, ...any) {}
func (DiscardLogger) Debugf(string, ...any)   {}
