// Package logging is the ambient leveled logger every other package
// logs through (SPEC_FULL.md §2 A0), built on the teacher's own
// logging dependency, sirupsen/logrus. spec.md §7 specifies six levels
// -- Error, Warn, Info, Debug, DebugV, DebugVV -- the last two finer
// than logrus's own Debug, so they are modeled as an explicit verbosity
// counter layered on top of a single logrus Trace call.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level is one of spec.md §7's six user-visible log levels.
type Level uint8

const (
	Error Level = iota
	Warn
	Info
	Debug
	DebugV
	DebugVV
)

var names = map[Level]string{
	Error: "error", Warn: "warn", Info: "info",
	Debug: "debug", DebugV: "debugv", DebugVV: "debugvv",
}

func (l Level) String() string {
	if s, ok := names[l]; ok {
		return s
	}
	return "unknown"
}

// Logger wraps a *logrus.Logger with spec.md §7's level set and the
// two SkipGenerated/SkipBuiltin filters from the compiler config's
// logging toggles (spec.md §6.1).
type Logger struct {
	base *logrus.Logger

	mu            sync.RWMutex
	verbosity     Level // DebugV/DebugVV gate on this in addition to logrus's own level
	skipGenerated bool
	skipBuiltin   bool
}

// New creates a Logger writing to stderr at Info level by default,
// matching the teacher's own logrus.New()-then-configure pattern.
func New() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{base: base, verbosity: Info}
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbosity = lvl
	switch {
	case lvl >= DebugV:
		l.base.SetLevel(logrus.TraceLevel)
	case lvl == Debug:
		l.base.SetLevel(logrus.DebugLevel)
	case lvl == Info:
		l.base.SetLevel(logrus.InfoLevel)
	case lvl == Warn:
		l.base.SetLevel(logrus.WarnLevel)
	default:
		l.base.SetLevel(logrus.ErrorLevel)
	}
}

// SetSkipFilters implements the logging.{skip_generated,skip_builtin}
// compiler-config toggles (spec.md §6.1): generated/builtin-annotated
// declarations are suppressed from per-declaration log lines when set.
func (l *Logger) SetSkipFilters(skipGenerated, skipBuiltin bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.skipGenerated = skipGenerated
	l.skipBuiltin = skipBuiltin
}

// ShouldLogDecl reports whether a per-declaration log line should be
// emitted, honoring the skip filters against the declaration's own
// "generated"/"builtin" annotation names.
func (l *Logger) ShouldLogDecl(isGenerated, isBuiltin bool) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if isGenerated && l.skipGenerated {
		return false
	}
	if isBuiltin && l.skipBuiltin {
		return false
	}
	return true
}

func (l *Logger) Errorf(format string, args ...any) { l.base.Errorf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.base.Warnf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.base.Infof(format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.base.Debugf(format, args...) }

// DebugVf logs at DebugV: logrus Trace, gated additionally on the
// logger's own verbosity so Debug-level output isn't flooded by V
// unless explicitly requested.
func (l *Logger) DebugVf(format string, args ...any) {
	l.mu.RLock()
	v := l.verbosity
	l.mu.RUnlock()
	if v >= DebugV {
		l.base.Tracef(format, args...)
	}
}

// DebugVVf logs at DebugVV, the most verbose level.
func (l *Logger) DebugVVf(format string, args ...any) {
	l.mu.RLock()
	v := l.verbosity
	l.mu.RUnlock()
	if v >= DebugVV {
		l.base.Tracef(format, args...)
	}
}

// Default is the package-level logger most callers use directly,
// mirroring spec.md §5's note that the log level is itself global
// mutable state ("not relied on for correctness").
var Default = New()
