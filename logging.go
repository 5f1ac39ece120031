package lightnet

import (
	"fmt"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLogger writes debug and info lines to stdout and warnings and
// errors to stderr, as "[prefix] LEVEL: message".
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) emit(level logLevel, format string, args ...any) {
	if level == levelDebug && !l.DebugEnabled() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, levelNames[level], msg)
	} else {
		msg = levelNames[level] + ": " + msg
	}

	dst := l.out
	if level >= levelWarn {
		dst = l.err
	}
	dst.Print(msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.emit(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(levelError, format, args...) }

// componentLogger tags each line with the network component that wrote it,
// e.g. "[lightnet] WARN: pool: node 4 needs 5 lights".
type componentLogger struct {
	base      Logger
	component string
}

// ForComponent wraps l so every message starts with "component: ". A nil l
// gives a silent logger.
func ForComponent(l Logger, component string) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return &componentLogger{base: l, component: component}
}

func (c *componentLogger) DebugEnabled() bool    { return c.base.DebugEnabled() }
func (c *componentLogger) SetDebug(enabled bool) { c.base.SetDebug(enabled) }
func (c *componentLogger) Debugf(format string, args ...any) {
	c.base.Debugf(c.component+": "+format, args...)
}
func (c *componentLogger) Infof(format string, args ...any) {
	c.base.Infof(c.component+": "+format, args...)
}
func (c *componentLogger) Warnf(format string, args ...any) {
	c.base.Warnf(c.component+": "+format, args...)
}
func (c *componentLogger) Errorf(format string, args ...any) {
	c.base.Errorf(c.component+": "+format, args...)
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// orNop lets every component treat a nil Logger as silent.
func orNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
