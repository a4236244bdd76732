package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Level is the severity of a log message.
type Level = logrus.Level

const (
	LevelDebug = logrus.DebugLevel
	LevelInfo  = logrus.InfoLevel
	LevelWarn  = logrus.WarnLevel
	LevelError = logrus.ErrorLevel
)

// Verbosity maps a -v count onto the lowest level shown.
func Verbosity(count int) Level {
	switch {
	case count >= 2:
		return LevelDebug
	case count == 1:
		return LevelInfo
	default:
		return LevelWarn
	}
}

// Logger writes leveled diagnostics, normally to stderr. Results never go
// through a Logger.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a logger on stderr showing messages at level and above.
// Colors are used only when stderr is a terminal.
func NewLogger(level Level) *Logger {
	return newLogger(os.Stderr, level, IsTerminal(os.Stderr))
}

// NewWriterLogger creates an uncolored logger writing to w.
func NewWriterLogger(w io.Writer, level Level) *Logger {
	return newLogger(w, level, false)
}

func newLogger(w io.Writer, level Level, colors bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&lineFormatter{colors: colors})
	return &Logger{log: l}
}

// SetLevel changes the lowest level shown.
func (l *Logger) SetLevel(level Level) {
	if l != nil {
		l.log.SetLevel(level)
	}
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.log.IsLevelEnabled(level)
}

// WithField returns an entry that appends key=value to its messages.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	if l == nil {
		return logrus.NewEntry(discard)
	}
	return l.log.WithField(key, value)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	if l != nil {
		l.log.Debugf(format, args...)
	}
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	if l != nil {
		l.log.Infof(format, args...)
	}
}

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, args ...any) {
	if l != nil {
		l.log.Warnf(format, args...)
	}
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	if l != nil {
		l.log.Errorf(format, args...)
	}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

var levelLabels = map[Level]string{
	LevelDebug: "[DEBUG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: Muted,
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

// lineFormatter renders "15:04:05.000 [LEVEL] message key=value" lines.
// Warnings and errors carry their status symbol.
type lineFormatter struct {
	colors bool
}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	stamp := e.Time.Format("15:04:05.000")
	label := fmt.Sprintf("%-7s", levelLabels[e.Level])
	if f.colors {
		stamp = Muted.Render(stamp)
		label = levelStyles[e.Level].Render(label)
	}

	msg := e.Message
	switch e.Level {
	case LevelWarn:
		msg = Warning(msg)
	case LevelError:
		msg = Error(msg)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s", stamp, label, msg)
	for _, key := range sortedKeys(e.Data) {
		fmt.Fprintf(&buf, " %s=%v", key, e.Data[key])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
