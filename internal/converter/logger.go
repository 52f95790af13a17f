// =============================================================================
// XLCut - Default Logger
// =============================================================================

package converter

import (
	"fmt"
	"strings"
)

// defaultLogger is a simple leveled logger that prints to stdout.
type defaultLogger struct {
	level int
}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// NewDefaultLogger creates a stdout logger for the given level name.
// Unknown names fall back to "info".
func NewDefaultLogger(level string) Logger {
	l := levelInfo
	switch strings.ToLower(level) {
	case "debug":
		l = levelDebug
	case "warn", "warning":
		l = levelWarn
	case "error":
		l = levelError
	}
	return &defaultLogger{level: l}
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.level <= levelDebug {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	if l.level <= levelInfo {
		fmt.Printf("[INFO] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	if l.level <= levelWarn {
		fmt.Printf("[WARN] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	if l.level <= levelError {
		fmt.Printf("[ERROR] "+msg+"\n", args...)
	}
}
