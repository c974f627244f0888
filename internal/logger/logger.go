package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// LogEntry represents a single log record.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var (
	mu         sync.RWMutex
	logEntries []LogEntry
	maxEntries = 1000 // keep last 1000 in memory
	minLevel   = levelRank[LevelInfo]
	silent     bool
)

// SetLevel sets the minimum level that gets recorded and printed.
// Unknown level names fall back to INFO.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	minLevel = rank
}

// SetSilent suppresses console output while still recording entries in
// memory. Used by tests.
func SetSilent(v bool) {
	mu.Lock()
	defer mu.Unlock()
	silent = v
}

// AddLog records a log entry and prints it to stderr. Stdout is reserved
// for the MCP transport, so nothing here may ever write to it.
func AddLog(level, message string) {
	level = strings.ToUpper(level)
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank[LevelInfo]
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level,
		Message:   message,
	}

	mu.Lock()
	defer mu.Unlock()
	if rank < minLevel {
		return
	}
	logEntries = append(logEntries, entry)
	if len(logEntries) > maxEntries {
		logEntries = logEntries[len(logEntries)-maxEntries:]
	}
	if !silent {
		fmt.Fprintf(os.Stderr, "[%s] [%s] %s\n", entry.Timestamp, entry.Level, entry.Message)
	}
}

// Debugf logs a formatted DEBUG entry.
func Debugf(format string, args ...any) { AddLog(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof logs a formatted INFO entry.
func Infof(format string, args ...any) { AddLog(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf logs a formatted WARN entry.
func Warnf(format string, args ...any) { AddLog(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf logs a formatted ERROR entry.
func Errorf(format string, args ...any) { AddLog(LevelError, fmt.Sprintf(format, args...)) }

// GetLogs returns a copy of the logs currently in memory.
func GetLogs() []LogEntry {
	mu.RLock()
	defer mu.RUnlock()

	res := make([]LogEntry, len(logEntries))
	copy(res, logEntries)
	return res
}

// ClearLogs wipes the in-memory log buffer.
func ClearLogs() {
	mu.Lock()
	defer mu.Unlock()
	logEntries = nil
}
