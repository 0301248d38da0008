package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// HistoryFileName is the JSONL file written under the state directory.
const HistoryFileName = ".history"

// HistoryLogger appends run events to <stateDir>/.history for debugging
type HistoryLogger struct {
	file   *os.File
	mu     sync.Mutex
	seqNum int64
	source string
	runID  string
}

// HistoryEntry represents a single log entry
type HistoryEntry struct {
	Seq       int64    `json:"seq"`
	Timestamp string   `json:"ts"`
	Source    string   `json:"src"`           // "generate" or "watch"
	RunID     string   `json:"run,omitempty"` // one ID per pipeline run
	Type      string   `json:"type"`          // "command", "warning", "error", "info", "debug", "summary"
	Args      []string `json:"args,omitempty"`
	ExitCode  *int     `json:"exit,omitempty"`
	Output    string   `json:"output,omitempty"`
	Result    any      `json:"result,omitempty"`
	Error     any      `json:"error,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Message   string   `json:"msg,omitempty"`
}

// NewHistoryLogger creates a new history logger with given source
func NewHistoryLogger(stateDir, source string) (*HistoryLogger, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	historyPath := filepath.Join(stateDir, HistoryFileName)
	f, err := os.OpenFile(historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return &HistoryLogger{file: f, source: source}, nil
}

// BeginRun tags subsequent entries with runID.
func (h *HistoryLogger) BeginRun(runID string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.runID = runID
	h.mu.Unlock()
}

// Log writes an entry to the history file
func (h *HistoryLogger) Log(entry HistoryEntry) {
	if h == nil || h.file == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seqNum++
	entry.Seq = h.seqNum
	entry.Timestamp = time.Now().Format(time.RFC3339Nano)
	entry.Source = h.source
	entry.RunID = h.runID

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = h.file.Write(data)
	_, _ = h.file.Write([]byte("\n"))
}

// LogCommand records one external tool invocation.
func (h *HistoryLogger) LogCommand(args []string, exitCode int, duration time.Duration, output string) {
	code := exitCode
	h.Log(HistoryEntry{
		Type:     "command",
		Args:     args,
		ExitCode: &code,
		Duration: duration.String(),
		Output:   output,
	})
}

// LogSummary records the final result of a run.
func (h *HistoryLogger) LogSummary(result any) {
	h.Log(HistoryEntry{Type: "summary", Result: result})
}

// LogError logs an error
func (h *HistoryLogger) LogError(message string, err error) {
	entry := HistoryEntry{Type: "error", Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	h.Log(entry)
}

// LogWarning logs a non-fatal problem
func (h *HistoryLogger) LogWarning(message string) {
	h.Log(HistoryEntry{Type: "warning", Message: message})
}

// LogInfo logs an informational message
func (h *HistoryLogger) LogInfo(format string, v ...any) {
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	h.Log(HistoryEntry{Type: "info", Message: msg})
}

// LogDebug logs a debug message
func (h *HistoryLogger) LogDebug(format string, v ...any) {
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	h.Log(HistoryEntry{Type: "debug", Message: msg})
}

// Close closes the history file
func (h *HistoryLogger) Close() error {
	if h != nil && h.file != nil {
		return h.file.Close()
	}
	return nil
}
