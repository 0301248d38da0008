// Package internal provides shared utilities for utgen
package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

// Global history logger, nil until InitHistoryLogger succeeds
var historyLog *HistoryLogger

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLogLevel sets the console level: error, warn (or notice), info, debug.
// Unknown values fall back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "warn", "warning", "notice":
		logger.SetLevel(logrus.WarnLevel)
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}

// GetLogLevel returns the current console level name.
func GetLogLevel() string {
	return logger.GetLevel().String()
}

// SetLogOutput redirects console logs, mainly for tests.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// InitHistoryLogger opens the history file under stateDir.
// Failure is logged and history stays disabled.
func InitHistoryLogger(stateDir, source string) {
	h, err := NewHistoryLogger(stateDir, source)
	if err != nil {
		LogWarn("History disabled: %v", err)
		return
	}
	historyLog = h
}

// CloseHistoryLogger closes the history logger
func CloseHistoryLogger() {
	if historyLog != nil {
		historyLog.Close()
		historyLog = nil
	}
}

// History returns the active history logger. The result may be nil, and all
// HistoryLogger methods accept a nil receiver.
func History() *HistoryLogger {
	return historyLog
}

func LogError(format string, v ...any) {
	logger.Errorf(format, v...)
	if historyLog != nil {
		historyLog.LogError(fmt.Sprintf(format, v...), nil)
	}
}

func LogWarn(format string, v ...any) {
	logger.Warnf(format, v...)
	if historyLog != nil {
		historyLog.LogWarning(fmt.Sprintf(format, v...))
	}
}

func LogInfo(format string, v ...any) {
	logger.Infof(format, v...)
	if historyLog != nil {
		historyLog.LogInfo(format, v...)
	}
}

func LogDebug(format string, v ...any) {
	logger.Debugf(format, v...)
	if historyLog != nil {
		historyLog.LogDebug(format, v...)
	}
}
