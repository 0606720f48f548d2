package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. Calling it again replaces and
// closes the previous logger.
func InitLogger(opts LoggerOptions) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger installs l as the global logger; nil disables logging
func SetLogger(l LoggerInterface) {
	loggerMu.Lock()
	previous := globalLogger
	globalLogger = l
	loggerMu.Unlock()

	if previous != nil && previous != l {
		_ = previous.Close()
	}
}

func current() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// LogInfo convenience functions for logging
func LogInfo(msg string) {
	if l := current(); l != nil {
		l.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebug(msg string) {
	if l := current(); l != nil {
		l.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarn(msg string) {
	if l := current(); l != nil {
		l.Warn(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if l := current(); l != nil {
		l.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}
