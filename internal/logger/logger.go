// Package logger provides leveled logging for the gradebook service.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const (
	module     = "gradebook"
	timeFormat = "2006/01/02 15:04:05"
)

var logger *logging.Logger

func init() {
	InitLogger(logging.INFO)
}

// InitLogger installs a stderr backend filtered at level.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(module)

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)

	newLogger.SetBackend(leveled)
	logger = newLogger
}

// InitFromDebug picks DEBUG or INFO depending on debug.
func InitFromDebug(debug bool) {
	if debug {
		InitLogger(logging.DEBUG)
		return
	}
	InitLogger(logging.INFO)
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatalf logs at critical level and exits the process.
func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
