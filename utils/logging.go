package utils

import "github.com/sirupsen/logrus"

var Logger = logrus.New()

// SetVerbose enables debug logging on the shared logger and on the
// package loggers that report through it.
func SetVerbose() {
	Logger.SetLevel(logrus.DebugLevel)
	logger.SetLevel(logrus.DebugLevel)
}
