package infrastructures

import (
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger()

func init() {
	logger.SetFormatter(&logrus.JSONFormatter{})
}

// ConfigureLogger applies the configured log level to the global logger
func ConfigureLogger() {
	level, err := logrus.ParseLevel(Config.LOG_LEVEL)
	if err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, falling back to info", Config.LOG_LEVEL)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	return logger
}
