package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Development gets colored text at debug
// level; every other env gets JSON at info. A parseable level overrides either.
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	lvl := logrus.InfoLevel
	if env == "development" {
		lvl = logrus.DebugLevel
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			lvl = parsed
		} else {
			logger.WithField("level", level).Warn("unknown log level, keeping default")
		}
	}
	logger.SetLevel(lvl)

	logger.WithFields(logrus.Fields{"app": appName, "env": env, "level": lvl.String()}).Info("logger initialized")
	return logger
}

// entry is nil when there is no logger, so callers without one (tests, seed)
// can log freely.
func entry(logger *logrus.Logger, err error, fields logrus.Fields) *logrus.Entry {
	if logger == nil {
		return nil
	}
	e := logger.WithFields(fields)
	if err != nil {
		e = e.WithField("error", err.Error())
	}
	return e
}

// LogError logs msg at error level with err attached.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if e := entry(logger, err, fields); e != nil {
		e.Error(msg)
	}
}

func LogWarn(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if e := entry(logger, err, fields); e != nil {
		e.Warn(msg)
	}
}

func LogInfo(logger *logrus.Logger, msg string, fields logrus.Fields) {
	if e := entry(logger, nil, fields); e != nil {
		e.Info(msg)
	}
}
