package internal

import (
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger the driver hands to NewInterpreter.
func NewLogger(cfg Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !cfg.Color,
	})
	logger.SetLevel(level)
	return logger, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
