package library

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger writing to w at the given level, tagged
// with a fresh session id.
func NewLogger(w io.Writer, level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return logger.WithField("session", uuid.NewString()), nil
}

// discardLogger is used when a manager is built without one.
func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
