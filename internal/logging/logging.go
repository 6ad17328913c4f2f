package logging

import "github.com/sirupsen/logrus"

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// L returns the shared application logger.
func L() *logrus.Logger {
	return logger
}
