package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var debug bool

// Logger is a global interface for chord loggers
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv("CHORD_DEBUG"))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
