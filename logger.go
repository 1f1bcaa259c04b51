package county

import (
	logger "github.com/sirupsen/logrus"
)

// Logger is used to log errors and other important operational
// information of a Tree.
//
// Both *logrus.Logger/*logrus.Entry and zap's *SugaredLogger satisfy it.
type Logger interface {
	Debugf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
}

func defaultLogger() Logger {
	return logger.StandardLogger().WithField("logger", "county")
}

// newLogger returns a logrus logger at the named level.
func newLogger(level string) (Logger, error) {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logger.New()
	l.SetLevel(lvl)
	return l.WithField("logger", "county"), nil
}
