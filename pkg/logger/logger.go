package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New returns a Logger writing text lines to out. Unknown levels fall back
// to info.
func New(out io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// With returns a Logger that adds key=value to every line.
func With(l Logger, key string, value any) Logger {
	if ll, ok := l.(*logrusLogger); ok {
		return &logrusLogger{entry: ll.entry.WithField(key, value)}
	}
	return l
}

func (l *logrusLogger) Debugf(format string, v ...any) { l.entry.Debugf(format, v...) }
func (l *logrusLogger) Infof(format string, v ...any)  { l.entry.Infof(format, v...) }
func (l *logrusLogger) Warnf(format string, v ...any)  { l.entry.Warnf(format, v...) }
func (l *logrusLogger) Errorf(format string, v ...any) { l.entry.Errorf(format, v...) }
