package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New は設定からlogrusのロガーを作る。levelが不正ならinfo
func New(level string, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)

	return l
}
