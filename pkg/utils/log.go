package utils

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Bootstrap reconfigures it from conf.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
