// Package logger holds the logrus logger shared by the estate commands.
package logger

import (
	"io"
	"os"

	"github.com/etnz/estate/config"
	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger: level from the configuration, JSON
// lines in production and staging, text otherwise. Logs go to w, or stderr
// when w is nil, so that they never mix with command output.
func Init(cfg config.LogConfig, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	Log.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	switch cfg.Environment {
	case "production", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	Log.Debugf("Log level set to: %s", Log.GetLevel())
}
