package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger from level and format settings.
// Unknown levels fall back to info; format is "json" or "text".
func Init(level, format string) {
	Configure(logrus.StandardLogger(), level, format, os.Stdout)
}

// Configure applies level, format and output to l.
func Configure(l *logrus.Logger, level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(out)
}
