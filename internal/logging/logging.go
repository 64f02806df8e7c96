package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/internal/config"
)

// New builds the process logger. There are only two levels that matter here:
// debug for developers and info for everything else.
func New(cfg config.LogConfig, appName string) *logrus.Entry {
	return NewWithOutput(cfg, appName, os.Stderr)
}

func NewWithOutput(cfg config.LogConfig, appName string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(out)
	if strings.EqualFold(cfg.Level, "debug") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log.WithFields(logrus.Fields{
		"appname":    appName,
		"log.level":  cfg.Level,
		"log.format": cfg.Format,
	})
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
