package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the pipeline logger. Level strings follow logrus
// ("debug", "info", "warn", ...); an unparseable level falls back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level %q, defaulting to info", level)

		return log
	}

	log.SetLevel(parsed)

	return log
}
