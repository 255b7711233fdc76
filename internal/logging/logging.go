package logging

import (
	"io"
	"os"
	"strings"

	"devhook/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure sets up logrus with rotation. Every entry carries the project
// directory so logs from several checkouts can be told apart.
func Configure(s *config.Settings) (*logrus.Logger, error) {
	if err := config.MustStatePaths(s); err != nil {
		return nil, err
	}
	logger := logrus.New()
	switch strings.ToLower(s.Logging.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		// The log file is never a terminal, even when mirrored to stdout.
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(s.Logging.Level)); err == nil {
		logger.SetLevel(lvl)
	}
	rotator := &lumberjack.Logger{
		Filename:   s.Paths.LogPath,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   false,
	}
	if s.Logging.Stdout {
		logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	} else {
		logger.SetOutput(rotator)
	}
	logger.AddHook(fieldsHook{"project": s.ProjectDir()})
	return logger, nil
}

// fieldsHook adds fixed fields to every entry that does not set them.
type fieldsHook logrus.Fields

func (h fieldsHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h fieldsHook) Fire(e *logrus.Entry) error {
	for k, v := range h {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}
