package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/fitprogram/pkg"
)

const maxLogFileSizeMB = 50

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// MaxAgeDays of rotated log files, 0 keeps them forever
	MaxAgeDays int
}

// Setup configures the standard logrus logger: level, format, output (stdout,
// a rotated file or both) and the sentry hook for error levels.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetOutput(output(params))
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Debugln("sentry hook added")
}

func output(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Debugln("writing logs only to STDOUT")
		return os.Stdout
	}

	if _, err := pkg.EnsureDir(filepath.Dir(params.LogFileName)); err != nil {
		logrus.Errorf("logs dir: %s, writing logs only to STDOUT", err)
		return os.Stdout
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	rotated := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   maxLogFileSizeMB,
		MaxAge:    params.MaxAgeDays,
		LocalTime: false, // UTC names
		Compress:  true,
	}

	if params.LogToStdout {
		logrus.Debugf("writing logs to %s and STDOUT", fileName)
		return pkg.NewCombinedWriter(os.Stdout, rotated)
	}
	return rotated
}

// GetLevel parses a level name, falling back to trace for unknown names.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
