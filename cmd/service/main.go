package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogram/internal"
	"github.com/2beens/fitprogram/internal/config"
	"github.com/2beens/fitprogram/internal/logging"
	"github.com/2beens/fitprogram/pkg"
)

// secrets the service reads from the environment
type secrets struct {
	dbPassword       string
	redisPassword    string
	sentryDSN        string
	honeycombEnabled bool
}

func readSecrets(cfg *config.Config) secrets {
	s := secrets{
		dbPassword:       os.Getenv("FITPROGRAM_DB_PASS"),
		redisPassword:    os.Getenv("FITPROGRAM_REDIS_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
	if s.redisPassword == "" && cfg.RedisHost != "" {
		log.Warnln("redis password not set. use FITPROGRAM_REDIS_PASS")
	}
	if cfg.SentryEnabled && s.sentryDSN == "" {
		log.Warnln("sentry enabled but SENTRY_DSN not set")
	}
	if s.honeycombEnabled {
		if os.Getenv("HONEYCOMB_API_KEY") == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if os.Getenv("OTEL_SERVICE_NAME") == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}
	return s
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if err := run(*env, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fitprogram service: %s\n", err)
		os.Exit(1)
	}
}

func run(env, configPath string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return err
	}

	sec := readSecrets(cfg)
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sec.sentryDSN,
		SentryServerName: "fitprogram-service",
		MaxAgeDays:       30,
	})
	log.Warnf("---->> running in [%s] environment, port %d", cfg.Environment, cfg.Port)

	versionInfo, err := lastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "unknown"
	}
	log.Debugf("running version: %s", versionInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		VersionInfo:             versionInfo,
		DBPassword:              sec.dbPassword,
		RedisPassword:           sec.redisPassword,
		HoneycombTracingEnabled: sec.honeycombEnabled,
	})
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received ...")
	server.GracefulShutdown()
	return nil
}

// lastCommitHash works when the binary runs from within the git checkout.
func lastCommitHash() (string, error) {
	stdout, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
