package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"contract_cli/internal/infrastructure/cli"
	"contract_cli/internal/infrastructure/configloader"
	"contract_cli/internal/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	settings := configloader.LoadSettings()

	zapLogger, err := logger.Init(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = zapLogger.Sync() }()

	// The config loader logs through logrus; keep it on stderr at the same verbosity.
	logrus.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	logger.Debug("Settings loaded",
		"config", settings.ConfigPath,
		"api_key_set", settings.APIKey != "",
		"request_timeout", settings.RequestTimeout)

	dispatcher := cli.NewDispatcher(cli.Dependencies{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Logger:    logger.NewSlogAdapter(),
		ZapLogger: zapLogger,
		Settings:  settings,
		Version:   version,
	})
	return cli.ExitCode(dispatcher.Run(context.Background(), os.Args[1:]))
}
