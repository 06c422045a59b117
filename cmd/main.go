package main

import (
	"github.com/aminrz/kharj_bot/config"
	"github.com/aminrz/kharj_bot/internal/app"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

func main() {
	cfg := config.Get()

	logger := logger.New(logger.Options{
		LogLevel:        cfg.Logger.LogLevel,
		LogFile:         cfg.Logger.LogFilename,
		PrettyLogOutput: cfg.Logger.PrettyLogOutput,
	})

	app.Run(cfg, logger)
}
