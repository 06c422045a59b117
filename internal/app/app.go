package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/aminrz/kharj_bot/config"
	"github.com/aminrz/kharj_bot/internal/api/telegram"
	"github.com/aminrz/kharj_bot/internal/migrations"
	"github.com/aminrz/kharj_bot/internal/service"
	"github.com/aminrz/kharj_bot/internal/store"
	"github.com/aminrz/kharj_bot/pkg/database"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

// Run is used to start the application.
func Run(cfg *config.Config, logger *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQL(database.PostgreSQLOptions{
		User:     cfg.PostgreSQL.User,
		Password: cfg.PostgreSQL.Password,
		Database: cfg.PostgreSQL.Database,
		Host:     cfg.PostgreSQL.Host,
		Port:     cfg.PostgreSQL.Port,
		SSLMode:  cfg.PostgreSQL.SSLMode,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to postgresql")
	}
	defer func() {
		err := db.Close()
		if err != nil {
			logger.Error().Err(err).Msg("close database connection")
		}
	}()

	err = db.Ping(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("ping postgresql")
	}

	err = migrations.MigrateDB(logger, db.DB, cfg.PostgreSQL.Database, migrations.Migrations)
	if err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}

	messenger, err := telegram.New(telegram.Options{
		Token:         cfg.Telegram.BotToken,
		UpdatesType:   cfg.Telegram.UpdatesType,
		ServerAddress: cfg.Telegram.ServerAddress,
		WebhookURL:    cfg.Telegram.WebhookURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("create telegram api")
	}
	defer func() {
		err := messenger.Close()
		if err != nil {
			logger.Error().Err(err).Msg("close telegram api")
		}
	}()

	apis := service.APIs{
		Messenger: messenger,
	}

	stores := service.Stores{
		Record: store.NewRecord(db),
		State:  store.NewState(db),
	}

	services := service.Services{
		Parser: service.NewParser(&service.ParserOptions{
			Logger: logger,
		}),
		State: service.NewState(&service.StateOptions{
			Logger: logger,
			Stores: &stores,
		}),
	}
	services.Handler = service.NewHandler(&service.HandlerOptions{
		Logger:   logger,
		Services: services,
		Stores:   stores,
		APIs:     apis,
	})
	services.Event = service.NewEvent(&service.EventOptions{
		Logger:         logger,
		APIs:           apis,
		Services:       services,
		AllowedUserIDs: cfg.Telegram.AllowedUserIDs,
	})

	logger.Info().Msg("starting bot ...")
	services.Event.Listen(ctx)
}
