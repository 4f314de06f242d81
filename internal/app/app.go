// Package app собирает бота из частей: хранилище, клиент travel-API,
// машина диалога и Telegram-обработчик.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"hotelsLookerBot/config"
	"hotelsLookerBot/internal/dialog"
	"hotelsLookerBot/internal/hotelsapi"
	"hotelsLookerBot/internal/repository"
	"hotelsLookerBot/internal/session"
	"hotelsLookerBot/internal/telegram"
	"hotelsLookerBot/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	log     *slog.Logger
	db      *pgxpool.Pool
	engine  *dialog.Engine
	handler *telegram.Handler
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := database.NewConnPool(ctx, &cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("connected to postgres")

	repo := repository.NewPostgresRepository(db)
	sessions := session.NewStore(log, repo)
	api := hotelsapi.New(log, cfg.HotelsAPI)

	handler, err := telegram.NewHandler(log, cfg.Telegram.BotToken)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create telegram handler: %w", err)
	}

	engine := dialog.New(log, api, sessions, handler)

	return &App{
		log:     log,
		db:      db,
		engine:  engine,
		handler: handler,
	}, nil
}

// Run запускает длинный поллинг Telegram, блокируется до отмены контекста
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting telegram bot")
	return a.handler.Run(ctx, a.engine)
}

func (a *App) Stop() {
	a.db.Close()
	a.log.Info("gracefully stopped")
}
