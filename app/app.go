package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App owns the long-lived process state: configuration and the database
// connection pool. It is constructed once in main and handed to the request
// layer explicitly; there is no package-level instance.
type App struct {
	DbPool *pgxpool.Pool
	Config Config
	Logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *App {
	return &App{Config: config, Logger: logger}
}

// InitDB creates the connection pool. A deployment without database
// configuration is allowed to start; the request layer answers 503 until the
// dependency is configured. Only an actual connection failure is an error.
func (app *App) InitDB(ctx context.Context) error {
	if !app.Config.DbConfigured() {
		app.Logger.Warn("database not configured, serving degraded")
		return nil
	}

	pool, err := pgxpool.New(ctx, app.Config.ConnString())
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}

	app.DbPool = pool
	app.Logger.Info("database connection pool initialized",
		"host", app.Config.DbHost, "db", app.Config.DbName)
	return nil
}

func (app *App) Close() {
	if app.DbPool != nil {
		app.DbPool.Close()
	}
}
