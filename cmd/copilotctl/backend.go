package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	"github.com/heartmarshall/reading-copilot/internal/app"
	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// backend is the configuration, logger and pool shared by database commands.
type backend struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
}

func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return &backend{cfg: cfg, log: logger, pool: pool}, nil
}

func (b *backend) Close() {
	b.pool.Close()
}

// asUser parses raw and returns ctx acting as that user.
func asUser(ctx context.Context, raw string) (context.Context, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}
	return ctxutil.WithUserID(ctx, id), nil
}
