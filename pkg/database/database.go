package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coworkly/spaces-api/pkg/config"
)

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MaxConnLifetime = cfg.MaxLifetime
	poolCfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}
