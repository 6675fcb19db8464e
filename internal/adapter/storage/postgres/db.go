package postgres

import (
	"context"
	"fmt"

	"billing-engine/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a PostgreSQL connection pool using pgx. pageFanOut is the
// number of invoices a billing pass works concurrently; a pool sized below it
// serializes the page's MarkPaid writes on connection checkout.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, pageFanOut int, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if pageFanOut > 0 && int(cfg.MaxConns) < pageFanOut {
		log.Warn().
			Int32("max_conns", cfg.MaxConns).
			Int("page_fan_out", pageFanOut).
			Msg("pool smaller than the billing page fan-out, page writes will queue")
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("dbname", cfg.DBName).
		Int32("max_conns", cfg.MaxConns).
		Msg("PostgreSQL connection pool established")

	return pool, nil
}
