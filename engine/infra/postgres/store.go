package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/compozy/uafixtures/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

const (
	defaultMaxConns       = 4
	defaultConnectTimeout = 5 * time.Second
	defaultPingTimeout    = 3 * time.Second

	pingRetries = 2
	pingBackoff = 200 * time.Millisecond
)

// Store owns the pgx pool the request source reads from.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore initializes the pgx pool using the provided config and verifies
// the connection.
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg.IsZero() {
		return nil, fmt.Errorf("postgres: connection settings are required")
	}
	poolCfg, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	pingTimeout := defaultPingTimeout
	if cfg.PingTimeout > 0 {
		pingTimeout = cfg.PingTimeout
	}
	err = retry.Do(
		ctx,
		retry.WithMaxRetries(pingRetries, retry.NewExponential(pingBackoff)),
		func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			if err := pool.Ping(pingCtx); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		},
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	logger.FromContext(ctx).With(
		"store_driver", "postgres",
		"host", cfg.Host,
		"port", cfg.Port,
		"db_name", cfg.DBName,
		"max_conns", poolCfg.MaxConns,
	).Info("Store initialized")
	return &Store{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *Store) Close(ctx context.Context) {
	s.pool.Close()
	logger.FromContext(ctx).Debug("Postgres store closed")
}

// DB exposes the pool behind the query interface the repositories use.
func (s *Store) DB() DB { return s.pool }

func buildPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	poolCfg.MaxConns = maxConns(cfg.MaxOpenConns)
	poolCfg.MinConns = 0
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	} else {
		poolCfg.ConnConfig.ConnectTimeout = defaultConnectTimeout
	}
	return poolCfg, nil
}

// maxConns clamps the configured pool size to int32 and applies the default
// for non-positive values.
func maxConns(n int) int32 {
	switch {
	case n <= 0:
		return defaultMaxConns
	case n > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(n)
	}
}
