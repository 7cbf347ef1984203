package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/blackjack-server/database"
)

const connectTimeout = 5 * time.Second

// Connection is a pgx connection pool shared by the repositories.
type Connection struct {
	*pgxpool.Pool
}

type connectionOptions struct {
	maxConns int32
	migrate  bool
}

// ConnectionOption configures NewConnection.
type ConnectionOption func(*connectionOptions)

// WithMaxConns caps the pool size. Zero keeps the pgx default.
func WithMaxConns(n int32) ConnectionOption {
	return func(o *connectionOptions) {
		o.maxConns = n
	}
}

// WithoutMigrations skips applying migrations, for read-only tools.
func WithoutMigrations() ConnectionOption {
	return func(o *connectionOptions) {
		o.migrate = false
	}
}

// NewConnection opens a pool for dsn, checks that the server answers and
// applies pending migrations.
func NewConnection(ctx context.Context, dsn string, opts ...ConnectionOption) (*Connection, error) {
	o := connectionOptions{migrate: true}
	for _, opt := range opts {
		opt(&o)
	}

	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if o.maxConns > 0 {
		conf.MaxConns = o.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, storeError("ping postgres", err)
	}

	if o.migrate {
		if err := database.Migrate(ctx, dsn); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &Connection{Pool: pool}, nil
}

// Close releases every pooled connection.
func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}
