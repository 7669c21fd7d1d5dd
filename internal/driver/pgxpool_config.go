//go:build pgx

package driver

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig configura o pool de conexões pgx usado para sondar metadados
type PoolConfig struct {
	MaxConns          int32         // Número máximo de conexões no pool
	MinConns          int32         // Número mínimo de conexões no pool
	MaxConnLifetime   time.Duration // Tempo máximo de vida de uma conexão
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// DefaultPoolConfig returns a small pool: probing runs a handful of
// single-row queries and then closes.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxConns:          2,
		MinConns:          0,
		MaxConnLifetime:   5 * time.Minute,
		MaxConnIdleTime:   30 * time.Second,
		HealthCheckPeriod: time.Minute,
	}
}

// ConfigurePgxPool aplica poolConfig sobre config
func ConfigurePgxPool(config *pgxpool.Config, poolConfig *PoolConfig) {
	if poolConfig == nil {
		poolConfig = DefaultPoolConfig()
	}

	config.MaxConns = poolConfig.MaxConns
	config.MinConns = poolConfig.MinConns
	config.MaxConnLifetime = poolConfig.MaxConnLifetime
	config.MaxConnIdleTime = poolConfig.MaxConnIdleTime
	config.HealthCheckPeriod = poolConfig.HealthCheckPeriod
}

// NewPgxPoolWithConfig cria um novo pool pgx com configuração customizada
func NewPgxPoolWithConfig(ctx context.Context, databaseURL string, poolConfig *PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	ConfigurePgxPool(config, poolConfig)

	return pgxpool.NewWithConfig(ctx, config)
}
