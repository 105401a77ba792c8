package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"astra-cinemas/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs the cache with a shared table, for kiosk
// deployments where several terminals show the same account's tickets.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS ticket_cache (
	cliente_id    TEXT        NOT NULL,
	ticket_id     TEXT        NOT NULL,
	payload       JSONB       NOT NULL,
	atualizado_em TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (cliente_id, ticket_id)
)`

func NewPostgresStore(ctx context.Context, cfg utils.PostgresConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createCacheTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure cache table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context, clienteID string) ([]CachedTicket, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM ticket_cache WHERE cliente_id = $1 ORDER BY ticket_id`,
		clienteID,
	)
	if err != nil {
		return nil, fmt.Errorf("load ticket cache: %w", err)
	}
	defer rows.Close()

	var tickets []CachedTicket
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan ticket cache row: %w", err)
		}
		var t CachedTicket
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, fmt.Errorf("decode cached ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (s *PostgresStore) Save(ctx context.Context, clienteID string, tickets []CachedTicket) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cache save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM ticket_cache WHERE cliente_id = $1`, clienteID,
	); err != nil {
		return fmt.Errorf("clear ticket cache: %w", err)
	}

	for _, t := range tickets {
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode cached ticket: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO ticket_cache (cliente_id, ticket_id, payload) VALUES ($1, $2, $3)`,
			clienteID, ticketKey(t), payload,
		); err != nil {
			return fmt.Errorf("insert cached ticket: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
