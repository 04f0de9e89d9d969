package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores entries in the storage_entries table created by cmd/migrate.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Get(ctx context.Context, namespace, key string) (string, error) {
	const query = `SELECT value FROM storage_entries WHERE namespace = $1 AND entry_key = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var value string
	if err := r.db.QueryRow(timeoutCtx, query, namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *PostgresRepo) Set(ctx context.Context, namespace, key, value string) error {
	const upsertSQL = `
		INSERT INTO storage_entries (namespace, entry_key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, entry_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, upsertSQL, namespace, key, value)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, namespace, key string) error {
	const deleteSQL = `DELETE FROM storage_entries WHERE namespace = $1 AND entry_key = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, deleteSQL, namespace, key)
	return err
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}

func (r *PostgresRepo) Close() error {
	r.db.Close()
	return nil
}
