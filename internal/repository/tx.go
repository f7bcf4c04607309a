package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txKey struct{}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// conn returns the transaction bound to ctx, falling back to the pool.
func conn(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}

	return db
}

type PostgresTransactor struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresTransactor(db *pgxpool.Pool, lockTimeout time.Duration) *PostgresTransactor {
	return &PostgresTransactor{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

func (t *PostgresTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	err := runInTx(ctx, t.db, func(tx pgx.Tx) error {
		if t.lockTimeout > 0 {
			_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", t.lockTimeout.Milliseconds()))
			if err != nil {
				return err
			}
		}

		return fn(context.WithValue(ctx, txKey{}, tx))
	})

	return classifyError(err)
}

// txBeginner is satisfied by *pgxpool.Pool and by pgx.Tx, where Begin opens
// a savepoint.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inTx runs fn inside a savepoint of the transaction bound to ctx, or inside
// a new transaction when there is none, so a failing fn leaves no writes
// behind either way.
func inTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return runInTx(ctx, tx, fn)
	}

	return runInTx(ctx, db, fn)
}

func runInTx(ctx context.Context, db txBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
