package utils

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var logger = logrus.New()

const MemoryDatabase = ":memory:"

// OpenDatabase opens a sqlite database and applies ddl. An in-memory
// database is pinned to one connection, since every new connection would
// otherwise see an empty database.
func OpenDatabase(ctx context.Context, path string, ddl string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if path == MemoryDatabase {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return db, nil
}

func WithTx[T any](
	ctx context.Context,
	db *sql.DB,
	opts *sql.TxOptions,
	fn func(tx *sql.Tx) (T, error),
) (out T, err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return out, err
	}

	// Rollback the transaction on panic or error
	defer func() {
		if p := recover(); p != nil {
			rollbackErr := tx.Rollback()
			if rollbackErr != nil {
				logger.Errorf("transaction rollback error: %v", rollbackErr)
			}
			panic(p)
		}
		if err != nil {
			rollbackErr := tx.Rollback()
			if rollbackErr != nil {
				logger.Errorf("transaction rollback error: %v", rollbackErr)
			}
		}
	}()

	out, err = fn(tx)
	if err != nil {
		return out, err
	}

	// A failed commit is the final error
	if cerr := tx.Commit(); cerr != nil {
		err = cerr
		return out, err
	}
	return out, nil
}
