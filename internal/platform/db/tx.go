package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Txを開始して fn を実行。fn が nil を返せば COMMIT、エラーなら ROLLBACK。
func RunInTx(ctx context.Context, d *DB, opts *sql.TxOptions, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := d.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// 読み取り専用Tx（スナップショット読み込み用）
func ReadOnly(ctx context.Context, d *DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	opts := &sql.TxOptions{ReadOnly: true}
	if d.DriverName() == DriverSQLite {
		// go-sqlite3 は ReadOnly オプション非対応
		opts = nil
	}
	return RunInTx(ctx, d, opts, fn)
}
