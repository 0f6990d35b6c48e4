package db

import (
	"context"
	"fmt"
	"log"
)

// テーブル定義（ドライバごと）。何度実行しても安全。
var schema = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS books (
			id                 CHAR(26)     NOT NULL PRIMARY KEY,
			title              VARCHAR(255) NOT NULL,
			author             VARCHAR(255) NOT NULL,
			isbn               VARCHAR(32)  NOT NULL,
			genre              VARCHAR(128) NULL,
			quantity           INT          NOT NULL DEFAULT 1,
			available_quantity INT          NOT NULL DEFAULT 1,
			created_at         DATETIME(6)  NOT NULL,
			updated_at         DATETIME(6)  NOT NULL,
			UNIQUE KEY uq_books_isbn (isbn),
			KEY idx_books_created_at (created_at),
			CONSTRAINT chk_books_quantity CHECK (quantity >= 0),
			CONSTRAINT chk_books_available CHECK (available_quantity >= 0 AND available_quantity <= quantity)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS members (
			id              CHAR(26)     NOT NULL PRIMARY KEY,
			name            VARCHAR(255) NOT NULL,
			email           VARCHAR(255) NOT NULL,
			phone           VARCHAR(64)  NULL,
			membership_date DATE         NOT NULL,
			is_active       BOOLEAN      NOT NULL DEFAULT TRUE,
			created_at      DATETIME(6)  NOT NULL,
			updated_at      DATETIME(6)  NOT NULL,
			UNIQUE KEY uq_members_email (email),
			KEY idx_members_created_at (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id          CHAR(26)      NOT NULL PRIMARY KEY,
			book_id     CHAR(26)      NOT NULL,
			member_id   CHAR(26)      NOT NULL,
			borrow_date DATE          NOT NULL,
			due_date    DATE          NOT NULL,
			return_date DATE          NULL,
			late_fee    DECIMAL(10,2) NOT NULL DEFAULT 0,
			status      VARCHAR(16)   NOT NULL DEFAULT 'borrowed',
			created_at  DATETIME(6)   NOT NULL,
			updated_at  DATETIME(6)   NOT NULL,
			KEY idx_borrowings_book (book_id),
			KEY idx_borrowings_member (member_id),
			KEY idx_borrowings_status_due (status, due_date),
			KEY idx_borrowings_created_at (created_at),
			CONSTRAINT fk_borrowings_book FOREIGN KEY (book_id) REFERENCES books (id),
			CONSTRAINT fk_borrowings_member FOREIGN KEY (member_id) REFERENCES members (id),
			CONSTRAINT chk_borrowings_status CHECK (status IN ('borrowed', 'returned')),
			CONSTRAINT chk_borrowings_fee CHECK (late_fee >= 0)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS books (
			id                 TEXT    NOT NULL PRIMARY KEY,
			title              TEXT    NOT NULL,
			author             TEXT    NOT NULL,
			isbn               TEXT    NOT NULL UNIQUE,
			genre              TEXT    NULL,
			quantity           INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
			available_quantity INTEGER NOT NULL DEFAULT 1,
			created_at         DATETIME NOT NULL,
			updated_at         DATETIME NOT NULL,
			CHECK (available_quantity >= 0 AND available_quantity <= quantity)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books (created_at)`,
		`CREATE TABLE IF NOT EXISTS members (
			id              TEXT     NOT NULL PRIMARY KEY,
			name            TEXT     NOT NULL,
			email           TEXT     NOT NULL UNIQUE,
			phone           TEXT     NULL,
			membership_date DATE     NOT NULL,
			is_active       BOOLEAN  NOT NULL DEFAULT 1,
			created_at      DATETIME NOT NULL,
			updated_at      DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at)`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id          TEXT     NOT NULL PRIMARY KEY,
			book_id     TEXT     NOT NULL REFERENCES books (id),
			member_id   TEXT     NOT NULL REFERENCES members (id),
			borrow_date DATE     NOT NULL,
			due_date    DATE     NOT NULL,
			return_date DATE     NULL,
			late_fee    REAL     NOT NULL DEFAULT 0 CHECK (late_fee >= 0),
			status      TEXT     NOT NULL DEFAULT 'borrowed' CHECK (status IN ('borrowed', 'returned')),
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_book ON borrowings (book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_member ON borrowings (member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_status_due ON borrowings (status, due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_created_at ON borrowings (created_at)`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS books (
			id                 CHAR(26)     NOT NULL PRIMARY KEY,
			title              VARCHAR(255) NOT NULL,
			author             VARCHAR(255) NOT NULL,
			isbn               VARCHAR(32)  NOT NULL UNIQUE,
			genre              VARCHAR(128) NULL,
			quantity           INTEGER      NOT NULL DEFAULT 1 CHECK (quantity >= 0),
			available_quantity INTEGER      NOT NULL DEFAULT 1,
			created_at         TIMESTAMPTZ  NOT NULL,
			updated_at         TIMESTAMPTZ  NOT NULL,
			CHECK (available_quantity >= 0 AND available_quantity <= quantity)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books (created_at)`,
		`CREATE TABLE IF NOT EXISTS members (
			id              CHAR(26)     NOT NULL PRIMARY KEY,
			name            VARCHAR(255) NOT NULL,
			email           VARCHAR(255) NOT NULL UNIQUE,
			phone           VARCHAR(64)  NULL,
			membership_date DATE         NOT NULL,
			is_active       BOOLEAN      NOT NULL DEFAULT TRUE,
			created_at      TIMESTAMPTZ  NOT NULL,
			updated_at      TIMESTAMPTZ  NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at)`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id          CHAR(26)      NOT NULL PRIMARY KEY,
			book_id     CHAR(26)      NOT NULL REFERENCES books (id),
			member_id   CHAR(26)      NOT NULL REFERENCES members (id),
			borrow_date DATE          NOT NULL,
			due_date    DATE          NOT NULL,
			return_date DATE          NULL,
			late_fee    NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (late_fee >= 0),
			status      VARCHAR(16)   NOT NULL DEFAULT 'borrowed' CHECK (status IN ('borrowed', 'returned')),
			created_at  TIMESTAMPTZ   NOT NULL,
			updated_at  TIMESTAMPTZ   NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_book ON borrowings (book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_member ON borrowings (member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_status_due ON borrowings (status, due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_created_at ON borrowings (created_at)`,
	},
}

// Migrate creates the tables and indexes for the pool's driver.
func Migrate(ctx context.Context, d *DB) error {
	stmts, ok := schema[d.DriverName()]
	if !ok {
		return fmt.Errorf("migrate: unsupported driver %q", d.DriverName())
	}
	for i, q := range stmts {
		if _, err := d.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	log.Printf("[INFO] migrated schema (%s, %d statements)", d.DriverName(), len(stmts))
	return nil
}
