package dashboard

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/db"
)

type Store struct{ db *db.DB }

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

// Snapshot reads the three tables inside one read-only transaction.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Books: []BookRow{}, Members: []MemberRow{}, Loans: []LoanRow{}}
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &snap.Books,
			`SELECT id, title, quantity FROM books`); err != nil {
			return fmt.Errorf("load books: %w", err)
		}
		if err := tx.SelectContext(ctx, &snap.Members,
			`SELECT id, name, is_active FROM members`); err != nil {
			return fmt.Errorf("load members: %w", err)
		}
		if err := tx.SelectContext(ctx, &snap.Loans,
			`SELECT id, book_id, member_id, due_date, status, late_fee FROM borrowings ORDER BY created_at ASC, id ASC`); err != nil {
			return fmt.Errorf("load borrowings: %w", err)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
