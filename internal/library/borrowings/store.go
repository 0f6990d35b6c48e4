package borrowings

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/dates"
	"library-backend/internal/platform/db"
)

const borrowingColumns = `id, book_id, member_id, borrow_date, due_date, return_date, late_fee, status, created_at, updated_at`

var viewSelect = []any{
	goqu.I("br.id"), goqu.I("br.book_id"), goqu.I("br.member_id"), goqu.I("br.borrow_date"),
	goqu.I("br.due_date"), goqu.I("br.return_date"), goqu.I("br.late_fee"), goqu.I("br.status"),
	goqu.I("br.created_at"), goqu.I("br.updated_at"),
	goqu.I("bk.title").As("book_title"),
	goqu.I("bk.author").As("book_author"),
	goqu.I("bk.isbn").As("book_isbn"),
	goqu.I("bk.genre").As("book_genre"),
	goqu.I("bk.quantity").As("book_quantity"),
	goqu.I("bk.available_quantity").As("book_available_quantity"),
	goqu.I("m.name").As("member_name"),
	goqu.I("m.email").As("member_email"),
	goqu.I("m.phone").As("member_phone"),
	goqu.I("m.is_active").As("member_is_active"),
	goqu.I("m.membership_date").As("member_membership_date"),
}

type Store struct{ db *db.DB }

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

// ===== reads =====

func (s *Store) views() *goqu.SelectDataset {
	return s.db.SQL().From(goqu.T("borrowings").As("br")).
		LeftJoin(goqu.T("books").As("bk"), goqu.On(goqu.I("bk.id").Eq(goqu.I("br.book_id")))).
		LeftJoin(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("br.member_id")))).
		Select(viewSelect...)
}

func (s *Store) GetView(ctx context.Context, id string) (*borrowingView, error) {
	q, args, err := s.views().Where(goqu.I("br.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var v borrowingView
	if err := s.db.GetContext(ctx, &v, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.NotFound("borrowing not found")
		}
		return nil, err
	}
	return &v, nil
}

// ListViews: newest first. Overdue/borrowed are split on due_date vs today.
func (s *Store) ListViews(ctx context.Context, f Filter, today dates.Date) ([]borrowingView, error) {
	ds := s.views()
	switch f.Status {
	case StatusReturned:
		ds = ds.Where(goqu.I("br.status").Eq(string(StatusReturned)))
	case StatusBorrowed:
		ds = ds.Where(goqu.I("br.status").Eq(string(StatusBorrowed)), goqu.I("br.due_date").Gte(today.String()))
	case StatusOverdue:
		ds = ds.Where(goqu.I("br.status").Eq(string(StatusBorrowed)), goqu.I("br.due_date").Lt(today.String()))
	}
	if f.MemberID != "" {
		ds = ds.Where(goqu.I("br.member_id").Eq(f.MemberID))
	}
	if f.BookID != "" {
		ds = ds.Where(goqu.I("br.book_id").Eq(f.BookID))
	}
	if f.Search != "" {
		ds = ds.Where(goqu.Or(
			db.ContainsFold(goqu.I("bk.title"), f.Search),
			db.ContainsFold(goqu.I("m.name"), f.Search),
		))
	}
	ds = ds.Order(goqu.I("br.created_at").Desc(), goqu.I("br.id").Desc())

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	list := []borrowingView{}
	if err := s.db.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func getBorrowing(ctx context.Context, q db.Queryer, id string) (*Borrowing, error) {
	var b Borrowing
	if err := q.GetContext(ctx, &b, q.Rebind(`SELECT `+borrowingColumns+` FROM borrowings WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.NotFound("borrowing not found")
		}
		return nil, err
	}
	return &b, nil
}

// ===== book copies =====

// takeCopy: 在庫の条件付き減算（0件なら貸出不可）
func takeCopy(ctx context.Context, tx *sqlx.Tx, bookID string, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE books SET available_quantity = available_quantity - 1, updated_at = ? WHERE id = ? AND available_quantity >= 1`),
		now, bookID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 1 {
		return nil
	}

	var one int
	err = tx.GetContext(ctx, &one, tx.Rebind(`SELECT 1 FROM books WHERE id = ?`), bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return apierr.NotFound("book not found")
	}
	if err != nil {
		return err
	}
	return apierr.NotAvailable("book is not available")
}

// giveBackCopy: 上限（quantity）付きの加算。上限到達は警告のみ。
func giveBackCopy(ctx context.Context, tx *sqlx.Tx, bookID string, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE books SET available_quantity = available_quantity + 1, updated_at = ? WHERE id = ? AND available_quantity < quantity`),
		now, bookID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		log.Printf("[WARN] book %s: available_quantity already at quantity (or book missing), copy not added back", bookID)
	}
	return nil
}

// ===== workflow =====

// ExecBorrow takes one copy of the book and inserts the borrowing in one transaction.
func (s *Store) ExecBorrow(ctx context.Context, b *Borrowing) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := takeCopy(ctx, tx, b.BookID, b.UpdatedAt); err != nil {
			return err
		}

		var active bool
		err := tx.GetContext(ctx, &active, tx.Rebind(`SELECT is_active FROM members WHERE id = ?`), b.MemberID)
		if errors.Is(err, sql.ErrNoRows) {
			return apierr.NotFound("member not found")
		}
		if err != nil {
			return err
		}
		if !active {
			return apierr.InactiveMember("member is not active")
		}

		const q = `
		INSERT INTO borrowings (id, book_id, member_id, borrow_date, due_date, return_date, late_fee, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL, 0, ?, ?, ?)`
		_, err = tx.ExecContext(ctx, tx.Rebind(q),
			b.ID, b.BookID, b.MemberID, b.BorrowDate, b.DueDate, string(StatusBorrowed), b.CreatedAt, b.UpdatedAt)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return apierr.NotFound("book or member not found")
			}
			return err
		}
		return nil
	})
}

// ExecReturn closes an open borrowing. settle fills ReturnDate and LateFee on
// the locked-in row; the conditional update makes a racing second return fail.
func (s *Store) ExecReturn(ctx context.Context, id string, now time.Time, settle func(b *Borrowing) error) (*Borrowing, error) {
	var out *Borrowing
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		b, err := getBorrowing(ctx, tx, id)
		if err != nil {
			return err
		}
		if b.Status != StatusBorrowed {
			return apierr.AlreadyReturned("borrowing already returned")
		}
		if err := settle(b); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind(`UPDATE borrowings SET status = ?, return_date = ?, late_fee = ?, updated_at = ? WHERE id = ? AND status = ?`),
			string(StatusReturned), b.ReturnDate, b.LateFee, now, id, string(StatusBorrowed))
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.AlreadyReturned("borrowing already returned")
		}
		if err := giveBackCopy(ctx, tx, b.BookID, now); err != nil {
			return err
		}

		b.Status = StatusReturned
		b.UpdatedAt = now
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecExtend moves the due date of an open borrowing and returns the updated row.
func (s *Store) ExecExtend(ctx context.Context, id string, due dates.Date, now time.Time) (*Borrowing, error) {
	var out *Borrowing
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		b, err := getBorrowing(ctx, tx, id)
		if err != nil {
			return err
		}
		if b.Status != StatusBorrowed {
			return apierr.AlreadyReturned("borrowing already returned; due date can no longer change")
		}
		if due.Before(b.BorrowDate) {
			return apierr.Invalid("due_date must not be before borrow_date")
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind(`UPDATE borrowings SET due_date = ?, updated_at = ? WHERE id = ? AND status = ?`),
			due, now, id, string(StatusBorrowed))
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.AlreadyReturned("borrowing already returned; due date can no longer change")
		}
		b.DueDate = due
		b.UpdatedAt = now
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecDelete removes a borrowing; an open one gives its copy back.
func (s *Store) ExecDelete(ctx context.Context, id string, now time.Time) (wasOpen bool, bookID string, err error) {
	err = db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		wasOpen, bookID = false, ""
		b, err := getBorrowing(ctx, tx, id)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM borrowings WHERE id = ?`), id)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.NotFound("borrowing not found")
		}
		bookID = b.BookID
		if b.Status == StatusBorrowed {
			wasOpen = true
			return giveBackCopy(ctx, tx, b.BookID, now)
		}
		return nil
	})
	return wasOpen, bookID, err
}
