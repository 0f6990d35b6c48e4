package books

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
)

const bookColumns = `id, title, author, isbn, genre, quantity, available_quantity, created_at, updated_at`

var bookSelect = []any{"id", "title", "author", "isbn", "genre", "quantity", "available_quantity", "created_at", "updated_at"}

type Store struct{ db *db.DB }

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books (id, title, author, isbn, genre, quantity, available_quantity, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, s.db.Rebind(q),
		b.ID, b.Title, b.Author, b.ISBN, b.Genre, b.Quantity, b.AvailableQuantity, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return apierr.Conflict("a book with this isbn already exists")
		}
		return err
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Book, error) {
	return getByID(ctx, s.db, id)
}

func getByID(ctx context.Context, q db.Queryer, id string) (*Book, error) {
	var b Book
	if err := q.GetContext(ctx, &b, q.Rebind(`SELECT `+bookColumns+` FROM books WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.NotFound("book not found")
		}
		return nil, err
	}
	return &b, nil
}

// List: newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Book, error) {
	ds := s.db.SQL().From("books").Select(bookSelect...)
	if f.Search != "" {
		ds = ds.Where(goqu.Or(
			db.ContainsFold(goqu.C("title"), f.Search),
			db.ContainsFold(goqu.C("author"), f.Search),
			db.ContainsFold(goqu.C("isbn"), f.Search),
		))
	}
	if f.Genre != "" {
		ds = ds.Where(goqu.C("genre").Eq(f.Genre))
	}
	if f.AvailableOnly {
		ds = ds.Where(goqu.C("available_quantity").Gt(0))
	}
	ds = ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	list := []Book{}
	if err := s.db.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, err
	}
	return list, nil
}

// Update reads the row, applies fn, and writes it back guarded by the counts
// that were read. A concurrent borrow/return in between yields
// db.ErrConcurrentUpdate so the caller can retry.
func (s *Store) Update(ctx context.Context, id string, now time.Time, fn func(b *Book) error) (*Book, error) {
	var out *Book
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		cur, err := getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		next := *cur
		if err := fn(&next); err != nil {
			return err
		}
		next.UpdatedAt = now

		q, args, err := s.db.SQL().Update("books").
			Set(goqu.Record{
				"title":              next.Title,
				"author":             next.Author,
				"isbn":               next.ISBN,
				"genre":              nullable(next.Genre),
				"quantity":           next.Quantity,
				"available_quantity": next.AvailableQuantity,
				"updated_at":         next.UpdatedAt,
			}).
			Where(
				goqu.C("id").Eq(id),
				goqu.C("quantity").Eq(cur.Quantity),
				goqu.C("available_quantity").Eq(cur.AvailableQuantity),
			).
			Prepared(true).ToSQL()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			if db.IsDuplicateKey(err) {
				return apierr.Conflict("a book with this isbn already exists")
			}
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return db.ErrConcurrentUpdate
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM books WHERE id = ?`), id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apierr.Conflict("book has borrowing records and cannot be deleted")
		}
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apierr.NotFound("book not found")
	}
	return nil
}

func nullable(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
