package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
)

const memberColumns = `id, name, email, phone, membership_date, is_active, created_at, updated_at`

type Store struct{ db *db.DB }

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

func (s *Store) Insert(ctx context.Context, m *Member) error {
	const q = `
	INSERT INTO members (id, name, email, phone, membership_date, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, s.db.Rebind(q),
		m.ID, m.Name, m.Email, m.Phone, m.MembershipDate, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return apierr.Conflict("a member with this email already exists")
		}
		return err
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	q := s.db.Rebind(`SELECT ` + memberColumns + ` FROM members WHERE id = ?`)
	if err := s.db.GetContext(ctx, &m, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.NotFound("member not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) List(ctx context.Context, f Filter) ([]Member, error) {
	ds := s.db.SQL().From("members").
		Select("id", "name", "email", "phone", "membership_date", "is_active", "created_at", "updated_at")
	if f.Search != "" {
		ds = ds.Where(goqu.Or(
			db.ContainsFold(goqu.C("name"), f.Search),
			db.ContainsFold(goqu.C("email"), f.Search),
		))
	}
	if f.Active != nil {
		ds = ds.Where(goqu.C("is_active").Eq(*f.Active))
	}
	ds = ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	list := []Member{}
	if err := s.db.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, err
	}
	return list, nil
}

// Update: 動的アップデート（変更なしでも現行値を返す）
func (s *Store) Update(ctx context.Context, id string, rec goqu.Record) (*Member, error) {
	if len(rec) > 0 {
		q, args, err := s.db.SQL().Update("members").Set(rec).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
		if err != nil {
			return nil, err
		}
		res, err := s.db.ExecContext(ctx, q, args...)
		if err != nil {
			if db.IsDuplicateKey(err) {
				return nil, apierr.Conflict("a member with this email already exists")
			}
			return nil, fmt.Errorf("update member %s: %w", id, err)
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return nil, apierr.NotFound("member not found")
		}
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM members WHERE id = ?`), id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apierr.Conflict("member has borrowing records and cannot be deleted")
		}
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apierr.NotFound("member not found")
	}
	return nil
}

func nullIfBlank(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}
