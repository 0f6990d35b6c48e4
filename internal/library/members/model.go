package members

import (
	"database/sql"
	"time"

	"library-backend/internal/platform/dates"
)

type Member struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Phone          sql.NullString `db:"phone"`
	MembershipDate dates.Date     `db:"membership_date"`
	IsActive       bool           `db:"is_active"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type Filter struct {
	Search string
	Active *bool
}
