package borrowings

import (
	"database/sql"
	"time"

	"library-backend/internal/platform/dates"
)

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue" // 表示用のみ（永続化しない）
)

func (s Status) Valid() bool {
	switch s {
	case StatusBorrowed, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

type Borrowing struct {
	ID         string         `db:"id"`
	BookID     string         `db:"book_id"`
	MemberID   string         `db:"member_id"`
	BorrowDate dates.Date     `db:"borrow_date"`
	DueDate    dates.Date     `db:"due_date"`
	ReturnDate dates.NullDate `db:"return_date"`
	LateFee    float64        `db:"late_fee"`
	Status     Status         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// borrowingView is a borrowing joined with its book and member rows.
type borrowingView struct {
	Borrowing

	BookTitle             sql.NullString `db:"book_title"`
	BookAuthor            sql.NullString `db:"book_author"`
	BookISBN              sql.NullString `db:"book_isbn"`
	BookGenre             sql.NullString `db:"book_genre"`
	BookQuantity          sql.NullInt64  `db:"book_quantity"`
	BookAvailableQuantity sql.NullInt64  `db:"book_available_quantity"`

	MemberName           sql.NullString `db:"member_name"`
	MemberEmail          sql.NullString `db:"member_email"`
	MemberPhone          sql.NullString `db:"member_phone"`
	MemberIsActive       sql.NullBool   `db:"member_is_active"`
	MemberMembershipDate dates.NullDate `db:"member_membership_date"`
}

type Filter struct {
	Status   Status
	MemberID string
	BookID   string
	Search   string
}
