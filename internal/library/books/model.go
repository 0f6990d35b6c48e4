package books

import (
	"database/sql"
	"time"
)

type Book struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Author            string         `db:"author"`
	ISBN              string         `db:"isbn"`
	Genre             sql.NullString `db:"genre"`
	Quantity          int            `db:"quantity"`
	AvailableQuantity int            `db:"available_quantity"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// OnLoan is the number of copies currently out.
func (b Book) OnLoan() int { return b.Quantity - b.AvailableQuantity }

type Filter struct {
	Search        string
	Genre         string
	AvailableOnly bool
}
