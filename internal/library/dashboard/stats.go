package dashboard

import (
	"math"
	"sort"

	"library-backend/internal/platform/dates"
)

// TopN is the length of the ranking lists.
const TopN = 5

const unknownName = "Unknown"

type BookRow struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Quantity int    `db:"quantity"`
}

type MemberRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

type LoanRow struct {
	ID       string     `db:"id"`
	BookID   string     `db:"book_id"`
	MemberID string     `db:"member_id"`
	DueDate  dates.Date `db:"due_date"`
	Status   string     `db:"status"`
	LateFee  float64    `db:"late_fee"`
}

// Snapshot is everything the dashboard looks at. Loans are oldest first.
type Snapshot struct {
	Books   []BookRow
	Members []MemberRow
	Loans   []LoanRow
}

type BookCount struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type MemberCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Loans int    `json:"loans"`
}

type Stats struct {
	TotalBooks        int           `json:"totalBooks"`
	TotalMembers      int           `json:"totalMembers"`
	ActiveLoans       int           `json:"activeLoans"`
	OverdueLoans      int           `json:"overdueLoans"`
	TotalRevenue      float64       `json:"totalRevenue"`
	BooksDueToday     int           `json:"booksDueToday"`
	MostBorrowedBooks []BookCount   `json:"mostBorrowedBooks"`
	MostActiveMembers []MemberCount `json:"mostActiveMembers"`
	AsOf              dates.Date    `json:"asOf"`
}

const statusBorrowed = "borrowed"

// Compute aggregates a snapshot as of the given day.
func Compute(s Snapshot, asOf dates.Date) Stats {
	st := Stats{AsOf: asOf}

	titles := make(map[string]string, len(s.Books))
	for _, b := range s.Books {
		st.TotalBooks += b.Quantity
		titles[b.ID] = b.Title
	}
	names := make(map[string]string, len(s.Members))
	for _, m := range s.Members {
		if m.IsActive {
			st.TotalMembers++
		}
		names[m.ID] = m.Name
	}

	bookRank := newRanking()
	memberRank := newRanking()
	for _, l := range s.Loans {
		st.TotalRevenue += l.LateFee
		bookRank.add(l.BookID)
		memberRank.add(l.MemberID)

		if l.Status != statusBorrowed {
			continue
		}
		st.ActiveLoans++
		switch {
		case l.DueDate.Before(asOf):
			st.OverdueLoans++
		case l.DueDate == asOf:
			st.BooksDueToday++
		}
	}
	st.TotalRevenue = math.Round(st.TotalRevenue*100) / 100

	st.MostBorrowedBooks = []BookCount{}
	for _, e := range bookRank.top(TopN) {
		st.MostBorrowedBooks = append(st.MostBorrowedBooks, BookCount{ID: e.id, Title: nameOr(titles, e.id), Count: e.count})
	}
	st.MostActiveMembers = []MemberCount{}
	for _, e := range memberRank.top(TopN) {
		st.MostActiveMembers = append(st.MostActiveMembers, MemberCount{ID: e.id, Name: nameOr(names, e.id), Loans: e.count})
	}
	return st
}

func nameOr(m map[string]string, id string) string {
	if v, ok := m[id]; ok && v != "" {
		return v
	}
	return unknownName
}

// ranking counts keys and remembers the order each key was first seen.
type ranking struct {
	idx     map[string]int
	entries []rankEntry
}

type rankEntry struct {
	id    string
	count int
}

func newRanking() *ranking { return &ranking{idx: map[string]int{}} }

func (r *ranking) add(id string) {
	if i, ok := r.idx[id]; ok {
		r.entries[i].count++
		return
	}
	r.idx[id] = len(r.entries)
	r.entries = append(r.entries, rankEntry{id: id, count: 1})
}

// top returns the n highest counts; equal counts keep first-seen order.
func (r *ranking) top(n int) []rankEntry {
	out := make([]rankEntry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
