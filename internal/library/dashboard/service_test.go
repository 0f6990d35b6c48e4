package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/library/books"
	"library-backend/internal/library/borrowings"
	"library-backend/internal/library/members"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/dates"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/db/dbtest"
	"library-backend/internal/platform/events"
)

type fixture struct {
	conn       *db.DB
	svc        *Service
	bus        *events.Bus
	books      *books.Service
	members    *members.Service
	borrowings *borrowings.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	bus := events.NewBus()
	clk := clock.Fixed{T: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	return &fixture{
		conn:       conn,
		svc:        NewService(conn, clk),
		bus:        bus,
		books:      books.NewService(conn, clk, bus),
		members:    members.NewService(conn, clk, bus),
		borrowings: borrowings.NewService(conn, clk, borrowings.DefaultFeePolicy(), bus),
	}
}

func (f *fixture) book(t *testing.T, title string, qty int) string {
	t.Helper()
	b, err := f.books.Create(context.Background(), books.CreateBookRequest{
		Title: title, Author: "author", ISBN: "isbn-" + title, Quantity: &qty,
	})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) member(t *testing.T, name string) string {
	t.Helper()
	m, err := f.members.Create(context.Background(), members.CreateMemberRequest{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return m.ID
}

func (f *fixture) borrow(t *testing.T, bookID, memberID, due string) string {
	t.Helper()
	b, err := f.borrowings.Borrow(context.Background(), borrowings.BorrowRequest{BookID: bookID, MemberID: memberID, DueDate: due})
	require.NoError(t, err)
	return b.ID
}

func Test_Stats_FromDatabase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dune := f.book(t, "Dune", 5)
	emma := f.book(t, "Emma", 2)
	ada := f.member(t, "Ada")
	bob := f.member(t, "Bob")

	first := f.borrow(t, dune, ada, "2024-01-05")
	f.borrow(t, dune, bob, "2024-01-10")
	f.borrow(t, emma, ada, "2024-01-20")
	_, err := f.borrowings.Return(ctx, first, dates.MustParse("2024-01-09"))
	require.NoError(t, err)

	// act
	st, err := f.svc.Stats(ctx, dates.MustParse("2024-01-10"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 7, st.TotalBooks)
	assert.Equal(t, 2, st.TotalMembers)
	assert.Equal(t, 2, st.ActiveLoans)
	assert.Equal(t, 0, st.OverdueLoans)
	assert.Equal(t, 1, st.BooksDueToday)
	assert.Equal(t, 2.0, st.TotalRevenue)
	require.Len(t, st.MostBorrowedBooks, 2)
	assert.Equal(t, BookCount{ID: dune, Title: "Dune", Count: 2}, st.MostBorrowedBooks[0])
	assert.Equal(t, BookCount{ID: emma, Title: "Emma", Count: 1}, st.MostBorrowedBooks[1])
	require.Len(t, st.MostActiveMembers, 2)
	assert.Equal(t, MemberCount{ID: ada, Name: "Ada", Loans: 2}, st.MostActiveMembers[0])

	later, err := f.svc.Stats(ctx, dates.MustParse("2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, later.OverdueLoans)
	assert.Equal(t, 0, later.BooksDueToday)
}

func Test_Stats_TiesRankEarlierLoanFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := f.book(t, "Alpha", 1)
	beta := f.book(t, "Beta", 1)
	ada := f.member(t, "Ada")
	bob := f.member(t, "Bob")

	at := func(hh, mm int) *borrowings.Service {
		clk := clock.Fixed{T: time.Date(2024, 1, 1, hh, mm, 0, 0, time.UTC)}
		return borrowings.NewService(f.conn, clk, borrowings.DefaultFeePolicy(), f.bus)
	}
	_, err := at(9, 0).Borrow(ctx, borrowings.BorrowRequest{BookID: alpha, MemberID: ada, DueDate: "2024-01-10"})
	require.NoError(t, err)
	_, err = at(9, 1).Borrow(ctx, borrowings.BorrowRequest{BookID: beta, MemberID: bob, DueDate: "2024-01-10"})
	require.NoError(t, err)

	// act
	st, err := f.svc.Stats(ctx, dates.MustParse("2024-01-02"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []BookCount{{ID: alpha, Title: "Alpha", Count: 1}, {ID: beta, Title: "Beta", Count: 1}}, st.MostBorrowedBooks)
	assert.Equal(t, []MemberCount{{ID: ada, Name: "Ada", Loans: 1}, {ID: bob, Name: "Bob", Loans: 1}}, st.MostActiveMembers)
}

func Test_Stats_DefaultsToToday(t *testing.T) {
	f := newFixture(t)

	st, err := f.svc.Stats(context.Background(), dates.Date{})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", st.AsOf.String())
	assert.Empty(t, st.MostBorrowedBooks)
	assert.NotNil(t, st.MostBorrowedBooks)
}

func Test_Stats_MemoClearedByEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	asOf := dates.MustParse("2024-01-01")
	f.book(t, "Dune", 1)

	st, err := f.svc.Stats(ctx, asOf)
	require.NoError(t, err)
	require.Equal(t, 1, st.TotalBooks)

	// without a subscription the memo is served
	f.book(t, "Emma", 1)
	st, err = f.svc.Stats(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalBooks)

	cancel := f.bus.SubscribeFunc(f.svc.Invalidate)
	defer cancel()
	f.book(t, "Faust", 1)
	st, err = f.svc.Stats(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalBooks)
}

func Test_Handler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	f.book(t, "Dune", 4)
	r := gin.New()
	RegisterRoutes(r, f.svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-dashboard?as_of=2024-02-01", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var st Stats
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 4, st.TotalBooks)
	assert.Contains(t, w.Body.String(), `"asOf":"2024-02-01"`)
	assert.Contains(t, w.Body.String(), `"mostBorrowedBooks":[]`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-dashboard?as_of=soon", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INVALID_INPUT"`)
}
