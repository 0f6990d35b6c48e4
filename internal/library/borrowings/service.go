package borrowings

import (
	"context"
	"log"
	"strings"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/dates"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/events"
)

// viewReader loads a borrowing joined with its book and member.
type viewReader interface {
	GetView(ctx context.Context, id string) (*borrowingView, error)
}

type Service struct {
	store  *Store
	views  viewReader
	clock  clock.Clock
	id     clock.IDGen
	fee    FeePolicy
	events events.Publisher
}

func NewService(conn *db.DB, clk clock.Clock, fee FeePolicy, pub events.Publisher) *Service {
	store := NewStore(conn)
	return &Service{
		store:  store,
		views:  store,
		clock:  clk,
		id:     clock.ULIDGen{},
		fee:    fee,
		events: pub,
	}
}

func (s *Service) FeePolicy() FeePolicy { return s.fee }

// POST /api-borrowings
func (s *Service) Borrow(ctx context.Context, in BorrowRequest) (BorrowingResponse, error) {
	bookID := strings.TrimSpace(in.BookID)
	memberID := strings.TrimSpace(in.MemberID)
	if bookID == "" || memberID == "" || strings.TrimSpace(in.DueDate) == "" {
		return BorrowingResponse{}, apierr.Invalid("book_id, member_id, and due_date are required")
	}
	due, err := dates.Parse(in.DueDate)
	if err != nil {
		return BorrowingResponse{}, apierr.Invalid("due_date: " + err.Error())
	}
	today := s.clock.Today()
	if due.Before(today) {
		return BorrowingResponse{}, apierr.Invalid("due_date must not be before today")
	}

	now := s.clock.Now()
	b := &Borrowing{
		ID:         s.id.NewULID(now),
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: today,
		DueDate:    due,
		Status:     StatusBorrowed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = db.Retry(ctx, func(ctx context.Context) error {
		return s.store.ExecBorrow(ctx, b)
	})
	if err != nil {
		return BorrowingResponse{}, err
	}

	log.Printf("[INFO] borrowed id=%s book=%s member=%s due=%s", b.ID, b.BookID, b.MemberID, b.DueDate)
	s.events.Publish(ctx, events.TopicBorrowings, events.ActionCreated, b.ID)
	s.events.Publish(ctx, events.TopicBooks, events.ActionUpdated, b.BookID)
	return s.committed(ctx, b), nil
}

// Return closes the loan as of asOf (today when zero) and finalizes the late fee.
// PUT /api-borrowings?id=&action=return
func (s *Service) Return(ctx context.Context, id string, asOf dates.Date) (BorrowingResponse, error) {
	if asOf.IsZero() {
		asOf = s.clock.Today()
	}

	var returned *Borrowing
	err := db.Retry(ctx, func(ctx context.Context) error {
		b, err := s.store.ExecReturn(ctx, id, s.clock.Now(), func(b *Borrowing) error {
			if asOf.Before(b.BorrowDate) {
				return apierr.Invalid("return date must not be before borrow_date")
			}
			b.ReturnDate = dates.NewNullDate(asOf)
			b.LateFee = s.fee.Compute(b.DueDate, asOf)
			return nil
		})
		returned = b
		return err
	})
	if err != nil {
		return BorrowingResponse{}, err
	}

	log.Printf("[INFO] returned id=%s book=%s on=%s late_fee=%.2f", returned.ID, returned.BookID, asOf, returned.LateFee)
	s.events.Publish(ctx, events.TopicBorrowings, events.ActionReturned, returned.ID)
	s.events.Publish(ctx, events.TopicBooks, events.ActionUpdated, returned.BookID)
	return s.committed(ctx, returned), nil
}

func (s *Service) Get(ctx context.Context, id string) (BorrowingResponse, error) {
	v, err := s.views.GetView(ctx, id)
	if err != nil {
		return BorrowingResponse{}, err
	}
	return toResponse(v, s.fee, s.clock.Today()), nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]BorrowingResponse, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apierr.Invalid("status must be one of borrowed, returned, overdue")
	}
	today := s.clock.Today()
	rows, err := s.store.ListViews(ctx, f, today)
	if err != nil {
		return nil, err
	}
	out := make([]BorrowingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i], s.fee, today))
	}
	return out, nil
}

// Update extends (or moves) the due date of an open loan.
// PUT /api-borrowings?id=
func (s *Service) Update(ctx context.Context, id string, in UpdateBorrowingRequest) (BorrowingResponse, error) {
	due, err := dates.Parse(in.DueDate)
	if err != nil {
		return BorrowingResponse{}, apierr.Invalid("due_date: " + err.Error())
	}
	var updated *Borrowing
	err = db.Retry(ctx, func(ctx context.Context) error {
		b, err := s.store.ExecExtend(ctx, id, due, s.clock.Now())
		updated = b
		return err
	})
	if err != nil {
		return BorrowingResponse{}, err
	}

	log.Printf("[INFO] borrowing due date changed id=%s due=%s", id, due)
	s.events.Publish(ctx, events.TopicBorrowings, events.ActionUpdated, id)
	return s.committed(ctx, updated), nil
}

// committed answers for a change that is already stored. If the joined
// re-read fails the response is built from the committed row alone, without
// the book and member summaries.
func (s *Service) committed(ctx context.Context, b *Borrowing) BorrowingResponse {
	v, err := s.views.GetView(ctx, b.ID)
	if err != nil {
		log.Printf("[WARN] borrowing %s committed but re-read failed: %v", b.ID, err)
		v = &borrowingView{Borrowing: *b}
	}
	return toResponse(v, s.fee, s.clock.Today())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	var (
		wasOpen bool
		bookID  string
	)
	err := db.Retry(ctx, func(ctx context.Context) error {
		var err error
		wasOpen, bookID, err = s.store.ExecDelete(ctx, id, s.clock.Now())
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("[INFO] borrowing deleted id=%s open=%t", id, wasOpen)
	s.events.Publish(ctx, events.TopicBorrowings, events.ActionDeleted, id)
	if wasOpen {
		s.events.Publish(ctx, events.TopicBooks, events.ActionUpdated, bookID)
	}
	return nil
}
