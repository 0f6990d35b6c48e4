package books

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/events"
	"library-backend/internal/platform/normalize"
)

type Service struct {
	store  *Store
	clock  clock.Clock
	id     clock.IDGen
	events events.Publisher
}

func NewService(conn *db.DB, clk clock.Clock, pub events.Publisher) *Service {
	return &Service{
		store:  NewStore(conn),
		clock:  clk,
		id:     clock.ULIDGen{},
		events: pub,
	}
}

// POST /api-books
func (s *Service) Create(ctx context.Context, in CreateBookRequest) (BookResponse, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	isbn := normalize.Key(in.ISBN)
	if title == "" || author == "" || isbn == "" {
		return BookResponse{}, apierr.Invalid("title, author, and isbn are required")
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 0 {
		return BookResponse{}, apierr.Invalid("quantity must be >= 0")
	}

	now := s.clock.Now()
	b := &Book{
		ID:                s.id.NewULID(now),
		Title:             title,
		Author:            author,
		ISBN:              isbn,
		Genre:             genreOf(in.Genre),
		Quantity:          qty,
		AvailableQuantity: qty,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Insert(ctx, b); err != nil {
		return BookResponse{}, err
	}

	log.Printf("[INFO] book created id=%s isbn=%s quantity=%d", b.ID, b.ISBN, b.Quantity)
	s.events.Publish(ctx, events.TopicBooks, events.ActionCreated, b.ID)
	return toResponse(b), nil
}

func (s *Service) Get(ctx context.Context, id string) (BookResponse, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return BookResponse{}, err
	}
	return toResponse(b), nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]BookResponse, error) {
	rows, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]BookResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

// PUT /api-books?id=
func (s *Service) Update(ctx context.Context, id string, in UpdateBookRequest) (BookResponse, error) {
	var updated *Book
	err := db.Retry(ctx, func(ctx context.Context) error {
		b, err := s.store.Update(ctx, id, s.clock.Now(), func(b *Book) error {
			return applyUpdate(b, in)
		})
		updated = b
		return err
	})
	if errors.Is(err, db.ErrConcurrentUpdate) {
		return BookResponse{}, apierr.Conflict("book was modified concurrently, please retry")
	}
	if err != nil {
		return BookResponse{}, err
	}

	log.Printf("[INFO] book updated id=%s quantity=%d available=%d", updated.ID, updated.Quantity, updated.AvailableQuantity)
	s.events.Publish(ctx, events.TopicBooks, events.ActionUpdated, updated.ID)
	return toResponse(updated), nil
}

func applyUpdate(b *Book, in UpdateBookRequest) error {
	if in.Title != nil {
		if b.Title = strings.TrimSpace(*in.Title); b.Title == "" {
			return apierr.Invalid("title must not be empty")
		}
	}
	if in.Author != nil {
		if b.Author = strings.TrimSpace(*in.Author); b.Author == "" {
			return apierr.Invalid("author must not be empty")
		}
	}
	if in.ISBN != nil {
		if b.ISBN = normalize.Key(*in.ISBN); b.ISBN == "" {
			return apierr.Invalid("isbn must not be empty")
		}
	}
	if in.Genre != nil {
		b.Genre = genreOf(in.Genre)
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return apierr.Invalid("quantity must be >= 0")
		}
		delta := *in.Quantity - b.Quantity
		b.Quantity = *in.Quantity
		if in.AvailableQuantity == nil {
			b.AvailableQuantity += delta
		}
	}
	if in.AvailableQuantity != nil {
		b.AvailableQuantity = *in.AvailableQuantity
	}
	if b.AvailableQuantity < 0 || b.AvailableQuantity > b.Quantity {
		return apierr.Invalid("available_quantity must be between 0 and quantity (copies on loan cannot be removed)")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] book deleted id=%s", id)
	s.events.Publish(ctx, events.TopicBooks, events.ActionDeleted, id)
	return nil
}

func genreOf(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	g := strings.TrimSpace(*p)
	return sql.NullString{String: g, Valid: g != ""}
}
