package members

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/dates"
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

// POST /api-members
func (s *Service) Create(ctx context.Context, in CreateMemberRequest) (MemberResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalize.Fold(in.Email)
	if name == "" || email == "" {
		return MemberResponse{}, apierr.Invalid("name and email are required")
	}

	now := s.clock.Now()
	m := &Member{
		ID:             s.id.NewULID(now),
		Name:           name,
		Email:          email,
		MembershipDate: s.clock.Today(),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			m.Phone = sql.NullString{String: p, Valid: true}
		}
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return MemberResponse{}, err
	}

	log.Printf("[INFO] member created id=%s", m.ID)
	s.events.Publish(ctx, events.TopicMembers, events.ActionCreated, m.ID)
	return toResponse(m), nil
}

func (s *Service) Get(ctx context.Context, id string) (MemberResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return MemberResponse{}, err
	}
	return toResponse(m), nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]MemberResponse, error) {
	rows, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

// PUT /api-members?id=
func (s *Service) Update(ctx context.Context, id string, in UpdateMemberRequest) (MemberResponse, error) {
	rec := goqu.Record{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return MemberResponse{}, apierr.Invalid("name must not be empty")
		}
		rec["name"] = name
	}
	if in.Email != nil {
		email := normalize.Fold(*in.Email)
		if email == "" {
			return MemberResponse{}, apierr.Invalid("email must not be empty")
		}
		rec["email"] = email
	}
	if in.Phone != nil {
		rec["phone"] = nullIfBlank(*in.Phone)
	}
	if in.IsActive != nil {
		rec["is_active"] = *in.IsActive
	}
	if in.MembershipDate != nil {
		d, err := dates.Parse(*in.MembershipDate)
		if err != nil {
			return MemberResponse{}, apierr.Invalid("membership_date: " + err.Error())
		}
		rec["membership_date"] = d.String()
	}
	if len(rec) > 0 {
		rec["updated_at"] = s.clock.Now()
	}

	m, err := s.store.Update(ctx, id, rec)
	if err != nil {
		return MemberResponse{}, err
	}
	if len(rec) > 0 {
		log.Printf("[INFO] member updated id=%s active=%t", m.ID, m.IsActive)
		s.events.Publish(ctx, events.TopicMembers, events.ActionUpdated, m.ID)
	}
	return toResponse(m), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] member deleted id=%s", id)
	s.events.Publish(ctx, events.TopicMembers, events.ActionDeleted, id)
	return nil
}
