package members

import (
	"time"

	"library-backend/internal/platform/dates"
)

type CreateMemberRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone,omitempty"`
}

type UpdateMemberRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	MembershipDate *string `json:"membership_date,omitempty" binding:"omitempty,date"`
}

type MemberResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	MembershipDate dates.Date `json:"membership_date"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toResponse(m *Member) MemberResponse {
	var phone *string
	if m.Phone.Valid {
		p := m.Phone.String
		phone = &p
	}
	return MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          phone,
		MembershipDate: m.MembershipDate,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
