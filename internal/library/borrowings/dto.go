package borrowings

import (
	"database/sql"
	"time"

	"library-backend/internal/platform/dates"
)

type BorrowRequest struct {
	BookID   string `json:"book_id" binding:"required"`
	MemberID string `json:"member_id" binding:"required"`
	DueDate  string `json:"due_date" binding:"required,date"`
}

// UpdateBorrowingRequest: only the due date of an open loan can change.
type UpdateBorrowingRequest struct {
	DueDate string `json:"due_date" binding:"required,date"`
}

type BookSummary struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	ISBN              string  `json:"isbn"`
	Genre             *string `json:"genre"`
	Quantity          int     `json:"quantity"`
	AvailableQuantity int     `json:"available_quantity"`
}

type MemberSummary struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          *string     `json:"phone"`
	IsActive       bool        `json:"is_active"`
	MembershipDate *dates.Date `json:"membership_date"`
}

type BorrowingResponse struct {
	ID             string         `json:"id"`
	BookID         string         `json:"book_id"`
	MemberID       string         `json:"member_id"`
	BorrowDate     dates.Date     `json:"borrow_date"`
	DueDate        dates.Date     `json:"due_date"`
	ReturnDate     *dates.Date    `json:"return_date"`
	LateFee        float64        `json:"late_fee"`
	Status         Status         `json:"status"`
	DisplayStatus  Status         `json:"display_status"`
	AccruedLateFee float64        `json:"accrued_late_fee"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Book           *BookSummary   `json:"book"`
	Member         *MemberSummary `json:"member"`
}

func toResponse(v *borrowingView, fee FeePolicy, today dates.Date) BorrowingResponse {
	b := v.Borrowing
	res := BorrowingResponse{
		ID:             b.ID,
		BookID:         b.BookID,
		MemberID:       b.MemberID,
		BorrowDate:     b.BorrowDate,
		DueDate:        b.DueDate,
		ReturnDate:     b.ReturnDate.Ptr(),
		LateFee:        b.LateFee,
		Status:         b.Status,
		DisplayStatus:  ComputeStatus(b, today),
		AccruedLateFee: fee.AccruedFee(b, today),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if v.BookTitle.Valid {
		res.Book = &BookSummary{
			ID:                b.BookID,
			Title:             v.BookTitle.String,
			Author:            v.BookAuthor.String,
			ISBN:              v.BookISBN.String,
			Genre:             strPtr(v.BookGenre),
			Quantity:          int(v.BookQuantity.Int64),
			AvailableQuantity: int(v.BookAvailableQuantity.Int64),
		}
	}
	if v.MemberName.Valid {
		res.Member = &MemberSummary{
			ID:             b.MemberID,
			Name:           v.MemberName.String,
			Email:          v.MemberEmail.String,
			Phone:          strPtr(v.MemberPhone),
			IsActive:       v.MemberIsActive.Bool,
			MembershipDate: v.MemberMembershipDate.Ptr(),
		}
	}
	return res
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
