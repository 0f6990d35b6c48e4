package books

import "time"

type CreateBookRequest struct {
	Title    string  `json:"title" binding:"required"`
	Author   string  `json:"author" binding:"required"`
	ISBN     string  `json:"isbn" binding:"required"`
	Genre    *string `json:"genre,omitempty"`
	Quantity *int    `json:"quantity,omitempty" binding:"omitempty,min=0"`
}

// UpdateBookRequest: nil fields are left untouched; genre "" clears it.
type UpdateBookRequest struct {
	Title             *string `json:"title,omitempty"`
	Author            *string `json:"author,omitempty"`
	ISBN              *string `json:"isbn,omitempty"`
	Genre             *string `json:"genre,omitempty"`
	Quantity          *int    `json:"quantity,omitempty" binding:"omitempty,min=0"`
	AvailableQuantity *int    `json:"available_quantity,omitempty" binding:"omitempty,min=0"`
}

type BookResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	ISBN              string    `json:"isbn"`
	Genre             *string   `json:"genre"`
	Quantity          int       `json:"quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toResponse(b *Book) BookResponse {
	var genre *string
	if b.Genre.Valid {
		g := b.Genre.String
		genre = &g
	}
	return BookResponse{
		ID:                b.ID,
		Title:             b.Title,
		Author:            b.Author,
		ISBN:              b.ISBN,
		Genre:             genre,
		Quantity:          b.Quantity,
		AvailableQuantity: b.AvailableQuantity,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
