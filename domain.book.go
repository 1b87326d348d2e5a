package main

import "time"

// Book represents a catalog entry as persisted. The identifier and the
// creation timestamp are assigned by the storage layer at insert time
// and are immutable afterwards.
type Book struct {
	ID            int64
	Title         string
	Author        string
	ISBN          string
	PublishedYear *int
	Available     bool
	CreatedAt     time.Time
}

// BookDraft is a candidate record handed to the storage layer. It holds
// everything but the server-assigned fields.
type BookDraft struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear *int
	Available     bool
}

// BookView is the wire representation of a book. The creation timestamp
// is rendered as an ISO-8601 string and the publication year stays null
// when it was never provided.
type BookView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Available     bool   `json:"available"`
	CreatedAt     string `json:"created_at"`
}

// CreateBookRequest is the payload accepted on book creation. Optional
// fields are pointers so an omitted `available` can default to true.
type CreateBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Available     *bool  `json:"available"`
}

// Draft converts an already validated creation request into a storage
// draft, applying the availability default.
func (req *CreateBookRequest) Draft() BookDraft {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return BookDraft{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		Available:     available,
	}
}

// Serialize produces the wire representation of a book record.
func Serialize(book Book) BookView {
	return BookView{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		Available:     book.Available,
		CreatedAt:     book.CreatedAt.Format(time.RFC3339),
	}
}

// SerializeAll maps a snapshot of book records to their wire views.
func SerializeAll(books []Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, book := range books {
		views = append(views, Serialize(book))
	}
	return views
}
