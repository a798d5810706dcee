package domain

import (
	"errors"
	"time"
)

var ErrQuoteNotFound = errors.New("quote not found")
var ErrForbidden = errors.New("access forbidden")
var ErrEmptyText = errors.New("quote text must not be empty")
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// ErrInvalidFilter is reserved for self-contradictory filter combinations.
// No such combination exists today; the policy keeps the branch defensively.
var ErrInvalidFilter = errors.New("invalid filter combination")

// Quote is the core aggregate root. UserID and TopicID are nullable: quotes
// may be authored anonymously and may carry no topic. IsFavorite is a single
// flag stored on the row, shared by all viewers.
type Quote struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Author     *string   `json:"author"`
	IsPublic   bool      `json:"is_public"`
	IsFavorite bool      `json:"is_favorite"`
	UserID     *int64    `json:"user_id"`
	TopicID    *int64    `json:"topic_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuoteWithOwner is the read-model view of a quote: the row joined with the
// owner's username. Username is nil for anonymously authored quotes.
type QuoteWithOwner struct {
	Quote
	Username *string `json:"username"`
}
