package ports

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// ListQuotesInput carries all query parameters for the quote listing.
type ListQuotesInput struct {
	Search       string
	TopicID      *int64 // optional: topic equality filter
	OnlyMine     bool   // restrict to the actor's own quotes
	FavoriteOnly bool   // restrict to rows flagged favorite
	TargetUserID *int64 // optional: restrict to a specific owner
	Limit        int
	Offset       int
}

// ListQuotesResult is returned by List. Count is the size of this page; the
// client treats a page shorter than Limit as the final one.
type ListQuotesResult struct {
	Items  []domain.QuoteWithOwner
	Limit  int
	Offset int
	Count  int
}

// CreateQuoteInput carries the payload for quote creation. IsPublic defaults
// to true when absent.
type CreateQuoteInput struct {
	Text     string
	Author   *string
	IsPublic *bool
	TopicID  *int64
}

// UpdateQuoteInput carries a partial update. Nil fields keep the stored value.
type UpdateQuoteInput struct {
	Text       *string
	Author     *string
	IsPublic   *bool
	IsFavorite *bool
	TopicID    *int64
}

// QuoteService defines the use-case operations of the quote engine. Every
// operation receives the request actor; visibility and authorization are
// enforced here, never in the transport layer.
type QuoteService interface {
	List(ctx context.Context, actor domain.Actor, in ListQuotesInput) (*ListQuotesResult, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.QuoteWithOwner, error)
	Create(ctx context.Context, actor domain.Actor, in CreateQuoteInput) (*domain.QuoteWithOwner, error)
	Update(ctx context.Context, actor domain.Actor, id int64, in UpdateQuoteInput) (*domain.QuoteWithOwner, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}
