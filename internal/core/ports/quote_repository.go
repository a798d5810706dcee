package ports

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
)

// QuoteRepository defines persistence operations for quotes. All reads join
// the owner's username; implementations must use parameterized queries only.
type QuoteRepository interface {
	// List returns a page of quotes matching the predicate conjunction,
	// ordered by created_at descending. Implementations reject limit <= 0
	// and offset < 0 with domain.ErrInvalidPagination and silently clamp
	// limit to the repository ceiling.
	List(ctx context.Context, preds []policy.Predicate, limit, offset int) ([]domain.QuoteWithOwner, error)

	// FindByID retrieves a single quote regardless of visibility.
	// Returns domain.ErrQuoteNotFound when the row does not exist.
	FindByID(ctx context.Context, id int64) (*domain.QuoteWithOwner, error)

	Insert(ctx context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error)

	// Update writes the full merged row. The read-merge-write sequence is
	// not transactional; concurrent updates are last-writer-wins.
	Update(ctx context.Context, q *domain.Quote) (*domain.QuoteWithOwner, error)

	Delete(ctx context.Context, id int64) error
}
