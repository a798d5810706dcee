// Package policy contains the pure rule sets of the quotes engine: which
// rows an actor may read (visibility) and which rows it may mutate
// (authorization). Both are free of I/O so they can be tested in isolation.
package policy

import (
	"strings"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// Predicate is one parameterized boolean condition over the quotes table
// (aliased q) to be ANDed into the list query. User-supplied values travel
// in Args only, never in Expr.
type Predicate struct {
	Expr string
	Args []any
}

// Filters carries the caller-requested restrictions on the quote listing.
// TopicID and TargetUserID are nil when not supplied.
type Filters struct {
	Search       string
	TopicID      *int64
	OnlyMine     bool
	FavoriteOnly bool
	TargetUserID *int64
}

// Visibility computes the ordered predicate conjunction restricting which
// quote rows the actor may see. The identity-dependent branch is a priority
// chain: exactly one of the five cases applies.
//
// Anonymous actors see public rows only; only_my, is_favorite targeting and
// user_id filters are ignored for them because they require identity. Admins
// carry no visibility restriction beyond an explicit user_id filter.
func Visibility(actor domain.Actor, f Filters) ([]Predicate, error) {
	var preds []Predicate

	switch actor.Kind {
	case domain.ActorAnonymous:
		preds = append(preds, Predicate{Expr: "q.is_public = 1"})

	case domain.ActorAdmin:
		if f.TargetUserID != nil {
			preds = append(preds, Predicate{Expr: "q.user_id = ?", Args: []any{*f.TargetUserID}})
		}

	case domain.ActorUser:
		switch {
		case f.OnlyMine:
			// Own quotes, public and private alike.
			preds = append(preds, Predicate{Expr: "q.user_id = ?", Args: []any{actor.ID}})
		case f.TargetUserID != nil && *f.TargetUserID == actor.ID:
			preds = append(preds, Predicate{Expr: "q.user_id = ?", Args: []any{actor.ID}})
		case f.TargetUserID != nil:
			// Someone else's quotes: never leak their private rows.
			preds = append(preds, Predicate{Expr: "q.user_id = ? AND q.is_public = 1", Args: []any{*f.TargetUserID}})
		default:
			// Default feed: public content mixed with the actor's own rows.
			preds = append(preds, Predicate{Expr: "(q.is_public = 1 OR q.user_id = ?)", Args: []any{actor.ID}})
		}
	}

	// Independent filters, ANDed in regardless of the branch above.
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		preds = append(preds, Predicate{
			Expr: "(LOWER(q.text) LIKE ? OR LOWER(q.author) LIKE ?)",
			Args: []any{pattern, pattern},
		})
	}
	if f.TopicID != nil {
		preds = append(preds, Predicate{Expr: "q.topic_id = ?", Args: []any{*f.TopicID}})
	}
	if f.FavoriteOnly && !actor.IsAnonymous() {
		// The favorite flag is stored per row, not per viewer.
		preds = append(preds, Predicate{Expr: "q.is_favorite = 1"})
	}

	return preds, nil
}
