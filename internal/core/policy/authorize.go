package policy

import "github.com/quotable/quotes-api/internal/core/domain"

// Action is a mutation an actor may attempt on a quote row.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize decides whether the actor may perform the mutation on the quote.
// Ownership and the admin role are the only determinants; the row's
// public/private flag is irrelevant. Anonymous actors are always denied.
func Authorize(actor domain.Actor, _ Action, q *domain.Quote) error {
	switch actor.Kind {
	case domain.ActorAdmin:
		return nil
	case domain.ActorUser:
		if q.UserID != nil && *q.UserID == actor.ID {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}
