package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/quotable/quotes-api/internal/api/middleware"
	"github.com/quotable/quotes-api/internal/core/domain"
)

// ctxActor extracts the actor injected by the auth middleware. Routes mounted
// without any auth middleware, and optional-auth routes without a credential,
// resolve to the anonymous actor.
func ctxActor(c echo.Context) domain.Actor {
	if actor, ok := c.Get(middleware.ActorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Anonymous()
}

// actorLabel maps an actor kind to its metric label value.
func actorLabel(a domain.Actor) string {
	switch a.Kind {
	case domain.ActorAdmin:
		return "admin"
	case domain.ActorUser:
		return "user"
	default:
		return "anonymous"
	}
}
