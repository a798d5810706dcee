package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// currentUserResolver is the slice of the user service this handler needs.
type currentUserResolver interface {
	Current(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

type UserHandler struct {
	service currentUserResolver
}

func NewUserHandler(service currentUserResolver) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /user, returning the account behind the credential.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.service.Current(c.Request().Context(), ctxActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
