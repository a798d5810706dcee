package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// topicLister is the slice of the topic service this handler needs.
type topicLister interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

type TopicHandler struct {
	service topicLister
}

func NewTopicHandler(service topicLister) *TopicHandler {
	return &TopicHandler{service: service}
}

// List handles GET /topics.
//
// @Summary      List topics
// @Tags         topics
// @Produce      json
// @Success      200  {array}   domain.Topic
// @Failure      500  {object}  errorResponse
// @Router       /topics [get]
func (h *TopicHandler) List(c echo.Context) error {
	topics, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if topics == nil {
		topics = []domain.Topic{}
	}
	return c.JSON(http.StatusOK, topics)
}
