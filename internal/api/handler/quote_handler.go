package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quotable/quotes-api/internal/api/metrics"
	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/ports"
)

const defaultListLimit = 20

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// List handles GET /quotes.
//
// @Summary      List quotes visible to the caller
// @Tags         quotes
// @Produce      json
// @Param        q            query     string  false  "Substring filter on text or author"
// @Param        topic_id     query     int     false  "Topic filter"
// @Param        only_my      query     bool    false  "Restrict to own quotes (requires auth)"
// @Param        is_favorite  query     bool    false  "Restrict to favorite-flagged quotes"
// @Param        user_id      query     int     false  "Restrict to a specific owner"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Param        offset       query     int     false  "Rows already retrieved (default 0)"
// @Success      200          {object}  listQuotesResponse
// @Failure      400          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	actor := ctxActor(c)

	in := ports.ListQuotesInput{
		Search:       c.QueryParam("q"),
		OnlyMine:     c.QueryParam("only_my") == "true",
		FavoriteOnly: c.QueryParam("is_favorite") == "true",
		Limit:        defaultListLimit,
	}

	var err error
	if in.TopicID, err = optionalInt64Param(c, "topic_id"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "topic_id must be an integer")
	}
	if in.TargetUserID, err = optionalInt64Param(c, "user_id"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id must be an integer")
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if in.Limit, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if in.Offset, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "offset must be an integer")
		}
	}

	metrics.ListRequestsTotal.WithLabelValues(actorLabel(actor)).Inc()
	start := time.Now()
	result, err := h.service.List(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	metrics.ListQueryDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /quotes/:id.
//
// @Summary      Fetch a single quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      int  true  "Quote id"
// @Success      200  {object}  quoteResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	quote, err := h.service.GetByID(c.Request().Context(), ctxActor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Create handles POST /quotes.
//
// @Summary      Create a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuoteRequest  true  "Quote payload"
// @Success      201   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /quotes [post]
func (h *QuoteHandler) Create(c echo.Context) error {
	var req createQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := h.service.Create(c.Request().Context(), ctxActor(c), ports.CreateQuoteInput{
		Text:     req.Text,
		Author:   req.Author,
		IsPublic: req.IsPublic,
		TopicID:  req.TopicID,
	})
	if err != nil {
		return err
	}

	visibility := "private"
	if quote.IsPublic {
		visibility = "public"
	}
	metrics.QuotesCreatedTotal.WithLabelValues(visibility).Inc()

	return c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// Update handles PUT /quotes/:id. Only fields present in the body change;
// everything else keeps its stored value.
//
// @Summary      Partially update a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Quote id"
// @Param        body  body      updateQuoteRequest  true  "Fields to change"
// @Success      200   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /quotes/{id} [put]
func (h *QuoteHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	quote, err := h.service.Update(c.Request().Context(), ctxActor(c), id, ports.UpdateQuoteInput{
		Text:       req.Text,
		Author:     req.Author,
		IsPublic:   req.IsPublic,
		IsFavorite: req.IsFavorite,
		TopicID:    req.TopicID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthzDeniedTotal.WithLabelValues("update").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Delete handles DELETE /quotes/:id.
//
// @Summary      Delete a quote
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Quote id"
// @Success      200  {object}  deleteResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ctxActor(c), id); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthzDeniedTotal.WithLabelValues("delete").Inc()
		}
		return err
	}
	metrics.QuotesDeletedTotal.Inc()

	return c.JSON(http.StatusOK, deleteResponse{Message: "deleted"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func optionalInt64Param(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
