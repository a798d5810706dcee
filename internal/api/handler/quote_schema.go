package handler

import (
	"time"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createQuoteRequest struct {
	Text     string  `json:"text" validate:"required"`
	Author   *string `json:"author"`
	IsPublic *bool   `json:"is_public"`
	TopicID  *int64  `json:"topic_id"`
}

// updateQuoteRequest is a partial update: nil fields keep the stored value.
// A JSON null is treated the same as an absent field.
type updateQuoteRequest struct {
	Text       *string `json:"text"`
	Author     *string `json:"author"`
	IsPublic   *bool   `json:"is_public"`
	IsFavorite *bool   `json:"is_favorite"`
	TopicID    *int64  `json:"topic_id"`
}

// --- Response types ---

// quoteResponse is the JSON view of a quote joined with its owner's username.
type quoteResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Author     *string   `json:"author"`
	IsPublic   bool      `json:"is_public"`
	IsFavorite bool      `json:"is_favorite"`
	UserID     *int64    `json:"user_id"`
	TopicID    *int64    `json:"topic_id"`
	Username   *string   `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

type listQuotesResponse struct {
	Data       []quoteResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// --- Mappers ---

func toQuoteResponse(q *domain.QuoteWithOwner) quoteResponse {
	return quoteResponse{
		ID:         q.ID,
		Text:       q.Text,
		Author:     q.Author,
		IsPublic:   q.IsPublic,
		IsFavorite: q.IsFavorite,
		UserID:     q.UserID,
		TopicID:    q.TopicID,
		Username:   q.Username,
		CreatedAt:  q.CreatedAt.UTC(),
		UpdatedAt:  q.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListQuotesResult) listQuotesResponse {
	data := make([]quoteResponse, 0, len(r.Items))
	for i := range r.Items {
		data = append(data, toQuoteResponse(&r.Items[i]))
	}
	return listQuotesResponse{
		Data: data,
		Pagination: paginationResponse{
			Limit:  r.Limit,
			Offset: r.Offset,
			Count:  r.Count,
		},
	}
}
