package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/policy"
	"github.com/quotable/quotes-api/internal/core/ports"
)

// QuoteService implements the quote use-cases: visibility-filtered listing,
// single fetch, creation, partial update and deletion.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger zerolog.Logger
}

func NewQuoteService(repo ports.QuoteRepository, logger zerolog.Logger) *QuoteService {
	return &QuoteService{repo: repo, logger: logger}
}

// List returns the page of quotes the actor may see under the requested
// filters, ordered by created_at descending.
func (s *QuoteService) List(ctx context.Context, actor domain.Actor, in ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
	preds, err := policy.Visibility(actor, policy.Filters{
		Search:       in.Search,
		TopicID:      in.TopicID,
		OnlyMine:     in.OnlyMine,
		FavoriteOnly: in.FavoriteOnly,
		TargetUserID: in.TargetUserID,
	})
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, preds, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	return &ports.ListQuotesResult{
		Items:  items,
		Limit:  in.Limit,
		Offset: in.Offset,
		Count:  len(items),
	}, nil
}

// GetByID fetches a single quote. Existence is checked before visibility, so
// a missing id is always a not-found. Private quotes are readable only by
// their owner or an admin; everyone else, anonymous included, is forbidden.
func (s *QuoteService) GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.QuoteWithOwner, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsPublic {
		return q, nil
	}

	switch actor.Kind {
	case domain.ActorAdmin:
		return q, nil
	case domain.ActorUser:
		if q.UserID != nil && *q.UserID == actor.ID {
			return q, nil
		}
	}
	return nil, domain.ErrForbidden
}

// Create stores a new quote owned by the actor. Anonymous creation keeps a
// null owner. Visibility defaults to public.
func (s *QuoteService) Create(ctx context.Context, actor domain.Actor, in ports.CreateQuoteInput) (*domain.QuoteWithOwner, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	var author *string
	if in.Author != nil {
		trimmed := strings.TrimSpace(*in.Author)
		if trimmed != "" {
			author = &trimmed
		}
	}

	var ownerID *int64
	if !actor.IsAnonymous() {
		id := actor.ID
		ownerID = &id
	}

	now := time.Now().UTC()
	quote := &domain.Quote{
		Text:      text,
		Author:    author,
		IsPublic:  isPublic,
		UserID:    ownerID,
		TopicID:   in.TopicID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, quote)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create quote")
		return nil, err
	}

	s.logger.Info().Int64("quote_id", created.ID).Bool("is_public", created.IsPublic).Msg("quote created")
	return created, nil
}

// Update applies a partial update to a quote the actor may mutate. The row is
// fetched first: a missing id yields not-found before any authorization
// check. Fields absent from the input keep their stored value; updated_at is
// always refreshed. The read-merge-write sequence is not wrapped in a
// transaction, so concurrent updates are last-writer-wins.
func (s *QuoteService) Update(ctx context.Context, actor domain.Actor, id int64, in ports.UpdateQuoteInput) (*domain.QuoteWithOwner, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdate, &existing.Quote); err != nil {
		return nil, err
	}

	merged := existing.Quote
	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return nil, domain.ErrEmptyText
		}
		merged.Text = text
	}
	if in.Author != nil {
		trimmed := strings.TrimSpace(*in.Author)
		merged.Author = &trimmed
	}
	if in.IsPublic != nil {
		merged.IsPublic = *in.IsPublic
	}
	if in.IsFavorite != nil {
		merged.IsFavorite = *in.IsFavorite
	}
	if in.TopicID != nil {
		merged.TopicID = in.TopicID
	}
	merged.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, &merged)
	if err != nil {
		s.logger.Error().Err(err).Int64("quote_id", id).Msg("failed to update quote")
		return nil, err
	}

	s.logger.Info().Int64("quote_id", id).Msg("quote updated")
	return updated, nil
}

// Delete removes a quote outright. Same fetch-then-authorize order as Update;
// there is no soft delete.
func (s *QuoteService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDelete, &existing.Quote); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("quote_id", id).Msg("failed to delete quote")
		return err
	}

	s.logger.Info().Int64("quote_id", id).Msg("quote deleted")
	return nil
}
