package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/ports"
)

// TopicService exposes the topic reference data.
type TopicService struct {
	repo   ports.TopicRepository
	logger zerolog.Logger
}

func NewTopicService(repo ports.TopicRepository, logger zerolog.Logger) *TopicService {
	return &TopicService{repo: repo, logger: logger}
}

// List returns all topics ordered by name.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	topics, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list topics")
		return nil, err
	}
	return topics, nil
}
