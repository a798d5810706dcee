package ports

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// TopicRepository reads the topic reference data. Topics are not created or
// managed through this service.
type TopicRepository interface {
	// ListAll returns every topic ordered by name.
	ListAll(ctx context.Context) ([]domain.Topic, error)
}
