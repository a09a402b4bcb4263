package ports

import (
	"context"

	"github.com/aliaga/companymap/internal/core/domain"
)

// CacheService provides read-through caching for company lookups.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher broadcasts company change events to a message broker so
// map clients can refresh without polling. Publishing is best effort; a
// broker failure never fails the write that triggered it.
type EventPublisher interface {
	PublishCreated(ctx context.Context, company *domain.Company) error
	PublishUpdated(ctx context.Context, company *domain.Company) error
	PublishDeleted(ctx context.Context, id int64) error
}
