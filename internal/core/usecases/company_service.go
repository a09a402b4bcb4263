package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aliaga/companymap/internal/core/domain"
	"github.com/aliaga/companymap/internal/core/ports"
)

const (
	listCacheKey = "companies:all"
	listCacheTTL = 60  // seconds; the list changes on every write
	itemCacheTTL = 600 // seconds
)

// CompanyService orchestrates the validation and persistence pipeline:
// normalize fields, validate coordinates, merge partial updates, derive the
// geometry, and hand the candidate record to the repository. Cache and
// events are optional collaborators; a nil value disables them.
type CompanyService struct {
	companies ports.CompanyRepository
	cache     ports.CacheService
	events    ports.EventPublisher
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companies ports.CompanyRepository, cache ports.CacheService, events ports.EventPublisher) *CompanyService {
	return &CompanyService{companies: companies, cache: cache, events: events}
}

// Create validates a create payload and persists the resulting record.
// Validation completes before any storage access.
func (s *CompanyService) Create(ctx context.Context, in domain.CreateCompanyInput) (*domain.Company, error) {
	candidate, verr := domain.ValidateCreate(in)
	if verr != nil {
		return nil, verr
	}

	created, err := s.companies.Insert(ctx, &candidate)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, created.ID)
	if s.events != nil {
		if err := s.events.PublishCreated(ctx, created); err != nil {
			slog.Warn("publish company created", "id", created.ID, "error", err)
		}
	}
	return created, nil
}

// Get returns a single company by id.
func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	cacheKey := fmt.Sprintf("companies:id:%d", id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var c domain.Company
			if err := json.Unmarshal(data, &c); err == nil {
				return &c, nil
			}
		}
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(company); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, itemCacheTTL)
		}
	}
	return company, nil
}

// List returns all companies.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, listCacheKey); err == nil {
			var companies []domain.Company
			if err := json.Unmarshal(data, &companies); err == nil {
				return companies, nil
			}
		}
	}

	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(companies); err == nil {
			_ = s.cache.Set(ctx, listCacheKey, data, listCacheTTL)
		}
	}
	return companies, nil
}

// Update merges a partial payload into the stored record and persists the
// result. An empty payload is rejected before storage is touched; fields the
// payload never mentioned keep their prior values.
func (s *CompanyService) Update(ctx context.Context, id int64, in domain.UpdateCompanyInput) (*domain.Company, error) {
	if in.Empty() {
		return nil, domain.NewFieldError("body", "update payload has no fields set", domain.KindEmptyUpdate)
	}

	existing, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, verr := domain.MergeUpdate(*existing, in)
	if verr != nil {
		return nil, verr
	}

	updated, err := s.companies.Update(ctx, id, &merged)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	if s.events != nil {
		if err := s.events.PublishUpdated(ctx, updated); err != nil {
			slog.Warn("publish company updated", "id", id, "error", err)
		}
	}
	return updated, nil
}

// Delete removes a company. Deleting an id that does not exist returns
// domain.ErrNotFound, on the first call and on every repeat.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	if s.events != nil {
		if err := s.events.PublishDeleted(ctx, id); err != nil {
			slog.Warn("publish company deleted", "id", id, "error", err)
		}
	}
	return nil
}

// invalidate drops the cached list and the cached record after a write.
func (s *CompanyService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, listCacheKey)
	_ = s.cache.Delete(ctx, fmt.Sprintf("companies:id:%d", id))
}
