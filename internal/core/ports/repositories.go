package ports

import (
	"context"

	"github.com/aliaga/companymap/internal/core/domain"
)

// CompanyRepository owns the storage representation of companies.
//
// Implementations translate storage failures into the domain taxonomy:
// missing rows map to domain.ErrNotFound, uniqueness violations to
// domain.ErrConflict, and connectivity or timeout failures to
// domain.ErrUnavailable. Writes are atomic: committed in full or rolled
// back in full.
type CompanyRepository interface {
	Insert(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id int64, company *domain.Company) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
}
