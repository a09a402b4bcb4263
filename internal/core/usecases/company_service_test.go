package usecases_test

import (
	"context"
	"testing"

	"github.com/aliaga/companymap/internal/core/domain"
	"github.com/aliaga/companymap/internal/core/usecases"
)

// --- Mock CompanyRepository ---

type mockCompanyRepo struct {
	insertFn  func(ctx context.Context, c *domain.Company) (*domain.Company, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Company, error)
	listFn    func(ctx context.Context) ([]domain.Company, error)
	updateFn  func(ctx context.Context, id int64, c *domain.Company) (*domain.Company, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockCompanyRepo) Insert(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	return c, nil
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, id int64, c *domain.Company) (*domain.Company, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, c)
	}
	return c, nil
}

func (m *mockCompanyRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	created []int64
	updated []int64
	deleted []int64
}

func (m *mockPublisher) PublishCreated(ctx context.Context, c *domain.Company) error {
	m.created = append(m.created, c.ID)
	return nil
}

func (m *mockPublisher) PublishUpdated(ctx context.Context, c *domain.Company) error {
	m.updated = append(m.updated, c.ID)
	return nil
}

func (m *mockPublisher) PublishDeleted(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func f64(v float64) *float64 { return &v }

func storedCompany() *domain.Company {
	return &domain.Company{
		ID:        7,
		Name:      "Iberdrola",
		Industry:  "Energy",
		Latitude:  43.2627,
		Longitude: -2.9253,
		Location:  domain.NewPoint(-2.9253, 43.2627),
	}
}

// --- Tests ---

func TestCompanyService_Create_ValidationBeforeStorage(t *testing.T) {
	called := false
	repo := &mockCompanyRepo{
		insertFn: func(ctx context.Context, c *domain.Company) (*domain.Company, error) {
			called = true
			return c, nil
		},
	}
	svc := usecases.NewCompanyService(repo, nil, nil)

	_, err := svc.Create(context.Background(), domain.CreateCompanyInput{
		Name:      "Acme",
		Industry:  "Retail",
		Latitude:  f64(91), // out of range
		Longitude: f64(0),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := err.(*domain.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if called {
		t.Error("repository must not be touched when validation fails")
	}
}

func TestCompanyService_Create_DerivesLocation(t *testing.T) {
	var inserted *domain.Company
	repo := &mockCompanyRepo{
		insertFn: func(ctx context.Context, c *domain.Company) (*domain.Company, error) {
			inserted = c
			out := *c
			out.ID = 1
			return &out, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewCompanyService(repo, nil, pub)

	created, err := svc.Create(context.Background(), domain.CreateCompanyInput{
		Name:      "Iberdrola",
		Industry:  "Energy",
		Latitude:  f64(43.2627),
		Longitude: f64(-2.9253),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil {
		t.Fatal("repository was not called")
	}
	if inserted.Location.X != -2.9253 || inserted.Location.Y != 43.2627 {
		t.Errorf("expected derived geometry passed to storage, got %+v", inserted.Location)
	}
	if created.ID != 1 {
		t.Errorf("expected assigned id, got %d", created.ID)
	}
	if len(pub.created) != 1 || pub.created[0] != 1 {
		t.Errorf("expected created event for id 1, got %v", pub.created)
	}
}

func TestCompanyService_Update_EmptyPayloadBeforeStorage(t *testing.T) {
	called := false
	repo := &mockCompanyRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Company, error) {
			called = true
			return storedCompany(), nil
		},
	}
	svc := usecases.NewCompanyService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 7, domain.UpdateCompanyInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Fields[0].Kind != domain.KindEmptyUpdate {
		t.Errorf("expected empty_update, got %s", verr.Fields[0].Kind)
	}
	if called {
		t.Error("empty payload must be rejected before any storage access")
	}
}

func TestCompanyService_Update_MergesIntoExisting(t *testing.T) {
	var persisted *domain.Company
	repo := &mockCompanyRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Company, error) {
			return storedCompany(), nil
		},
		updateFn: func(ctx context.Context, id int64, c *domain.Company) (*domain.Company, error) {
			persisted = c
			return c, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewCompanyService(repo, nil, pub)

	updated, err := svc.Update(context.Background(), 7, domain.UpdateCompanyInput{
		Latitude: domain.Some(10.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.Latitude != 10.0 || persisted.Longitude != -2.9253 {
		t.Errorf("expected merged pair persisted, got lat=%v lon=%v", persisted.Latitude, persisted.Longitude)
	}
	if persisted.Location != domain.NewPoint(-2.9253, 10.0) {
		t.Errorf("expected rebuilt geometry, got %+v", persisted.Location)
	}
	if updated.Name != "Iberdrola" {
		t.Error("untouched fields must survive the update")
	}
	if len(pub.updated) != 1 {
		t.Errorf("expected one updated event, got %v", pub.updated)
	}
}

func TestCompanyService_Update_NotFound(t *testing.T) {
	svc := usecases.NewCompanyService(&mockCompanyRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), 99, domain.UpdateCompanyInput{
		Name: domain.Some("New"),
	})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompanyService_Delete_PublishesEvent(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewCompanyService(&mockCompanyRepo{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}, nil, pub)

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != 7 {
		t.Errorf("expected deleted event for id 7, got %v", pub.deleted)
	}
}

func TestCompanyService_Delete_NotFoundEveryTime(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewCompanyService(&mockCompanyRepo{
		deleteFn: func(ctx context.Context, id int64) error { return domain.ErrNotFound },
	}, nil, pub)

	for i := 0; i < 2; i++ {
		if err := svc.Delete(context.Background(), 99); err != domain.ErrNotFound {
			t.Fatalf("attempt %d: expected ErrNotFound, got %v", i+1, err)
		}
	}
	if len(pub.deleted) != 0 {
		t.Error("no event must be published for a failed delete")
	}
}

func TestCompanyService_Get(t *testing.T) {
	svc := usecases.NewCompanyService(&mockCompanyRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Company, error) {
			return storedCompany(), nil
		},
	}, nil, nil)

	c, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Iberdrola" {
		t.Errorf("expected Iberdrola, got %s", c.Name)
	}
}

func TestCompanyService_List(t *testing.T) {
	svc := usecases.NewCompanyService(&mockCompanyRepo{
		listFn: func(ctx context.Context) ([]domain.Company, error) {
			return []domain.Company{*storedCompany()}, nil
		},
	}, nil, nil)

	companies, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
}
