package mocks

import (
	"context"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// MockCompanyRepository implements domain.CompanyRepository for testing
type MockCompanyRepository struct {
	CreateFunc      func(ctx context.Context, company *domain.Company) error
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Company, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Company, error)
	FindByNameFunc  func(ctx context.Context, name string) (*domain.Company, error)
	UpdateFunc      func(ctx context.Context, company *domain.Company) error
}

// NewMockCompanyRepository creates a new MockCompanyRepository with default behaviors
func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{}
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	return nil
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uint) (*domain.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) FindByEmail(ctx context.Context, email string) (*domain.Company, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CompanyRepository = (*MockCompanyRepository)(nil)
