package mocks

import (
	"context"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// MockEmployeeRepository implements domain.EmployeeRepository for testing
type MockEmployeeRepository struct {
	CreateFunc            func(ctx context.Context, employee *domain.Employee) error
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Employee, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.Employee, error)
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.Employee, error)
	FindByAccountNameFunc func(ctx context.Context, companyID uint, accountName string) (*domain.Employee, error)
	UpdateFunc            func(ctx context.Context, employee *domain.Employee) error
	ListFunc              func(ctx context.Context, companyID uint, filter domain.EmployeeFilter) ([]domain.Employee, error)
	ListSupervisorsFunc   func(ctx context.Context, companyID uint) ([]domain.Employee, error)
}

// NewMockEmployeeRepository creates a new MockEmployeeRepository with default behaviors
func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{}
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByPhone(ctx context.Context, phone string) (*domain.Employee, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByAccountName(ctx context.Context, companyID uint, accountName string) (*domain.Employee, error) {
	if m.FindByAccountNameFunc != nil {
		return m.FindByAccountNameFunc(ctx, companyID, accountName)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) List(ctx context.Context, companyID uint, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, filter)
	}
	return nil, nil
}

func (m *MockEmployeeRepository) ListSupervisors(ctx context.Context, companyID uint) ([]domain.Employee, error) {
	if m.ListSupervisorsFunc != nil {
		return m.ListSupervisorsFunc(ctx, companyID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.EmployeeRepository = (*MockEmployeeRepository)(nil)
