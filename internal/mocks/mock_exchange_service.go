package mocks

import (
	"context"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// MockExchangeService implements domain.ExchangeService for testing
type MockExchangeService struct {
	CreateFunc   func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, in domain.CreateExchangeInput) (*domain.ExchangeRequest, error)
	ProposeFunc  func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, d domain.ResourceDescriptor) (*domain.ExchangeRequest, error)
	AcceptFunc   func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID, proposalID uint) (*domain.ExchangeRequest, error)
	DecideFunc   func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, approve bool, comment string) (*domain.ExchangeRequest, error)
	UpdateFunc   func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, in domain.UpdateExchangeInput) (*domain.ExchangeRequest, error)
	WithdrawFunc func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) error
	ListFunc     func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error)
	GetFunc      func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) (*domain.ExchangeRequest, error)
}

// NewMockExchangeService creates a new MockExchangeService with default behaviors
func NewMockExchangeService() *MockExchangeService {
	return &MockExchangeService{}
}

func (m *MockExchangeService) Create(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, in domain.CreateExchangeInput) (*domain.ExchangeRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, kind, actor, in)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockExchangeService) Propose(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, d domain.ResourceDescriptor) (*domain.ExchangeRequest, error) {
	if m.ProposeFunc != nil {
		return m.ProposeFunc(ctx, kind, actor, requestID, d)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockExchangeService) Accept(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID, proposalID uint) (*domain.ExchangeRequest, error) {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx, kind, actor, requestID, proposalID)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockExchangeService) Decide(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, approve bool, comment string) (*domain.ExchangeRequest, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, kind, actor, requestID, approve, comment)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockExchangeService) Update(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, in domain.UpdateExchangeInput) (*domain.ExchangeRequest, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, kind, actor, requestID, in)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockExchangeService) Withdraw(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) error {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(ctx, kind, actor, requestID)
	}
	return domain.ErrRequestNotFound
}

func (m *MockExchangeService) List(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, actor, filter)
	}
	return nil, nil
}

func (m *MockExchangeService) Get(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) (*domain.ExchangeRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, kind, actor, requestID)
	}
	return nil, domain.ErrRequestNotFound
}

var _ domain.ExchangeService = (*MockExchangeService)(nil)
