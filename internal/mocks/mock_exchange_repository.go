package mocks

import (
	"context"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// MockExchangeRequestRepository implements domain.ExchangeRequestRepository
// for testing. When no MutateFunc is set, Mutate applies fn to the record
// held in Requests, mimicking the real read-modify-write cycle.
type MockExchangeRequestRepository struct {
	Requests map[uint]*domain.ExchangeRequest

	CreateFunc           func(ctx context.Context, request *domain.ExchangeRequest) error
	FindByIDFunc         func(ctx context.Context, kind domain.ExchangeKind, id uint) (*domain.ExchangeRequest, error)
	MutateFunc           func(ctx context.Context, kind domain.ExchangeKind, id uint, fn func(*domain.ExchangeRequest) error) (*domain.ExchangeRequest, error)
	HasActiveForSlotFunc func(ctx context.Context, kind domain.ExchangeKind, companyID, requesterID uint, d domain.ResourceDescriptor) (bool, error)
	ListFunc             func(ctx context.Context, kind domain.ExchangeKind, companyID uint, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error)
	DeleteFunc           func(ctx context.Context, kind domain.ExchangeKind, id uint) error

	nextID         uint
	nextProposalID uint
}

// NewMockExchangeRequestRepository creates a new in-memory mock
func NewMockExchangeRequestRepository() *MockExchangeRequestRepository {
	return &MockExchangeRequestRepository{Requests: map[uint]*domain.ExchangeRequest{}}
}

func (m *MockExchangeRequestRepository) Create(ctx context.Context, request *domain.ExchangeRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	m.nextID++
	request.ID = m.nextID
	request.Version = 1
	copied := *request
	m.Requests[request.ID] = &copied
	return nil
}

func (m *MockExchangeRequestRepository) FindByID(ctx context.Context, kind domain.ExchangeKind, id uint) (*domain.ExchangeRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, kind, id)
	}
	request, ok := m.Requests[id]
	if !ok || request.Kind != kind {
		return nil, domain.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (m *MockExchangeRequestRepository) Mutate(ctx context.Context, kind domain.ExchangeKind, id uint, fn func(*domain.ExchangeRequest) error) (*domain.ExchangeRequest, error) {
	if m.MutateFunc != nil {
		return m.MutateFunc(ctx, kind, id, fn)
	}
	request, ok := m.Requests[id]
	if !ok || request.Kind != kind {
		return nil, domain.ErrRequestNotFound
	}
	working := *request
	if err := fn(&working); err != nil {
		return nil, err
	}
	for i := range working.Proposals {
		if working.Proposals[i].ID == 0 {
			m.nextProposalID++
			working.Proposals[i].ID = m.nextProposalID
		}
	}
	working.Version++
	m.Requests[id] = &working
	result := working
	return &result, nil
}

func (m *MockExchangeRequestRepository) HasActiveForSlot(ctx context.Context, kind domain.ExchangeKind, companyID, requesterID uint, d domain.ResourceDescriptor) (bool, error) {
	if m.HasActiveForSlotFunc != nil {
		return m.HasActiveForSlotFunc(ctx, kind, companyID, requesterID, d)
	}
	return false, nil
}

func (m *MockExchangeRequestRepository) List(ctx context.Context, kind domain.ExchangeKind, companyID uint, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, companyID, filter)
	}
	return nil, nil
}

func (m *MockExchangeRequestRepository) Delete(ctx context.Context, kind domain.ExchangeKind, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, kind, id)
	}
	if _, ok := m.Requests[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(m.Requests, id)
	return nil
}

// Compile-time interface compliance verification
var _ domain.ExchangeRequestRepository = (*MockExchangeRequestRepository)(nil)
