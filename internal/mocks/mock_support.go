package mocks

import (
	"context"
	"time"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// MockEmployeeRequestRepository implements domain.EmployeeRequestRepository for testing
type MockEmployeeRequestRepository struct {
	CreateFunc             func(ctx context.Context, request *domain.EmployeeRequest) error
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.EmployeeRequest, error)
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.EmployeeRequest, error)
	FindPendingByEmailFunc func(ctx context.Context, email string) (*domain.EmployeeRequest, error)
	UpdateFunc             func(ctx context.Context, request *domain.EmployeeRequest) error
	DeleteFunc             func(ctx context.Context, id uint) error
	ListFunc               func(ctx context.Context, companyID uint, status domain.EmployeeRequestStatus) ([]domain.EmployeeRequest, error)
}

func NewMockEmployeeRequestRepository() *MockEmployeeRequestRepository {
	return &MockEmployeeRequestRepository{}
}

func (m *MockEmployeeRequestRepository) Create(ctx context.Context, request *domain.EmployeeRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	return nil
}

func (m *MockEmployeeRequestRepository) FindByID(ctx context.Context, id uint) (*domain.EmployeeRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrEmployeeRequestNotFound
}

func (m *MockEmployeeRequestRepository) FindByEmail(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrEmployeeRequestNotFound
}

func (m *MockEmployeeRequestRepository) FindPendingByEmail(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
	if m.FindPendingByEmailFunc != nil {
		return m.FindPendingByEmailFunc(ctx, email)
	}
	return nil, domain.ErrEmployeeRequestNotFound
}

func (m *MockEmployeeRequestRepository) Update(ctx context.Context, request *domain.EmployeeRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, request)
	}
	return nil
}

func (m *MockEmployeeRequestRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEmployeeRequestRepository) List(ctx context.Context, companyID uint, status domain.EmployeeRequestStatus) ([]domain.EmployeeRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, status)
	}
	return nil, nil
}

var _ domain.EmployeeRequestRepository = (*MockEmployeeRequestRepository)(nil)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *domain.Session) error
	FindByIDFunc func(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteFunc   func(ctx context.Context, sessionID string) error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(claims domain.TokenClaims) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc      func() time.Duration
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate(claims domain.TokenClaims) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(claims)
	}
	return "token", nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL() time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc()
	}
	return 24 * time.Hour
}

var _ domain.TokenService = (*MockTokenService)(nil)

// MockNotificationService implements domain.NotificationService for testing.
// Sent messages are recorded for assertions.
type MockNotificationService struct {
	SendEmailFunc    func(to, subject, body string) error
	SendWhatsAppFunc func(to, message string) error

	Emails    []SentEmail
	WhatsApps []SentWhatsApp
}

type SentEmail struct {
	To      string
	Subject string
	Body    string
}

type SentWhatsApp struct {
	To      string
	Message string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	m.Emails = append(m.Emails, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *MockNotificationService) SendWhatsApp(to, message string) error {
	if m.SendWhatsAppFunc != nil {
		return m.SendWhatsAppFunc(to, message)
	}
	m.WhatsApps = append(m.WhatsApps, SentWhatsApp{To: to, Message: message})
	return nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)

// MockPolicyService implements domain.PolicyService for testing. By default
// supervisor and sme positions are privileged, matching the seeded policies.
type MockPolicyService struct {
	AddPolicyFunc          func(role, resource, action string) error
	CheckPermissionFunc    func(role, resource, action string) (bool, error)
	IsPrivilegedViewerFunc func(position string) (bool, error)
}

func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return false, nil
}

func (m *MockPolicyService) IsPrivilegedViewer(position string) (bool, error) {
	if m.IsPrivilegedViewerFunc != nil {
		return m.IsPrivilegedViewerFunc(position)
	}
	return position == domain.PositionSupervisor || position == domain.PositionSME, nil
}

var _ domain.PolicyService = (*MockPolicyService)(nil)

// MockExchangeNotifier implements domain.ExchangeNotifier for testing,
// recording every event it is asked to deliver.
type MockExchangeNotifier struct {
	Received []uint
	Accepted []uint
	Decided  []uint
}

func NewMockExchangeNotifier() *MockExchangeNotifier {
	return &MockExchangeNotifier{}
}

func (m *MockExchangeNotifier) ProposalReceived(request *domain.ExchangeRequest, proposer *domain.Employee) {
	m.Received = append(m.Received, request.ID)
}

func (m *MockExchangeNotifier) ProposalAccepted(request *domain.ExchangeRequest, proposal *domain.ExchangeProposal) {
	m.Accepted = append(m.Accepted, proposal.ID)
}

func (m *MockExchangeNotifier) DecisionMade(request *domain.ExchangeRequest, decidedBy *domain.Employee) {
	m.Decided = append(m.Decided, request.ID)
}

var _ domain.ExchangeNotifier = (*MockExchangeNotifier)(nil)

// MockCasbinEnforcer implements domain.CasbinEnforcer for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc  func(params ...interface{}) (bool, error)
	EnforceFunc    func(rvals ...interface{}) (bool, error)
	GetPolicyFunc  func() ([][]string, error)
	SavePolicyFunc func() error

	Policies [][]string
}

func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	policy := make([]string, 0, len(params))
	for _, p := range params {
		if s, ok := p.(string); ok {
			policy = append(policy, s)
		}
	}
	m.Policies = append(m.Policies, policy)
	return true, nil
}

func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	request := make([]string, 0, len(rvals))
	for _, r := range rvals {
		if s, ok := r.(string); ok {
			request = append(request, s)
		}
	}
	for _, policy := range m.Policies {
		if len(policy) == len(request) {
			match := true
			for i := range policy {
				if policy[i] != request[i] {
					match = false
					break
				}
			}
			if match {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return m.Policies, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)
