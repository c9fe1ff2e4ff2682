package domain

import (
	"context"
	"time"
)

// CompanyRepository defines company data access operations
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uint) (*Company, error)
	FindByEmail(ctx context.Context, email string) (*Company, error)
	FindByName(ctx context.Context, name string) (*Company, error)
	Update(ctx context.Context, company *Company) error
}

// EmployeeFilter narrows employee directory listings.
type EmployeeFilter struct {
	Position   string
	IsVerified *bool
}

// EmployeeRepository defines employee data access operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByPhone(ctx context.Context, phone string) (*Employee, error)
	FindByAccountName(ctx context.Context, companyID uint, accountName string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	List(ctx context.Context, companyID uint, filter EmployeeFilter) ([]Employee, error)
	ListSupervisors(ctx context.Context, companyID uint) ([]Employee, error)
}

// EmployeeRequestRepository defines registration request data access
type EmployeeRequestRepository interface {
	Create(ctx context.Context, request *EmployeeRequest) error
	FindByID(ctx context.Context, id uint) (*EmployeeRequest, error)
	FindByEmail(ctx context.Context, email string) (*EmployeeRequest, error)
	FindPendingByEmail(ctx context.Context, email string) (*EmployeeRequest, error)
	Update(ctx context.Context, request *EmployeeRequest) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, companyID uint, status EmployeeRequestStatus) ([]EmployeeRequest, error)
}

// ExchangeFilter narrows exchange request listings. ParticipantID restricts
// results to requests the employee takes part in, for non-privileged callers.
type ExchangeFilter struct {
	Status        RequestStatus
	RequesterID   *uint
	ReceiverID    *uint
	ParticipantID *uint
}

// ExchangeRequestRepository persists the negotiation aggregate. Mutate runs
// fn over a freshly loaded record inside a transaction and commits with an
// optimistic version check; a concurrent writer surfaces as ErrOptimisticLock.
// All other writes to a request flow through Mutate so per-record operations
// serialize.
type ExchangeRequestRepository interface {
	Create(ctx context.Context, request *ExchangeRequest) error
	FindByID(ctx context.Context, kind ExchangeKind, id uint) (*ExchangeRequest, error)
	Mutate(ctx context.Context, kind ExchangeKind, id uint, fn func(*ExchangeRequest) error) (*ExchangeRequest, error)
	HasActiveForSlot(ctx context.Context, kind ExchangeKind, companyID, requesterID uint, d ResourceDescriptor) (bool, error)
	List(ctx context.Context, kind ExchangeKind, companyID uint, filter ExchangeFilter) ([]ExchangeRequest, error)
	Delete(ctx context.Context, kind ExchangeKind, id uint) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// CreateExchangeInput opens a new request.
type CreateExchangeInput struct {
	Descriptor ResourceDescriptor
	Reason     string
}

// UpdateExchangeInput replaces the mutable fields of an open request. A nil
// Reason leaves the stored reason unchanged.
type UpdateExchangeInput struct {
	Descriptor ResourceDescriptor
	Reason     *string
}

// ExchangeService is the negotiation engine, shared by both request kinds.
// Every method takes the authenticated employee; company scoping and
// participation checks happen here, not in handlers.
type ExchangeService interface {
	Create(ctx context.Context, kind ExchangeKind, actor *Employee, in CreateExchangeInput) (*ExchangeRequest, error)
	Propose(ctx context.Context, kind ExchangeKind, actor *Employee, requestID uint, d ResourceDescriptor) (*ExchangeRequest, error)
	Accept(ctx context.Context, kind ExchangeKind, actor *Employee, requestID, proposalID uint) (*ExchangeRequest, error)
	Decide(ctx context.Context, kind ExchangeKind, actor *Employee, requestID uint, approve bool, comment string) (*ExchangeRequest, error)
	Update(ctx context.Context, kind ExchangeKind, actor *Employee, requestID uint, in UpdateExchangeInput) (*ExchangeRequest, error)
	Withdraw(ctx context.Context, kind ExchangeKind, actor *Employee, requestID uint) error
	List(ctx context.Context, kind ExchangeKind, actor *Employee, filter ExchangeFilter) ([]ExchangeRequest, error)
	Get(ctx context.Context, kind ExchangeKind, actor *Employee, requestID uint) (*ExchangeRequest, error)
}

// RegisterCompanyInput opens a company registration.
type RegisterCompanyInput struct {
	Name        string
	Description string
	Email       string
	Phone       string
	Password    string
}

// CompanyAuthService defines company registration and login.
type CompanyAuthService interface {
	Register(ctx context.Context, in RegisterCompanyInput) (*Company, error)
	VerifyOTP(ctx context.Context, email, code string) (*Company, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*Company, *AuthResult, error)
}

// RegisterEmployeeInput opens a direct employee registration, verified over
// WhatsApp.
type RegisterEmployeeInput struct {
	FullName     string
	AccountName  string
	Email        string
	PhoneNumber  string
	Position     string
	Password     string
	CompanyID    uint
	SupervisorID *uint
}

// EmployeeAuthService defines direct employee registration, logins and
// password recovery.
type EmployeeAuthService interface {
	Register(ctx context.Context, in RegisterEmployeeInput) (*Employee, error)
	VerifyOTP(ctx context.Context, phone, code string) (*Employee, error)
	ResendOTP(ctx context.Context, phone string) error
	LoginByPhone(ctx context.Context, phone, password string) (*Employee, *AuthResult, error)
	LoginByEmail(ctx context.Context, email, password string) (*Employee, *AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) (*Employee, error)
}

// SubmitEmployeeRequestInput opens a registration request reviewed by the
// company. The password is hashed before the request is stored.
type SubmitEmployeeRequestInput struct {
	FullName       string
	AccountName    string
	Email          string
	PhoneNumber    string
	Position       string
	Password       string
	EmployeeNumber string
	CompanyID      uint
	SupervisorID   *uint
}

// ProcessEmployeeRequestInput carries the company decision on a request.
type ProcessEmployeeRequestInput struct {
	RequestID       uint
	Approve         bool
	SupervisorID    *uint
	RejectionReason string
	DecidedByID     *uint
}

// EmployeeRequestService defines the company-reviewed registration flow.
type EmployeeRequestService interface {
	Submit(ctx context.Context, in SubmitEmployeeRequestInput) (*EmployeeRequest, error)
	VerifyOTP(ctx context.Context, email, code string) (*EmployeeRequest, error)
	ResendOTP(ctx context.Context, email string) error
	List(ctx context.Context, companyID uint, status EmployeeRequestStatus) ([]EmployeeRequest, error)
	Process(ctx context.Context, companyID uint, in ProcessEmployeeRequestInput) (*EmployeeRequest, *Employee, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	SubjectType string `json:"sub_type"`
	SubjectID   uint   `json:"sub_id"`
	CompanyID   uint   `json:"company_id"`
	Position    string `json:"position,omitempty"`
	SessionID   string `json:"session_id"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

// TokenService defines token operations
type TokenService interface {
	Generate(claims TokenClaims) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// NotificationService defines outbound delivery operations
type NotificationService interface {
	SendEmail(to, subject, body string) error
	SendWhatsApp(to, message string) error
}

// ExchangeNotifier delivers workflow events best-effort after commit.
// Failures are logged by implementations, never returned to the workflow.
type ExchangeNotifier interface {
	ProposalReceived(request *ExchangeRequest, proposer *Employee)
	ProposalAccepted(request *ExchangeRequest, proposal *ExchangeProposal)
	DecisionMade(request *ExchangeRequest, decidedBy *Employee)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	// IsPrivilegedViewer reports whether a position may see and decide all
	// company requests rather than only its own.
	IsPrivilegedViewer(position string) (bool, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
