package domain

import "time"

// Employee positions. Moderators only exist on registration requests; the
// privileged-viewer capability for supervisor and sme lives in PolicyService.
const (
	PositionExpert     = "expert"
	PositionSupervisor = "supervisor"
	PositionSME        = "sme"
	PositionModerator  = "moderator"
)

// EmployeeRequestStatus is the review state of a registration request.
type EmployeeRequestStatus string

const (
	EmployeeRequestPending  EmployeeRequestStatus = "pending"
	EmployeeRequestApproved EmployeeRequestStatus = "approved"
	EmployeeRequestRejected EmployeeRequestStatus = "rejected"
)

// Company is the tenant account. Registration is gated by an email OTP.
type Company struct {
	ID           uint
	Name         string
	Description  string
	Email        string
	Phone        string
	PasswordHash string
	IsVerified   bool
	OTP          OTPState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Employee is a verified worker account inside a company. SupervisorID is a
// reference to another employee, validated for same-company membership at
// the point it is set, never embedded.
type Employee struct {
	ID           uint
	FullName     string
	AccountName  string
	Email        string
	PhoneNumber  string
	Position     string
	PasswordHash string
	CompanyID    uint
	SupervisorID *uint
	// RequestID links back to the approved registration request, when the
	// account was created through one.
	RequestID  *uint
	IsVerified bool
	OTP        OTPState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EmployeeRequest is a registration application awaiting email verification
// and company review. The password arrives hashed from submission time so
// approval copies it into the Employee without rehashing.
type EmployeeRequest struct {
	ID             uint
	FullName       string
	AccountName    string
	Email          string
	PhoneNumber    string
	Position       string
	PasswordHash   string
	EmployeeNumber string
	CompanyID      uint
	SupervisorID   *uint

	Status          EmployeeRequestStatus
	EmailVerified   bool
	RejectionReason string
	ApprovedByID    *uint
	ApprovedAt      *time.Time
	RejectedByID    *uint
	RejectedAt      *time.Time

	OTP       OTPState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is an authenticated login recorded in Redis for its lifetime.
// SubjectType distinguishes company logins from employee logins.
type Session struct {
	ID          string
	SubjectType string
	SubjectID   uint
	CompanyID   uint
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Subject types carried by sessions and tokens.
const (
	SubjectCompany  = "company"
	SubjectEmployee = "employee"
)

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	AccessToken string
	SessionID   string
	ExpiresIn   int64
}
