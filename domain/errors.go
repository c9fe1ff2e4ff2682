package domain

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrCompanyNotFound         = errors.New("company not found")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrSupervisorNotFound      = errors.New("supervisor not found")
	ErrEmployeeRequestNotFound = errors.New("employee request not found")
	ErrRequestNotFound         = errors.New("swap request not found")
	ErrProposalNotFound        = errors.New("offer not found or not available for acceptance")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account is not verified yet")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrCompanyExists      = errors.New("company with this email or name already exists")
	ErrEmployeeExists     = errors.New("employee with this email, phone or account name already exists")
	ErrRequestPending     = errors.New("a registration request with this email is already pending approval")

	// Login hints for applicants whose registration request has not been
	// approved yet.
	ErrRequestAwaitingApproval = errors.New("your registration request is still awaiting company approval")
	ErrRequestRejected         = errors.New("your registration request was rejected by the company")
)

// Authorization errors (403-class)
var (
	ErrWrongCompany            = errors.New("access denied: this record does not belong to your company")
	ErrNotRequester            = errors.New("access denied: only the requester may perform this action")
	ErrNotParticipant          = errors.New("access denied: you do not have permission to view this request")
	ErrNotAuthorizedSupervisor = errors.New("access denied: you are not authorized to approve or reject this request")
)

// Workflow conflict errors (400-class, state-machine preconditions)
var (
	ErrDuplicateRequest  = errors.New("you already have a request for this slot")
	ErrOwnRequest        = errors.New("you cannot make an offer on your own request")
	ErrAlreadyAccepted   = errors.New("this request has already been accepted by another employee")
	ErrDeadlinePassed    = errors.New("the scheduled time has already passed")
	ErrInvalidSupervisor = errors.New("supervisor must belong to the same company")
	ErrEmailNotVerified  = errors.New("the request email has not been verified yet")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// OTP errors
var ErrOTPExpired = errors.New("OTP has expired. Please request a new one.")

// ErrOptimisticLock signals that a request record was modified by a
// concurrent operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, please retry")

// ValidationError carries a user-facing message for malformed or
// out-of-range input. It maps to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RequestStatusError reports an operation attempted against a request
// whose status forbids it.
type RequestStatusError struct {
	Status RequestStatus
}

func (e *RequestStatusError) Error() string {
	return fmt.Sprintf("request is already %s", e.Status)
}

// OTPLockedError is returned while a holder is locked out.
type OTPLockedError struct {
	Minutes int
}

func (e *OTPLockedError) Error() string {
	return fmt.Sprintf("Account locked. Try again in %d minutes.", e.Minutes)
}

// OTPThrottledError is returned when a new code is requested inside the
// resend window.
type OTPThrottledError struct {
	Minutes int
}

func (e *OTPThrottledError) Error() string {
	return fmt.Sprintf("Please wait %d minutes before requesting another OTP.", e.Minutes)
}

// OTPInvalidError is returned on a code mismatch below the attempt limit.
type OTPInvalidError struct {
	Remaining int
}

func (e *OTPInvalidError) Error() string {
	return fmt.Sprintf("Invalid OTP. %d attempts remaining.", e.Remaining)
}

// OTPMaxAttemptsError is returned on the mismatch that triggers a lockout.
type OTPMaxAttemptsError struct {
	LockMinutes int
}

func (e *OTPMaxAttemptsError) Error() string {
	return fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", e.LockMinutes)
}

// IsRateLimited reports whether err belongs to the OTP cooldown/lockout
// family that maps to 429 responses.
func IsRateLimited(err error) bool {
	var locked *OTPLockedError
	var throttled *OTPThrottledError
	var maxAttempts *OTPMaxAttemptsError
	return errors.As(err, &locked) || errors.As(err, &throttled) || errors.As(err, &maxAttempts)
}
