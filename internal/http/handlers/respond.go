package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// respondError maps domain errors onto HTTP statuses. OTP and validation
// messages are surfaced verbatim; anything unrecognized becomes a generic
// 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case domain.IsRateLimited(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOptimisticLock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isConflict(err) || isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrCompanyNotFound) ||
		errors.Is(err, domain.ErrEmployeeNotFound) ||
		errors.Is(err, domain.ErrSupervisorNotFound) ||
		errors.Is(err, domain.ErrEmployeeRequestNotFound) ||
		errors.Is(err, domain.ErrRequestNotFound) ||
		errors.Is(err, domain.ErrProposalNotFound)
}

func isForbidden(err error) bool {
	return errors.Is(err, domain.ErrWrongCompany) ||
		errors.Is(err, domain.ErrNotRequester) ||
		errors.Is(err, domain.ErrNotParticipant) ||
		errors.Is(err, domain.ErrNotAuthorizedSupervisor) ||
		errors.Is(err, domain.ErrNotVerified) ||
		errors.Is(err, domain.ErrRequestAwaitingApproval) ||
		errors.Is(err, domain.ErrRequestRejected)
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrTokenInvalid) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrSessionExpired)
}

func isConflict(err error) bool {
	var statusErr *domain.RequestStatusError
	return errors.Is(err, domain.ErrDuplicateRequest) ||
		errors.Is(err, domain.ErrOwnRequest) ||
		errors.Is(err, domain.ErrAlreadyAccepted) ||
		errors.Is(err, domain.ErrDeadlinePassed) ||
		errors.Is(err, domain.ErrInvalidSupervisor) ||
		errors.Is(err, domain.ErrEmailNotVerified) ||
		errors.Is(err, domain.ErrCompanyExists) ||
		errors.Is(err, domain.ErrEmployeeExists) ||
		errors.Is(err, domain.ErrRequestPending) ||
		errors.Is(err, domain.ErrAlreadyVerified) ||
		errors.Is(err, domain.ErrOTPExpired) ||
		errors.As(err, &statusErr)
}

func isValidation(err error) bool {
	var vErr *domain.ValidationError
	return errors.As(err, &vErr)
}

// ProposalView is the wire shape of a counter-offer.
type ProposalView struct {
	ID         uint                      `json:"id"`
	ProposerID uint                      `json:"proposer_id"`
	Status     domain.ProposalStatus     `json:"status"`
	Descriptor domain.ResourceDescriptor `json:"descriptor"`
	OfferedAt  time.Time                 `json:"offered_at"`
}

// ExchangeRequestView is the materialized wire shape of a request.
type ExchangeRequestView struct {
	ID                 uint                      `json:"id"`
	Kind               domain.ExchangeKind       `json:"kind"`
	CompanyID          uint                      `json:"company_id"`
	RequesterID        uint                      `json:"requester_id"`
	FirstSupervisorID  *uint                     `json:"first_supervisor_id,omitempty"`
	SecondSupervisorID *uint                     `json:"second_supervisor_id,omitempty"`
	ReceiverID         *uint                     `json:"receiver_id,omitempty"`
	Descriptor         domain.ResourceDescriptor `json:"descriptor"`
	Reason             string                    `json:"reason"`
	Status             domain.RequestStatus      `json:"status"`

	ReceiverOriginalDayOff *time.Time `json:"receiver_original_day_off,omitempty"`
	ReceiverShiftStart     *time.Time `json:"receiver_shift_start,omitempty"`
	ReceiverShiftEnd       *time.Time `json:"receiver_shift_end,omitempty"`
	ReceiverOvertimeStart  *time.Time `json:"receiver_overtime_start,omitempty"`
	ReceiverOvertimeEnd    *time.Time `json:"receiver_overtime_end,omitempty"`

	StatusEditedByID *uint  `json:"status_edited_by_id,omitempty"`
	Comment          string `json:"comment,omitempty"`

	Proposals []ProposalView `json:"proposals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func exchangeRequestView(request *domain.ExchangeRequest) ExchangeRequestView {
	view := ExchangeRequestView{
		ID:                     request.ID,
		Kind:                   request.Kind,
		CompanyID:              request.CompanyID,
		RequesterID:            request.RequesterID,
		FirstSupervisorID:      request.FirstSupervisorID,
		SecondSupervisorID:     request.SecondSupervisorID,
		ReceiverID:             request.ReceiverID,
		Descriptor:             request.Descriptor,
		Reason:                 request.Reason,
		Status:                 request.Status,
		ReceiverOriginalDayOff: request.ReceiverOriginalDayOff,
		ReceiverShiftStart:     request.ReceiverShiftStart,
		ReceiverShiftEnd:       request.ReceiverShiftEnd,
		ReceiverOvertimeStart:  request.ReceiverOvertimeStart,
		ReceiverOvertimeEnd:    request.ReceiverOvertimeEnd,
		StatusEditedByID:       request.StatusEditedByID,
		Comment:                request.Comment,
		Proposals:              make([]ProposalView, 0, len(request.Proposals)),
		CreatedAt:              request.CreatedAt,
		UpdatedAt:              request.UpdatedAt,
	}
	for i := range request.Proposals {
		p := &request.Proposals[i]
		view.Proposals = append(view.Proposals, ProposalView{
			ID:         p.ID,
			ProposerID: p.ProposerID,
			Status:     p.Status,
			Descriptor: p.Descriptor,
			OfferedAt:  p.OfferedAt,
		})
	}
	return view
}

// EmployeeView is the wire shape of an employee, credentials omitted.
type EmployeeView struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	AccountName  string    `json:"account_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Position     string    `json:"position"`
	CompanyID    uint      `json:"company_id"`
	SupervisorID *uint     `json:"supervisor_id,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

func employeeView(employee *domain.Employee) EmployeeView {
	return EmployeeView{
		ID:           employee.ID,
		FullName:     employee.FullName,
		AccountName:  employee.AccountName,
		Email:        employee.Email,
		PhoneNumber:  employee.PhoneNumber,
		Position:     employee.Position,
		CompanyID:    employee.CompanyID,
		SupervisorID: employee.SupervisorID,
		IsVerified:   employee.IsVerified,
		CreatedAt:    employee.CreatedAt,
	}
}

// EmployeeRequestView is the wire shape of a registration request.
type EmployeeRequestView struct {
	ID              uint       `json:"id"`
	FullName        string     `json:"full_name"`
	AccountName     string     `json:"account_name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phone_number"`
	Position        string     `json:"position"`
	EmployeeNumber  string     `json:"employee_number"`
	CompanyID       uint       `json:"company_id"`
	SupervisorID    *uint      `json:"supervisor_id,omitempty"`
	Status          string     `json:"status"`
	EmailVerified   bool       `json:"email_verified"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func employeeRequestView(request *domain.EmployeeRequest) EmployeeRequestView {
	return EmployeeRequestView{
		ID:              request.ID,
		FullName:        request.FullName,
		AccountName:     request.AccountName,
		Email:           request.Email,
		PhoneNumber:     request.PhoneNumber,
		Position:        request.Position,
		EmployeeNumber:  request.EmployeeNumber,
		CompanyID:       request.CompanyID,
		SupervisorID:    request.SupervisorID,
		Status:          string(request.Status),
		EmailVerified:   request.EmailVerified,
		RejectionReason: request.RejectionReason,
		ApprovedAt:      request.ApprovedAt,
		RejectedAt:      request.RejectedAt,
		CreatedAt:       request.CreatedAt,
	}
}
