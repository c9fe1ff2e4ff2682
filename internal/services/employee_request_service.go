package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// EmployeeRequestServiceImpl implements domain.EmployeeRequestService, the
// company-reviewed registration flow: an applicant submits a request,
// verifies their email with an OTP, and waits for the company to approve
// the request into a real employee account or reject it.
type EmployeeRequestServiceImpl struct {
	requestRepo     domain.EmployeeRequestRepository
	employeeRepo    domain.EmployeeRepository
	companyRepo     domain.CompanyRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	otpPolicy       domain.OTPPolicy
	logger          *zap.Logger
	now             func() time.Time
}

// NewEmployeeRequestService creates a new employee request service
func NewEmployeeRequestService(
	requestRepo domain.EmployeeRequestRepository,
	employeeRepo domain.EmployeeRepository,
	companyRepo domain.CompanyRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	otpPolicy domain.OTPPolicy,
	logger *zap.Logger,
) domain.EmployeeRequestService {
	return &EmployeeRequestServiceImpl{
		requestRepo:     requestRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		otpPolicy:       otpPolicy,
		logger:          logger,
		now:             time.Now,
	}
}

// Submit implements domain.EmployeeRequestService
func (s *EmployeeRequestServiceImpl) Submit(ctx context.Context, in domain.SubmitEmployeeRequestInput) (*domain.EmployeeRequest, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validatePosition(in.Position); err != nil {
		return nil, err
	}
	if in.EmployeeNumber == "" {
		return nil, domain.NewValidationError("employee number is required")
	}

	if _, err := s.companyRepo.FindByID(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmployeeExists
	}
	if _, err := s.requestRepo.FindPendingByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrRequestPending
	}

	if in.SupervisorID != nil {
		if err := s.checkSupervisor(ctx, in.CompanyID, *in.SupervisorID); err != nil {
			return nil, err
		}
	}

	// Hashed at submission so approval can copy the credential verbatim.
	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	request := &domain.EmployeeRequest{
		FullName:       in.FullName,
		AccountName:    in.AccountName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		Position:       in.Position,
		PasswordHash:   hashedPassword,
		EmployeeNumber: in.EmployeeNumber,
		CompanyID:      in.CompanyID,
		SupervisorID:   in.SupervisorID,
		Status:         domain.EmployeeRequestPending,
		CreatedAt:      s.now(),
	}

	code, err := request.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create employee request: %w", err)
	}

	if err := s.sendVerificationCode(request, code); err != nil {
		// Without a deliverable code the request can never be verified, so
		// it is removed rather than left stranded.
		if delErr := s.requestRepo.Delete(ctx, request.ID); delErr != nil {
			s.logger.Error("failed to remove undeliverable request", zap.Uint("request_id", request.ID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to send verification code: %w", err)
	}

	return request, nil
}

// VerifyOTP implements domain.EmployeeRequestService
func (s *EmployeeRequestServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.EmployeeRequest, error) {
	request, err := s.requestRepo.FindPendingByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if request.EmailVerified {
		return nil, domain.ErrAlreadyVerified
	}

	verifyErr := request.OTP.Verify(code, s.otpPolicy, s.now())
	if verifyErr == nil {
		request.EmailVerified = true
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save employee request: %w", err)
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return request, nil
}

// ResendOTP implements domain.EmployeeRequestService
func (s *EmployeeRequestServiceImpl) ResendOTP(ctx context.Context, email string) error {
	request, err := s.requestRepo.FindPendingByEmail(ctx, email)
	if err != nil {
		return err
	}
	if request.EmailVerified {
		return domain.ErrAlreadyVerified
	}

	code, err := request.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to save employee request: %w", err)
	}

	if err := s.sendVerificationCode(request, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// List implements domain.EmployeeRequestService
func (s *EmployeeRequestServiceImpl) List(ctx context.Context, companyID uint, status domain.EmployeeRequestStatus) ([]domain.EmployeeRequest, error) {
	return s.requestRepo.List(ctx, companyID, status)
}

// Process implements domain.EmployeeRequestService. Approval creates the
// employee account with the already-hashed credential; rejection records a
// reason. Either way the applicant is told by email, best-effort.
func (s *EmployeeRequestServiceImpl) Process(ctx context.Context, companyID uint, in domain.ProcessEmployeeRequestInput) (*domain.EmployeeRequest, *domain.Employee, error) {
	request, err := s.requestRepo.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, nil, err
	}
	if request.CompanyID != companyID {
		return nil, nil, domain.ErrWrongCompany
	}
	if request.Status != domain.EmployeeRequestPending {
		return nil, nil, domain.NewValidationError("registration request is already %s", request.Status)
	}

	if !in.Approve {
		return s.reject(ctx, request, in)
	}
	return s.approve(ctx, request, in)
}

func (s *EmployeeRequestServiceImpl) approve(ctx context.Context, request *domain.EmployeeRequest, in domain.ProcessEmployeeRequestInput) (*domain.EmployeeRequest, *domain.Employee, error) {
	if !request.EmailVerified {
		return nil, nil, domain.ErrEmailNotVerified
	}

	supervisorID := in.SupervisorID
	if supervisorID == nil {
		supervisorID = request.SupervisorID
	}

	// Supervisors answer to nobody; every other position needs one.
	if request.Position == domain.PositionSupervisor {
		if supervisorID != nil {
			return nil, nil, domain.NewValidationError("a supervisor cannot be assigned a supervisor")
		}
	} else {
		if supervisorID == nil {
			return nil, nil, domain.NewValidationError("a supervisor is required for this position")
		}
		if err := s.checkSupervisor(ctx, request.CompanyID, *supervisorID); err != nil {
			return nil, nil, err
		}
	}

	employee := &domain.Employee{
		FullName:     request.FullName,
		AccountName:  request.AccountName,
		Email:        request.Email,
		PhoneNumber:  request.PhoneNumber,
		Position:     request.Position,
		PasswordHash: request.PasswordHash,
		CompanyID:    request.CompanyID,
		SupervisorID: supervisorID,
		RequestID:    &request.ID,
		IsVerified:   true,
		CreatedAt:    s.now(),
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, nil, fmt.Errorf("failed to create employee: %w", err)
	}

	now := s.now()
	request.Status = domain.EmployeeRequestApproved
	request.ApprovedByID = in.DecidedByID
	request.ApprovedAt = &now
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, nil, fmt.Errorf("failed to save employee request: %w", err)
	}

	s.notifyApplicant(request, "Your registration was approved",
		fmt.Sprintf("Hello %s,\n\nYour registration request was approved. You can now log in.", request.FullName))

	return request, employee, nil
}

func (s *EmployeeRequestServiceImpl) reject(ctx context.Context, request *domain.EmployeeRequest, in domain.ProcessEmployeeRequestInput) (*domain.EmployeeRequest, *domain.Employee, error) {
	if in.RejectionReason == "" {
		return nil, nil, domain.NewValidationError("a rejection reason is required")
	}

	now := s.now()
	request.Status = domain.EmployeeRequestRejected
	request.RejectionReason = in.RejectionReason
	request.RejectedByID = in.DecidedByID
	request.RejectedAt = &now
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, nil, fmt.Errorf("failed to save employee request: %w", err)
	}

	s.notifyApplicant(request, "Your registration was rejected",
		fmt.Sprintf("Hello %s,\n\nYour registration request was rejected. Reason: %s", request.FullName, in.RejectionReason))

	return request, nil, nil
}

func (s *EmployeeRequestServiceImpl) notifyApplicant(request *domain.EmployeeRequest, subject, body string) {
	if err := s.notificationSvc.SendEmail(request.Email, subject, body); err != nil {
		s.logger.Warn("applicant notification failed",
			zap.Uint("request_id", request.ID),
			zap.Error(err),
		)
	}
}

func (s *EmployeeRequestServiceImpl) checkSupervisor(ctx context.Context, companyID, supervisorID uint) error {
	supervisor, err := s.employeeRepo.FindByID(ctx, supervisorID)
	if err != nil {
		return domain.ErrSupervisorNotFound
	}
	if supervisor.CompanyID != companyID {
		return domain.ErrInvalidSupervisor
	}
	if supervisor.Position != domain.PositionSupervisor {
		return domain.ErrInvalidSupervisor
	}
	return nil
}

func (s *EmployeeRequestServiceImpl) sendVerificationCode(request *domain.EmployeeRequest, code string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code is %s. It expires in %d minutes.",
		request.FullName, code, int(s.otpPolicy.TTL.Minutes()),
	)
	return s.notificationSvc.SendEmail(request.Email, "Verify your registration request", body)
}
