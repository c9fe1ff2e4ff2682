package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// EmployeeAuthServiceImpl implements domain.EmployeeAuthService. Direct
// registrations verify the phone number over WhatsApp; password recovery
// runs over email.
type EmployeeAuthServiceImpl struct {
	employeeRepo    domain.EmployeeRepository
	requestRepo     domain.EmployeeRequestRepository
	companyRepo     domain.CompanyRepository
	sessionRepo     domain.SessionRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	otpPolicy       domain.OTPPolicy
	logger          *zap.Logger
	now             func() time.Time
}

// NewEmployeeAuthService creates a new employee auth service
func NewEmployeeAuthService(
	employeeRepo domain.EmployeeRepository,
	requestRepo domain.EmployeeRequestRepository,
	companyRepo domain.CompanyRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	otpPolicy domain.OTPPolicy,
	logger *zap.Logger,
) domain.EmployeeAuthService {
	return &EmployeeAuthServiceImpl{
		employeeRepo:    employeeRepo,
		requestRepo:     requestRepo,
		companyRepo:     companyRepo,
		sessionRepo:     sessionRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		otpPolicy:       otpPolicy,
		logger:          logger,
		now:             time.Now,
	}
}

// Register implements domain.EmployeeAuthService
func (s *EmployeeAuthServiceImpl) Register(ctx context.Context, in domain.RegisterEmployeeInput) (*domain.Employee, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validatePosition(in.Position); err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByID(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmployeeExists
	}
	if _, err := s.employeeRepo.FindByPhone(ctx, in.PhoneNumber); err == nil {
		return nil, domain.ErrEmployeeExists
	}
	if _, err := s.employeeRepo.FindByAccountName(ctx, in.CompanyID, in.AccountName); err == nil {
		return nil, domain.ErrEmployeeExists
	}

	if in.SupervisorID != nil {
		if err := s.checkSupervisor(ctx, in.CompanyID, *in.SupervisorID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &domain.Employee{
		FullName:     in.FullName,
		AccountName:  in.AccountName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Position:     in.Position,
		PasswordHash: hashedPassword,
		CompanyID:    in.CompanyID,
		SupervisorID: in.SupervisorID,
		IsVerified:   false,
		CreatedAt:    s.now(),
	}

	code, err := employee.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	if err := s.sendVerificationCode(employee, code); err != nil {
		return employee, fmt.Errorf("failed to send verification code: %w", err)
	}

	return employee, nil
}

// VerifyOTP implements domain.EmployeeAuthService
func (s *EmployeeAuthServiceImpl) VerifyOTP(ctx context.Context, phone, code string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if employee.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}

	verifyErr := employee.OTP.Verify(code, s.otpPolicy, s.now())
	if verifyErr == nil {
		employee.IsVerified = true
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return employee, nil
}

// ResendOTP implements domain.EmployeeAuthService
func (s *EmployeeAuthServiceImpl) ResendOTP(ctx context.Context, phone string) error {
	employee, err := s.employeeRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if employee.IsVerified {
		return domain.ErrAlreadyVerified
	}

	code, err := employee.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	if err := s.sendVerificationCode(employee, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// LoginByPhone implements domain.EmployeeAuthService
func (s *EmployeeAuthServiceImpl) LoginByPhone(ctx context.Context, phone, password string) (*domain.Employee, *domain.AuthResult, error) {
	employee, err := s.employeeRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	return s.login(ctx, employee, password)
}

// LoginByEmail implements domain.EmployeeAuthService. An applicant whose
// registration request has not been approved gets a status hint instead of
// a bare credentials failure.
func (s *EmployeeAuthServiceImpl) LoginByEmail(ctx context.Context, email, password string) (*domain.Employee, *domain.AuthResult, error) {
	employee, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, nil, s.loginHint(ctx, email)
		}
		return nil, nil, err
	}
	return s.login(ctx, employee, password)
}

func (s *EmployeeAuthServiceImpl) loginHint(ctx context.Context, email string) error {
	request, err := s.requestRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	switch request.Status {
	case domain.EmployeeRequestPending:
		return domain.ErrRequestAwaitingApproval
	case domain.EmployeeRequestRejected:
		return domain.ErrRequestRejected
	}
	return domain.ErrInvalidCredentials
}

func (s *EmployeeAuthServiceImpl) login(ctx context.Context, employee *domain.Employee, password string) (*domain.Employee, *domain.AuthResult, error) {
	if !employee.IsVerified {
		return nil, nil, domain.ErrNotVerified
	}
	if !s.passwordSvc.Verify(employee.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	auth, err := issueSession(ctx, s.sessionRepo, s.tokenSvc, domain.SubjectEmployee, employee.ID, employee.CompanyID, employee.Position)
	if err != nil {
		return nil, nil, err
	}
	return employee, auth, nil
}

// RequestPasswordReset implements domain.EmployeeAuthService. An unknown
// email succeeds silently so the endpoint cannot be used to probe accounts.
func (s *EmployeeAuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	employee, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := employee.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is %s. It expires in %d minutes.",
		employee.FullName, code, int(s.otpPolicy.TTL.Minutes()),
	)
	if err := s.notificationSvc.SendEmail(employee.Email, "Reset your password", body); err != nil {
		// A stranded pending code would block the next attempt for the
		// whole resend window, so delivery failure clears it.
		employee.OTP.Clear()
		if saveErr := s.employeeRepo.Update(ctx, employee); saveErr != nil {
			s.logger.Error("failed to clear reset code after delivery failure", zap.Error(saveErr))
		}
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}

// ConfirmPasswordReset implements domain.EmployeeAuthService
func (s *EmployeeAuthServiceImpl) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) (*domain.Employee, error) {
	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			// Same response as a stale code, to avoid revealing accounts.
			return nil, domain.ErrOTPExpired
		}
		return nil, err
	}

	verifyErr := employee.OTP.Verify(code, s.otpPolicy, s.now())
	if verifyErr == nil {
		hashedPassword, err := s.passwordSvc.Hash(newPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = hashedPassword
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return employee, nil
}

func (s *EmployeeAuthServiceImpl) checkSupervisor(ctx context.Context, companyID, supervisorID uint) error {
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

func (s *EmployeeAuthServiceImpl) sendVerificationCode(employee *domain.Employee, code string) error {
	message := fmt.Sprintf(
		"Your Shiftswaper verification code is %s. It expires in %d minutes.",
		code, int(s.otpPolicy.TTL.Minutes()),
	)
	return s.notificationSvc.SendWhatsApp(employee.PhoneNumber, message)
}

func validatePosition(position string) error {
	switch position {
	case domain.PositionExpert, domain.PositionSupervisor, domain.PositionSME, domain.PositionModerator:
		return nil
	}
	return domain.NewValidationError("position must be one of expert, supervisor, sme or moderator")
}
