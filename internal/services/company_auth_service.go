package services

import (
	"context"
	"fmt"
	"time"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// CompanyAuthServiceImpl implements domain.CompanyAuthService. Company
// accounts verify their email with an OTP before they can log in.
type CompanyAuthServiceImpl struct {
	companyRepo     domain.CompanyRepository
	sessionRepo     domain.SessionRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	otpPolicy       domain.OTPPolicy
	now             func() time.Time
}

// NewCompanyAuthService creates a new company auth service
func NewCompanyAuthService(
	companyRepo domain.CompanyRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	otpPolicy domain.OTPPolicy,
) domain.CompanyAuthService {
	return &CompanyAuthServiceImpl{
		companyRepo:     companyRepo,
		sessionRepo:     sessionRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		otpPolicy:       otpPolicy,
		now:             time.Now,
	}
}

// Register implements domain.CompanyAuthService
func (s *CompanyAuthServiceImpl) Register(ctx context.Context, in domain.RegisterCompanyInput) (*domain.Company, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrCompanyExists
	}
	if _, err := s.companyRepo.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrCompanyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := &domain.Company{
		Name:         in.Name,
		Description:  in.Description,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hashedPassword,
		IsVerified:   false,
		CreatedAt:    s.now(),
	}

	code, err := company.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	// The record stays even when delivery fails; the caller can resend.
	if err := s.sendVerificationCode(company, code); err != nil {
		return company, fmt.Errorf("failed to send verification code: %w", err)
	}

	return company, nil
}

// VerifyOTP implements domain.CompanyAuthService
func (s *CompanyAuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.Company, error) {
	company, err := s.companyRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if company.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}

	// Failed attempts and lockouts must survive, so the record is saved on
	// both outcomes.
	verifyErr := company.OTP.Verify(code, s.otpPolicy, s.now())
	if verifyErr == nil {
		company.IsVerified = true
	}
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return company, nil
}

// ResendOTP implements domain.CompanyAuthService
func (s *CompanyAuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	company, err := s.companyRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if company.IsVerified {
		return domain.ErrAlreadyVerified
	}

	code, err := company.OTP.Issue(s.otpPolicy, s.now())
	if err != nil {
		return err
	}
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}

	if err := s.sendVerificationCode(company, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// Login implements domain.CompanyAuthService
func (s *CompanyAuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.Company, *domain.AuthResult, error) {
	company, err := s.companyRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !company.IsVerified {
		return nil, nil, domain.ErrNotVerified
	}
	if !s.passwordSvc.Verify(company.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	auth, err := issueSession(ctx, s.sessionRepo, s.tokenSvc, domain.SubjectCompany, company.ID, company.ID, "")
	if err != nil {
		return nil, nil, err
	}
	return company, auth, nil
}

func (s *CompanyAuthServiceImpl) sendVerificationCode(company *domain.Company, code string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code is %s. It expires in %d minutes.",
		company.Name, code, int(s.otpPolicy.TTL.Minutes()),
	)
	return s.notificationSvc.SendEmail(company.Email, "Verify your company account", body)
}
