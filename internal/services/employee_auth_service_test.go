package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/mocks"
)

type employeeAuthFixture struct {
	svc           *EmployeeAuthServiceImpl
	employees     *mocks.MockEmployeeRepository
	requests      *mocks.MockEmployeeRequestRepository
	companies     *mocks.MockCompanyRepository
	notifications *mocks.MockNotificationService
	now           time.Time
}

func newEmployeeAuthFixture(t *testing.T) *employeeAuthFixture {
	t.Helper()

	employees := mocks.NewMockEmployeeRepository()
	requests := mocks.NewMockEmployeeRequestRepository()
	companies := mocks.NewMockCompanyRepository()
	companies.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Company, error) {
		return &domain.Company{ID: id, IsVerified: true}, nil
	}
	notifications := mocks.NewMockNotificationService()

	svc := NewEmployeeAuthService(
		employees,
		requests,
		companies,
		mocks.NewMockSessionRepository(),
		mocks.NewMockPasswordService(),
		mocks.NewMockTokenService(),
		notifications,
		domain.DefaultOTPPolicy(),
		zap.NewNop(),
	).(*EmployeeAuthServiceImpl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &employeeAuthFixture{
		svc:           svc,
		employees:     employees,
		requests:      requests,
		companies:     companies,
		notifications: notifications,
		now:           now,
	}
}

func TestEmployeeAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterEmployeeInput{
		FullName:    "Sam Roe",
		AccountName: "sroe",
		Email:       "sam@acme.example",
		PhoneNumber: "+15550003333",
		Position:    domain.PositionExpert,
		Password:    "secret123",
		CompanyID:   10,
	}

	t.Run("sends the code over WhatsApp", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		var created *domain.Employee
		f.employees.CreateFunc = func(ctx context.Context, employee *domain.Employee) error {
			employee.ID = 1
			created = employee
			return nil
		}

		employee, err := f.svc.Register(ctx, input)

		require.NoError(t, err)
		assert.False(t, employee.IsVerified)
		require.Len(t, f.notifications.WhatsApps, 1)
		assert.Equal(t, input.PhoneNumber, f.notifications.WhatsApps[0].To)
		assert.Contains(t, f.notifications.WhatsApps[0].Message, *created.OTP.Code)
	})

	t.Run("taken phone number is refused", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		f.employees.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Employee, error) {
			return &domain.Employee{ID: 2, PhoneNumber: phone}, nil
		}

		_, err := f.svc.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEmployeeExists)
	})

	t.Run("unknown position is refused", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		bad := input
		bad.Position = "manager"

		_, err := f.svc.Register(ctx, bad)

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestEmployeeAuthService_LoginHints(t *testing.T) {
	ctx := context.Background()

	t.Run("pending request surfaces as a hint", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		f.requests.FindByEmailFunc = func(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
			return &domain.EmployeeRequest{Email: email, Status: domain.EmployeeRequestPending}, nil
		}

		_, _, err := f.svc.LoginByEmail(ctx, "gina@acme.example", "secret123")

		assert.ErrorIs(t, err, domain.ErrRequestAwaitingApproval)
	})

	t.Run("rejected request surfaces as a hint", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		f.requests.FindByEmailFunc = func(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
			return &domain.EmployeeRequest{Email: email, Status: domain.EmployeeRequestRejected}, nil
		}

		_, _, err := f.svc.LoginByEmail(ctx, "gina@acme.example", "secret123")

		assert.ErrorIs(t, err, domain.ErrRequestRejected)
	})

	t.Run("no request at all is a plain credentials failure", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)

		_, _, err := f.svc.LoginByEmail(ctx, "nobody@acme.example", "secret123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestEmployeeAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	employee := func() *domain.Employee {
		return &domain.Employee{
			ID:           1,
			Email:        "sam@acme.example",
			PasswordHash: "hashed:old",
			IsVerified:   true,
		}
	}

	t.Run("unknown email succeeds without sending", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)

		err := f.svc.RequestPasswordReset(ctx, "nobody@acme.example")

		require.NoError(t, err)
		assert.Empty(t, f.notifications.Emails)
	})

	t.Run("known email gets a reset code", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		e := employee()
		f.employees.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Employee, error) {
			return e, nil
		}

		require.NoError(t, f.svc.RequestPasswordReset(ctx, e.Email))

		require.Len(t, f.notifications.Emails, 1)
		require.NotNil(t, e.OTP.Code)
		assert.Contains(t, f.notifications.Emails[0].Body, *e.OTP.Code)
	})

	t.Run("delivery failure clears the pending code", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		e := employee()
		f.employees.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Employee, error) {
			return e, nil
		}
		f.notifications.SendEmailFunc = func(to, subject, body string) error {
			return errors.New("smtp down")
		}

		err := f.svc.RequestPasswordReset(ctx, e.Email)

		require.Error(t, err)
		assert.Nil(t, e.OTP.Code)
		assert.Nil(t, e.OTP.LastSentAt)
	})

	t.Run("confirm with the code replaces the hash", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)
		e := employee()
		code, err := e.OTP.Issue(domain.DefaultOTPPolicy(), f.now.Add(-time.Minute))
		require.NoError(t, err)
		f.employees.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Employee, error) {
			return e, nil
		}

		got, err := f.svc.ConfirmPasswordReset(ctx, e.Email, code, "brandnew1")

		require.NoError(t, err)
		assert.Equal(t, "hashed:brandnew1", got.PasswordHash)
		assert.Nil(t, got.OTP.Code)
	})

	t.Run("confirm for an unknown email reads like a stale code", func(t *testing.T) {
		f := newEmployeeAuthFixture(t)

		_, err := f.svc.ConfirmPasswordReset(ctx, "nobody@acme.example", "123456", "brandnew1")

		assert.ErrorIs(t, err, domain.ErrOTPExpired)
	})
}
