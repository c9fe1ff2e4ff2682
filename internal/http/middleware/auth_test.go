package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/mocks"
)

func validClaims(subjectType string) *domain.TokenClaims {
	return &domain.TokenClaims{
		SubjectType: subjectType,
		SubjectID:   1,
		CompanyID:   10,
		SessionID:   "session-1",
	}
}

func sessionFor(claims *domain.TokenClaims) *domain.Session {
	return &domain.Session{
		ID:          claims.SessionID,
		SubjectType: claims.SubjectType,
		SubjectID:   claims.SubjectID,
		CompanyID:   claims.CompanyID,
	}
}

func serveWithEmployee(t *testing.T, tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository, employeeRepo *mocks.MockEmployeeRepository, authHeader string) (*httptest.ResponseRecorder, *domain.Employee) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured *domain.Employee
	r := gin.New()
	r.GET("/protected", WithEmployee(tokenSvc, sessionRepo, employeeRepo), func(c *gin.Context) {
		employee, ok := EmployeeFrom(c)
		require.True(t, ok)
		captured = employee
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func TestWithEmployee(t *testing.T) {
	t.Run("valid token loads the employee", func(t *testing.T) {
		claims := validClaims(domain.SubjectEmployee)
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			if token == "good" {
				return claims, nil
			}
			return nil, domain.ErrTokenInvalid
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return sessionFor(claims), nil
		}
		employeeRepo := mocks.NewMockEmployeeRepository()
		employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
			return &domain.Employee{ID: id, CompanyID: 10, Position: domain.PositionExpert}, nil
		}

		w, employee := serveWithEmployee(t, tokenSvc, sessionRepo, employeeRepo, "Bearer good")

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, employee)
		assert.Equal(t, uint(1), employee.ID)
	})

	t.Run("missing header", func(t *testing.T) {
		w, _ := serveWithEmployee(t, mocks.NewMockTokenService(), mocks.NewMockSessionRepository(), mocks.NewMockEmployeeRepository(), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("malformed header", func(t *testing.T) {
		w, _ := serveWithEmployee(t, mocks.NewMockTokenService(), mocks.NewMockSessionRepository(), mocks.NewMockEmployeeRepository(), "Basic abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	})

	t.Run("expired token", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenExpired
		}

		w, _ := serveWithEmployee(t, tokenSvc, mocks.NewMockSessionRepository(), mocks.NewMockEmployeeRepository(), "Bearer stale")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("valid token without a live session is refused", func(t *testing.T) {
		claims := validClaims(domain.SubjectEmployee)
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			return claims, nil
		}

		// Default session repo returns ErrSessionNotFound.
		w, _ := serveWithEmployee(t, tokenSvc, mocks.NewMockSessionRepository(), mocks.NewMockEmployeeRepository(), "Bearer good")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Session invalid or expired")
	})

	t.Run("session bound to another subject is refused", func(t *testing.T) {
		claims := validClaims(domain.SubjectEmployee)
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			return claims, nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			session := sessionFor(claims)
			session.SubjectID = 99
			return session, nil
		}

		w, _ := serveWithEmployee(t, tokenSvc, sessionRepo, mocks.NewMockEmployeeRepository(), "Bearer good")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Session subject mismatch")
	})

	t.Run("company token on an employee route is refused", func(t *testing.T) {
		claims := validClaims(domain.SubjectCompany)
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			return claims, nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return sessionFor(claims), nil
		}

		w, _ := serveWithEmployee(t, tokenSvc, sessionRepo, mocks.NewMockEmployeeRepository(), "Bearer good")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Employee authentication required")
	})

	t.Run("deleted account is refused", func(t *testing.T) {
		claims := validClaims(domain.SubjectEmployee)
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
			return claims, nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return sessionFor(claims), nil
		}

		// Default employee repo returns ErrEmployeeNotFound.
		w, _ := serveWithEmployee(t, tokenSvc, sessionRepo, mocks.NewMockEmployeeRepository(), "Bearer good")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Account no longer exists")
	})
}

func TestWithCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)

	claims := validClaims(domain.SubjectCompany)
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return claims, nil
	}
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return sessionFor(claims), nil
	}
	companyRepo := mocks.NewMockCompanyRepository()
	companyRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Company, error) {
		return &domain.Company{ID: id, Name: "Acme", IsVerified: true}, nil
	}

	var captured *domain.Company
	r := gin.New()
	r.GET("/protected", WithCompany(tokenSvc, sessionRepo, companyRepo), func(c *gin.Context) {
		company, ok := CompanyFrom(c)
		require.True(t, ok)
		captured = company
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "Acme", captured.Name)
}
