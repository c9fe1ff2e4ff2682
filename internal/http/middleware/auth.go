package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// Context keys set by the auth middleware.
const (
	ContextCompany  = "auth_company"
	ContextEmployee = "auth_employee"
)

// WithCompany authenticates a company bearer token and injects the company
// into the gin context.
func WithCompany(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, companyRepo domain.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, tokenSvc, sessionRepo)
		if !ok {
			return
		}
		if claims.SubjectType != domain.SubjectCompany {
			abortUnauthorized(c, "Company authentication required")
			return
		}

		company, err := companyRepo.FindByID(c.Request.Context(), claims.SubjectID)
		if err != nil {
			abortUnauthorized(c, "Account no longer exists")
			return
		}

		c.Set(ContextCompany, company)
		c.Next()
	}
}

// WithEmployee authenticates an employee bearer token and injects the
// employee into the gin context.
func WithEmployee(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, employeeRepo domain.EmployeeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, tokenSvc, sessionRepo)
		if !ok {
			return
		}
		if claims.SubjectType != domain.SubjectEmployee {
			abortUnauthorized(c, "Employee authentication required")
			return
		}

		employee, err := employeeRepo.FindByID(c.Request.Context(), claims.SubjectID)
		if err != nil {
			abortUnauthorized(c, "Account no longer exists")
			return
		}

		c.Set(ContextEmployee, employee)
		c.Next()
	}
}

// CompanyFrom returns the authenticated company placed by WithCompany.
func CompanyFrom(c *gin.Context) (*domain.Company, bool) {
	value, exists := c.Get(ContextCompany)
	if !exists {
		return nil, false
	}
	company, ok := value.(*domain.Company)
	return company, ok
}

// EmployeeFrom returns the authenticated employee placed by WithEmployee.
func EmployeeFrom(c *gin.Context) (*domain.Employee, bool) {
	value, exists := c.Get(ContextEmployee)
	if !exists {
		return nil, false
	}
	employee, ok := value.(*domain.Employee)
	return employee, ok
}

// authenticate resolves the bearer token and validates the session behind
// it. A token whose session was deleted (logout, expiry) is refused even if
// the signature still verifies.
func authenticate(c *gin.Context, tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) (*domain.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header required")
		return nil, false
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		abortUnauthorized(c, "Invalid authorization header format")
		return nil, false
	}

	claims, err := tokenSvc.Validate(tokenParts[1])
	if err != nil {
		if err == domain.ErrTokenExpired {
			abortUnauthorized(c, "Token expired")
		} else {
			abortUnauthorized(c, "Invalid token")
		}
		return nil, false
	}

	session, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
	if err != nil || session == nil {
		abortUnauthorized(c, "Session invalid or expired")
		return nil, false
	}
	if session.SubjectType != claims.SubjectType || session.SubjectID != claims.SubjectID {
		abortUnauthorized(c, "Session subject mismatch")
		return nil, false
	}

	return claims, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
