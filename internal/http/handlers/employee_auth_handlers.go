package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// EmployeeAuthHandlers handles direct employee registration, logins and
// password recovery endpoints.
type EmployeeAuthHandlers struct {
	authSvc domain.EmployeeAuthService
}

// NewEmployeeAuthHandlers creates employee auth handlers
func NewEmployeeAuthHandlers(authSvc domain.EmployeeAuthService) *EmployeeAuthHandlers {
	return &EmployeeAuthHandlers{authSvc: authSvc}
}

// RegisterEmployeeRequest represents the direct registration payload
type RegisterEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required,min=2"`
	AccountName  string `json:"account_name" binding:"required,min=2"`
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Position     string `json:"position" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	CompanyID    uint   `json:"company_id" binding:"required"`
	SupervisorID *uint  `json:"supervisor_id"`
}

// VerifyEmployeeOTPRequest represents the phone verification payload
type VerifyEmployeeOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,len=6"`
}

// ResendEmployeeOTPRequest represents the resend payload
type ResendEmployeeOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// EmployeeLoginRequest carries either a phone number or an email together
// with the password.
type EmployeeLoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents the reset initiation payload
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the reset confirmation payload
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Register handles POST /api/employees/register
func (h *EmployeeAuthHandlers) Register(c *gin.Context) {
	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.authSvc.Register(c.Request.Context(), domain.RegisterEmployeeInput{
		FullName:     req.FullName,
		AccountName:  req.AccountName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Position:     req.Position,
		Password:     req.Password,
		CompanyID:    req.CompanyID,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Employee registered. A verification code was sent over WhatsApp.",
		"employee": employeeView(employee),
	})
}

// VerifyOTP handles POST /api/employees/verify-otp
func (h *EmployeeAuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyEmployeeOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.authSvc.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Phone number verified successfully.",
		"employee": employeeView(employee),
	})
}

// ResendOTP handles POST /api/employees/resend-otp
func (h *EmployeeAuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendEmployeeOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.PhoneNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification code was sent over WhatsApp."})
}

// Login handles POST /api/employees/login. The caller identifies with a
// phone number or an email, not both.
func (h *EmployeeAuthHandlers) Login(c *gin.Context) {
	var req EmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.PhoneNumber == "") == (req.Email == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide either phone_number or email"})
		return
	}

	var (
		employee *domain.Employee
		auth     *domain.AuthResult
		err      error
	)
	if req.PhoneNumber != "" {
		employee, auth, err = h.authSvc.LoginByPhone(c.Request.Context(), req.PhoneNumber, req.Password)
	} else {
		employee, auth, err = h.authSvc.LoginByEmail(c.Request.Context(), req.Email, req.Password)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": auth.AccessToken,
		"expires_in":   auth.ExpiresIn,
		"employee":     employeeView(employee),
	})
}

// ForgotPassword handles POST /api/employees/forgot-password. The response
// does not reveal whether the email exists.
func (h *EmployeeAuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset code was sent."})
}

// ResetPassword handles POST /api/employees/reset-password
func (h *EmployeeAuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.authSvc.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}
