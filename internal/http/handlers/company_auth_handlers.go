package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// CompanyAuthHandlers handles company registration and login endpoints
type CompanyAuthHandlers struct {
	authSvc domain.CompanyAuthService
}

// NewCompanyAuthHandlers creates company auth handlers
func NewCompanyAuthHandlers(authSvc domain.CompanyAuthService) *CompanyAuthHandlers {
	return &CompanyAuthHandlers{authSvc: authSvc}
}

// RegisterCompanyRequest represents the company registration payload
type RegisterCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

// VerifyCompanyOTPRequest represents the email verification payload
type VerifyCompanyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResendCompanyOTPRequest represents the resend payload
type ResendCompanyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CompanyLoginRequest represents the company login payload
type CompanyLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CompanyView is the wire shape of a company, credentials omitted.
type CompanyView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IsVerified  bool   `json:"is_verified"`
}

func companyView(company *domain.Company) CompanyView {
	return CompanyView{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Email:       company.Email,
		Phone:       company.Phone,
		IsVerified:  company.IsVerified,
	}
}

// Register handles POST /api/companies/register
func (h *CompanyAuthHandlers) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.authSvc.Register(c.Request.Context(), domain.RegisterCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company registered. A verification code was sent to your email.",
		"company": companyView(company),
	})
}

// VerifyOTP handles POST /api/companies/verify-otp
func (h *CompanyAuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyCompanyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully.",
		"company": companyView(company),
	})
}

// ResendOTP handles POST /api/companies/resend-otp
func (h *CompanyAuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendCompanyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification code was sent to your email."})
}

// Login handles POST /api/companies/login
func (h *CompanyAuthHandlers) Login(c *gin.Context) {
	var req CompanyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, auth, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": auth.AccessToken,
		"expires_in":   auth.ExpiresIn,
		"company":      companyView(company),
	})
}
