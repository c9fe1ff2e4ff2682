package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/http/middleware"
)

// EmployeeRequestHandlers handles the company-reviewed registration flow.
type EmployeeRequestHandlers struct {
	requestSvc domain.EmployeeRequestService
}

// NewEmployeeRequestHandlers creates employee request handlers
func NewEmployeeRequestHandlers(requestSvc domain.EmployeeRequestService) *EmployeeRequestHandlers {
	return &EmployeeRequestHandlers{requestSvc: requestSvc}
}

// SubmitEmployeeRequestRequest represents the registration request payload
type SubmitEmployeeRequestRequest struct {
	FullName       string `json:"full_name" binding:"required,min=2"`
	AccountName    string `json:"account_name" binding:"required,min=2"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Position       string `json:"position" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
	EmployeeNumber string `json:"employee_number" binding:"required"`
	CompanyID      uint   `json:"company_id" binding:"required"`
	SupervisorID   *uint  `json:"supervisor_id"`
}

// VerifyRequestOTPRequest represents the applicant email verification payload
type VerifyRequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResendRequestOTPRequest represents the resend payload
type ResendRequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ProcessEmployeeRequestRequest carries the company decision
type ProcessEmployeeRequestRequest struct {
	RequestID       uint   `json:"request_id" binding:"required"`
	Action          string `json:"action" binding:"required,oneof=approve reject"`
	SupervisorID    *uint  `json:"supervisor_id"`
	RejectionReason string `json:"rejection_reason"`
}

// Submit handles POST /api/employee-requests
func (h *EmployeeRequestHandlers) Submit(c *gin.Context) {
	var req SubmitEmployeeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestSvc.Submit(c.Request.Context(), domain.SubmitEmployeeRequestInput{
		FullName:       req.FullName,
		AccountName:    req.AccountName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Position:       req.Position,
		Password:       req.Password,
		EmployeeNumber: req.EmployeeNumber,
		CompanyID:      req.CompanyID,
		SupervisorID:   req.SupervisorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration request submitted. A verification code was sent to your email.",
		"request": employeeRequestView(request),
	})
}

// VerifyOTP handles POST /api/employee-requests/verify-otp
func (h *EmployeeRequestHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyRequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestSvc.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified. Your request is awaiting company approval.",
		"request": employeeRequestView(request),
	})
}

// ResendOTP handles POST /api/employee-requests/resend-otp
func (h *EmployeeRequestHandlers) ResendOTP(c *gin.Context) {
	var req ResendRequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.requestSvc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification code was sent to your email."})
}

// List handles GET /api/employee-requests for the authenticated company.
// An optional status query narrows the listing.
func (h *EmployeeRequestHandlers) List(c *gin.Context) {
	company, ok := middleware.CompanyFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Company authentication required"})
		return
	}

	status := domain.EmployeeRequestStatus(c.Query("status"))
	requests, err := h.requestSvc.List(c.Request.Context(), company.ID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]EmployeeRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, employeeRequestView(&requests[i]))
	}

	c.JSON(http.StatusOK, gin.H{"requests": views})
}

// Process handles POST /api/employee-requests/process for the authenticated
// company.
func (h *EmployeeRequestHandlers) Process(c *gin.Context) {
	company, ok := middleware.CompanyFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Company authentication required"})
		return
	}

	var req ProcessEmployeeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deciderID := company.ID
	request, employee, err := h.requestSvc.Process(c.Request.Context(), company.ID, domain.ProcessEmployeeRequestInput{
		RequestID:       req.RequestID,
		Approve:         req.Action == "approve",
		SupervisorID:    req.SupervisorID,
		RejectionReason: req.RejectionReason,
		DecidedByID:     &deciderID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"request": employeeRequestView(request)}
	if employee != nil {
		response["message"] = "Request approved. Employee account created."
		response["employee"] = employeeView(employee)
	} else {
		response["message"] = "Request rejected."
	}

	c.JSON(http.StatusOK, response)
}
