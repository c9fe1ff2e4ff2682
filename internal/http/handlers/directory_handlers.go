package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/http/middleware"
)

// DirectoryHandlers serves company-scoped employee listings.
type DirectoryHandlers struct {
	employeeRepo domain.EmployeeRepository
}

// NewDirectoryHandlers creates directory handlers
func NewDirectoryHandlers(employeeRepo domain.EmployeeRepository) *DirectoryHandlers {
	return &DirectoryHandlers{employeeRepo: employeeRepo}
}

// ListEmployees handles GET /api/employees for the authenticated company.
// Optional position and is_verified query parameters narrow the listing.
func (h *DirectoryHandlers) ListEmployees(c *gin.Context) {
	company, ok := middleware.CompanyFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Company authentication required"})
		return
	}

	filter := domain.EmployeeFilter{Position: c.Query("position")}
	switch c.Query("is_verified") {
	case "true":
		verified := true
		filter.IsVerified = &verified
	case "false":
		verified := false
		filter.IsVerified = &verified
	}

	employees, err := h.employeeRepo.List(c.Request.Context(), company.ID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employeeViews(employees)})
}

// ListSupervisors handles GET /api/employees/supervisors for the
// authenticated company.
func (h *DirectoryHandlers) ListSupervisors(c *gin.Context) {
	company, ok := middleware.CompanyFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Company authentication required"})
		return
	}

	supervisors, err := h.employeeRepo.ListSupervisors(c.Request.Context(), company.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supervisors": employeeViews(supervisors)})
}

func employeeViews(employees []domain.Employee) []EmployeeView {
	views := make([]EmployeeView, 0, len(employees))
	for i := range employees {
		views = append(views, employeeView(&employees[i]))
	}
	return views
}
