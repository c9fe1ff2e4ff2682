package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/internal/http/handlers"
)

// RouterDeps bundles everything BuildRouter mounts.
type RouterDeps struct {
	CompanyAuth     *handlers.CompanyAuthHandlers
	EmployeeAuth    *handlers.EmployeeAuthHandlers
	EmployeeRequest *handlers.EmployeeRequestHandlers
	Directory       *handlers.DirectoryHandlers
	ShiftSwap       *handlers.ExchangeHandlers
	DayOffSwap      *handlers.ExchangeHandlers

	CompanyAuthMW  gin.HandlerFunc
	EmployeeAuthMW gin.HandlerFunc
}

func BuildRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")

	companies := api.Group("/companies")
	companies.POST("/register", d.CompanyAuth.Register)
	companies.POST("/verify-otp", d.CompanyAuth.VerifyOTP)
	companies.POST("/resend-otp", d.CompanyAuth.ResendOTP)
	companies.POST("/login", d.CompanyAuth.Login)

	employees := api.Group("/employees")
	employees.POST("/register", d.EmployeeAuth.Register)
	employees.POST("/verify-otp", d.EmployeeAuth.VerifyOTP)
	employees.POST("/resend-otp", d.EmployeeAuth.ResendOTP)
	employees.POST("/login", d.EmployeeAuth.Login)
	employees.GET("", d.CompanyAuthMW, d.Directory.ListEmployees)
	employees.GET("/supervisors", d.CompanyAuthMW, d.Directory.ListSupervisors)

	requests := api.Group("/employee-requests")
	requests.POST("/submit", d.EmployeeRequest.Submit)
	requests.POST("/verify-otp", d.EmployeeRequest.VerifyOTP)
	requests.POST("/resend-otp", d.EmployeeRequest.ResendOTP)
	requests.POST("/login", d.EmployeeAuth.Login)
	requests.POST("/password-reset", d.EmployeeAuth.ForgotPassword)
	requests.POST("/password-reset/confirm", d.EmployeeAuth.ResetPassword)
	requests.GET("", d.CompanyAuthMW, d.EmployeeRequest.List)
	requests.POST("/process", d.CompanyAuthMW, d.EmployeeRequest.Process)

	shift := api.Group("/shift-swap-requests").Use(d.EmployeeAuthMW)
	shift.POST("", d.ShiftSwap.Create)
	shift.GET("", d.ShiftSwap.List)
	shift.GET("/:id", d.ShiftSwap.Get)
	shift.PUT("/:id", d.ShiftSwap.Update)
	shift.DELETE("/:id", d.ShiftSwap.Withdraw)
	shift.POST("/:id/counter-offer", d.ShiftSwap.Propose)
	shift.POST("/:id/accept-offer", d.ShiftSwap.Accept)
	shift.POST("/:id/status", d.ShiftSwap.Decide)

	dayoff := api.Group("/day-off-swap-requests").Use(d.EmployeeAuthMW)
	dayoff.POST("", d.DayOffSwap.Create)
	dayoff.GET("", d.DayOffSwap.List)
	dayoff.GET("/:id", d.DayOffSwap.Get)
	dayoff.PUT("/:id", d.DayOffSwap.Update)
	dayoff.DELETE("/:id", d.DayOffSwap.Withdraw)
	dayoff.POST("/:id/match", d.DayOffSwap.Propose)
	dayoff.POST("/:id/accept-match", d.DayOffSwap.Accept)
	dayoff.POST("/:id/status", d.DayOffSwap.Decide)

	return r
}
