package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/config"
	httpx "github.com/josamcode/shiftswaper-backend/internal/http"
	"github.com/josamcode/shiftswaper-backend/internal/http/handlers"
	"github.com/josamcode/shiftswaper-backend/internal/http/middleware"
	"github.com/josamcode/shiftswaper-backend/internal/infrastructure/auth"
	"github.com/josamcode/shiftswaper-backend/internal/infrastructure/database"
	"github.com/josamcode/shiftswaper-backend/internal/infrastructure/notifications"
	"github.com/josamcode/shiftswaper-backend/internal/infrastructure/repositories"
	"github.com/josamcode/shiftswaper-backend/internal/services"
)

// Run wires the application together and serves HTTP until the listener
// fails.
func Run(cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)

	// Repositories
	companyRepo := repositories.NewCompanyRepository(gdb)
	employeeRepo := repositories.NewEmployeeRepository(gdb)
	requestRepo := repositories.NewEmployeeRequestRepository(gdb)
	exchangeRepo := repositories.NewExchangeRequestRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.AccessTTL)

	// Services
	policySvc := services.NewPolicyService(cas.E)
	if err := policySvc.(*services.PolicyServiceImpl).SeedDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}

	notifier := services.NewWorkflowNotifier(employeeRepo, notificationSvc, logger)
	exchangeSvc := services.NewExchangeService(exchangeRepo, employeeRepo, notifier, policySvc, logger)
	companyAuthSvc := services.NewCompanyAuthService(companyRepo, sessionRepo, passwordSvc, tokenSvc, notificationSvc, cfg.OTPPolicy)
	employeeAuthSvc := services.NewEmployeeAuthService(employeeRepo, requestRepo, companyRepo, sessionRepo, passwordSvc, tokenSvc, notificationSvc, cfg.OTPPolicy, logger)
	requestSvc := services.NewEmployeeRequestService(requestRepo, employeeRepo, companyRepo, passwordSvc, notificationSvc, cfg.OTPPolicy, logger)

	// Router
	r := httpx.BuildRouter(httpx.RouterDeps{
		CompanyAuth:     handlers.NewCompanyAuthHandlers(companyAuthSvc),
		EmployeeAuth:    handlers.NewEmployeeAuthHandlers(employeeAuthSvc),
		EmployeeRequest: handlers.NewEmployeeRequestHandlers(requestSvc),
		Directory:       handlers.NewDirectoryHandlers(employeeRepo),
		ShiftSwap:       handlers.NewExchangeHandlers(domain.KindShiftSwap, exchangeSvc),
		DayOffSwap:      handlers.NewExchangeHandlers(domain.KindDayOffSwap, exchangeSvc),
		CompanyAuthMW:   middleware.WithCompany(tokenSvc, sessionRepo, companyRepo),
		EmployeeAuthMW:  middleware.WithEmployee(tokenSvc, sessionRepo, employeeRepo),
	})

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = parsed
	}
	return zapCfg.Build()
}
