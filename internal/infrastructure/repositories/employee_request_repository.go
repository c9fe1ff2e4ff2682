package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// EmployeeRequestRepositoryImpl implements domain.EmployeeRequestRepository
type EmployeeRequestRepositoryImpl struct {
	db *gorm.DB
}

// DBEmployeeRequest represents the database model for EmployeeRequest
type DBEmployeeRequest struct {
	ID             uint   `gorm:"primaryKey"`
	FullName       string `gorm:"size:255"`
	AccountName    string `gorm:"size:255"`
	Email          string `gorm:"index;size:255"`
	PhoneNumber    string `gorm:"size:32"`
	Position       string `gorm:"size:32"`
	PasswordHash   string `gorm:"column:password"`
	EmployeeNumber string `gorm:"size:64"`
	CompanyID      uint   `gorm:"index"`
	SupervisorID   *uint

	Status          string `gorm:"index;size:16"`
	EmailVerified   bool
	RejectionReason string
	ApprovedByID    *uint
	ApprovedAt      *time.Time
	RejectedByID    *uint
	RejectedAt      *time.Time

	OTP       domain.OTPState `gorm:"embedded"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBEmployeeRequest) TableName() string {
	return "employee_requests"
}

// NewEmployeeRequestRepository creates a new employee request repository
func NewEmployeeRequestRepository(db *gorm.DB) domain.EmployeeRequestRepository {
	return &EmployeeRequestRepositoryImpl{db: db}
}

// Create implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) Create(ctx context.Context, request *domain.EmployeeRequest) error {
	dbRequest := r.domainToDB(request)
	if err := r.db.WithContext(ctx).Create(dbRequest).Error; err != nil {
		return err
	}
	request.ID = dbRequest.ID
	return nil
}

// FindByID implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.EmployeeRequest, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.EmployeeRequestRepository. When several
// requests share an email the most recent wins.
func (r *EmployeeRequestRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
	var dbRequest DBEmployeeRequest
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").First(&dbRequest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeRequestNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbRequest), nil
}

// FindPendingByEmail implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) FindPendingByEmail(ctx context.Context, email string) (*domain.EmployeeRequest, error) {
	return r.findOne(ctx, "email = ? AND status = ?", email, string(domain.EmployeeRequestPending))
}

func (r *EmployeeRequestRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*domain.EmployeeRequest, error) {
	var dbRequest DBEmployeeRequest
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbRequest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeRequestNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbRequest), nil
}

// Update implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) Update(ctx context.Context, request *domain.EmployeeRequest) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(request)).Error
}

// Delete implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBEmployeeRequest{}, id).Error
}

// List implements domain.EmployeeRequestRepository
func (r *EmployeeRequestRepositoryImpl) List(ctx context.Context, companyID uint, status domain.EmployeeRequestStatus) ([]domain.EmployeeRequest, error) {
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var dbRequests []DBEmployeeRequest
	if err := query.Order("created_at DESC").Find(&dbRequests).Error; err != nil {
		return nil, err
	}

	requests := make([]domain.EmployeeRequest, len(dbRequests))
	for i := range dbRequests {
		requests[i] = *r.dbToDomain(&dbRequests[i])
	}
	return requests, nil
}

func (r *EmployeeRequestRepositoryImpl) domainToDB(request *domain.EmployeeRequest) *DBEmployeeRequest {
	return &DBEmployeeRequest{
		ID:              request.ID,
		FullName:        request.FullName,
		AccountName:     request.AccountName,
		Email:           request.Email,
		PhoneNumber:     request.PhoneNumber,
		Position:        request.Position,
		PasswordHash:    request.PasswordHash,
		EmployeeNumber:  request.EmployeeNumber,
		CompanyID:       request.CompanyID,
		SupervisorID:    request.SupervisorID,
		Status:          string(request.Status),
		EmailVerified:   request.EmailVerified,
		RejectionReason: request.RejectionReason,
		ApprovedByID:    request.ApprovedByID,
		ApprovedAt:      request.ApprovedAt,
		RejectedByID:    request.RejectedByID,
		RejectedAt:      request.RejectedAt,
		OTP:             request.OTP,
		CreatedAt:       request.CreatedAt,
	}
}

func (r *EmployeeRequestRepositoryImpl) dbToDomain(dbRequest *DBEmployeeRequest) *domain.EmployeeRequest {
	return &domain.EmployeeRequest{
		ID:              dbRequest.ID,
		FullName:        dbRequest.FullName,
		AccountName:     dbRequest.AccountName,
		Email:           dbRequest.Email,
		PhoneNumber:     dbRequest.PhoneNumber,
		Position:        dbRequest.Position,
		PasswordHash:    dbRequest.PasswordHash,
		EmployeeNumber:  dbRequest.EmployeeNumber,
		CompanyID:       dbRequest.CompanyID,
		SupervisorID:    dbRequest.SupervisorID,
		Status:          domain.EmployeeRequestStatus(dbRequest.Status),
		EmailVerified:   dbRequest.EmailVerified,
		RejectionReason: dbRequest.RejectionReason,
		ApprovedByID:    dbRequest.ApprovedByID,
		ApprovedAt:      dbRequest.ApprovedAt,
		RejectedByID:    dbRequest.RejectedByID,
		RejectedAt:      dbRequest.RejectedAt,
		OTP:             dbRequest.OTP,
		CreatedAt:       dbRequest.CreatedAt,
		UpdatedAt:       dbRequest.UpdatedAt,
	}
}
