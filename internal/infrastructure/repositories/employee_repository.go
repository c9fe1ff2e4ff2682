package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// EmployeeRepositoryImpl implements domain.EmployeeRepository using GORM
type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

// DBEmployee represents the database model for Employee (with GORM tags)
type DBEmployee struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:255"`
	AccountName  string `gorm:"index;size:255"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PhoneNumber  string `gorm:"uniqueIndex;size:32"`
	Position     string `gorm:"index;size:32"`
	PasswordHash string `gorm:"column:password"`
	CompanyID    uint   `gorm:"index"`
	SupervisorID *uint  `gorm:"index"`
	RequestID    *uint
	IsVerified   bool            `gorm:"index"`
	OTP          domain.OTPState `gorm:"embedded"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBEmployee) TableName() string {
	return "employees"
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domain.EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

// Create implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *domain.Employee) error {
	dbEmployee := r.domainToDB(employee)
	if err := r.db.WithContext(ctx).Create(dbEmployee).Error; err != nil {
		return err
	}
	employee.ID = dbEmployee.ID
	return nil
}

// FindByID implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Employee, error) {
	return r.findOne(ctx, "phone_number = ?", phone)
}

// FindByAccountName implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByAccountName(ctx context.Context, companyID uint, accountName string) (*domain.Employee, error) {
	return r.findOne(ctx, "company_id = ? AND account_name = ?", companyID, accountName)
}

func (r *EmployeeRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*domain.Employee, error) {
	var dbEmployee DBEmployee
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbEmployee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbEmployee), nil
}

// Update implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(employee)).Error
}

// List implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) List(ctx context.Context, companyID uint, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}

	var dbEmployees []DBEmployee
	if err := query.Order("full_name").Find(&dbEmployees).Error; err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, len(dbEmployees))
	for i := range dbEmployees {
		employees[i] = *r.dbToDomain(&dbEmployees[i])
	}
	return employees, nil
}

// ListSupervisors implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) ListSupervisors(ctx context.Context, companyID uint) ([]domain.Employee, error) {
	return r.List(ctx, companyID, domain.EmployeeFilter{Position: domain.PositionSupervisor})
}

func (r *EmployeeRepositoryImpl) domainToDB(employee *domain.Employee) *DBEmployee {
	return &DBEmployee{
		ID:           employee.ID,
		FullName:     employee.FullName,
		AccountName:  employee.AccountName,
		Email:        employee.Email,
		PhoneNumber:  employee.PhoneNumber,
		Position:     employee.Position,
		PasswordHash: employee.PasswordHash,
		CompanyID:    employee.CompanyID,
		SupervisorID: employee.SupervisorID,
		RequestID:    employee.RequestID,
		IsVerified:   employee.IsVerified,
		OTP:          employee.OTP,
		CreatedAt:    employee.CreatedAt,
	}
}

func (r *EmployeeRepositoryImpl) dbToDomain(dbEmployee *DBEmployee) *domain.Employee {
	return &domain.Employee{
		ID:           dbEmployee.ID,
		FullName:     dbEmployee.FullName,
		AccountName:  dbEmployee.AccountName,
		Email:        dbEmployee.Email,
		PhoneNumber:  dbEmployee.PhoneNumber,
		Position:     dbEmployee.Position,
		PasswordHash: dbEmployee.PasswordHash,
		CompanyID:    dbEmployee.CompanyID,
		SupervisorID: dbEmployee.SupervisorID,
		RequestID:    dbEmployee.RequestID,
		IsVerified:   dbEmployee.IsVerified,
		OTP:          dbEmployee.OTP,
		CreatedAt:    dbEmployee.CreatedAt,
		UpdatedAt:    dbEmployee.UpdatedAt,
	}
}
