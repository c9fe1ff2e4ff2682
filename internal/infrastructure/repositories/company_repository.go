package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// CompanyRepositoryImpl implements domain.CompanyRepository using GORM
type CompanyRepositoryImpl struct {
	db *gorm.DB
}

// DBCompany represents the database model for Company (with GORM tags)
type DBCompany struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;size:255"`
	Description  string
	Email        string `gorm:"uniqueIndex;size:255"`
	Phone        string `gorm:"size:32"`
	PasswordHash string `gorm:"column:password"`
	IsVerified   bool   `gorm:"index"`
	OTP          domain.OTPState `gorm:"embedded"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBCompany) TableName() string {
	return "companies"
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domain.CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

// Create implements domain.CompanyRepository
func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *domain.Company) error {
	dbCompany := r.domainToDB(company)
	if err := r.db.WithContext(ctx).Create(dbCompany).Error; err != nil {
		return err
	}
	company.ID = dbCompany.ID
	return nil
}

// FindByID implements domain.CompanyRepository
func (r *CompanyRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Company, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.CompanyRepository
func (r *CompanyRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByName implements domain.CompanyRepository
func (r *CompanyRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *CompanyRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*domain.Company, error) {
	var dbCompany DBCompany
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbCompany).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCompany), nil
}

// Update implements domain.CompanyRepository
func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(company)).Error
}

func (r *CompanyRepositoryImpl) domainToDB(company *domain.Company) *DBCompany {
	return &DBCompany{
		ID:           company.ID,
		Name:         company.Name,
		Description:  company.Description,
		Email:        company.Email,
		Phone:        company.Phone,
		PasswordHash: company.PasswordHash,
		IsVerified:   company.IsVerified,
		OTP:          company.OTP,
		CreatedAt:    company.CreatedAt,
	}
}

func (r *CompanyRepositoryImpl) dbToDomain(dbCompany *DBCompany) *domain.Company {
	return &domain.Company{
		ID:           dbCompany.ID,
		Name:         dbCompany.Name,
		Description:  dbCompany.Description,
		Email:        dbCompany.Email,
		Phone:        dbCompany.Phone,
		PasswordHash: dbCompany.PasswordHash,
		IsVerified:   dbCompany.IsVerified,
		OTP:          dbCompany.OTP,
		CreatedAt:    dbCompany.CreatedAt,
		UpdatedAt:    dbCompany.UpdatedAt,
	}
}
