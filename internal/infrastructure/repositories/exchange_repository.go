package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// ExchangeRequestRepositoryImpl implements domain.ExchangeRequestRepository
// using GORM. Per-record serialization relies on an optimistic version
// column checked on every write-back inside Mutate.
type ExchangeRequestRepositoryImpl struct {
	db *gorm.DB
}

// DBExchangeRequest represents the database model for ExchangeRequest
type DBExchangeRequest struct {
	ID          uint   `gorm:"primaryKey"`
	Kind        string `gorm:"index;size:16"`
	CompanyID   uint   `gorm:"index"`
	RequesterID uint   `gorm:"index"`

	FirstSupervisorID  *uint
	SecondSupervisorID *uint
	ReceiverID         *uint `gorm:"index"`

	ShiftStart      *time.Time
	ShiftEnd        *time.Time
	OvertimeStart   *time.Time
	OvertimeEnd     *time.Time
	OriginalDayOff  *time.Time
	RequestedDayOff *time.Time

	Reason string
	Status string `gorm:"index;size:24"`

	ReceiverOriginalDayOff *time.Time
	ReceiverShiftStart     *time.Time
	ReceiverShiftEnd       *time.Time
	ReceiverOvertimeStart  *time.Time
	ReceiverOvertimeEnd    *time.Time

	StatusEditedByID *uint
	Comment          string

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Proposals []DBExchangeProposal `gorm:"foreignKey:RequestID"`
}

// TableName returns the table name for GORM
func (DBExchangeRequest) TableName() string {
	return "exchange_requests"
}

// DBExchangeProposal represents the database model for ExchangeProposal
type DBExchangeProposal struct {
	ID         uint   `gorm:"primaryKey"`
	RequestID  uint   `gorm:"index"`
	ProposerID uint   `gorm:"index"`
	Status     string `gorm:"size:16"`

	ShiftStart      *time.Time
	ShiftEnd        *time.Time
	OvertimeStart   *time.Time
	OvertimeEnd     *time.Time
	OriginalDayOff  *time.Time
	RequestedDayOff *time.Time

	OfferedAt time.Time
}

// TableName returns the table name for GORM
func (DBExchangeProposal) TableName() string {
	return "exchange_proposals"
}

// NewExchangeRequestRepository creates a new exchange request repository
func NewExchangeRequestRepository(db *gorm.DB) domain.ExchangeRequestRepository {
	return &ExchangeRequestRepositoryImpl{db: db}
}

// Create implements domain.ExchangeRequestRepository
func (r *ExchangeRequestRepositoryImpl) Create(ctx context.Context, request *domain.ExchangeRequest) error {
	dbRequest := requestToDB(request)
	dbRequest.Version = 1
	if err := r.db.WithContext(ctx).Create(dbRequest).Error; err != nil {
		return err
	}
	request.ID = dbRequest.ID
	request.Version = dbRequest.Version
	return nil
}

// FindByID implements domain.ExchangeRequestRepository
func (r *ExchangeRequestRepositoryImpl) FindByID(ctx context.Context, kind domain.ExchangeKind, id uint) (*domain.ExchangeRequest, error) {
	dbRequest, err := r.load(r.db.WithContext(ctx), kind, id)
	if err != nil {
		return nil, err
	}
	return requestToDomain(dbRequest), nil
}

// Mutate implements domain.ExchangeRequestRepository. It loads the full
// aggregate, applies fn, and writes the record back guarded by the version
// read at load time. A concurrent writer bumps the version first and the
// write-back affects zero rows, which surfaces as ErrOptimisticLock.
func (r *ExchangeRequestRepositoryImpl) Mutate(ctx context.Context, kind domain.ExchangeKind, id uint, fn func(*domain.ExchangeRequest) error) (*domain.ExchangeRequest, error) {
	var result *domain.ExchangeRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbRequest, err := r.load(tx, kind, id)
		if err != nil {
			return err
		}

		request := requestToDomain(dbRequest)
		loadedVersion := request.Version

		if err := fn(request); err != nil {
			return err
		}

		updates := requestUpdates(request)
		updates["version"] = loadedVersion + 1

		res := tx.Model(&DBExchangeRequest{}).
			Where("id = ? AND version = ?", id, loadedVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOptimisticLock
		}

		for i := range request.Proposals {
			p := &request.Proposals[i]
			dbProposal := proposalToDB(p)
			dbProposal.RequestID = id
			if p.ID == 0 {
				if err := tx.Create(dbProposal).Error; err != nil {
					return err
				}
				p.ID = dbProposal.ID
			} else if err := tx.Save(dbProposal).Error; err != nil {
				return err
			}
		}

		request.Version = loadedVersion + 1
		result = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasActiveForSlot implements domain.ExchangeRequestRepository. Rejected
// requests do not block a new request for the same slot.
func (r *ExchangeRequestRepositoryImpl) HasActiveForSlot(ctx context.Context, kind domain.ExchangeKind, companyID, requesterID uint, d domain.ResourceDescriptor) (bool, error) {
	query := r.db.WithContext(ctx).Model(&DBExchangeRequest{}).
		Where("kind = ? AND company_id = ? AND requester_id = ? AND status <> ?",
			string(kind), companyID, requesterID, string(domain.StatusRejected))

	if kind == domain.KindDayOffSwap {
		query = query.Where("original_day_off = ? AND requested_day_off = ?", d.OriginalDayOff, d.RequestedDayOff)
	} else {
		query = query.Where("shift_start = ? AND shift_end = ?", d.ShiftStart, d.ShiftEnd)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List implements domain.ExchangeRequestRepository
func (r *ExchangeRequestRepositoryImpl) List(ctx context.Context, kind domain.ExchangeKind, companyID uint, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
	query := r.db.WithContext(ctx).
		Where("kind = ? AND company_id = ?", string(kind), companyID)

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.ReceiverID != nil {
		query = query.Where("receiver_id = ?", *filter.ReceiverID)
	}
	if filter.ParticipantID != nil {
		id := *filter.ParticipantID
		query = query.Where(
			"requester_id = ? OR receiver_id = ? OR first_supervisor_id = ? OR second_supervisor_id = ?",
			id, id, id, id,
		)
	}

	var dbRequests []DBExchangeRequest
	if err := query.Preload("Proposals").Order("created_at DESC").Find(&dbRequests).Error; err != nil {
		return nil, err
	}

	requests := make([]domain.ExchangeRequest, len(dbRequests))
	for i := range dbRequests {
		requests[i] = *requestToDomain(&dbRequests[i])
	}
	return requests, nil
}

// Delete implements domain.ExchangeRequestRepository. Proposals go with the
// request.
func (r *ExchangeRequestRepositoryImpl) Delete(ctx context.Context, kind domain.ExchangeKind, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&DBExchangeProposal{}).Error; err != nil {
			return err
		}
		res := tx.Where("kind = ?", string(kind)).Delete(&DBExchangeRequest{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRequestNotFound
		}
		return nil
	})
}

func (r *ExchangeRequestRepositoryImpl) load(tx *gorm.DB, kind domain.ExchangeKind, id uint) (*DBExchangeRequest, error) {
	var dbRequest DBExchangeRequest
	err := tx.Preload("Proposals", func(db *gorm.DB) *gorm.DB {
		return db.Order("exchange_proposals.id")
	}).Where("kind = ?", string(kind)).First(&dbRequest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &dbRequest, nil
}

// requestUpdates lists every mutable column, zero values included, so
// cleared pointers and status strings land in the row.
func requestUpdates(request *domain.ExchangeRequest) map[string]any {
	return map[string]any{
		"first_supervisor_id":       request.FirstSupervisorID,
		"second_supervisor_id":      request.SecondSupervisorID,
		"receiver_id":               request.ReceiverID,
		"shift_start":               request.Descriptor.ShiftStart,
		"shift_end":                 request.Descriptor.ShiftEnd,
		"overtime_start":            request.Descriptor.OvertimeStart,
		"overtime_end":              request.Descriptor.OvertimeEnd,
		"original_day_off":          request.Descriptor.OriginalDayOff,
		"requested_day_off":         request.Descriptor.RequestedDayOff,
		"reason":                    request.Reason,
		"status":                    string(request.Status),
		"receiver_original_day_off": request.ReceiverOriginalDayOff,
		"receiver_shift_start":      request.ReceiverShiftStart,
		"receiver_shift_end":        request.ReceiverShiftEnd,
		"receiver_overtime_start":   request.ReceiverOvertimeStart,
		"receiver_overtime_end":     request.ReceiverOvertimeEnd,
		"status_edited_by_id":       request.StatusEditedByID,
		"comment":                   request.Comment,
	}
}

func requestToDB(request *domain.ExchangeRequest) *DBExchangeRequest {
	dbRequest := &DBExchangeRequest{
		ID:                     request.ID,
		Kind:                   string(request.Kind),
		CompanyID:              request.CompanyID,
		RequesterID:            request.RequesterID,
		FirstSupervisorID:      request.FirstSupervisorID,
		SecondSupervisorID:     request.SecondSupervisorID,
		ReceiverID:             request.ReceiverID,
		ShiftStart:             request.Descriptor.ShiftStart,
		ShiftEnd:               request.Descriptor.ShiftEnd,
		OvertimeStart:          request.Descriptor.OvertimeStart,
		OvertimeEnd:            request.Descriptor.OvertimeEnd,
		OriginalDayOff:         request.Descriptor.OriginalDayOff,
		RequestedDayOff:        request.Descriptor.RequestedDayOff,
		Reason:                 request.Reason,
		Status:                 string(request.Status),
		ReceiverOriginalDayOff: request.ReceiverOriginalDayOff,
		ReceiverShiftStart:     request.ReceiverShiftStart,
		ReceiverShiftEnd:       request.ReceiverShiftEnd,
		ReceiverOvertimeStart:  request.ReceiverOvertimeStart,
		ReceiverOvertimeEnd:    request.ReceiverOvertimeEnd,
		StatusEditedByID:       request.StatusEditedByID,
		Comment:                request.Comment,
		Version:                request.Version,
	}
	for i := range request.Proposals {
		dbRequest.Proposals = append(dbRequest.Proposals, *proposalToDB(&request.Proposals[i]))
	}
	return dbRequest
}

func requestToDomain(dbRequest *DBExchangeRequest) *domain.ExchangeRequest {
	request := &domain.ExchangeRequest{
		ID:                 dbRequest.ID,
		Kind:               domain.ExchangeKind(dbRequest.Kind),
		CompanyID:          dbRequest.CompanyID,
		RequesterID:        dbRequest.RequesterID,
		FirstSupervisorID:  dbRequest.FirstSupervisorID,
		SecondSupervisorID: dbRequest.SecondSupervisorID,
		ReceiverID:         dbRequest.ReceiverID,
		Descriptor: domain.ResourceDescriptor{
			ShiftStart:      dbRequest.ShiftStart,
			ShiftEnd:        dbRequest.ShiftEnd,
			OvertimeStart:   dbRequest.OvertimeStart,
			OvertimeEnd:     dbRequest.OvertimeEnd,
			OriginalDayOff:  dbRequest.OriginalDayOff,
			RequestedDayOff: dbRequest.RequestedDayOff,
		},
		Reason:                 dbRequest.Reason,
		Status:                 domain.RequestStatus(dbRequest.Status),
		ReceiverOriginalDayOff: dbRequest.ReceiverOriginalDayOff,
		ReceiverShiftStart:     dbRequest.ReceiverShiftStart,
		ReceiverShiftEnd:       dbRequest.ReceiverShiftEnd,
		ReceiverOvertimeStart:  dbRequest.ReceiverOvertimeStart,
		ReceiverOvertimeEnd:    dbRequest.ReceiverOvertimeEnd,
		StatusEditedByID:       dbRequest.StatusEditedByID,
		Comment:                dbRequest.Comment,
		Version:                dbRequest.Version,
		CreatedAt:              dbRequest.CreatedAt,
		UpdatedAt:              dbRequest.UpdatedAt,
	}
	for i := range dbRequest.Proposals {
		request.Proposals = append(request.Proposals, *proposalToDomain(&dbRequest.Proposals[i]))
	}
	return request
}

func proposalToDB(p *domain.ExchangeProposal) *DBExchangeProposal {
	return &DBExchangeProposal{
		ID:              p.ID,
		RequestID:       p.RequestID,
		ProposerID:      p.ProposerID,
		Status:          string(p.Status),
		ShiftStart:      p.Descriptor.ShiftStart,
		ShiftEnd:        p.Descriptor.ShiftEnd,
		OvertimeStart:   p.Descriptor.OvertimeStart,
		OvertimeEnd:     p.Descriptor.OvertimeEnd,
		OriginalDayOff:  p.Descriptor.OriginalDayOff,
		RequestedDayOff: p.Descriptor.RequestedDayOff,
		OfferedAt:       p.OfferedAt,
	}
}

func proposalToDomain(dbProposal *DBExchangeProposal) *domain.ExchangeProposal {
	return &domain.ExchangeProposal{
		ID:         dbProposal.ID,
		RequestID:  dbProposal.RequestID,
		ProposerID: dbProposal.ProposerID,
		Status:     domain.ProposalStatus(dbProposal.Status),
		Descriptor: domain.ResourceDescriptor{
			ShiftStart:      dbProposal.ShiftStart,
			ShiftEnd:        dbProposal.ShiftEnd,
			OvertimeStart:   dbProposal.OvertimeStart,
			OvertimeEnd:     dbProposal.OvertimeEnd,
			OriginalDayOff:  dbProposal.OriginalDayOff,
			RequestedDayOff: dbProposal.RequestedDayOff,
		},
		OfferedAt: dbProposal.OfferedAt,
	}
}
