package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// ExchangeServiceImpl implements domain.ExchangeService. All mutations of an
// existing request run through the repository's Mutate so concurrent
// operations on one request serialize; notifications fire only after the
// mutation has committed.
type ExchangeServiceImpl struct {
	requestRepo  domain.ExchangeRequestRepository
	employeeRepo domain.EmployeeRepository
	notifier     domain.ExchangeNotifier
	policySvc    domain.PolicyService
	logger       *zap.Logger
	now          func() time.Time
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	requestRepo domain.ExchangeRequestRepository,
	employeeRepo domain.EmployeeRepository,
	notifier domain.ExchangeNotifier,
	policySvc domain.PolicyService,
	logger *zap.Logger,
) domain.ExchangeService {
	return &ExchangeServiceImpl{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		policySvc:    policySvc,
		logger:       logger,
		now:          time.Now,
	}
}

// Create implements domain.ExchangeService
func (s *ExchangeServiceImpl) Create(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, in domain.CreateExchangeInput) (*domain.ExchangeRequest, error) {
	if err := validateReason(in.Reason); err != nil {
		return nil, err
	}

	variant := domain.VariantFor(kind)
	if err := variant.ValidateRequest(in.Descriptor, s.now()); err != nil {
		return nil, err
	}

	duplicate, err := s.requestRepo.HasActiveForSlot(ctx, kind, actor.CompanyID, actor.ID, in.Descriptor)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrDuplicateRequest
	}

	// The first supervisor is the requester's supervisor at creation time.
	if actor.SupervisorID != nil {
		supervisor, err := s.employeeRepo.FindByID(ctx, *actor.SupervisorID)
		if err != nil {
			return nil, domain.ErrSupervisorNotFound
		}
		if supervisor.CompanyID != actor.CompanyID {
			return nil, domain.ErrInvalidSupervisor
		}
	}

	request := &domain.ExchangeRequest{
		Kind:              kind,
		CompanyID:         actor.CompanyID,
		RequesterID:       actor.ID,
		FirstSupervisorID: actor.SupervisorID,
		Descriptor:        in.Descriptor,
		Reason:            in.Reason,
		Status:            domain.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Propose implements domain.ExchangeService
func (s *ExchangeServiceImpl) Propose(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, d domain.ResourceDescriptor) (*domain.ExchangeRequest, error) {
	variant := domain.VariantFor(kind)

	result, err := s.requestRepo.Mutate(ctx, kind, requestID, func(request *domain.ExchangeRequest) error {
		if request.CompanyID != actor.CompanyID {
			return domain.ErrWrongCompany
		}
		if request.RequesterID == actor.ID {
			return domain.ErrOwnRequest
		}
		if !request.Open() {
			return &domain.RequestStatusError{Status: request.Status}
		}
		if err := variant.ValidateCounter(request, d, s.now()); err != nil {
			return err
		}
		request.AddProposal(actor.ID, d, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ProposalReceived(result, actor)
	return result, nil
}

// Accept implements domain.ExchangeService
func (s *ExchangeServiceImpl) Accept(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID, proposalID uint) (*domain.ExchangeRequest, error) {
	var accepted *domain.ExchangeProposal

	result, err := s.requestRepo.Mutate(ctx, kind, requestID, func(request *domain.ExchangeRequest) error {
		if request.CompanyID != actor.CompanyID {
			return domain.ErrWrongCompany
		}
		if request.RequesterID != actor.ID {
			return domain.ErrNotRequester
		}

		chosen, err := request.AcceptProposal(proposalID)
		if err != nil {
			return err
		}
		accepted = chosen

		// The counter-party's supervisor becomes the second approver. A
		// missing supervisor does not block the acceptance.
		proposer, err := s.employeeRepo.FindByID(ctx, chosen.ProposerID)
		if err != nil {
			s.logger.Warn("accepted proposer lookup failed",
				zap.Uint("request_id", request.ID),
				zap.Uint("proposer_id", chosen.ProposerID),
				zap.Error(err),
			)
			return nil
		}
		if proposer.SupervisorID == nil {
			s.logger.Warn("accepted proposer has no supervisor",
				zap.Uint("request_id", request.ID),
				zap.Uint("proposer_id", proposer.ID),
			)
			return nil
		}
		request.SecondSupervisorID = proposer.SupervisorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ProposalAccepted(result, accepted)
	return result, nil
}

// Decide implements domain.ExchangeService
func (s *ExchangeServiceImpl) Decide(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, approve bool, comment string) (*domain.ExchangeRequest, error) {
	result, err := s.requestRepo.Mutate(ctx, kind, requestID, func(request *domain.ExchangeRequest) error {
		if request.CompanyID != actor.CompanyID {
			return domain.ErrWrongCompany
		}
		if !request.CanDecide(actor.ID) {
			return domain.ErrNotAuthorizedSupervisor
		}
		return request.Decide(actor.ID, approve, comment)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.DecisionMade(result, actor)
	return result, nil
}

// Update implements domain.ExchangeService
func (s *ExchangeServiceImpl) Update(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, in domain.UpdateExchangeInput) (*domain.ExchangeRequest, error) {
	variant := domain.VariantFor(kind)

	return s.requestRepo.Mutate(ctx, kind, requestID, func(request *domain.ExchangeRequest) error {
		if err := s.requesterMayReshape(request, actor); err != nil {
			return err
		}
		if err := variant.ValidateRequest(in.Descriptor, s.now()); err != nil {
			return err
		}
		if in.Reason != nil {
			if err := validateReason(*in.Reason); err != nil {
				return err
			}
			request.Reason = *in.Reason
		}
		request.Descriptor = in.Descriptor
		return nil
	})
}

// Withdraw implements domain.ExchangeService
func (s *ExchangeServiceImpl) Withdraw(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) error {
	request, err := s.requestRepo.FindByID(ctx, kind, requestID)
	if err != nil {
		return err
	}
	if err := s.requesterMayReshape(request, actor); err != nil {
		return err
	}
	return s.requestRepo.Delete(ctx, kind, requestID)
}

// requesterMayReshape gates update and withdrawal: requester only, nobody
// bound yet, scheduled time still ahead.
func (s *ExchangeServiceImpl) requesterMayReshape(request *domain.ExchangeRequest, actor *domain.Employee) error {
	if request.CompanyID != actor.CompanyID {
		return domain.ErrWrongCompany
	}
	if request.RequesterID != actor.ID {
		return domain.ErrNotRequester
	}
	if request.Status.Terminal() {
		return &domain.RequestStatusError{Status: request.Status}
	}
	if request.ReceiverID != nil || request.AcceptedProposal() != nil {
		return domain.ErrAlreadyAccepted
	}
	if !request.ScheduledTime().After(s.now()) {
		return domain.ErrDeadlinePassed
	}
	return nil
}

// List implements domain.ExchangeService
func (s *ExchangeServiceImpl) List(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
	privileged, err := s.policySvc.IsPrivilegedViewer(actor.Position)
	if err != nil {
		return nil, err
	}
	if !privileged {
		filter.ParticipantID = &actor.ID
	}
	return s.requestRepo.List(ctx, kind, actor.CompanyID, filter)
}

// Get implements domain.ExchangeService
func (s *ExchangeServiceImpl) Get(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) (*domain.ExchangeRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, kind, requestID)
	if err != nil {
		return nil, err
	}
	if request.CompanyID != actor.CompanyID {
		return nil, domain.ErrWrongCompany
	}
	if !request.IsParticipant(actor.ID) {
		privileged, err := s.policySvc.IsPrivilegedViewer(actor.Position)
		if err != nil {
			return nil, err
		}
		if !privileged {
			return nil, domain.ErrNotParticipant
		}
	}
	return request, nil
}

func validateReason(reason string) error {
	if len(reason) < 5 || len(reason) > 500 {
		return domain.NewValidationError("reason must be between 5 and 500 characters")
	}
	return nil
}
