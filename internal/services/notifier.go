package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// WorkflowNotifier implements domain.ExchangeNotifier. Every delivery is
// best-effort: lookup or transport failures are logged and swallowed, since
// the workflow mutation has already committed when these run.
type WorkflowNotifier struct {
	employeeRepo    domain.EmployeeRepository
	notificationSvc domain.NotificationService
	logger          *zap.Logger
}

// NewWorkflowNotifier creates a new workflow notifier
func NewWorkflowNotifier(
	employeeRepo domain.EmployeeRepository,
	notificationSvc domain.NotificationService,
	logger *zap.Logger,
) *WorkflowNotifier {
	return &WorkflowNotifier{
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

var _ domain.ExchangeNotifier = (*WorkflowNotifier)(nil)

// ProposalReceived implements domain.ExchangeNotifier
func (n *WorkflowNotifier) ProposalReceived(request *domain.ExchangeRequest, proposer *domain.Employee) {
	var subject, body string
	if request.Kind == domain.KindDayOffSwap {
		subject = "New match on your day off swap request"
		body = fmt.Sprintf("%s offered to swap days off with you. Review the match on your request.", proposer.FullName)
	} else {
		subject = "New offer on your shift swap request"
		body = fmt.Sprintf("%s offered their shift in exchange for yours. Review the offer on your request.", proposer.FullName)
	}
	n.sendTo(request.RequesterID, subject, body)
}

// ProposalAccepted implements domain.ExchangeNotifier
func (n *WorkflowNotifier) ProposalAccepted(request *domain.ExchangeRequest, proposal *domain.ExchangeProposal) {
	subject := "Your offer was accepted"
	body := "Your offer was accepted and the swap now awaits supervisor approval."
	n.sendTo(proposal.ProposerID, subject, body)
}

// DecisionMade implements domain.ExchangeNotifier. The requester, the bound
// counter-party and both supervisors are told once each.
func (n *WorkflowNotifier) DecisionMade(request *domain.ExchangeRequest, decidedBy *domain.Employee) {
	subject := fmt.Sprintf("Swap request %s", request.Status)
	body := fmt.Sprintf("The swap request was %s by %s.", request.Status, decidedBy.FullName)
	if request.Comment != "" {
		body += " Comment: " + request.Comment
	}

	notified := map[uint]bool{}
	recipients := []*uint{&request.RequesterID, request.ReceiverID, request.FirstSupervisorID, request.SecondSupervisorID}
	for _, id := range recipients {
		if id == nil || notified[*id] {
			continue
		}
		notified[*id] = true
		n.sendTo(*id, subject, body)
	}
}

func (n *WorkflowNotifier) sendTo(employeeID uint, subject, body string) {
	employee, err := n.employeeRepo.FindByID(context.Background(), employeeID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed",
			zap.Uint("employee_id", employeeID),
			zap.Error(err),
		)
		return
	}
	if err := n.notificationSvc.SendEmail(employee.Email, subject, body); err != nil {
		n.logger.Warn("workflow notification delivery failed",
			zap.Uint("employee_id", employeeID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
