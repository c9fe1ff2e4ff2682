package services

import (
	"fmt"

	"github.com/josamcode/shiftswaper-backend/domain"
)

const (
	resourceSwapRequests = "swap_requests"
	actionViewAll        = "view_all"
)

// privilegedPositions may view and decide every request in their company.
var privilegedPositions = []string{domain.PositionSupervisor, domain.PositionSME}

// PolicyServiceImpl implements domain.PolicyService on a Casbin enforcer.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// SeedDefaultPolicies installs the position capabilities the workflow relies
// on. Adding an existing policy is a no-op for Casbin.
func (p *PolicyServiceImpl) SeedDefaultPolicies() error {
	for _, position := range privilegedPositions {
		if err := p.AddPolicy(positionRole(position), resourceSwapRequests, actionViewAll); err != nil {
			return fmt.Errorf("failed to seed policy for %s: %w", position, err)
		}
	}
	return p.enforcer.SavePolicy()
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	return err
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// IsPrivilegedViewer implements domain.PolicyService
func (p *PolicyServiceImpl) IsPrivilegedViewer(position string) (bool, error) {
	return p.CheckPermission(positionRole(position), resourceSwapRequests, actionViewAll)
}

func positionRole(position string) string {
	return "role_" + position
}
