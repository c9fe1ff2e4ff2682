package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// issueSession records a fresh session in the session store and wraps it in
// a signed access token. Used by every login flow.
func issueSession(
	ctx context.Context,
	sessionRepo domain.SessionRepository,
	tokenSvc domain.TokenService,
	subjectType string,
	subjectID, companyID uint,
	position string,
) (*domain.AuthResult, error) {
	now := time.Now()
	session := &domain.Session{
		ID:          uuid.NewString(),
		SubjectType: subjectType,
		SubjectID:   subjectID,
		CompanyID:   companyID,
		ExpiresAt:   now.Add(tokenSvc.TTL()),
		CreatedAt:   now,
	}

	if err := sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := tokenSvc.Generate(domain.TokenClaims{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		CompanyID:   companyID,
		Position:    position,
		SessionID:   session.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		AccessToken: accessToken,
		SessionID:   session.ID,
		ExpiresIn:   int64(tokenSvc.TTL().Seconds()),
	}, nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return domain.NewValidationError("password must be at least 6 characters")
	}
	return nil
}
