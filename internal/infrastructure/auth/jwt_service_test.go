package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josamcode/shiftswaper-backend/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "shiftswaper", time.Hour)

	token, err := svc.Generate(domain.TokenClaims{
		SubjectType: domain.SubjectEmployee,
		SubjectID:   42,
		CompanyID:   10,
		Position:    domain.PositionSupervisor,
		SessionID:   "session-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectEmployee, claims.SubjectType)
	assert.Equal(t, uint(42), claims.SubjectID)
	assert.Equal(t, uint(10), claims.CompanyID)
	assert.Equal(t, domain.PositionSupervisor, claims.Position)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestJWTService_PositionIsOptional(t *testing.T) {
	svc := NewJWTService("test-secret", "shiftswaper", time.Hour)

	token, err := svc.Generate(domain.TokenClaims{
		SubjectType: domain.SubjectCompany,
		SubjectID:   7,
		CompanyID:   7,
		SessionID:   "session-2",
	})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Position)
}

func TestJWTService_ValidateRejects(t *testing.T) {
	svc := NewJWTService("test-secret", "shiftswaper", time.Hour)

	token, err := svc.Generate(domain.TokenClaims{
		SubjectType: domain.SubjectEmployee,
		SubjectID:   42,
		CompanyID:   10,
		SessionID:   "session-1",
	})
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.Validate(token + "x")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "shiftswaper", time.Hour)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", "shiftswaper", -time.Minute)
		stale, err := expired.Generate(domain.TokenClaims{
			SubjectType: domain.SubjectEmployee,
			SubjectID:   42,
			CompanyID:   10,
			SessionID:   "session-1",
		})
		require.NoError(t, err)

		_, err = svc.Validate(stale)
		assert.Error(t, err)
	})
}
