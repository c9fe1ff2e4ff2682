package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPState_Issue(t *testing.T) {
	policy := DefaultOTPPolicy()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("issues a six digit code and stamps the record", func(t *testing.T) {
		var state OTPState

		code, err := state.Issue(policy, now)

		require.NoError(t, err)
		assert.Len(t, code, 6)
		require.NotNil(t, state.Code)
		assert.Equal(t, code, *state.Code)
		assert.Equal(t, now.Add(15*time.Minute), *state.ExpiresAt)
		assert.Equal(t, now, *state.LastSentAt)
		assert.Equal(t, 0, state.Attempts)
	})

	t.Run("second issue within the resend window is throttled", func(t *testing.T) {
		var state OTPState
		_, err := state.Issue(policy, now)
		require.NoError(t, err)

		_, err = state.Issue(policy, now.Add(2*time.Minute))

		var throttled *OTPThrottledError
		require.ErrorAs(t, err, &throttled)
		assert.Equal(t, 1, throttled.Minutes)
		assert.Equal(t, "Please wait 1 minutes before requesting another OTP.", err.Error())
		assert.True(t, IsRateLimited(err))
	})

	t.Run("reissue after the window invalidates the old code", func(t *testing.T) {
		var state OTPState
		first, err := state.Issue(policy, now)
		require.NoError(t, err)

		later := now.Add(3 * time.Minute)
		second, err := state.Issue(policy, later)
		require.NoError(t, err)

		if first == second {
			t.Skip("random codes collided")
		}

		err = state.Verify(first, policy, later.Add(time.Second))
		var invalid *OTPInvalidError
		require.ErrorAs(t, err, &invalid)
		require.NoError(t, state.Verify(second, policy, later.Add(2*time.Second)))
	})

	t.Run("issue while locked reports remaining minutes", func(t *testing.T) {
		locked := now.Add(10*time.Minute + 30*time.Second)
		state := OTPState{LockedUntil: &locked}

		_, err := state.Issue(policy, now)

		var lockedErr *OTPLockedError
		require.ErrorAs(t, err, &lockedErr)
		assert.Equal(t, 11, lockedErr.Minutes)
	})
}

func TestOTPState_Verify(t *testing.T) {
	policy := DefaultOTPPolicy()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	issue := func(t *testing.T) (*OTPState, string) {
		t.Helper()
		var state OTPState
		code, err := state.Issue(policy, now)
		require.NoError(t, err)
		return &state, code
	}

	t.Run("match clears the record", func(t *testing.T) {
		state, code := issue(t)

		err := state.Verify(code, policy, now.Add(time.Minute))

		require.NoError(t, err)
		assert.Nil(t, state.Code)
		assert.Nil(t, state.ExpiresAt)
		assert.Nil(t, state.LastSentAt)
		assert.Equal(t, 0, state.Attempts)
		assert.Nil(t, state.LockedUntil)
	})

	t.Run("expired code is refused", func(t *testing.T) {
		state, code := issue(t)

		err := state.Verify(code, policy, now.Add(16*time.Minute))

		assert.ErrorIs(t, err, ErrOTPExpired)
	})

	t.Run("mismatch counts attempts and reports the remainder", func(t *testing.T) {
		state, _ := issue(t)

		err := state.Verify("000000", policy, now.Add(time.Minute))

		var invalid *OTPInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 4, invalid.Remaining)
		assert.Equal(t, "Invalid OTP. 4 attempts remaining.", err.Error())
	})

	t.Run("fifth failure locks for thirty minutes", func(t *testing.T) {
		state, code := issue(t)

		var err error
		for i := 0; i < policy.MaxAttempts; i++ {
			err = state.Verify("000000", policy, now.Add(time.Minute))
		}

		var maxed *OTPMaxAttemptsError
		require.ErrorAs(t, err, &maxed)
		assert.Equal(t, 30, maxed.LockMinutes)
		require.NotNil(t, state.LockedUntil)
		assert.Equal(t, now.Add(time.Minute).Add(30*time.Minute), *state.LockedUntil)

		// Even the correct code fails while the lock holds.
		err = state.Verify(code, policy, now.Add(2*time.Minute))
		var locked *OTPLockedError
		require.ErrorAs(t, err, &locked)
		assert.True(t, IsRateLimited(err))

		// After the lock elapses the pending code has long expired.
		err = state.Verify(code, policy, now.Add(32*time.Minute))
		assert.ErrorIs(t, err, ErrOTPExpired)
	})
}

func TestOTPState_Pending(t *testing.T) {
	policy := DefaultOTPPolicy()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var state OTPState
	assert.False(t, state.Pending(now))

	_, err := state.Issue(policy, now)
	require.NoError(t, err)
	assert.True(t, state.Pending(now.Add(14*time.Minute)))
	assert.False(t, state.Pending(now.Add(15*time.Minute)))

	state.Clear()
	assert.False(t, state.Pending(now))
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 64; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
