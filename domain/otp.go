package domain

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OTPPolicy holds the timing and attempt limits applied to every OTP flow.
type OTPPolicy struct {
	TTL          time.Duration
	ResendWindow time.Duration
	MaxAttempts  int
	Lockout      time.Duration
}

// DefaultOTPPolicy returns the production limits: 15 minute code lifetime,
// 3 minutes between issues, 5 attempts, 30 minute lockout.
func DefaultOTPPolicy() OTPPolicy {
	return OTPPolicy{
		TTL:          15 * time.Minute,
		ResendWindow: 3 * time.Minute,
		MaxAttempts:  5,
		Lockout:      30 * time.Minute,
	}
}

// OTPState is the verification record embedded in every identity holder
// (Company, Employee, EmployeeRequest). All transitions are pure: callers
// pass the clock and persist the holder afterwards, including on failure,
// since failed attempts and lockouts must survive.
type OTPState struct {
	Code        *string    `gorm:"column:otp_code" json:"-"`
	ExpiresAt   *time.Time `gorm:"column:otp_expires_at" json:"-"`
	LastSentAt  *time.Time `gorm:"column:otp_last_sent_at" json:"-"`
	Attempts    int        `gorm:"column:otp_attempts" json:"-"`
	LockedUntil *time.Time `gorm:"column:otp_locked_until" json:"-"`
}

// Issue generates a fresh six-digit code, subject to the lockout and the
// resend window. On success it resets the attempt counter and stamps the
// expiry and send time.
func (s *OTPState) Issue(policy OTPPolicy, now time.Time) (string, error) {
	if s.LockedUntil != nil && s.LockedUntil.After(now) {
		return "", &OTPLockedError{Minutes: minutesUntil(now, *s.LockedUntil)}
	}

	if s.LastSentAt != nil {
		nextAllowed := s.LastSentAt.Add(policy.ResendWindow)
		if now.Before(nextAllowed) {
			return "", &OTPThrottledError{Minutes: minutesUntil(now, nextAllowed)}
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	expires := now.Add(policy.TTL)
	s.Code = &code
	s.ExpiresAt = &expires
	s.LastSentAt = &now
	s.Attempts = 0

	return code, nil
}

// Verify checks the supplied code. A match clears the whole record; a
// mismatch increments the attempt counter and locks the holder once the
// limit is reached. While locked, even a matching code is refused.
func (s *OTPState) Verify(code string, policy OTPPolicy, now time.Time) error {
	if s.LockedUntil != nil && s.LockedUntil.After(now) {
		return &OTPLockedError{Minutes: minutesUntil(now, *s.LockedUntil)}
	}

	if s.Code == nil || s.ExpiresAt == nil || !s.ExpiresAt.After(now) {
		return ErrOTPExpired
	}

	if *s.Code != code {
		s.Attempts++
		if s.Attempts >= policy.MaxAttempts {
			locked := now.Add(policy.Lockout)
			s.LockedUntil = &locked
			return &OTPMaxAttemptsError{LockMinutes: int(policy.Lockout.Minutes())}
		}
		return &OTPInvalidError{Remaining: policy.MaxAttempts - s.Attempts}
	}

	s.Clear()
	return nil
}

// Clear drops any pending code and resets attempt tracking. Used after a
// successful verification and when code delivery fails, so a holder is
// never stranded mid-flow.
func (s *OTPState) Clear() {
	s.Code = nil
	s.ExpiresAt = nil
	s.LastSentAt = nil
	s.Attempts = 0
	s.LockedUntil = nil
}

// Pending reports whether an unexpired code is waiting to be verified.
func (s *OTPState) Pending(now time.Time) bool {
	return s.Code != nil && s.ExpiresAt != nil && s.ExpiresAt.After(now)
}

// generateCode draws a uniformly random six-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	value := n.Int64() + 100000
	return formatCode(value), nil
}

func formatCode(value int64) string {
	digits := [6]byte{}
	for i := 5; i >= 0; i-- {
		digits[i] = byte('0' + value%10)
		value /= 10
	}
	return string(digits[:])
}

// minutesUntil rounds the remaining wait up to whole minutes, so the user
// facing message never understates the wait.
func minutesUntil(now, until time.Time) int {
	remaining := until.Sub(now)
	minutes := int(remaining / time.Minute)
	if remaining%time.Minute != 0 {
		minutes++
	}
	return minutes
}
