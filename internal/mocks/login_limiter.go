package mocks

import (
	"context"
	"time"
)

// MockLoginLimiter allows the first Max attempts per key. A zero Max allows
// everything.
type MockLoginLimiter struct {
	Max        int
	RetryAfter time.Duration
	Err        error

	Attempts map[string]int
	Resets   int
}

// Allow records an attempt for key.
func (m *MockLoginLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if m.Err != nil {
		return false, 0, m.Err
	}
	if m.Attempts == nil {
		m.Attempts = make(map[string]int)
	}
	m.Attempts[key]++
	if m.Max > 0 && m.Attempts[key] > m.Max {
		return false, m.RetryAfter, nil
	}
	return true, 0, nil
}

// Reset clears the attempts for key.
func (m *MockLoginLimiter) Reset(_ context.Context, key string) error {
	m.Resets++
	delete(m.Attempts, key)
	return nil
}
