package mocks

import "errors"

// ErrPasswordMismatch is returned by MockPasswordVerifier when it is set to fail.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements service.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed makes Compare return nil
	ShouldSucceed bool

	// CompareFn overrides ShouldSucceed when set
	CompareFn func(hashedPassword, password string) error

	// Calls records the password passed to each Compare call
	Calls []string
}

// Compare implements service.PasswordVerifier
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.Calls = append(m.Calls, password)
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}
