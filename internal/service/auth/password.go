package auth

import "golang.org/x/crypto/bcrypt"

// BcryptVerifier checks a login password against the bcrypt hash the user
// store wrote at registration.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare returns nil when password matches hashedPassword. A user row with
// no stored hash never matches.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == "" {
		return bcrypt.ErrHashTooShort
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
