package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PINLength is the number of digits of a staff PIN.
const PINLength = 4

var ErrMalformedPIN = errors.New("PIN must be exactly 4 digits")

// ValidatePIN rejects anything that is not exactly four ASCII digits.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength {
		return ErrMalformedPIN
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrMalformedPIN
		}
	}
	return nil
}

// HashPIN hashes a validated PIN with bcrypt.
func HashPIN(pin string) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPIN compares a PIN against its bcrypt hash.
func CheckPIN(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
