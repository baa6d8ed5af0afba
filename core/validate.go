package core

import (
	"fmt"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/modular"
)

// CheckKey is the single admission gate for keys. It returns nil when m is
// square and its determinant is coprime with hill.Modulus, whatever its size.
// Every failure wraps hill.ErrInvalidKey.
func CheckKey(m hill.KeyMatrix) error {
	if !m.IsSquare() {
		return fmt.Errorf("%w: %w", hill.ErrInvalidKey, hill.ErrNonSquare)
	}
	d, err := modular.DeterminantMod(m, hill.Modulus)
	if err != nil {
		return fmt.Errorf("%w: %w", hill.ErrInvalidKey, err)
	}
	if modular.GCD(d, hill.Modulus) != 1 {
		return fmt.Errorf("%w: %w: determinant %d shares a factor with %d",
			hill.ErrInvalidKey, hill.ErrMatrixNotInvertible, d, hill.Modulus)
	}
	return nil
}

// IsValidKey reports whether m can be used as a Hill key. It never panics.
func IsValidKey(m hill.KeyMatrix) bool {
	return CheckKey(m) == nil
}

// ValidateKey admits m and, when it is valid, returns its inverse mod 26.
func ValidateKey(m hill.KeyMatrix) hill.Validation {
	if err := CheckKey(m); err != nil {
		return hill.Validation{}
	}
	inv, err := modular.MatrixInverse(m, hill.Modulus)
	if err != nil {
		return hill.Validation{}
	}
	return hill.Validation{IsValid: true, Inverse: inv}
}
