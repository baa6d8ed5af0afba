package hill

import "errors"

// Every message is prefixed with "hill: ". Sub-packages return these
// sentinels (possibly wrapped with fmt.Errorf("...: %w", err)); callers
// match them with errors.Is.
var (
	// ErrParse is returned when a matrix specification is empty or contains
	// a token that is not a base-10 integer.
	ErrParse = errors.New("hill: invalid matrix specification")

	// ErrInvalidKey is returned when a key fails the invertibility mod 26
	// admission check. Non-square and oversized keys are invalid keys too.
	ErrInvalidKey = errors.New("hill: invalid key matrix")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("hill: matrix is not square")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. a
	// product where the column count of the left side differs from the
	// length of the right side.
	ErrDimensionMismatch = errors.New("hill: dimension mismatch")

	// ErrMatrixNotInvertible is returned by the modular inverse routine when
	// the determinant is not coprime with the modulus.
	ErrMatrixNotInvertible = errors.New("hill: matrix is not invertible modulo the alphabet size")

	// ErrNoModularInverse is returned when a scalar has no inverse modulo m.
	ErrNoModularInverse = errors.New("hill: no modular inverse")

	// ErrBlockSize is returned when a block does not match the key dimension.
	ErrBlockSize = errors.New("hill: block length does not match key size")
)
