// Package utils provides utility functions for the Hill cipher.
// This file contains limits and checked integer arithmetic used to keep
// exact cofactor expansion, key sampling and text transforms bounded.

package utils

import (
	"errors"
	"math"
)

// Maximum sizes accepted by the engine.
const (
	// MaxExactDimension is the largest n accepted by exact integer cofactor
	// expansion (Determinant, Adjugate), which is O(n!).
	MaxExactDimension = 8

	// MaxKeyDimension is the largest key dimension keygen samples.
	MaxKeyDimension = 64

	// MaxTextLength is the maximum number of alphabet symbols per transform.
	MaxTextLength = 1 << 20 // 1M symbols
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two signed integers and returns ErrOverflow if the
// product does not fit in an int.
func SafeMultiply(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, ErrOverflow
	}
	p := a * b
	if p/b != a {
		return 0, ErrOverflow
	}
	return p, nil
}

// SafeAdd adds two signed integers and returns ErrOverflow on wrap-around.
func SafeAdd(a, b int) (int, error) {
	// When adding positive b the result must grow, when adding negative b it
	// must shrink; anything else wrapped.
	result := a + b
	if (b > 0 && result < a) || (b < 0 && result > a) {
		return 0, ErrOverflow
	}
	return result, nil
}

// SafeSub subtracts b from a and returns ErrOverflow on wrap-around.
func SafeSub(a, b int) (int, error) {
	if b == math.MinInt {
		return 0, ErrOverflow
	}
	return SafeAdd(a, -b)
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// CheckPositive validates that value is > 0.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return errors.New(name + " must be positive")
	}
	return nil
}
