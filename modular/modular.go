// Package modular implements the integer and modular linear algebra behind
// the Hill cipher: gcd, scalar inverses, determinants, adjugates and matrix
// inverses modulo m.
//
// There is no floating-point path, so 3x3 and larger keys never suffer from
// rounding. The exact Determinant and Adjugate use cofactor expansion, detect
// int overflow and are limited to utils.MaxExactDimension. DeterminantMod and
// MatrixInverse use row elimination over Z/mod, which is O(n^3 log mod), works
// for composite moduli such as 26 and has no dimension limit.
package modular

import (
	"fmt"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/utils"
)

// Mod returns a mod m, always in [0, m).
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModInverse computes the x in [1, m) with a*x ≡ 1 (mod m).
// It uses the extended Euclidean algorithm and returns ErrNoModularInverse
// when gcd(a, m) != 1.
func ModInverse(a, m int) (int, error) {
	if m <= 1 {
		return 0, fmt.Errorf("%w: modulus %d", hill.ErrNoModularInverse, m)
	}
	oldR, r := Mod(a, m), m
	oldS, s := 1, 0

	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, fmt.Errorf("%w: %d mod %d", hill.ErrNoModularInverse, a, m)
	}
	return Mod(oldS, m), nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) hill.KeyMatrix {
	id := make(hill.KeyMatrix, n)
	for i := range id {
		id[i] = make([]int, n)
		id[i][i] = 1
	}
	return id
}

// Reduce returns a copy of m with every entry reduced into [0, mod).
func Reduce(m hill.KeyMatrix, mod int) hill.KeyMatrix {
	out := make(hill.KeyMatrix, len(m))
	for i, row := range m {
		out[i] = make([]int, len(row))
		for j, v := range row {
			out[i][j] = Mod(v, mod)
		}
	}
	return out
}

// checkSquare validates shape only.
func checkSquare(m hill.KeyMatrix) error {
	if !m.IsSquare() {
		return hill.ErrNonSquare
	}
	return nil
}

// checkExact validates shape and the cofactor expansion limit.
func checkExact(m hill.KeyMatrix) error {
	if err := checkSquare(m); err != nil {
		return err
	}
	if m.Size() > utils.MaxExactDimension {
		return fmt.Errorf("dimension %d: %w", m.Size(), utils.ErrExceedsLimit)
	}
	return nil
}

// minor returns m without row r and column c.
func minor(m hill.KeyMatrix, r, c int) hill.KeyMatrix {
	n := len(m)
	out := make(hill.KeyMatrix, 0, n-1)
	for i := 0; i < n; i++ {
		if i == r {
			continue
		}
		row := make([]int, 0, n-1)
		row = append(row, m[i][:c]...)
		row = append(row, m[i][c+1:]...)
		out = append(out, row)
	}
	return out
}

// Determinant returns the exact integer determinant of a square matrix.
// It returns ErrNonSquare for jagged or empty input and utils.ErrOverflow if
// an intermediate product does not fit in an int.
func Determinant(m hill.KeyMatrix) (int, error) {
	if err := checkExact(m); err != nil {
		return 0, err
	}
	return det(m)
}

func det(m hill.KeyMatrix) (int, error) {
	switch len(m) {
	case 1:
		return m[0][0], nil
	case 2:
		ad, err := utils.SafeMultiply(m[0][0], m[1][1])
		if err != nil {
			return 0, err
		}
		bc, err := utils.SafeMultiply(m[0][1], m[1][0])
		if err != nil {
			return 0, err
		}
		return utils.SafeSub(ad, bc)
	}

	total := 0
	for j, a := range m[0] {
		if a == 0 {
			continue
		}
		sub, err := det(minor(m, 0, j))
		if err != nil {
			return 0, err
		}
		term, err := utils.SafeMultiply(a, sub)
		if err != nil {
			return 0, err
		}
		if j%2 == 0 {
			total, err = utils.SafeAdd(total, term)
		} else {
			total, err = utils.SafeSub(total, term)
		}
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// DeterminantMod returns the determinant of m reduced into [0, mod).
// It equals Mod(Determinant(m), mod) but never overflows and accepts any size.
func DeterminantMod(m hill.KeyMatrix, mod int) (int, error) {
	if err := checkSquare(m); err != nil {
		return 0, err
	}
	a := Reduce(m, mod)
	d := Mod(eliminate(a, nil, mod), mod)
	for i := range a {
		d = Mod(d*a[i][i], mod)
	}
	return d, nil
}

// subRow sets dst = (dst - q*src) mod mod.
func subRow(dst, src []int, q, mod int) {
	for k, v := range src {
		dst[k] = Mod(dst[k]-q*v, mod)
	}
}

// eliminate brings a (entries in [0, mod)) to upper-triangular form using
// only row swaps and additions of multiples of other rows, so no division
// mod a composite modulus is needed: each column is cleared with a Euclidean
// gcd step between the pivot row and the row below. The same operations are
// applied to aug when it is non-nil. It returns the determinant sign change
// (+1 or -1) caused by the swaps.
func eliminate(a, aug hill.KeyMatrix, mod int) int {
	sign := 1
	n := len(a)
	for col := 0; col < n; col++ {
		for row := col + 1; row < n; row++ {
			for a[row][col] != 0 {
				q := a[col][col] / a[row][col]
				subRow(a[col], a[row], q, mod)
				a[col], a[row] = a[row], a[col]
				if aug != nil {
					subRow(aug[col], aug[row], q, mod)
					aug[col], aug[row] = aug[row], aug[col]
				}
				sign = -sign
			}
		}
	}
	return sign
}

// Adjugate returns the exact classical adjugate (transpose of the cofactor
// matrix) of a square matrix. For [[a,b],[c,d]] this is [[d,-b],[-c,a]].
func Adjugate(m hill.KeyMatrix) (hill.KeyMatrix, error) {
	if err := checkExact(m); err != nil {
		return nil, err
	}
	n := len(m)
	adj := make(hill.KeyMatrix, n)
	for i := range adj {
		adj[i] = make([]int, n)
	}
	if n == 1 {
		adj[0][0] = 1
		return adj, nil
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c, err := det(minor(m, i, j))
			if err != nil {
				return nil, err
			}
			if (i+j)%2 == 1 {
				if c, err = utils.SafeSub(0, c); err != nil {
					return nil, err
				}
			}
			adj[j][i] = c
		}
	}
	return adj, nil
}

// AdjugateMod returns the adjugate of m with every entry reduced into [0, mod).
// When det(m) is a unit mod mod it is det(m) times the modular inverse and
// any size is accepted; otherwise it falls back to cofactor expansion, which
// is limited to utils.MaxExactDimension.
func AdjugateMod(m hill.KeyMatrix, mod int) (hill.KeyMatrix, error) {
	if err := checkSquare(m); err != nil {
		return nil, err
	}
	d, err := DeterminantMod(m, mod)
	if err != nil {
		return nil, err
	}
	if GCD(d, mod) == 1 {
		adj, err := MatrixInverse(m, mod)
		if err != nil {
			return nil, err
		}
		for _, row := range adj {
			for j := range row {
				row[j] = Mod(row[j]*d, mod)
			}
		}
		return adj, nil
	}

	if err := checkExact(m); err != nil {
		return nil, err
	}
	reduced := Reduce(m, mod)
	n := len(reduced)
	adj := make(hill.KeyMatrix, n)
	for i := range adj {
		adj[i] = make([]int, n)
	}
	if n == 1 {
		adj[0][0] = Mod(1, mod)
		return adj, nil
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := detMod(minor(reduced, i, j), mod)
			if (i+j)%2 == 1 {
				c = Mod(-c, mod)
			}
			adj[j][i] = c
		}
	}
	return adj, nil
}

// detMod is cofactor expansion on entries already reduced into [0, mod).
func detMod(m hill.KeyMatrix, mod int) int {
	switch len(m) {
	case 1:
		return m[0][0]
	case 2:
		return Mod(m[0][0]*m[1][1]-m[0][1]*m[1][0], mod)
	}

	total := 0
	for j, a := range m[0] {
		if a == 0 {
			continue
		}
		term := a * detMod(minor(m, 0, j), mod)
		if j%2 == 1 {
			term = -term
		}
		total = Mod(total+term, mod)
	}
	return total
}

// MatrixInverse returns the inverse of m modulo mod, every entry in [0, mod).
// It returns ErrMatrixNotInvertible when gcd(det(m) mod mod, mod) != 1.
//
// [m | I] is triangularised by eliminate. The product of the pivots is a unit,
// so every pivot is a unit; back substitution then scales each pivot row to 1
// and clears the column above it, leaving the inverse in the right half.
func MatrixInverse(m hill.KeyMatrix, mod int) (hill.KeyMatrix, error) {
	d, err := DeterminantMod(m, mod)
	if err != nil {
		return nil, err
	}
	if GCD(d, mod) != 1 {
		return nil, fmt.Errorf("%w: determinant %d mod %d", hill.ErrMatrixNotInvertible, d, mod)
	}

	a := Reduce(m, mod)
	inv := Reduce(Identity(len(a)), mod)
	eliminate(a, inv, mod)

	for i := len(a) - 1; i >= 0; i-- {
		p, err := ModInverse(a[i][i], mod)
		if err != nil {
			return nil, fmt.Errorf("%w: pivot %d: %v", hill.ErrMatrixNotInvertible, i, err)
		}
		for k := range a[i] {
			a[i][k] = Mod(a[i][k]*p, mod)
			inv[i][k] = Mod(inv[i][k]*p, mod)
		}
		for r := 0; r < i; r++ {
			if f := a[r][i]; f != 0 {
				subRow(a[r], a[i], f, mod)
				subRow(inv[r], inv[i], f, mod)
			}
		}
	}
	return inv, nil
}

// MulVec returns (m · v) mod mod. Each row of m must have len(v) entries.
func MulVec(m hill.KeyMatrix, v []int, mod int) ([]int, error) {
	out := make([]int, len(m))
	for i, row := range m {
		if len(row) != len(v) {
			return nil, fmt.Errorf("row %d has %d entries, vector has %d: %w",
				i, len(row), len(v), hill.ErrDimensionMismatch)
		}
		sum := 0
		for j, a := range row {
			sum = Mod(sum+Mod(a, mod)*Mod(v[j], mod), mod)
		}
		out[i] = sum
	}
	return out, nil
}

// Mul returns (a · b) mod mod. b must be rectangular with len(a[i]) rows.
func Mul(a, b hill.KeyMatrix, mod int) (hill.KeyMatrix, error) {
	cols := 0
	if len(b) > 0 {
		cols = len(b[0])
	}
	for _, row := range b {
		if len(row) != cols {
			return nil, hill.ErrDimensionMismatch
		}
	}
	out := make(hill.KeyMatrix, len(a))
	for i, row := range a {
		if len(row) != len(b) {
			return nil, hill.ErrDimensionMismatch
		}
		out[i] = make([]int, cols)
		for j := 0; j < cols; j++ {
			sum := 0
			for k, x := range row {
				sum = Mod(sum+Mod(x, mod)*Mod(b[k][j], mod), mod)
			}
			out[i][j] = sum
		}
	}
	return out, nil
}
