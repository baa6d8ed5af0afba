package hill

// Modulus is the size of the alphabet; all arithmetic is done mod Modulus.
const Modulus = 26

// Alphabet is the ordered symbol table. The residue of a symbol is its index.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Filler is the residue appended to plaintext to complete the last block ('X').
const Filler = 23

// =============================================================================
// Key Types
// =============================================================================

// KeyMatrix is an n x n key, stored row-major as signed integers before
// reduction. Parsed matrices may be jagged; use IsSquare before relying on shape.
type KeyMatrix [][]int

// Size returns the number of rows.
func (m KeyMatrix) Size() int {
	return len(m)
}

// IsSquare reports whether m is non-empty and every row has len(m) entries.
func (m KeyMatrix) IsSquare() bool {
	n := len(m)
	if n == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != n {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m KeyMatrix) Clone() KeyMatrix {
	if m == nil {
		return nil
	}
	out := make(KeyMatrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether m and other have the same shape and entries.
func (m KeyMatrix) Equal(other KeyMatrix) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// =============================================================================
// Validation Types
// =============================================================================

// Validation is the outcome of admitting a key: whether it is invertible mod
// Modulus and, if so, its inverse.
type Validation struct {
	IsValid bool      `json:"is_valid" yaml:"is_valid"`
	Inverse KeyMatrix `json:"inverse_matrix" yaml:"inverse_matrix"`
}
