// Package alphabet maps text to residues mod 26 and back.
package alphabet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	hill "github.com/BackendStack21/hill-go"
)

// Encode uppercases text with full Unicode case mapping and maps every
// resulting A-Z letter to its residue (A=0 ... Z=25). Mappings that expand
// are kept, so "straße" encodes as STRASSE and the ligature "ﬁ" as FI.
// All other runes, including whitespace, digits, punctuation and letters
// with no A-Z uppercase form, are dropped.
func Encode(text string) []int {
	upper := cases.Upper(language.Und).String(text)
	residues := make([]int, 0, len(upper))
	for _, r := range upper {
		if r >= 'A' && r <= 'Z' {
			residues = append(residues, int(r-'A'))
		}
	}
	return residues
}

// Decode maps residues back to letters. Values outside [0, 26) are skipped.
func Decode(residues []int) string {
	var sb strings.Builder
	sb.Grow(len(residues))
	for _, v := range residues {
		if v >= 0 && v < hill.Modulus {
			sb.WriteByte(hill.Alphabet[v])
		}
	}
	return sb.String()
}

// Normalize returns the canonical form of text: uppercase letters only.
func Normalize(text string) string {
	return Decode(Encode(text))
}

// Pad returns a copy of residues right-padded with hill.Filler until its
// length is a multiple of n. A non-positive n returns an unpadded copy.
func Pad(residues []int, n int) []int {
	size := len(residues)
	if n > 0 && size%n != 0 {
		size += n - size%n
	}
	out := make([]int, size)
	copy(out, residues)
	for i := len(residues); i < size; i++ {
		out[i] = hill.Filler
	}
	return out
}
