// Package core provides key parsing, key admission and the reference key sets
// for the Hill cipher.
package core

import (
	"fmt"
	"strconv"
	"strings"

	hill "github.com/BackendStack21/hill-go"
)

const (
	rowSeparator   = ";"
	entrySeparator = ","
)

// ParseMatrix parses a textual key such as "3,3;2,5" into a KeyMatrix.
// Rows are separated by ';', entries by ','; every entry is a base-10
// integer with an optional sign and surrounding whitespace is ignored.
//
// Row lengths are not checked here; jagged input parses and is rejected
// later by CheckKey. Empty input or any token that is not an integer
// returns an error wrapping hill.ErrParse.
func ParseMatrix(text string) (hill.KeyMatrix, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", hill.ErrParse)
	}

	rows := strings.Split(text, rowSeparator)
	m := make(hill.KeyMatrix, 0, len(rows))
	for i, row := range rows {
		tokens := strings.Split(row, entrySeparator)
		entries := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: token %q is not an integer", hill.ErrParse, i+1, tok)
			}
			entries = append(entries, v)
		}
		m = append(m, entries)
	}
	return m, nil
}

// FormatMatrix returns the canonical text form of m, the inverse of ParseMatrix.
func FormatMatrix(m hill.KeyMatrix) string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteString(rowSeparator)
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteString(entrySeparator)
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
