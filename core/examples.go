package core

import (
	hill "github.com/BackendStack21/hill-go"
)

// exampleKeys are the reference keys advertised to users, grouped by shape.
// [[6,24],[1,13]] has determinant 54 ≡ 2 (mod 26) and does not pass
// CheckKey; it is listed as published.
var exampleKeys = map[string][]hill.KeyMatrix{
	"2x2": {
		{{3, 3}, {2, 5}},
		{{6, 24}, {1, 13}},
		{{5, 8}, {17, 3}},
	},
	"3x3": {
		{{17, 17, 5}, {21, 18, 21}, {2, 2, 19}},
	},
}

// ExampleKeys returns a deep copy of the reference key sets.
func ExampleKeys() map[string][]hill.KeyMatrix {
	out := make(map[string][]hill.KeyMatrix, len(exampleKeys))
	for shape, keys := range exampleKeys {
		copies := make([]hill.KeyMatrix, len(keys))
		for i, k := range keys {
			copies[i] = k.Clone()
		}
		out[shape] = copies
	}
	return out
}
