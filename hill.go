// Package hill implements a classical Hill cipher over the 26-letter Latin alphabet.
// This package holds the shared types and error values; the engine itself lives
// in the sub-packages:
// alphabet (symbol <-> residue codec), modular (exact integer and mod-26 linear
// algebra), core (key parsing and admission) and cipher (block transform).
//
// API summary:
//
// Keys:
//   - core.ParseMatrix(text) - Parse "a,b;c,d" into a KeyMatrix
//   - core.FormatMatrix(m) - Canonical string form of a KeyMatrix
//   - core.IsValidKey(m) - Invertibility mod 26 admission check
//   - core.ValidateKey(m) - Admission result plus the modular inverse
//   - core.ExampleKeys() - Reference key sets
//
// Transform:
//   - cipher.Encrypt(plaintext, key) - Encrypt text block-wise
//   - cipher.Decrypt(ciphertext, key) - Decrypt text block-wise (padding is kept)
//   - cipher.NewCipher(key) - Validated, reusable cipher with cached inverse
//
// Key sampling:
//   - keygen.Generate(n) - Random invertible n x n key
//   - keygen.Derive(passphrase, n) - Deterministic key from a passphrase
//   - keygen.Fingerprint(key) - Short SHA3-256 fingerprint of a key
package hill

// Version of the Hill cipher Go implementation.
const Version = "1.0.0"
