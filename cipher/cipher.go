// Package cipher implements the Hill block transform.
//
// Text is encoded to residues, right-padded with the filler 'X' to a multiple
// of the key size n, multiplied block by block with the key (encrypt) or its
// inverse mod 26 (decrypt) and decoded back to letters. Decryption does not
// strip padding: filler added during encryption stays visible.
package cipher

import (
	"fmt"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/alphabet"
	"github.com/BackendStack21/hill-go/core"
	"github.com/BackendStack21/hill-go/modular"
	"github.com/BackendStack21/hill-go/utils"
)

// BlockCipher transforms fixed-size residue blocks.
type BlockCipher interface {
	BlockSize() int
	EncryptBlock(block []int) ([]int, error)
	DecryptBlock(block []int) ([]int, error)
}

var _ BlockCipher = (*Cipher)(nil)

// Cipher is an admitted key together with its inverse mod 26.
// It is immutable after NewCipher and safe for concurrent use.
type Cipher struct {
	key     hill.KeyMatrix
	inverse hill.KeyMatrix
	n       int
}

// NewCipher admits key and precomputes its inverse. Any failure wraps
// hill.ErrInvalidKey.
func NewCipher(key hill.KeyMatrix) (*Cipher, error) {
	if err := core.CheckKey(key); err != nil {
		return nil, err
	}
	inv, err := modular.MatrixInverse(key, hill.Modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hill.ErrInvalidKey, err)
	}
	return &Cipher{
		key:     key.Clone(),
		inverse: inv,
		n:       key.Size(),
	}, nil
}

// BlockSize returns the key dimension n.
func (c *Cipher) BlockSize() int {
	return c.n
}

// Key returns a copy of the key as given.
func (c *Cipher) Key() hill.KeyMatrix {
	return c.key.Clone()
}

// InverseKey returns a copy of the inverse key, entries in [0, 26).
func (c *Cipher) InverseKey() hill.KeyMatrix {
	return c.inverse.Clone()
}

// EncryptBlock returns key · block mod 26. The block must hold exactly n residues.
func (c *Cipher) EncryptBlock(block []int) ([]int, error) {
	return c.applyBlock(c.key, block)
}

// DecryptBlock returns inverse · block mod 26.
func (c *Cipher) DecryptBlock(block []int) ([]int, error) {
	return c.applyBlock(c.inverse, block)
}

func (c *Cipher) applyBlock(m hill.KeyMatrix, block []int) ([]int, error) {
	if len(block) != c.n {
		return nil, fmt.Errorf("%w: got %d, want %d", hill.ErrBlockSize, len(block), c.n)
	}
	return modular.MulVec(m, block, hill.Modulus)
}

// Encrypt encodes plaintext, pads it with 'X' and transforms it with the key.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	return c.transform(plaintext, c.key)
}

// Decrypt transforms ciphertext with the inverse key. Trailing filler from
// encryption is kept.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	return c.transform(ciphertext, c.inverse)
}

func (c *Cipher) transform(text string, m hill.KeyMatrix) (string, error) {
	residues := alphabet.Encode(text)
	if err := utils.CheckLength(len(residues), utils.MaxTextLength); err != nil {
		return "", fmt.Errorf("text of %d symbols: %w", len(residues), err)
	}

	padded := alphabet.Pad(residues, c.n)
	out := make([]int, 0, len(padded))
	for i := 0; i < len(padded); i += c.n {
		block, err := modular.MulVec(m, padded[i:i+c.n], hill.Modulus)
		if err != nil {
			return "", err
		}
		out = append(out, block...)
	}
	return alphabet.Decode(out), nil
}

// Encrypt admits key and encrypts plaintext with it.
func Encrypt(plaintext string, key hill.KeyMatrix) (string, error) {
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}
	return c.Encrypt(plaintext)
}

// Decrypt admits key and decrypts ciphertext with its inverse.
func Decrypt(ciphertext string, key hill.KeyMatrix) (string, error) {
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}
	return c.Decrypt(ciphertext)
}
