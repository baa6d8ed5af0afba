// Package keygen samples invertible Hill keys and fingerprints them.
//
// Nothing is stored: Generate draws from the OS CSPRNG, Derive expands a
// passphrase with SHAKE256 so the same passphrase always yields the same key.
package keygen

import (
	"encoding/hex"
	"errors"
	"fmt"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/core"
	"github.com/BackendStack21/hill-go/modular"
	"github.com/BackendStack21/hill-go/utils"
)

// Domain separation labels for passphrase seeds, derived key streams and fingerprints.
const (
	DomainPassphrase  = "hill-keygen-passphrase-v1"
	DomainDerive      = "hill-keygen-derive-v1"
	DomainFingerprint = "hill-key-fingerprint-v1"
)

// MaxAttempts bounds rejection sampling. Roughly a third of uniform 2x2
// matrices mod 26 are invertible, so exhausting this is practically impossible.
const MaxAttempts = 1000

// FingerprintSize is the number of hash bytes shown in a fingerprint.
const FingerprintSize = 8

// ErrNoKeyFound is returned when rejection sampling runs out of attempts.
var ErrNoKeyFound = errors.New("keygen: no invertible key found")

func checkSize(n int) error {
	if err := utils.CheckPositive(n, "key size"); err != nil {
		return err
	}
	if n > utils.MaxKeyDimension {
		return fmt.Errorf("key size %d: %w", n, utils.ErrExceedsLimit)
	}
	return nil
}

// fromResidues reshapes n*n residues into a square matrix.
func fromResidues(values []int, n int) hill.KeyMatrix {
	m := make(hill.KeyMatrix, n)
	for i := range m {
		m[i] = append([]int(nil), values[i*n:(i+1)*n]...)
	}
	return m
}

// Generate returns a uniformly random invertible n x n key with entries in [0, 26).
func Generate(n int) (hill.KeyMatrix, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	values := make([]int, n*n)
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		for i := range values {
			v, err := utils.RandomInt(hill.Modulus)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		m := fromResidues(values, n)
		if core.IsValidKey(m) {
			return m, nil
		}
	}
	return nil, ErrNoKeyFound
}

// Derive deterministically maps a passphrase to an invertible n x n key.
// Candidates are read in turn from one SHAKE256 stream seeded with the
// passphrase hash; the first invertible one wins.
func Derive(passphrase []byte, n int) (hill.KeyMatrix, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase must not be empty")
	}

	seed := utils.HashWithDomain(DomainPassphrase, passphrase)
	defer utils.Zeroize(seed)

	stream := utils.NewResidueStream(DomainDerive, seed)
	values := make([]int, n*n)
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		stream.Fill(values, hill.Modulus)
		m := fromResidues(values, n)
		if core.IsValidKey(m) {
			return m, nil
		}
	}
	return nil, ErrNoKeyFound
}

// Fingerprint returns a short hex identifier for key. Keys that are equal
// mod 26 share a fingerprint.
func Fingerprint(key hill.KeyMatrix) string {
	canonical := core.FormatMatrix(modular.Reduce(key, hill.Modulus))
	sum := utils.HashWithDomain(DomainFingerprint, []byte(canonical))
	return hex.EncodeToString(sum[:FingerprintSize])
}
