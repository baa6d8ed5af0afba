package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"runtime"
)

// RandReader is the entropy source for RandomInt. Tests swap it out.
var RandReader io.Reader = rand.Reader

// rejectionLimit returns the largest multiple of q that fits in a uint32.
// Words at or above it are discarded so v % q stays uniform.
func rejectionLimit(q uint32) uint32 {
	return math.MaxUint32 - math.MaxUint32%q
}

func checkModulus(q int) error {
	if q <= 0 || uint64(q) > math.MaxUint32 {
		return fmt.Errorf("modulus %d out of range: %w", q, ErrExceedsLimit)
	}
	return nil
}

// RandomInt returns a uniform integer in [0, n) drawn from RandReader.
func RandomInt(n int) (int, error) {
	if err := CheckPositive(n, "n"); err != nil {
		return 0, err
	}
	if err := checkModulus(n); err != nil {
		return 0, err
	}

	q := uint32(n)
	limit := rejectionLimit(q)
	var buf [4]byte
	for {
		if _, err := io.ReadFull(RandReader, buf[:]); err != nil {
			return 0, err
		}
		if v := binary.LittleEndian.Uint32(buf[:]); v < limit {
			return int(v % q), nil
		}
	}
}

// Zeroize overwrites b with zeros.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
