package utils

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"
)

// writeDomain absorbs a one-byte length prefix and the domain label.
// Labels longer than 255 bytes are a programming error.
func writeDomain(w io.Writer, domain string) {
	if len(domain) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	_, _ = w.Write([]byte{byte(len(domain))})
	_, _ = io.WriteString(w, domain)
}

// HashWithDomain returns SHA3-256(len(domain) || domain || data).
func HashWithDomain(domain string, data []byte) []byte {
	h := sha3.New256()
	writeDomain(h, domain)
	h.Write(data)
	return h.Sum(nil)
}

// ResidueStream yields an unbounded, deterministic sequence of uniform
// residues read from SHAKE256(len(domain) || domain || seed).
// A stream is not safe for concurrent use.
type ResidueStream struct {
	xof sha3.ShakeHash
	buf [4]byte
}

// NewResidueStream absorbs domain and seed and returns a stream ready to squeeze.
func NewResidueStream(domain string, seed []byte) *ResidueStream {
	xof := sha3.NewShake256()
	writeDomain(xof, domain)
	_, _ = xof.Write(seed)
	return &ResidueStream{xof: xof}
}

// Next returns the next residue in [0, q). It panics if q is not in
// [1, math.MaxUint32].
func (s *ResidueStream) Next(q int) int {
	if err := checkModulus(q); err != nil {
		panic(err)
	}
	limit := rejectionLimit(uint32(q))
	for {
		_, _ = s.xof.Read(s.buf[:])
		if v := binary.LittleEndian.Uint32(s.buf[:]); v < limit {
			return int(v % uint32(q))
		}
	}
}

// Fill overwrites dst with residues in [0, q).
func (s *ResidueStream) Fill(dst []int, q int) {
	for i := range dst {
		dst[i] = s.Next(q)
	}
}
