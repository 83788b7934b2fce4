// Package splitrng provides the seeded randomness used by equal-degree
// splitting. A Source is a ChaCha20 keystream keyed from a caller seed, so a
// solve is reproducible for a fixed seed and independent of other solves.
package splitrng

import (
	"math/big"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

const keyDomain = "cb-powersum/splitrng/v1"

// Source is a deterministic stream of random bytes. It is not safe for
// concurrent use; each solve owns its own Source.
type Source struct {
	cipher *chacha20.Cipher
}

// New returns a Source keyed by SHA3-256(domain || seed).
func New(seed []byte) (*Source, error) {
	h := sha3.New256()
	h.Write([]byte(keyDomain))
	h.Write(seed)
	key := h.Sum(nil)

	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	return &Source{cipher: c}, nil
}

// DeriveSeed hashes the given parts into a 32-byte seed. Parts are length
// prefixed so that different splits of the same bytes give different seeds.
func DeriveSeed(parts ...[]byte) []byte {
	h := sha3.New256()
	var l [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range l {
			l[i] = byte(n >> (8 * i))
		}
		h.Write(l[:])
		h.Write(p)
	}
	return h.Sum(nil)
}

// Read fills b with keystream bytes. It never fails.
func (s *Source) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 0
	}
	s.cipher.XORKeyStream(b, b)
	return len(b), nil
}

// Element returns a uniform integer in [0, bound) by rejection sampling.
// It returns 0 without consuming the stream when bound is nil or not positive.
func (s *Source) Element(bound *big.Int) *big.Int {
	if bound == nil || bound.Sign() <= 0 {
		return new(big.Int)
	}
	bits := bound.BitLen()
	buf := make([]byte, (bits+7)/8)
	// Mask off the excess high bits so that each draw succeeds with
	// probability above one half.
	mask := byte(0xff)
	if r := bits % 8; r != 0 {
		mask = byte(1<<r) - 1
	}
	v := new(big.Int)
	for {
		_, _ = s.Read(buf)
		buf[0] &= mask
		v.SetBytes(buf)
		if v.Cmp(bound) < 0 {
			return v
		}
	}
}
