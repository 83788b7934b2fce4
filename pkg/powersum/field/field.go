package field

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidModulus is returned when the modulus is smaller than 2.
	ErrInvalidModulus = errors.New("field: modulus must be at least 2")

	// ErrMalformed is returned when a text value is not plain hexadecimal.
	ErrMalformed = errors.New("field: malformed hexadecimal value")

	// ErrOutOfRange is returned when a value is not smaller than the modulus.
	ErrOutOfRange = errors.New("field: value out of range")

	// ErrNotInvertible is returned when inverting zero.
	ErrNotInvertible = errors.New("field: value is not invertible")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Field is a prime field context. The zero value is not usable; create one
// with New or Parse.
type Field struct {
	p        *big.Int
	half     *big.Int // (p-1)/2
	hexWidth int
}

// New returns the field with modulus p. The modulus is copied.
// Primality is not checked here; see ProbablyPrime.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Cmp(two) < 0 {
		return nil, ErrInvalidModulus
	}
	mod := new(big.Int).Set(p)
	half := new(big.Int).Sub(mod, one)
	half.Rsh(half, 1)
	return &Field{
		p:        mod,
		half:     half,
		hexWidth: len(mod.Text(16)),
	}, nil
}

// Parse returns the field whose modulus is given as hexadecimal text.
func Parse(text string) (*Field, error) {
	p, err := ParseHex(text)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	return New(p)
}

// ParseHex parses a non-negative hexadecimal integer. Only the digits
// 0-9, a-f and A-F are accepted.
func ParseHex(text string) (*big.Int, error) {
	if text == "" {
		return nil, ErrMalformed
	}
	for i := 0; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			return nil, ErrMalformed
		}
	}
	v, ok := new(big.Int).SetString(text, 16)
	if !ok {
		return nil, ErrMalformed
	}
	return v, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// HalfOrder returns a copy of (p-1)/2.
func (f *Field) HalfOrder() *big.Int {
	return new(big.Int).Set(f.half)
}

// HexWidth is the number of hexadecimal digits of p. Every element encodes to
// at most this many digits.
func (f *Field) HexWidth() int {
	return f.hexWidth
}

// BitLen returns the bit length of p.
func (f *Field) BitLen() int {
	return f.p.BitLen()
}

// IsCharacteristicTwo reports whether p == 2.
func (f *Field) IsCharacteristicTwo() bool {
	return f.p.Cmp(two) == 0
}

// ProbablyPrime reports whether p passes big.Int's Miller-Rabin and
// Baillie-PSW tests.
func (f *Field) ProbablyPrime() bool {
	return f.p.ProbablyPrime(20)
}

// Contains reports whether x is a canonical element, 0 <= x < p.
func (f *Field) Contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(f.p) < 0
}

// ParseElement parses hexadecimal text into an element of the field.
func (f *Field) ParseElement(text string) (*big.Int, error) {
	v, err := ParseHex(text)
	if err != nil {
		return nil, err
	}
	if v.Cmp(f.p) >= 0 {
		return nil, ErrOutOfRange
	}
	return v, nil
}

// Text renders x as lowercase hexadecimal without leading zeros.
func (f *Field) Text(x *big.Int) string {
	return x.Text(16)
}

// Zero returns the additive identity.
func (f *Field) Zero() *big.Int {
	return new(big.Int)
}

// One returns the multiplicative identity.
func (f *Field) One() *big.Int {
	return big.NewInt(1)
}

// FromInt64 maps an integer, possibly negative, into the field.
func (f *Field) FromInt64(v int64) *big.Int {
	return f.Reduce(big.NewInt(v))
}

// Reduce returns x mod p in [0, p).
func (f *Field) Reduce(x *big.Int) *big.Int {
	// big.Int.Mod uses Euclidean modulus, so the result is never negative.
	return new(big.Int).Mod(x, f.p)
}

// Add returns (a + b) mod p. Arguments outside [0, p) are reduced.
func (f *Field) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	if r.Cmp(f.p) >= 0 {
		r.Sub(r, f.p)
	}
	if !f.Contains(r) {
		r.Mod(r, f.p)
	}
	return r
}

// Sub returns (a - b) mod p. Arguments outside [0, p) are reduced.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	if r.Sign() < 0 {
		r.Add(r, f.p)
	}
	if !f.Contains(r) {
		r.Mod(r, f.p)
	}
	return r
}

// Neg returns -a mod p.
func (f *Field) Neg(a *big.Int) *big.Int {
	r := f.Reduce(a)
	if r.Sign() == 0 {
		return r
	}
	return r.Sub(f.p, r)
}

// Mul returns (a * b) mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.p)
}

// Exp returns a^e mod p for e >= 0.
func (f *Field) Exp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, f.p)
}

// Inv returns the multiplicative inverse of a.
func (f *Field) Inv(a *big.Int) (*big.Int, error) {
	r := f.Reduce(a)
	if r.Sign() == 0 {
		return nil, ErrNotInvertible
	}
	// ModInverse returns nil when gcd(a, p) != 1, which only happens for a
	// composite modulus.
	inv := new(big.Int).ModInverse(r, f.p)
	if inv == nil {
		return nil, ErrNotInvertible
	}
	return inv, nil
}

// Equal reports whether a and b are the same element.
func (f *Field) Equal(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}

// IsZero reports whether a is the zero element.
func (f *Field) IsZero(a *big.Int) bool {
	return a.Sign() == 0
}
