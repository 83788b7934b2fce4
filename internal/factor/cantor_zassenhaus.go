package factor

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-powersum-go/internal/poly"
)

// DefaultMaxAttempts bounds the random shifts tried per split. Each attempt
// separates two distinct roots with probability about one half.
const DefaultMaxAttempts = 64

// Rand supplies uniform field elements for the random shifts.
type Rand interface {
	Element(bound *big.Int) *big.Int
}

// CantorZassenhaus finds roots by isolating the linear part
// gcd(x^p - x, f) and splitting it with random shifts.
type CantorZassenhaus struct {
	ring        *poly.Ring
	rand        Rand
	maxAttempts int
}

var _ RootFinder = (*CantorZassenhaus)(nil)

// NewCantorZassenhaus returns a root finder over ring. maxAttempts <= 0
// selects DefaultMaxAttempts.
func NewCantorZassenhaus(ring *poly.Ring, rand Rand, maxAttempts int) *CantorZassenhaus {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CantorZassenhaus{ring: ring, rand: rand, maxAttempts: maxAttempts}
}

// SplitsCompletely implements RootFinder.
func (cz *CantorZassenhaus) SplitsCompletely(f poly.Poly) (bool, error) {
	return splitsCompletely(cz, f)
}

// RootsWithMultiplicity implements RootFinder.
func (cz *CantorZassenhaus) RootsWithMultiplicity(f poly.Poly) ([]Root, error) {
	if f.Degree() < 1 {
		return nil, nil
	}
	g, err := cz.linearPart(f)
	if err != nil {
		return nil, err
	}
	distinct, err := cz.split(g)
	if err != nil {
		return nil, err
	}
	if len(distinct) != g.Degree() {
		return nil, fmt.Errorf("%w: %d roots from a degree %d product", ErrMalformedFactor, len(distinct), g.Degree())
	}
	return multiplicities(cz.ring, f, distinct)
}

// linearPart returns the monic product of the distinct linear factors of f,
// gcd(x^p - x, f).
func (cz *CantorZassenhaus) linearPart(f poly.Poly) (poly.Poly, error) {
	r := cz.ring
	xp, err := r.PowMod(r.X(), r.Field().Modulus(), f)
	if err != nil {
		return poly.Poly{}, err
	}
	return r.Gcd(f, r.Sub(xp, r.X()))
}

// split returns the roots of a monic squarefree product of linear factors.
func (cz *CantorZassenhaus) split(g poly.Poly) ([]*big.Int, error) {
	switch {
	case g.Degree() < 1:
		return nil, nil
	case g.Degree() == 1:
		return []*big.Int{cz.ring.Field().Neg(g.Coeff(0))}, nil
	case cz.ring.Field().IsCharacteristicTwo():
		return cz.evaluateAll(g), nil
	}

	r := cz.ring
	f := r.Field()
	p := f.Modulus()
	half := f.HalfOrder()
	one := r.Constant(big.NewInt(1))

	for attempt := 0; attempt < cz.maxAttempts; attempt++ {
		shift := r.New([]*big.Int{cz.rand.Element(p), big.NewInt(1)})
		t, err := r.PowMod(shift, half, g)
		if err != nil {
			return nil, err
		}
		d, err := r.Gcd(g, r.Sub(t, one))
		if err != nil {
			return nil, err
		}
		if d.Degree() < 1 || d.Degree() >= g.Degree() {
			continue
		}
		q, rem, err := r.DivMod(g, d)
		if err != nil {
			return nil, err
		}
		if !rem.IsZero() {
			return nil, fmt.Errorf("%w: split factor does not divide", ErrMalformedFactor)
		}
		left, err := cz.split(d)
		if err != nil {
			return nil, err
		}
		right, err := cz.split(q)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}
	return nil, fmt.Errorf("%w after %d attempts on degree %d", ErrSplitFailed, cz.maxAttempts, g.Degree())
}

// evaluateAll finds roots in F_2, where (p-1)/2 = 0 makes the shifted power
// constant and splitting degenerates.
func (cz *CantorZassenhaus) evaluateAll(g poly.Poly) []*big.Int {
	var roots []*big.Int
	for _, v := range []int64{0, 1} {
		x := big.NewInt(v)
		if cz.ring.Eval(g, x).Sign() == 0 {
			roots = append(roots, x)
		}
	}
	return roots
}
