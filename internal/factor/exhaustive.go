package factor

import (
	"math/big"

	"github.com/coinbase/cb-powersum-go/internal/poly"
)

// DefaultExhaustiveLimit is the largest modulus Exhaustive accepts by default.
const DefaultExhaustiveLimit = 1 << 16

// Exhaustive finds roots by evaluating f at every element of the field.
type Exhaustive struct {
	ring  *poly.Ring
	limit *big.Int
}

var _ RootFinder = (*Exhaustive)(nil)

// NewExhaustive returns a brute-force root finder. limit <= 0 selects
// DefaultExhaustiveLimit.
func NewExhaustive(ring *poly.Ring, limit int64) *Exhaustive {
	if limit <= 0 {
		limit = DefaultExhaustiveLimit
	}
	return &Exhaustive{ring: ring, limit: big.NewInt(limit)}
}

// SplitsCompletely implements RootFinder.
func (e *Exhaustive) SplitsCompletely(f poly.Poly) (bool, error) {
	return splitsCompletely(e, f)
}

// RootsWithMultiplicity implements RootFinder.
func (e *Exhaustive) RootsWithMultiplicity(f poly.Poly) ([]Root, error) {
	p := e.ring.Field().Modulus()
	if p.Cmp(e.limit) > 0 {
		return nil, ErrFieldTooLarge
	}
	if f.Degree() < 1 {
		return nil, nil
	}
	var distinct []*big.Int
	for x := int64(0); x < p.Int64(); x++ {
		v := big.NewInt(x)
		if e.ring.Eval(f, v).Sign() == 0 {
			distinct = append(distinct, v)
		}
	}
	return multiplicities(e.ring, f, distinct)
}
