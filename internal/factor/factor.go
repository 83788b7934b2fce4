// Package factor extracts the roots of polynomials over a prime field.
//
// The RootFinder interface hides the factorization algorithm. The default
// implementation is Cantor-Zassenhaus restricted to linear factors; Exhaustive
// evaluates every field element and is only practical for tiny fields.
package factor

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/coinbase/cb-powersum-go/internal/poly"
)

var (
	// ErrSplitFailed is returned when equal-degree splitting does not separate
	// a product of linear factors within the attempt bound.
	ErrSplitFailed = errors.New("factor: equal-degree splitting did not converge")

	// ErrMalformedFactor is returned when a factor produced by the algorithm
	// is inconsistent with the input polynomial.
	ErrMalformedFactor = errors.New("factor: malformed factorization")

	// ErrFieldTooLarge is returned by Exhaustive when the field exceeds its limit.
	ErrFieldTooLarge = errors.New("factor: field too large for exhaustive search")
)

// Root is a root of a polynomial together with its multiplicity.
type Root struct {
	Value        *big.Int
	Multiplicity int
}

// RootFinder finds the roots in F_p of polynomials over F_p.
type RootFinder interface {
	// SplitsCompletely reports whether f is a product of linear factors.
	SplitsCompletely(f poly.Poly) (bool, error)
	// RootsWithMultiplicity returns every distinct root of f in ascending
	// order with its multiplicity. The multiplicities sum to deg(f) exactly
	// when f splits completely.
	RootsWithMultiplicity(f poly.Poly) ([]Root, error)
}

// TotalMultiplicity returns the sum of the multiplicities.
func TotalMultiplicity(roots []Root) int {
	total := 0
	for _, r := range roots {
		total += r.Multiplicity
	}
	return total
}

func splitsCompletely(rf RootFinder, f poly.Poly) (bool, error) {
	if f.IsZero() {
		return false, nil
	}
	roots, err := rf.RootsWithMultiplicity(f)
	if err != nil {
		return false, err
	}
	return TotalMultiplicity(roots) == f.Degree(), nil
}

// multiplicities divides f by (x - r) for every distinct root r as long as
// the division is exact.
func multiplicities(r *poly.Ring, f poly.Poly, distinct []*big.Int) ([]Root, error) {
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].Cmp(distinct[j]) < 0 })

	roots := make([]Root, 0, len(distinct))
	rest := f
	for i, v := range distinct {
		if i > 0 && distinct[i-1].Cmp(v) == 0 {
			return nil, fmt.Errorf("%w: root %s reported twice", ErrMalformedFactor, v)
		}
		m := 0
		for rest.Degree() >= 1 {
			q, rem := r.DivLinear(rest, v)
			if rem.Sign() != 0 {
				break
			}
			rest = q
			m++
		}
		if m == 0 {
			return nil, fmt.Errorf("%w: %s is not a root", ErrMalformedFactor, v)
		}
		roots = append(roots, Root{Value: v, Multiplicity: m})
	}
	return roots, nil
}
