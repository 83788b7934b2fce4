// Package newton converts between power sums and elementary symmetric values
// over a prime field using Newton's identities.
package newton

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
)

// ErrNotInvertible is returned when some k <= n has no inverse mod p, which
// happens when n >= p.
var ErrNotInvertible = errors.New("newton: index is not invertible in the field")

// Elementary returns e_1..e_n for the power sums p_1..p_n using
//
//	e_k = (1/k) * sum_{i=1..k} (-1)^(i-1) * p_i * e_(k-i),  e_0 = 1.
//
// The power sums must be canonical field elements.
func Elementary(f *field.Field, sums []*big.Int) ([]*big.Int, error) {
	n := len(sums)
	e := make([]*big.Int, n+1)
	e[0] = f.One()

	for k := 1; k <= n; k++ {
		acc := f.Zero()
		for i := 1; i <= k; i++ {
			term := f.Mul(sums[i-1], e[k-i])
			if i%2 == 1 {
				acc = f.Add(acc, term)
			} else {
				acc = f.Sub(acc, term)
			}
		}
		inv, err := f.Inv(big.NewInt(int64(k)))
		if err != nil {
			return nil, fmt.Errorf("%w: k=%d", ErrNotInvertible, k)
		}
		e[k] = f.Mul(acc, inv)
	}
	return e[1:], nil
}

// PowerSums returns p_1..p_n with p_k = sum_j m_j^k. It is the forward
// direction of Elementary and is what each peer contributes to a round.
func PowerSums(f *field.Field, messages []*big.Int, n int) []*big.Int {
	sums := make([]*big.Int, n)
	for k := range sums {
		sums[k] = f.Zero()
	}
	for _, m := range messages {
		pow := f.One()
		for k := 0; k < n; k++ {
			pow = f.Mul(pow, m)
			sums[k] = f.Add(sums[k], pow)
		}
	}
	return sums
}
