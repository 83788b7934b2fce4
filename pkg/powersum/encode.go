package powersum

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-powersum-go/internal/newton"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
)

// PowerSums returns the first n power sums sum_j m_j^k, k = 1..n, of the
// given messages over F_prime as hexadecimal text. A peer calls it with its
// own message alone to build its contribution to a round; the sums of all
// contributions are what Solve consumes.
func PowerSums(prime string, messages []string, n int) ([]string, error) {
	const op = "PowerSums"
	fail := func(err error) ([]string, error) {
		return nil, newError(op, StageValidate, ErrInputError, err)
	}

	if n < 1 {
		return fail(errors.New("n must be positive"))
	}
	f, err := field.Parse(prime)
	if err != nil {
		return fail(err)
	}

	values := make([]*big.Int, len(messages))
	for i, m := range messages {
		if values[i], err = f.ParseElement(m); err != nil {
			return fail(fmt.Errorf("message %d: %w", i, err))
		}
	}

	sums := newton.PowerSums(f, values, n)
	out := make([]string, n)
	for i, v := range sums {
		out[i] = f.Text(v)
	}
	return out, nil
}

// AddSums adds power-sum vectors element-wise over F_prime. It aggregates
// the contributions of the peers of a round.
func AddSums(prime string, vectors ...[]string) ([]string, error) {
	const op = "AddSums"
	fail := func(err error) ([]string, error) {
		return nil, newError(op, StageValidate, ErrInputError, err)
	}

	f, err := field.Parse(prime)
	if err != nil {
		return fail(err)
	}
	if len(vectors) == 0 {
		return fail(errors.New("no vectors"))
	}

	n := len(vectors[0])
	acc := make([]*big.Int, n)
	for i := range acc {
		acc[i] = f.Zero()
	}
	for j, vec := range vectors {
		if len(vec) != n {
			return fail(fmt.Errorf("vector %d has length %d, want %d", j, len(vec), n))
		}
		for i, text := range vec {
			v, err := f.ParseElement(text)
			if err != nil {
				return fail(fmt.Errorf("vector %d element %d: %w", j, i, err))
			}
			acc[i] = f.Add(acc[i], v)
		}
	}

	out := make([]string, n)
	for i, v := range acc {
		out[i] = f.Text(v)
	}
	return out, nil
}
