package powersum

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-powersum-go/internal/factor"
	"github.com/coinbase/cb-powersum-go/internal/poly"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/logging"
)

type constRand struct{ v int64 }

func (c constRand) Element(*big.Int) *big.Int { return big.NewInt(c.v) }

type panickingFinder struct{}

func (panickingFinder) SplitsCompletely(poly.Poly) (bool, error) {
	panic("splits")
}

func (panickingFinder) RootsWithMultiplicity(poly.Poly) ([]factor.Root, error) {
	panic("roots")
}

func TestSolveWithExhaustiveFinder(t *testing.T) {
	s := New(Config{})
	s.newFinder = func(r *poly.Ring, _ factor.Rand, _ int) factor.RootFinder {
		return factor.NewExhaustive(r, 0)
	}

	sums, err := PowerSums("65", []string{"5", "60", "5", "0"}, 4)
	require.NoError(t, err)

	got, err := s.Solve(context.Background(), "65", "60", sums)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5", "5", "60"}, got)
}

func TestSolveSplitFailureIsInternal(t *testing.T) {
	// 1 and 2 are both squares mod 7, so the shift 0 never separates them.
	s := New(Config{MaxSplitAttempts: 3})
	s.newFinder = func(r *poly.Ring, _ factor.Rand, maxAttempts int) factor.RootFinder {
		assert.Equal(t, 3, maxAttempts)
		return factor.NewCantorZassenhaus(r, constRand{0}, maxAttempts)
	}

	_, err := s.Solve(context.Background(), "7", "1", []string{"3", "5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, factor.ErrSplitFailed)
	assert.Equal(t, StatusInternalError, StatusOf(err))
}

func TestSolveRecoversPanic(t *testing.T) {
	s := New(Config{})
	s.newFinder = func(*poly.Ring, factor.Rand, int) factor.RootFinder {
		return panickingFinder{}
	}

	var err error
	require.NotPanics(t, func() {
		_, err = s.Solve(context.Background(), "7", "1", []string{"4", "3"})
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "recovered panic")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StageFactor, perr.Stage)

	out := [][]byte{make([]byte, 2), make([]byte, 2)}
	assert.Equal(t, StatusInternalError, s.SolveBuffers(context.Background(), out, "7", "1", []string{"4", "3"}, 2))
	assert.Equal(t, [][]byte{{0, 0}, {0, 0}}, out)
}

func TestSolveDoesNotLogOwnMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s := New(Config{Logger: logger})

	prime, err := PresetPrime(PresetP127)
	require.NoError(t, err)

	const mine = "c0ffee"
	sums, err := PowerSums(prime, []string{mine, "1", "2"}, 3)
	require.NoError(t, err)

	msgs, err := s.Solve(context.Background(), prime, mine, sums)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", mine}, msgs)

	logs := buf.String()
	assert.Contains(t, logs, "polynomial factored")
	assert.Contains(t, logs, "my_message="+logging.Placeholder())
	assert.NotContains(t, logs, mine)
}

func TestSeedDerivation(t *testing.T) {
	s := New(Config{})
	a, err := s.validate("test", "7", nil, []string{"4", "3"})
	require.NoError(t, err)
	b, err := s.validate("test", "7", nil, []string{"3", "4"})
	require.NoError(t, err)

	assert.Equal(t, s.seed(a), s.seed(a))
	assert.NotEqual(t, s.seed(a), s.seed(b))

	fixed := New(Config{Seed: []byte("fixed")})
	assert.Equal(t, []byte("fixed"), fixed.seed(a))
}

func TestRemapError(t *testing.T) {
	assert.NoError(t, remapError("op", StageNewton, nil))

	inner := newError("inner", StageValidate, ErrInputError, errShortBuffer)
	assert.Same(t, inner, remapError("outer", StageFactor, inner))

	err := remapError("op", StageFactor, factor.ErrMalformedFactor)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, factor.ErrMalformedFactor)
}
