package powersum

import (
	"github.com/coinbase/cb-powersum-go/internal/factor"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/logging"
)

// DefaultMaxSplitAttempts bounds the random shifts tried per equal-degree
// split when Config.MaxSplitAttempts is zero.
const DefaultMaxSplitAttempts = factor.DefaultMaxAttempts

// Config expresses the knobs of a Solver. The zero value is ready to use.
type Config struct {
	// Seed keys the randomness of equal-degree splitting. Leaving it nil
	// derives a seed from the modulus and the power sums, which keeps every
	// call reproducible. Tests set it to pin a particular split sequence.
	Seed []byte

	// MaxSplitAttempts bounds the random shifts per split. Exhausting the
	// bound is reported as an internal error.
	MaxSplitAttempts int

	// VerifyPrime rejects composite moduli with an input error. The modulus
	// is not checked by default.
	VerifyPrime bool

	// Logger receives debug records for each pipeline stage. Nil binds to
	// slog.Default().
	Logger logging.Logger
}

func (c Config) maxSplitAttempts() int {
	if c.MaxSplitAttempts <= 0 {
		return DefaultMaxSplitAttempts
	}
	return c.MaxSplitAttempts
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(nil)
	}
	return c.Logger
}
