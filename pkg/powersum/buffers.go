package powersum

import (
	"context"
	"fmt"

	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
)

// SolveBuffers is the buffer-oriented form of Solve for callers that
// pre-allocate their output, such as foreign-function boundaries.
//
// out must hold n buffers, each at least HexWidth(prime)+1 bytes long. On
// StatusSuccess out[i] holds the i-th message in ascending order as
// lowercase hexadecimal followed by a NUL byte. On any other status the
// buffers are left untouched.
func SolveBuffers(out [][]byte, prime, myMessage string, sums []string, n int) Status {
	return New(Config{}).SolveBuffers(context.Background(), out, prime, myMessage, sums, n)
}

// SolveBuffers is the method form of the package-level SolveBuffers.
func (s *Solver) SolveBuffers(ctx context.Context, out [][]byte, prime, myMessage string, sums []string, n int) Status {
	msgs, err := s.solveBuffers(ctx, out, prime, myMessage, sums, n)
	if err != nil {
		s.log.Debug(ctx, "solve failed", "status", StatusOf(err).String(), "error", err)
		return StatusOf(err)
	}
	for i, m := range msgs {
		copy(out[i], m)
		out[i][len(m)] = 0
	}
	return StatusSuccess
}

func (s *Solver) solveBuffers(ctx context.Context, out [][]byte, prime, myMessage string, sums []string, n int) (msgs []string, err error) {
	const op = "SolveBuffers"
	stage := StageValidate
	defer recoverInternal(op, &stage, &err)

	if n < 2 {
		return nil, newError(op, stage, ErrInputError, errTooFewPeers)
	}
	if len(out) != n || len(sums) != n {
		return nil, newError(op, stage, ErrInputError,
			fmt.Errorf("%w: n=%d, %d buffers, %d sums", errCountMismatch, n, len(out), len(sums)))
	}

	pr, err := s.validate(op, prime, &myMessage, sums)
	if err != nil {
		return nil, err
	}
	need := pr.field.HexWidth() + 1
	for i, buf := range out {
		if len(buf) < need {
			return nil, newError(op, stage, ErrInputError,
				fmt.Errorf("%w: buffer %d has %d bytes, need %d", errShortBuffer, i, len(buf), need))
		}
	}
	return s.solve(ctx, op, &stage, pr)
}

// HexWidth returns the number of hexadecimal digits of the modulus, the
// longest encoding of any field element. Output buffers for SolveBuffers need
// one more byte for the terminator.
func HexWidth(prime string) (int, error) {
	f, err := field.Parse(prime)
	if err != nil {
		return 0, remapError("HexWidth", StageValidate, err)
	}
	return f.HexWidth(), nil
}
