package powersum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/coinbase/cb-powersum-go/internal/factor"
	"github.com/coinbase/cb-powersum-go/internal/newton"
	"github.com/coinbase/cb-powersum-go/internal/poly"
	"github.com/coinbase/cb-powersum-go/internal/splitrng"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/logging"
)

// Root is a distinct message of a solution and the number of peers that
// committed to it.
type Root struct {
	Message      string
	Multiplicity int
}

// Solver recovers message multisets from power sums. A Solver holds only
// immutable configuration and may be shared between goroutines; every call
// builds its own field context, polynomial and random source.
type Solver struct {
	cfg Config
	log logging.Logger

	// newFinder is replaced in tests to cross-check root finders.
	newFinder func(r *poly.Ring, rand factor.Rand, maxAttempts int) factor.RootFinder
}

// New returns a Solver for cfg.
func New(cfg Config) *Solver {
	return &Solver{
		cfg: cfg,
		log: cfg.logger().With("component", "powersum"),
		newFinder: func(r *poly.Ring, rand factor.Rand, maxAttempts int) factor.RootFinder {
			return factor.NewCantorZassenhaus(r, rand, maxAttempts)
		},
	}
}

// Solve solves the equation system
//
//	sum_{j=0}^{n-1} m_j^(i+1) = sums[i]   for 0 <= i < n
//
// over F_prime, with n = len(sums), and checks that myMessage is one of the
// m_j. All numbers are hexadecimal text. On success the n messages are
// returned as lowercase hexadecimal in ascending numerical order; repeated
// messages appear once per occurrence.
//
// The returned error wraps ErrInputError, ErrInvalidSolution or ErrInternal;
// use StatusOf to obtain the status code.
func Solve(ctx context.Context, prime, myMessage string, sums []string) ([]string, error) {
	return New(Config{}).Solve(ctx, prime, myMessage, sums)
}

// Solve is the method form of the package-level Solve.
func (s *Solver) Solve(ctx context.Context, prime, myMessage string, sums []string) (out []string, err error) {
	const op = "Solve"
	stage := StageValidate
	defer recoverInternal(op, &stage, &err)

	pr, err := s.validate(op, prime, &myMessage, sums)
	if err != nil {
		return nil, err
	}
	return s.solve(ctx, op, &stage, pr)
}

// Roots returns the distinct messages described by the power sums, in
// ascending order, with their multiplicities. Unlike Solve it does not check
// membership of an own message, which suits observers of a round.
func (s *Solver) Roots(ctx context.Context, prime string, sums []string) (out []Root, err error) {
	const op = "Roots"
	stage := StageValidate
	defer recoverInternal(op, &stage, &err)

	pr, err := s.validate(op, prime, nil, sums)
	if err != nil {
		return nil, err
	}
	roots, err := s.factor(ctx, op, &stage, pr)
	if err != nil {
		return nil, err
	}

	stage = StageAssemble
	out = make([]Root, len(roots))
	for i, r := range roots {
		out[i] = Root{Message: pr.field.Text(r.Value), Multiplicity: r.Multiplicity}
	}
	return out, nil
}

// Collisions returns the roots that more than one peer committed to.
func Collisions(roots []Root) []Root {
	var out []Root
	for _, r := range roots {
		if r.Multiplicity > 1 {
			out = append(out, r)
		}
	}
	return out
}

// problem is a validated solve request.
type problem struct {
	field *field.Field
	mine  *big.Int // nil when no membership check is requested
	sums  []*big.Int
}

func (p *problem) n() int {
	return len(p.sums)
}

// validate checks the arguments before any arithmetic. mine is nil when the
// caller does not claim a message.
func (s *Solver) validate(op, prime string, mine *string, sums []string) (*problem, error) {
	fail := func(err error) (*problem, error) {
		return nil, newError(op, StageValidate, ErrInputError, err)
	}

	n := len(sums)
	if n < 2 {
		return fail(errTooFewPeers)
	}

	f, err := field.Parse(prime)
	if err != nil {
		return fail(err)
	}
	if s.cfg.VerifyPrime && !f.ProbablyPrime() {
		return fail(errNotPrime)
	}
	if big.NewInt(int64(n)).Cmp(f.Modulus()) > 0 {
		return fail(fmt.Errorf("%w: n=%d", errTooManyPeers, n))
	}

	pr := &problem{field: f, sums: make([]*big.Int, n)}
	if mine != nil {
		if pr.mine, err = f.ParseElement(*mine); err != nil {
			return fail(fmt.Errorf("own message: %w", err))
		}
	}
	for i, text := range sums {
		if pr.sums[i], err = f.ParseElement(text); err != nil {
			return fail(fmt.Errorf("power sum %d: %w", i, err))
		}
	}
	return pr, nil
}

// solve runs the stages after validation.
func (s *Solver) solve(ctx context.Context, op string, stage *Stage, pr *problem) ([]string, error) {
	roots, err := s.factor(ctx, op, stage, pr)
	if err != nil {
		return nil, err
	}

	*stage = StageAssemble
	msgs, err := assemble(pr, roots)
	if err != nil {
		return nil, newError(op, StageAssemble, ErrInvalidSolution, err)
	}
	s.log.Debug(ctx, "solution assembled", "stage", StageAssemble, "n", pr.n(), logging.Redacted("my_message"))
	return msgs, nil
}

// factor converts the power sums to the symmetric polynomial and extracts its
// roots. It fails with ErrInvalidSolution unless the polynomial splits
// completely.
func (s *Solver) factor(ctx context.Context, op string, stage *Stage, pr *problem) ([]factor.Root, error) {
	f := pr.field
	n := pr.n()
	s.log.Debug(ctx, "input validated", "stage", StageValidate, "n", n, "modulus_bits", f.BitLen())

	*stage = StageNewton
	e, err := newton.Elementary(f, pr.sums)
	if err != nil {
		return nil, remapError(op, StageNewton, err)
	}
	s.log.Debug(ctx, "symmetric values computed", "stage", StageNewton, "n", n)

	*stage = StageFactor
	ring := poly.NewRing(f)
	src, err := splitrng.New(s.seed(pr))
	if err != nil {
		return nil, remapError(op, StageFactor, err)
	}
	finder := s.newFinder(ring, src, s.cfg.maxSplitAttempts())
	roots, err := finder.RootsWithMultiplicity(ring.FromElementary(e))
	if err != nil {
		return nil, remapError(op, StageFactor, err)
	}
	total := factor.TotalMultiplicity(roots)
	s.log.Debug(ctx, "polynomial factored", "stage", StageFactor, "distinct_roots", len(roots), "total_multiplicity", total)
	if total != n {
		return nil, newError(op, StageFactor, ErrInvalidSolution, fmt.Errorf("%w: %d of %d roots in the field", errIncomplete, total, n))
	}
	return roots, nil
}

// seed returns the configured seed or one derived from the problem.
func (s *Solver) seed(pr *problem) []byte {
	if s.cfg.Seed != nil {
		return s.cfg.Seed
	}
	parts := make([][]byte, 0, pr.n()+1)
	parts = append(parts, pr.field.Modulus().Bytes())
	for _, v := range pr.sums {
		parts = append(parts, v.Bytes())
	}
	return splitrng.DeriveSeed(parts...)
}

// assemble flattens the roots, checks membership of the own message and
// encodes the sorted solution.
func assemble(pr *problem, roots []factor.Root) ([]string, error) {
	values := make([]*big.Int, 0, pr.n())
	for _, r := range roots {
		for i := 0; i < r.Multiplicity; i++ {
			values = append(values, r.Value)
		}
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].Cmp(values[j]) < 0 })

	if pr.mine != nil {
		remaining := 1
		for _, v := range values {
			if remaining > 0 && v.Cmp(pr.mine) == 0 {
				remaining--
			}
		}
		if remaining > 0 {
			return nil, errNotMember
		}
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = pr.field.Text(v)
	}
	return out, nil
}

// recoverInternal turns a panic in any stage into ErrInternal so that no panic
// crosses the package boundary.
func recoverInternal(op string, stage *Stage, err *error) {
	if r := recover(); r != nil {
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		*err = newError(op, *stage, ErrInternal, errors.Join(errors.New("recovered panic"), cause))
	}
}
