package powersum

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
)

var (
	// ErrInputError indicates that the caller violated the input contract:
	// bad counts, unparsable numbers or undersized buffers.
	ErrInputError = errors.New("powersum: input error")

	// ErrInvalidSolution indicates well-formed inputs that are inconsistent:
	// the power sums match no multiset of n field elements, or the caller's
	// message is not part of the solution. Protocols treat this as tampering.
	ErrInvalidSolution = errors.New("powersum: invalid solution")

	// ErrInternal indicates an arithmetic or factorization fault that is not
	// attributable to the input data.
	ErrInternal = errors.New("powersum: internal error")
)

var (
	errTooFewPeers   = errors.New("at least 2 power sums are required")
	errTooManyPeers  = errors.New("peer count exceeds the field size")
	errNotPrime      = errors.New("modulus is not prime")
	errCountMismatch = errors.New("buffer and power sum counts do not match n")
	errShortBuffer   = errors.New("output buffer too small")
	errIncomplete    = errors.New("power sums do not describe a complete solution")
	errNotMember     = errors.New("own message is not in the solution")
)

// Stage names a step of the solve pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StageNewton   Stage = "newton"
	StageFactor   Stage = "factor"
	StageAssemble Stage = "assemble"
)

// Error wraps an underlying error with the operation and pipeline stage that
// failed. Kind is one of ErrInputError, ErrInvalidSolution or ErrInternal.
type Error struct {
	Op    string // Operation that failed
	Stage Stage  // Pipeline stage
	Kind  error  // Error class
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("powersum.%s: %s: %v: %v", e.Op, e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the error class and the underlying cause to errors.Is
// and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(op string, stage Stage, kind, err error) error {
	return &Error{Op: op, Stage: stage, Kind: kind, Err: err}
}

// remapError classifies an error from the arithmetic packages.
func remapError(op string, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, field.ErrMalformed),
		errors.Is(err, field.ErrOutOfRange),
		errors.Is(err, field.ErrInvalidModulus):
		return newError(op, stage, ErrInputError, err)
	default:
		// newton.ErrNotInvertible, factor.ErrSplitFailed,
		// factor.ErrMalformedFactor and poly.ErrDivisionByZero all land here.
		return newError(op, stage, ErrInternal, err)
	}
}

// Status is the outcome of a solve in the form of the C-style status codes
// used at protocol boundaries.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidSolution
	StatusInputError
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidSolution:
		return "invalid solution"
	case StatusInputError:
		return "input error"
	case StatusInternalError:
		return "internal error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// StatusOf maps an error returned by this package onto a Status. Errors that
// do not belong to a known class are reported as internal errors.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrInvalidSolution):
		return StatusInvalidSolution
	case errors.Is(err, ErrInputError):
		return StatusInputError
	default:
		return StatusInternalError
	}
}
