// Package powersum recovers the multiset of messages behind a vector of power
// sums over a prime field and checks that a caller's own message is part of it.
//
// In a DC-net style mixing round each of n peers contributes the vector
// (m, m^2, ..., m^n) of its message m, blinded so that only the aggregate is
// revealed. The aggregate is the vector of power sums
//
//	sums[i] = sum_j m_j^(i+1)   (mod p),   0 <= i < n
//
// from which every peer reconstructs all n messages without learning who sent
// which, and confirms that its own message survived the round.
//
// # Pipeline
//
// A solve runs four stages, strictly in order:
//
//  1. validate: parse the modulus, the own message and the sums (hexadecimal
//     text) and check 2 <= n <= p.
//  2. newton: convert the power sums to elementary symmetric values with
//     Newton's identities.
//  3. factor: build x^n - e1*x^(n-1) + ... + (-1)^n*en and extract all of its
//     roots with multiplicity (Cantor-Zassenhaus).
//  4. assemble: check that the multiplicities add up to n and that the own
//     message is a root, then sort and encode.
//
// # Usage
//
//	msgs, err := powersum.Solve(ctx, "7", "1", []string{"4", "3"})
//	// msgs == []string{"1", "3"}
//
//	switch powersum.StatusOf(err) {
//	case powersum.StatusInvalidSolution:
//	    // sums were tampered with, or our message was dropped
//	case powersum.StatusInputError:
//	    // malformed arguments
//	}
//
// # Errors
//
// Every error wraps exactly one of ErrInputError, ErrInvalidSolution or
// ErrInternal inside an *Error that records the operation and stage. No panic
// crosses the package boundary.
//
// # Concurrency
//
// Solves are pure and synchronous. A Solver may be used from many goroutines;
// each call owns its field context, polynomials and random source. The
// randomness of root extraction is keyed by Config.Seed, or by a hash of the
// inputs when no seed is set, so results are reproducible.
package powersum
