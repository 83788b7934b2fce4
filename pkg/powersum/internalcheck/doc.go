// Package internalcheck holds source policy tests for the solver packages.
//
// The tests load the solver packages with golang.org/x/tools/go/packages
// and fail on constructs that would leak a peer's message or make a solve
// nondeterministic. The package exports nothing.
package internalcheck
