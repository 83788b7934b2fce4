package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

// solverPackages are the packages that handle message values.
var solverPackages = []string{
	"github.com/coinbase/cb-powersum-go/pkg/powersum",
	"github.com/coinbase/cb-powersum-go/pkg/powersum/field",
	"github.com/coinbase/cb-powersum-go/internal/factor",
	"github.com/coinbase/cb-powersum-go/internal/newton",
	"github.com/coinbase/cb-powersum-go/internal/poly",
	"github.com/coinbase/cb-powersum-go/internal/splitrng",
}

func loadSolverPackages(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()

	cfg := &packages.Config{Mode: mode | packages.NeedFiles | packages.NeedName}
	pkgs, err := packages.Load(cfg, solverPackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	if len(pkgs) != len(solverPackages) {
		t.Fatalf("loaded %d packages, want %d", len(pkgs), len(solverPackages))
	}
	return pkgs
}
