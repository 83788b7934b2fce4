// Command powersum recovers the messages of a collision-resolution round
// from its aggregated power sums.
//
//	powersum solve -field p127 -mine 27d9... 384a... 6e9d... ...
//	powersum solve -problem round.yaml
//	powersum roots -prime 7 4 3
//	powersum sums -field p61 -n 3 a b c
//	powersum version
//
// The exit status is 0 on success, 1 when the sums describe no valid
// solution, 2 on input errors and 3 on internal errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/coinbase/cb-powersum-go/internal/problem"
	"github.com/coinbase/cb-powersum-go/pkg/powersum"
	"github.com/coinbase/cb-powersum-go/pkg/powersum/logging"
)

const (
	exitOK       = int(powersum.StatusSuccess)
	exitInvalid  = int(powersum.StatusInvalidSolution)
	exitInput    = int(powersum.StatusInputError)
	exitInternal = int(powersum.StatusInternalError)
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitInput
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "solve":
		return runSolve(ctx, rest, stdout, stderr)
	case "roots":
		return runRoots(ctx, rest, stdout, stderr)
	case "sums":
		return runSums(rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "powersum %s (%s)\n", powersum.LibraryVersion(), powersum.BuildCommit())
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return exitInput
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: powersum <solve|roots|sums|version> [flags] [values...]")
	fmt.Fprintf(w, "presets: %s\n", strings.Join(powersum.Presets(), ", "))
}

// commonFlags are shared by every subcommand that reads a problem.
type commonFlags struct {
	fs          *flag.FlagSet
	problemPath *string
	field       *string
	prime       *string
	seed        *string
	attempts    *int
	verbose     *bool
}

func newCommonFlags(name string, stderr io.Writer) *commonFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &commonFlags{
		fs:          fs,
		problemPath: fs.String("problem", "", "path to a YAML or JSON problem file"),
		field:       fs.String("field", "", "preset modulus name"),
		prime:       fs.String("prime", "", "modulus in hexadecimal"),
		seed:        fs.String("seed", "", "hexadecimal seed for root splitting"),
		attempts:    fs.Int("max-split-attempts", 0, "random shifts per split (0 selects the default)"),
		verbose:     fs.Bool("v", false, "log pipeline stages to stderr"),
	}
}

// load builds the problem from the problem file, if any, overridden by flags
// and positional values. values names the list the positional arguments fill.
func (c *commonFlags) load(args []string, values func(*problem.File) *[]string) (*problem.File, error) {
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}

	f := &problem.File{}
	if *c.problemPath != "" {
		loaded, err := problem.Load(*c.problemPath)
		if err != nil {
			return nil, fmt.Errorf("load problem: %w", err)
		}
		f = loaded
	}

	switch {
	case *c.field != "":
		f.Field, f.Prime = *c.field, ""
	case *c.prime != "":
		f.Field, f.Prime = "", *c.prime
	}
	if *c.seed != "" {
		f.Seed = *c.seed
	}
	if *c.attempts != 0 {
		f.MaxSplitAttempts = *c.attempts
	}
	if c.fs.NArg() > 0 {
		*values(f) = c.fs.Args()
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *commonFlags) logger(stderr io.Writer) logging.Logger {
	level := slog.LevelWarn
	if *c.verbose {
		level = slog.LevelDebug
	}
	return logging.New(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

func (c *commonFlags) solver(f *problem.File, stderr io.Writer) (*powersum.Solver, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	cfg.Logger = c.logger(stderr)
	return powersum.New(cfg), nil
}

func sumsOf(f *problem.File) *[]string { return &f.Sums }

func messagesOf(f *problem.File) *[]string { return &f.Messages }

func runSolve(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommonFlags("solve", stderr)
	mine := c.fs.String("mine", "", "own message in hexadecimal")

	f, err := c.load(args, sumsOf)
	if err != nil {
		return inputError(stderr, err)
	}
	if *mine != "" {
		f.Mine = *mine
	}
	if f.Mine == "" {
		return inputError(stderr, errors.New("own message is required (-mine or mine:)"))
	}

	s, err := c.solver(f, stderr)
	if err != nil {
		return inputError(stderr, err)
	}
	prime, err := f.Modulus()
	if err != nil {
		return inputError(stderr, err)
	}

	msgs, err := s.Solve(ctx, prime, f.Mine, f.Sums)
	if err != nil {
		return failure(stderr, err)
	}
	for _, m := range msgs {
		fmt.Fprintln(stdout, m)
	}
	return exitOK
}

func runRoots(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommonFlags("roots", stderr)
	collisions := c.fs.Bool("collisions", false, "only print messages sent by more than one peer")

	f, err := c.load(args, sumsOf)
	if err != nil {
		return inputError(stderr, err)
	}
	s, err := c.solver(f, stderr)
	if err != nil {
		return inputError(stderr, err)
	}
	prime, err := f.Modulus()
	if err != nil {
		return inputError(stderr, err)
	}

	roots, err := s.Roots(ctx, prime, f.Sums)
	if err != nil {
		return failure(stderr, err)
	}
	if *collisions {
		roots = powersum.Collisions(roots)
	}
	for _, r := range roots {
		fmt.Fprintf(stdout, "%s %d\n", r.Message, r.Multiplicity)
	}
	return exitOK
}

func runSums(args []string, stdout, stderr io.Writer) int {
	c := newCommonFlags("sums", stderr)
	n := c.fs.Int("n", 0, "number of power sums (defaults to the number of messages)")

	f, err := c.load(args, messagesOf)
	if err != nil {
		return inputError(stderr, err)
	}
	prime, err := f.Modulus()
	if err != nil {
		return inputError(stderr, err)
	}

	count := *n
	if count == 0 {
		count = len(f.Messages)
	}
	sums, err := powersum.PowerSums(prime, f.Messages, count)
	if err != nil {
		return failure(stderr, err)
	}

	out := &problem.File{Field: f.Field, Prime: f.Prime, Sums: sums}
	if err := out.Encode(stdout); err != nil {
		fmt.Fprintf(stderr, "write: %v\n", err)
		return exitInternal
	}
	return exitOK
}

func inputError(stderr io.Writer, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitInput
}

func failure(stderr io.Writer, err error) int {
	status := powersum.StatusOf(err)
	fmt.Fprintf(stderr, "%s: %v\n", status, err)
	switch status {
	case powersum.StatusInvalidSolution:
		return exitInvalid
	case powersum.StatusInputError:
		return exitInput
	default:
		return exitInternal
	}
}
