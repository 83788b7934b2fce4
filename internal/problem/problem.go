// Package problem reads and writes solve requests stored as YAML files.
// JSON documents are accepted as well since they are valid YAML.
package problem

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coinbase/cb-powersum-go/pkg/powersum"
)

// File is one solve request. The modulus is given either by preset name
// (Field) or as hexadecimal text (Prime).
//
//	field: p127
//	mine: 27d9803748f6be6875282823a6ac5d5a
//	sums:
//	  - 384ae5480f49d67c51b83df1fff94e90
//	  - 6e9de51c5deca89883084cd992088c11
type File struct {
	Field            string   `yaml:"field,omitempty"`
	Prime            string   `yaml:"prime,omitempty"`
	Mine             string   `yaml:"mine,omitempty"`
	Sums             []string `yaml:"sums,omitempty"`
	Messages         []string `yaml:"messages,omitempty"`
	Seed             string   `yaml:"seed,omitempty"`
	MaxSplitAttempts int      `yaml:"max_split_attempts,omitempty"`
}

// Load reads and validates the problem file at path. The path must stay
// inside the working directory.
func Load(path string) (*File, error) {
	absPath, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("secure path: %w", err)
	}
	data, err := os.ReadFile(absPath) // #nosec G304 -- absPath validated by SecurePath
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses and validates a problem document. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty problem document")
		}
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode writes f as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}

// Validate performs structural checks. Numeric ranges are left to the
// solver, which reports them as input errors.
func (f *File) Validate() error {
	if f == nil {
		return errors.New("nil problem")
	}
	switch {
	case f.Field == "" && f.Prime == "":
		return errors.New("one of field or prime is required")
	case f.Field != "" && f.Prime != "":
		return errors.New("field and prime are mutually exclusive")
	}
	if f.Field != "" {
		if _, err := powersum.PresetPrime(f.Field); err != nil {
			return fmt.Errorf("field: unknown preset %q (known: %s)", f.Field, strings.Join(powersum.Presets(), ", "))
		}
	}
	if len(f.Sums) == 0 && len(f.Messages) == 0 {
		return errors.New("one of sums or messages is required")
	}
	if f.MaxSplitAttempts < 0 {
		return fmt.Errorf("max_split_attempts: must not be negative, got %d", f.MaxSplitAttempts)
	}
	if _, err := f.SeedBytes(); err != nil {
		return err
	}
	return nil
}

// Modulus returns the hexadecimal modulus, resolving a preset name.
func (f *File) Modulus() (string, error) {
	if f.Field != "" {
		return powersum.PresetPrime(f.Field)
	}
	return f.Prime, nil
}

// SeedBytes decodes the optional hexadecimal seed. It returns nil when no
// seed is set.
func (f *File) SeedBytes() ([]byte, error) {
	if f.Seed == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(f.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return seed, nil
}

// Config returns the solver configuration the file asks for.
func (f *File) Config() (powersum.Config, error) {
	seed, err := f.SeedBytes()
	if err != nil {
		return powersum.Config{}, err
	}
	return powersum.Config{
		Seed:             seed,
		MaxSplitAttempts: f.MaxSplitAttempts,
	}, nil
}

// SecurePath validates that a file path doesn't escape the working directory.
func SecurePath(path string) (string, error) {
	clean := filepath.Clean(path)
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}
