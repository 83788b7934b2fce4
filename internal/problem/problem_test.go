package problem

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-powersum-go/pkg/powersum"
)

func TestDecodeYAML(t *testing.T) {
	doc := `
field: p127
mine: 27d9803748f6be6875282823a6ac5d5a
sums:
  - 384ae5480f49d67c51b83df1fff94e90
  - 6e9de51c5deca89883084cd992088c11
seed: 0a0b
max_split_attempts: 8
`
	f, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "p127", f.Field)
	assert.Len(t, f.Sums, 2)

	mod, err := f.Modulus()
	require.NoError(t, err)
	want, err := powersum.PresetPrime(powersum.PresetP127)
	require.NoError(t, err)
	assert.Equal(t, want, mod)

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, cfg.Seed)
	assert.Equal(t, 8, cfg.MaxSplitAttempts)
}

func TestDecodeJSON(t *testing.T) {
	doc := `{"prime": "7", "mine": "1", "sums": ["4", "3"]}`
	f, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	mod, err := f.Modulus()
	require.NoError(t, err)
	assert.Equal(t, "7", mod)
	assert.Equal(t, []string{"4", "3"}, f.Sums)

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Nil(t, cfg.Seed)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty problem document"},
		{"unknown key", "prime: \"7\"\nsums: [\"1\"]\nextra: 1\n", "unmarshal YAML"},
		{"no modulus", "sums: [\"1\"]\n", "one of field or prime"},
		{"both moduli", "field: p61\nprime: \"7\"\nsums: [\"1\"]\n", "mutually exclusive"},
		{"unknown preset", "field: p13\nsums: [\"1\"]\n", "unknown preset"},
		{"no values", "prime: \"7\"\n", "one of sums or messages"},
		{"negative attempts", "prime: \"7\"\nsums: [\"1\"]\nmax_split_attempts: -1\n", "must not be negative"},
		{"bad seed", "prime: \"7\"\nsums: [\"1\"]\nseed: xyz\n", "seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := &File{Prime: "7", Sums: []string{"4", "3"}}

	var buf bytes.Buffer
	require.NoError(t, in.Encode(&buf))
	assert.NotContains(t, buf.String(), "mine")

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "round.yaml"), []byte("prime: \"7\"\nmine: \"1\"\nsums: [\"4\", \"3\"]\n"), 0o600))

	f, err := Load("round.yaml")
	require.NoError(t, err)
	assert.Equal(t, "1", f.Mine)

	_, err = Load("missing.yaml")
	assert.ErrorContains(t, err, "read file")

	_, err = Load("../round.yaml")
	assert.ErrorContains(t, err, "escapes working directory")
}

func TestSecurePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	abs, err := SecurePath("a/b/../c.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a", "c.yaml"), abs)

	_, err = SecurePath("../../etc/passwd")
	assert.Error(t, err)

	_, err = SecurePath("..")
	assert.Error(t, err)
}
