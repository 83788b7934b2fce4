package powersum_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-powersum-go/pkg/powersum"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{
		powersum.PresetP127,
		powersum.PresetP61,
		powersum.PresetSecp256k1,
		powersum.PresetSecp256k1Order,
	}, powersum.Presets())

	for _, name := range powersum.Presets() {
		p, err := powersum.PresetModulus(name)
		require.NoError(t, err)
		assert.True(t, p.ProbablyPrime(20), name)
	}
}

func TestPresetValues(t *testing.T) {
	p, err := powersum.PresetPrime(powersum.PresetP61)
	require.NoError(t, err)
	assert.Equal(t, "1fffffffffffffff", p)

	p, err = powersum.PresetPrime(powersum.PresetSecp256k1)
	require.NoError(t, err)
	assert.Equal(t, "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", p)

	p, err = powersum.PresetPrime(powersum.PresetSecp256k1Order)
	require.NoError(t, err)
	assert.Equal(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", p)
}

func TestPresetModulusIsCopy(t *testing.T) {
	p, err := powersum.PresetModulus(powersum.PresetP127)
	require.NoError(t, err)
	p.SetInt64(7)

	again, err := powersum.PresetModulus(powersum.PresetP127)
	require.NoError(t, err)
	assert.Equal(t, 127, again.BitLen())
	assert.NotEqual(t, 0, again.Cmp(big.NewInt(7)))
}

func TestPresetUnknown(t *testing.T) {
	_, err := powersum.PresetPrime("p13")
	assert.ErrorIs(t, err, powersum.ErrInputError)
}
