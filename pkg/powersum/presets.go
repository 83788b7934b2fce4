package powersum

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Names of the built-in moduli.
const (
	PresetP61            = "p61"
	PresetP127           = "p127"
	PresetSecp256k1      = "secp256k1"
	PresetSecp256k1Order = "secp256k1-order"
)

func mersenne(bits uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), bits)
	return m.Sub(m, big.NewInt(1))
}

var presets = map[string]*big.Int{
	PresetP61:            mersenne(61),
	PresetP127:           mersenne(127),
	PresetSecp256k1:      btcec.S256().P,
	PresetSecp256k1Order: btcec.S256().N,
}

// PresetModulus returns a copy of the named modulus.
func PresetModulus(name string) (*big.Int, error) {
	p, ok := presets[name]
	if !ok {
		return nil, newError("PresetModulus", StageValidate, ErrInputError, fmt.Errorf("unknown preset %q", name))
	}
	return new(big.Int).Set(p), nil
}

// PresetPrime returns the named modulus as hexadecimal text, ready to be
// passed to Solve.
func PresetPrime(name string) (string, error) {
	p, err := PresetModulus(name)
	if err != nil {
		return "", err
	}
	return p.Text(16), nil
}

// Presets lists the preset names in lexical order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
