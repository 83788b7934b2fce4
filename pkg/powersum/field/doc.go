// Package field provides arithmetic in a finite prime field F_p.
//
// A Field is an immutable context value holding the modulus and the constants
// derived from it. It is created once per solve and passed explicitly to every
// stage; there is no process-wide field state.
//
// # Elements
//
// Elements are *big.Int values in [0, p). Every operation returns a freshly
// allocated result and never mutates its arguments:
//
//	f, err := field.Parse("7")
//	if err != nil {
//	    return err
//	}
//	x := f.Mul(big.NewInt(3), big.NewInt(5)) // 1
//	inv, err := f.Inv(big.NewInt(3))         // 5
//
// # Encoding
//
// Elements are exchanged as lowercase hexadecimal text without prefix or sign.
// ParseHex is strict: empty strings, signs, "0x" prefixes and separators are
// rejected.
//
// Note: big.Int arithmetic is not constant-time. The values handled here are
// power sums that are already public within a mixing round.
package field
