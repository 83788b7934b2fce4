// Package poly implements dense univariate polynomials over a prime field.
package poly

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-powersum-go/pkg/powersum/field"
)

// ErrDivisionByZero is returned when dividing by the zero polynomial.
var ErrDivisionByZero = errors.New("poly: division by zero polynomial")

// Poly is a polynomial with coefficients in [0, p). coeffs[i] is the
// coefficient of x^i and the slice never has trailing zeros, so the zero
// polynomial has no coefficients. Poly values are immutable.
type Poly struct {
	coeffs []*big.Int
}

// trimmed drops trailing zero coefficients. It owns c.
func trimmed(c []*big.Int) Poly {
	i := len(c) - 1
	for i >= 0 && c[i].Sign() == 0 {
		i--
	}
	return Poly{coeffs: c[:i+1]}
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// Coeff returns a copy of the coefficient of x^i.
func (p Poly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(p.coeffs[i])
}

// Lead returns a copy of the leading coefficient (zero for the zero polynomial).
func (p Poly) Lead() *big.Int {
	return p.Coeff(p.Degree())
}

// Coeffs returns a copy of the coefficients, lowest degree first.
func (p Poly) Coeffs() []*big.Int {
	out := make([]*big.Int, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// String renders p for debugging, highest degree first.
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	s := ""
	for i := p.Degree(); i >= 0; i-- {
		if p.coeffs[i].Sign() == 0 {
			continue
		}
		if s != "" {
			s += " + "
		}
		switch i {
		case 0:
			s += p.coeffs[i].String()
		case 1:
			s += fmt.Sprintf("%s*x", p.coeffs[i])
		default:
			s += fmt.Sprintf("%s*x^%d", p.coeffs[i], i)
		}
	}
	return s
}

// Ring performs polynomial arithmetic over a fixed field.
type Ring struct {
	f *field.Field
}

// NewRing returns the polynomial ring F_p[x].
func NewRing(f *field.Field) *Ring {
	return &Ring{f: f}
}

// Field returns the coefficient field.
func (r *Ring) Field() *field.Field {
	return r.f
}

// New builds a polynomial from coefficients, lowest degree first. The
// coefficients are reduced into the field and copied.
func (r *Ring) New(coeffs []*big.Int) Poly {
	c := make([]*big.Int, len(coeffs))
	for i, v := range coeffs {
		c[i] = r.f.Reduce(v)
	}
	return trimmed(c)
}

// Constant returns the constant polynomial c.
func (r *Ring) Constant(c *big.Int) Poly {
	return r.New([]*big.Int{c})
}

// X returns the polynomial x.
func (r *Ring) X() Poly {
	return trimmed([]*big.Int{new(big.Int), big.NewInt(1)})
}

// Linear returns the monic linear polynomial x - root.
func (r *Ring) Linear(root *big.Int) Poly {
	return trimmed([]*big.Int{r.f.Neg(r.f.Reduce(root)), big.NewInt(1)})
}

// Equal reports whether a and b have the same coefficients.
func (r *Ring) Equal(a, b Poly) bool {
	if len(a.coeffs) != len(b.coeffs) {
		return false
	}
	for i := range a.coeffs {
		if a.coeffs[i].Cmp(b.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns a + b.
func (r *Ring) Add(a, b Poly) Poly {
	n := max(len(a.coeffs), len(b.coeffs))
	c := make([]*big.Int, n)
	for i := range c {
		c[i] = r.f.Add(a.Coeff(i), b.Coeff(i))
	}
	return trimmed(c)
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Poly) Poly {
	n := max(len(a.coeffs), len(b.coeffs))
	c := make([]*big.Int, n)
	for i := range c {
		c[i] = r.f.Sub(a.Coeff(i), b.Coeff(i))
	}
	return trimmed(c)
}

// Scale returns s * a.
func (r *Ring) Scale(a Poly, s *big.Int) Poly {
	c := make([]*big.Int, len(a.coeffs))
	for i, v := range a.coeffs {
		c[i] = r.f.Mul(v, s)
	}
	return trimmed(c)
}

// Mul returns a * b.
func (r *Ring) Mul(a, b Poly) Poly {
	if a.IsZero() || b.IsZero() {
		return Poly{}
	}
	// Accumulate unreduced products and reduce once per coefficient.
	acc := make([]*big.Int, len(a.coeffs)+len(b.coeffs)-1)
	for i := range acc {
		acc[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i, x := range a.coeffs {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range b.coeffs {
			acc[i+j].Add(acc[i+j], tmp.Mul(x, y))
		}
	}
	for i := range acc {
		acc[i] = r.f.Reduce(acc[i])
	}
	return trimmed(acc)
}

// Monic scales a so that its leading coefficient is 1.
func (r *Ring) Monic(a Poly) (Poly, error) {
	if a.IsZero() {
		return a, nil
	}
	inv, err := r.f.Inv(a.coeffs[len(a.coeffs)-1])
	if err != nil {
		return Poly{}, fmt.Errorf("leading coefficient: %w", err)
	}
	return r.Scale(a, inv), nil
}

// DivMod returns q and rem with a = q*b + rem and deg(rem) < deg(b).
func (r *Ring) DivMod(a, b Poly) (Poly, Poly, error) {
	if b.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}
	db := b.Degree()
	if a.Degree() < db {
		return Poly{}, a, nil
	}
	inv, err := r.f.Inv(b.coeffs[db])
	if err != nil {
		return Poly{}, Poly{}, fmt.Errorf("leading coefficient: %w", err)
	}

	rem := a.Coeffs()
	q := make([]*big.Int, a.Degree()-db+1)
	for i := len(rem) - 1; i >= db; i-- {
		c := r.f.Mul(rem[i], inv)
		q[i-db] = c
		if c.Sign() == 0 {
			continue
		}
		for j := 0; j <= db; j++ {
			rem[i-db+j] = r.f.Sub(rem[i-db+j], r.f.Mul(c, b.coeffs[j]))
		}
	}
	return trimmed(q), trimmed(rem[:db]), nil
}

// Mod returns a mod m.
func (r *Ring) Mod(a, m Poly) (Poly, error) {
	_, rem, err := r.DivMod(a, m)
	return rem, err
}

// MulMod returns a*b mod m.
func (r *Ring) MulMod(a, b, m Poly) (Poly, error) {
	return r.Mod(r.Mul(a, b), m)
}

// PowMod returns base^e mod m for e >= 0 by left-to-right square and multiply.
func (r *Ring) PowMod(base Poly, e *big.Int, m Poly) (Poly, error) {
	b, err := r.Mod(base, m)
	if err != nil {
		return Poly{}, err
	}
	result, err := r.Mod(r.Constant(big.NewInt(1)), m)
	if err != nil {
		return Poly{}, err
	}
	for i := e.BitLen() - 1; i >= 0; i-- {
		if result, err = r.MulMod(result, result, m); err != nil {
			return Poly{}, err
		}
		if e.Bit(i) == 1 {
			if result, err = r.MulMod(result, b, m); err != nil {
				return Poly{}, err
			}
		}
	}
	return result, nil
}

// Gcd returns the monic greatest common divisor of a and b. The gcd of two
// zero polynomials is zero.
func (r *Ring) Gcd(a, b Poly) (Poly, error) {
	for !b.IsZero() {
		rem, err := r.Mod(a, b)
		if err != nil {
			return Poly{}, err
		}
		a, b = b, rem
	}
	return r.Monic(a)
}

// Eval evaluates a at x using Horner's method.
func (r *Ring) Eval(a Poly, x *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(a.coeffs) - 1; i >= 0; i-- {
		result = r.f.Add(r.f.Mul(result, x), a.coeffs[i])
	}
	return result
}

// DivLinear divides a by (x - root) with synthetic division and returns the
// quotient and the remainder a(root).
func (r *Ring) DivLinear(a Poly, root *big.Int) (Poly, *big.Int) {
	n := a.Degree()
	if n < 1 {
		return Poly{}, a.Coeff(0)
	}
	q := make([]*big.Int, n)
	acc := new(big.Int)
	for i := n; i >= 1; i-- {
		acc = r.f.Add(a.coeffs[i], r.f.Mul(root, acc))
		q[i-1] = acc
	}
	rem := r.f.Add(a.coeffs[0], r.f.Mul(root, acc))
	return trimmed(q), rem
}

// FromRoots returns the monic polynomial whose roots are the given elements,
// the product of (x - root).
func (r *Ring) FromRoots(roots []*big.Int) Poly {
	out := r.Constant(big.NewInt(1))
	for _, root := range roots {
		out = r.Mul(out, r.Linear(root))
	}
	return out
}

// FromElementary builds x^n - e1*x^(n-1) + e2*x^(n-2) - ... + (-1)^n*en from
// the elementary symmetric values e1..en.
func (r *Ring) FromElementary(e []*big.Int) Poly {
	n := len(e)
	c := make([]*big.Int, n+1)
	c[n] = big.NewInt(1)
	for k := 1; k <= n; k++ {
		v := r.f.Reduce(e[k-1])
		if k%2 == 1 {
			v = r.f.Neg(v)
		}
		c[n-k] = v
	}
	return trimmed(c)
}
