// Package modsqrt implements the modular square-root machinery spec.md
// §4.8 requires: Tonelli-Shanks modulo a prime and its CRT combination
// modulo a product of two primes. Ported from goo.c's goo_mod_sqrtp /
// goo_mod_sqrtn.
package modsqrt

import (
	"fmt"
	"math/big"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// SqrtModPrime computes a square root of n modulo the odd prime p via
// Tonelli-Shanks, with the p ≡ 3 (mod 4) shortcut. It returns false if n is
// not a quadratic residue mod p (Jacobi(n, p) == -1).
func SqrtModPrime(n, p *big.Int) (*big.Int, bool) {
	nn := new(big.Int).Mod(n, p)
	if nn.Sign() == 0 {
		return big.NewInt(0), true
	}

	if big.Jacobi(nn, p) != 1 {
		return nil, false
	}

	var q *big.Int
	if new(big.Int).And(p, big.NewInt(3)).Cmp(big.NewInt(3)) == 0 {
		// p ≡ 3 (mod 4): q = n^((p+1)/4) mod p.
		exp := new(big.Int).Add(p, big1)
		exp.Rsh(exp, 2)
		q = new(big.Int).Exp(nn, exp, p)
	} else {
		var ok bool
		q, ok = tonelliShanksGeneral(nn, p)
		if !ok {
			return nil, false
		}
	}

	half := new(big.Int).Rsh(p, 1)
	if q.Cmp(half) > 0 {
		q.Sub(p, q)
	}

	check := new(big.Int).Exp(q, big2, p)
	if check.Cmp(nn) != 0 {
		panic(fmt.Sprintf("modsqrt: postcondition failed, %s^2 != %s mod %s", q, nn, p))
	}
	return q, true
}

// tonelliShanksGeneral handles the general-p branch of Tonelli-Shanks:
// factor p-1 = Q*2^s, find a quadratic non-residue witness by incrementing
// from 2, then iterate.
func tonelliShanksGeneral(n, p *big.Int) (*big.Int, bool) {
	pm1 := new(big.Int).Sub(p, big1)
	s := 0
	q := new(big.Int).Set(pm1)
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	z := big.NewInt(2)
	for big.Jacobi(z, p) != -1 {
		z.Add(z, big1)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	qPlus1Over2 := new(big.Int).Add(q, big1)
	qPlus1Over2.Rsh(qPlus1Over2, 1)
	r := new(big.Int).Exp(n, qPlus1Over2, p)

	for {
		if t.Cmp(big1) == 0 {
			return r, true
		}
		i := 0
		tt := new(big.Int).Set(t)
		for tt.Cmp(big1) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
			if i == m {
				return nil, false
			}
		}
		b := new(big.Int).Exp(c, new(big.Int).Lsh(big1, uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
}

// SqrtModProduct computes a square root of x modulo p*q given separate
// roots mod p and mod q, combined via CRT using extended-gcd coefficients.
// It returns false if x has no root mod p or mod q.
func SqrtModProduct(x, p, q *big.Int) (*big.Int, bool) {
	sp, ok := SqrtModPrime(x, p)
	if !ok {
		return nil, false
	}
	sq, ok := SqrtModPrime(x, q)
	if !ok {
		return nil, false
	}

	// CRT: find mp, mq with mp*p + mq*q = 1, then
	// result = (sq*mp*p + sp*mq*q) mod (p*q).
	gcd := new(big.Int)
	mp := new(big.Int)
	mq := new(big.Int)
	gcd.GCD(mp, mq, p, q)
	if gcd.Cmp(big1) != 0 {
		return nil, false
	}

	n := new(big.Int).Mul(p, q)
	term1 := new(big.Int).Mul(sq, mp)
	term1.Mul(term1, p)
	term2 := new(big.Int).Mul(sp, mq)
	term2.Mul(term2, q)
	result := new(big.Int).Add(term1, term2)
	result.Mod(result, n)
	return result, true
}
