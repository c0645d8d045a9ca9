// Package wnaf implements windowed-NAF simultaneous double-base
// exponentiation for arbitrary bases (spec.md §4.4), ported from goo.c's
// goo_group_wnaf_pc_help/precomp_wnaf/wnaf/one_mul/pow2.
package wnaf

import "math/big"

// WindowSize is GOO_WINDOW_SIZE: the wNAF digit window width.
const WindowSize = 6

// TableLen is GOO_TABLEN = 2^(WindowSize-2), the number of precomputed odd
// powers stored per base/sign.
const TableLen = 1 << (WindowSize - 2)

// Table holds the precomputed odd powers of a base and its inverse, used by
// Pow2 to look up table[|d|/2] with sign selecting the positive or negative
// table.
type Table struct {
	pos []*big.Int // pos[i] = b^(2i+1) mod m
	neg []*big.Int // neg[i] = (b^-1)^(2i+1) mod m == (b^(2i+1))^-1 mod m
}

// Precompute builds the odd-power table for base b with modular inverse
// bInv, under modulus m.
func Precompute(b, bInv, m *big.Int) *Table {
	t := &Table{
		pos: make([]*big.Int, TableLen),
		neg: make([]*big.Int, TableLen),
	}
	bSq := new(big.Int).Mod(new(big.Int).Mul(b, b), m)
	bInvSq := new(big.Int).Mod(new(big.Int).Mul(bInv, bInv), m)

	t.pos[0] = new(big.Int).Mod(b, m)
	t.neg[0] = new(big.Int).Mod(bInv, m)
	for i := 1; i < TableLen; i++ {
		t.pos[i] = new(big.Int).Mod(new(big.Int).Mul(t.pos[i-1], bSq), m)
		t.neg[i] = new(big.Int).Mod(new(big.Int).Mul(t.neg[i-1], bInvSq), m)
	}
	return t
}

// recode returns the signed-digit wNAF representation of e, low digit
// first, per spec.md §4.4: while e is non-zero, if odd extract the low
// WindowSize bits as a signed digit in [-2^(w-1), 2^(w-1)], subtract it from
// e, else emit 0; then shift e right by one.
func recode(e *big.Int) []int {
	e = new(big.Int).Set(e)
	var digits []int
	half := int64(1) << (WindowSize - 1)
	full := int64(1) << WindowSize
	for e.Sign() != 0 {
		var d int64
		if e.Bit(0) == 1 {
			d = int64(lowBits(e, WindowSize))
			if d >= half {
				d -= full
			}
			e.Sub(e, big.NewInt(d))
		}
		digits = append(digits, int(d))
		e.Rsh(e, 1)
	}
	return digits
}

func lowBits(x *big.Int, n int) uint64 {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))
	r := new(big.Int).And(x, mask)
	return r.Uint64()
}

// Pow2 computes b1^e1 * b2^e2 mod m via simultaneous windowed-NAF
// exponentiation, given precomputed tables for each base.
func Pow2(t1 *Table, e1 *big.Int, t2 *Table, e2 *big.Int, m *big.Int) *big.Int {
	d1 := recode(e1)
	d2 := recode(e2)
	n := len(d1)
	if len(d2) > n {
		n = len(d2)
	}
	for len(d1) < n {
		d1 = append(d1, 0)
	}
	for len(d2) < n {
		d2 = append(d2, 0)
	}

	acc := big.NewInt(1)
	for i := n - 1; i >= 0; i-- {
		if acc.Cmp(big.NewInt(1)) != 0 {
			acc.Mul(acc, acc)
			acc.Mod(acc, m)
		}
		acc = mulDigit(acc, t1, d1[i], m)
		acc = mulDigit(acc, t2, d2[i], m)
	}
	return acc
}

func mulDigit(acc *big.Int, t *Table, d int, m *big.Int) *big.Int {
	if d == 0 {
		return acc
	}
	idx := d
	if idx < 0 {
		idx = -idx
	}
	idx = (idx - 1) / 2
	var factor *big.Int
	if d > 0 {
		factor = t.pos[idx]
	} else {
		factor = t.neg[idx]
	}
	acc.Mul(acc, factor)
	acc.Mod(acc, m)
	return acc
}
