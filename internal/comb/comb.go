package comb

import (
	"fmt"
	"math/big"
)

// Comb is a populated comb table for one base under one modulus, per
// spec.md §3 "Comb table": for v in [1, 2^P-1] and a in [0, A),
// items[a*(2^P-1)+v-1] holds base^(2^(a*S) * sum_k v_k*2^(k*W)), where v_k
// is bit k of v and W = BitsPerWin.
type Comb struct {
	Spec    Spec
	Mod     *big.Int
	Items   []*big.Int
	MaxBits int // W*P, the largest exponent this comb can recode
}

// Build constructs the comb table for base under modulus m, per goo.c's
// goo_comb_init: items[0] = base, then each points_per_add doubling step
// raises the previous power-of-two entry to 2^bits_per_window and combines
// it additively with the entries built so far, and each adds_per_shift
// step raises the whole preceding sub-comb to 2^shifts. tiny selects the
// hardcoded point-count-8 table goo_group_init always builds for h in the
// "small" regime; Build asserts the spec matches that exact shape, the way
// goo_comb_init's own asserts do when its tiny flag is set.
func Build(base, m *big.Int, spec Spec, tiny bool) *Comb {
	if tiny {
		if spec.PointsPerAdd != 8 || spec.AddsPerShift != 2 || spec.Shifts != 8 ||
			spec.BitsPerWin != 16 || spec.Size != 510 {
			panic("comb: tiny combspec does not match the goo_group_init hardcoded shape")
		}
	}

	skip := pow2(spec.PointsPerAdd) - 1 // points_per_subcomb
	items := make([]*big.Int, spec.AddsPerShift*skip)
	items[0] = new(big.Int).Mod(base, m)

	win := pow2Big(spec.BitsPerWin)
	for i := 1; i < spec.PointsPerAdd; i++ {
		oval := 1 << uint(i)
		ival := oval >> 1
		items[oval-1] = new(big.Int).Exp(items[ival-1], win, m)
		for j := oval + 1; j < 2*oval; j++ {
			items[j-1] = new(big.Int).Mod(new(big.Int).Mul(items[j-oval-1], items[oval-1]), m)
		}
	}

	winShift := pow2Big(spec.Shifts)
	for i := 1; i < spec.AddsPerShift; i++ {
		for j := 0; j < skip; j++ {
			k := i*skip + j
			items[k] = new(big.Int).Exp(items[k-skip], winShift, m)
		}
	}

	return &Comb{
		Spec:    spec,
		Mod:     m,
		Items:   items,
		MaxBits: spec.BitsPerWin * spec.PointsPerAdd,
	}
}

func pow2Big(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// ToCombExp recodes exponent e into the comb's digit array wins[s][a], per
// goo_to_comb_exp: conceptually e is left-padded with zeros to exactly
// comb.bits (= W*P) bits, and each digit is read out from the MSB end of
// that padded bit string — position b (0 at the padded MSB) corresponds to
// e's own bit (comb.bits-1-b). Since e has no bits at or past its own
// BitLen, reading big.Int.Bit at that position already yields 0 for the
// padded positions, so no separate padding branch is needed. It fails if
// e's bit length exceeds W*P.
func (c *Comb) ToCombExp(e *big.Int) ([][]int, error) {
	if e.Sign() < 0 {
		return nil, fmt.Errorf("comb: exponent must be non-negative")
	}
	if e.BitLen() > c.MaxBits {
		return nil, fmt.Errorf("comb: exponent bit length %d exceeds comb capacity %d", e.BitLen(), c.MaxBits)
	}
	S := c.Spec.Shifts
	A := c.Spec.AddsPerShift
	P := c.Spec.PointsPerAdd

	wins := make([][]int, S)
	for s := 0; s < S; s++ {
		wins[s] = make([]int, A)
		for dst := 0; dst < A; dst++ {
			// goo_to_comb_exp walks i from adds_per_shift-1 down to 0,
			// storing into wins[j][(adds_per_shift-1)-i]; dst is that
			// storage index, so the "i" used in the bit-position formula
			// below is its mirror image.
			i := A - 1 - dst
			digit := 0
			for k := 0; k < P; k++ {
				b := (i+k*A)*S + s
				p := c.MaxBits - 1 - b
				digit <<= 1
				if e.Bit(p) == 1 {
					digit |= 1
				}
			}
			wins[s][dst] = digit
		}
	}
	return wins, nil
}

// EvalPair evaluates two combs sharing the same (P, A, S) spec together,
// interleaving their per-shift multiplications into one accumulator: for
// s in [0, S), square once, then fold in both g's and h's digit for every
// a. This is the PowGH inner loop from spec.md §4.3.
func EvalPair(g, h *Comb, gWins, hWins [][]int) *big.Int {
	vmax := pow2(g.Spec.PointsPerAdd) - 1
	acc := big.NewInt(1)
	one := big.NewInt(1)
	for s := 0; s < g.Spec.Shifts; s++ {
		if acc.Cmp(one) != 0 {
			acc.Mul(acc, acc)
			acc.Mod(acc, g.Mod)
		}
		for a := 0; a < g.Spec.AddsPerShift; a++ {
			if d := gWins[s][a]; d != 0 {
				acc.Mul(acc, g.Items[a*vmax+d-1])
				acc.Mod(acc, g.Mod)
			}
			if d := hWins[s][a]; d != 0 {
				acc.Mul(acc, h.Items[a*vmax+d-1])
				acc.Mod(acc, g.Mod)
			}
		}
	}
	return acc
}

// Eval evaluates the comb table against a recoded digit array, accumulating
// into dst (or a fresh 1 if dst is nil). This is the per-base inner loop
// that Powgh in rsagroup combines for two bases sharing the same s-loop.
func (c *Comb) Eval(wins [][]int, dst *big.Int) *big.Int {
	vmax := pow2(c.Spec.PointsPerAdd) - 1
	if dst == nil {
		dst = big.NewInt(1)
	}
	one := big.NewInt(1)
	for s := 0; s < c.Spec.Shifts; s++ {
		if dst.Cmp(one) != 0 {
			dst.Mul(dst, dst)
			dst.Mod(dst, c.Mod)
		}
		for a := 0; a < c.Spec.AddsPerShift; a++ {
			d := wins[s][a]
			if d == 0 {
				continue
			}
			dst.Mul(dst, c.Items[a*vmax+d-1])
			dst.Mod(dst, c.Mod)
		}
	}
	return dst
}
