// Package comb implements the precomputed fixed-base multi-exponentiation
// tables described in spec.md §4.3: choosing comb parameters for a given
// bit budget, building the table of precomputed powers, and recoding an
// exponent into the table's digit form. Ported from goo.c's
// combspec_size/combspec_result/goo_combspec_init/goo_comb_init/
// goo_to_comb_exp.
package comb

import (
	"fmt"
	"sort"
)

// Spec describes one chosen comb configuration: points_per_add (P),
// adds_per_shift (A), shifts (S), bits_per_window (W = S*A).
type Spec struct {
	PointsPerAdd int // P
	AddsPerShift int // A
	Shifts       int // S
	BitsPerWin   int // W = S*A
	Size         int // A * (2^P - 1), the table's element count
	Ops          int // shifts*(aps+1)-1, the cost the selection minimizes over
}

// isqrt returns floor(sqrt(n)) for n >= 0 by integer Newton iteration,
// standing in for goo_sqrt, so no floating-point rounding is involved.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// divisors returns every divisor of n up to and including isqrt(n)+1,
// matching the enumeration bound spec.md §4.3 describes.
func divisors(n int) []int {
	limit := isqrt(n) + 1
	var out []int
	for d := 1; d <= limit && d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
		}
	}
	return out
}

// ChooseSpec picks (P, A, S), replicating goo_combspec_init's selection
// scan exactly: candidates are bucketed by their ops cost (keeping only the
// smallest-size candidate per bucket, as combspec_result does), then the
// buckets are walked in ascending ops order, tracking the smallest size
// seen so far and stopping at the first one that both improves on it and
// fits within maxSize. This is an early-stopping scan over ops, not a
// global minimum-size search: goo.c can and does return a candidate that
// isn't the smallest one available overall, and callers (e.g. the
// tiny-table shape spec.md §9 pins down) depend on that exact choice.
func ChooseSpec(bits, maxSize int) (Spec, error) {
	// bestByOps holds, for each observed ops cost, the smallest-size
	// candidate seen so far — mirroring combspec_result's ops-indexed result
	// map in goo.c.
	bestByOps := make(map[int]Spec)

	for p := 2; p <= 17; p++ {
		bpw := (bits + p - 1) / p // ceil(bits/p)
		if bpw == 0 {
			continue
		}
		for _, a := range divisors(bpw) {
			candidates := [2]struct{ shifts, aps int }{
				{bpw / a, a},
				{a, bpw / a},
			}
			for _, c := range candidates {
				if c.shifts == 0 || c.aps == 0 {
					continue
				}
				ops := c.shifts*(c.aps+1) - 1
				size := (pow2(p) - 1) * c.aps
				cand := Spec{
					PointsPerAdd: p,
					AddsPerShift: c.aps,
					Shifts:       c.shifts,
					BitsPerWin:   bpw,
					Size:         size,
					Ops:          ops,
				}
				existing, ok := bestByOps[ops]
				if !ok || size < existing.Size {
					bestByOps[ops] = cand
				}
			}
		}
	}

	opsKeys := make([]int, 0, len(bestByOps))
	for ops := range bestByOps {
		opsKeys = append(opsKeys, ops)
	}
	sort.Ints(opsKeys)

	sm := 0
	found := false
	best := Spec{}
	for _, ops := range opsKeys {
		cand := bestByOps[ops]
		if sm != 0 && sm <= cand.Size {
			continue
		}
		sm = cand.Size
		if sm <= maxSize {
			best = cand
			found = true
			break
		}
	}
	if !found {
		return Spec{}, fmt.Errorf("comb: no combspec fits bits=%d within maxSize=%d", bits, maxSize)
	}
	return best, nil
}

func pow2(n int) int {
	return 1 << uint(n)
}
