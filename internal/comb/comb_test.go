package comb

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseSpecFitsBudget(t *testing.T) {
	spec, err := ChooseSpec(128, 512)
	require.NoError(t, err)
	assert.LessOrEqual(t, spec.Size, 512)
	assert.GreaterOrEqual(t, spec.BitsPerWin*spec.PointsPerAdd, 128)
}

func TestChooseSpecFailsWhenNothingFits(t *testing.T) {
	// The smallest possible table is P=2 with one add per shift: size 3.
	_, err := ChooseSpec(4096, 2)
	assert.Error(t, err)
}

// TestChooseSpecMatchesTinyTableShape pins ChooseSpec(128, 512) to the exact
// (P=8, A=2, S=8, W=16, Size=510) shape spec.md §9 requires verifying, and
// that goo_group_init hardcodes for its "tiny" h-comb. The ops-ascending
// scan goo_combspec_init performs does not return the global-smallest-size
// candidate across all bit widths, so this exact-value check is load
// bearing, not implied by the looser bounds in TestChooseSpecFitsBudget.
func TestChooseSpecMatchesTinyTableShape(t *testing.T) {
	spec, err := ChooseSpec(128, 512)
	require.NoError(t, err)
	assert.Equal(t, Spec{
		PointsPerAdd: 8,
		AddsPerShift: 2,
		Shifts:       8,
		BitsPerWin:   16,
		Size:         510,
		Ops:          23,
	}, spec)
}

func TestBuildAndEvalMatchesNaivePow(t *testing.T) {
	p, _ := new(big.Int).SetString("F53", 16) // 3923, prime
	m := p
	base := big.NewInt(5)

	spec, err := ChooseSpec(16, 512)
	require.NoError(t, err)
	c := Build(base, m, spec, false)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		e := big.NewInt(int64(rng.Intn(1 << 16)))
		wins, err := c.ToCombExp(e)
		require.NoError(t, err)

		got := c.Eval(wins, nil)
		want := new(big.Int).Exp(base, e, m)
		assert.Equal(t, 0, want.Cmp(got), "exponent %s: want %s got %s", e, want, got)
	}
}

func TestEvalPairMatchesNaivePowGH(t *testing.T) {
	m, _ := new(big.Int).SetString("F53", 16)
	g := big.NewInt(2)
	h := big.NewInt(3)

	spec, err := ChooseSpec(12, 512)
	require.NoError(t, err)
	gc := Build(g, m, spec, false)
	hc := Build(h, m, spec, false)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		e1 := big.NewInt(int64(rng.Intn(1 << 12)))
		e2 := big.NewInt(int64(rng.Intn(1 << 12)))

		gw, err := gc.ToCombExp(e1)
		require.NoError(t, err)
		hw, err := hc.ToCombExp(e2)
		require.NoError(t, err)

		got := EvalPair(gc, hc, gw, hw)
		want := new(big.Int).Exp(g, e1, m)
		want.Mul(want, new(big.Int).Exp(h, e2, m))
		want.Mod(want, m)
		assert.Equal(t, 0, want.Cmp(got))
	}
}

func TestToCombExpRejectsOversizedExponent(t *testing.T) {
	m, _ := new(big.Int).SetString("F53", 16)
	spec, err := ChooseSpec(8, 512)
	require.NoError(t, err)
	c := Build(big.NewInt(2), m, spec, false)

	tooBig := new(big.Int).Lsh(big.NewInt(1), uint(c.MaxBits)+4)
	_, err = c.ToCombExp(tooBig)
	assert.Error(t, err)
}
