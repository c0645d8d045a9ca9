package wnaf

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPow2MatchesNaiveDoubleExp(t *testing.T) {
	m, _ := new(big.Int).SetString("F53", 16) // 3923, prime
	b1 := big.NewInt(5)
	b2 := big.NewInt(7)
	b1Inv := new(big.Int).ModInverse(b1, m)
	b2Inv := new(big.Int).ModInverse(b2, m)
	require.NotNil(t, b1Inv)
	require.NotNil(t, b2Inv)

	t1 := Precompute(b1, b1Inv, m)
	t2 := Precompute(b2, b2Inv, m)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		e1 := big.NewInt(int64(rng.Intn(1 << 14)))
		e2 := big.NewInt(int64(rng.Intn(1 << 14)))

		got := Pow2(t1, e1, t2, e2, m)

		want := new(big.Int).Exp(b1, e1, m)
		want.Mul(want, new(big.Int).Exp(b2, e2, m))
		want.Mod(want, m)

		assert.Equal(t, 0, want.Cmp(got), "e1=%s e2=%s: want %s got %s", e1, e2, want, got)
	}
}

func TestPow2ZeroExponentsYieldIdentity(t *testing.T) {
	m, _ := new(big.Int).SetString("F53", 16)
	b1 := big.NewInt(5)
	b1Inv := new(big.Int).ModInverse(b1, m)
	t1 := Precompute(b1, b1Inv, m)

	got := Pow2(t1, big.NewInt(0), t1, big.NewInt(0), m)
	assert.Equal(t, 0, big.NewInt(1).Cmp(got))
}
