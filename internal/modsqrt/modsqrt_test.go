package modsqrt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqrtModPrimeReturnsValidRoot(t *testing.T) {
	// p=1009 ≡ 1 (mod 4), exercises the general Tonelli-Shanks branch.
	p := big.NewInt(1009)
	n := big.NewInt(10) // a QR mod 1009 (Jacobi(10,1009) == 1)
	require.Equal(t, 1, big.Jacobi(n, p))

	q, ok := SqrtModPrime(n, p)
	require.True(t, ok)

	check := new(big.Int).Exp(q, big.NewInt(2), p)
	assert.Equal(t, 0, check.Cmp(new(big.Int).Mod(n, p)))

	half := new(big.Int).Rsh(p, 1)
	assert.LessOrEqual(t, q.Cmp(half), 0)
}

func TestSqrtModPrimeShortcutBranch(t *testing.T) {
	// p=1013 ≡ 1 (mod 4) as well; pick a prime ≡ 3 (mod 4) for the
	// shortcut: 1019 ≡ 3 (mod 4).
	p := big.NewInt(1019)
	require.Equal(t, int64(3), new(big.Int).And(p, big.NewInt(3)).Int64())

	n := big.NewInt(4)
	q, ok := SqrtModPrime(n, p)
	require.True(t, ok)
	check := new(big.Int).Exp(q, big.NewInt(2), p)
	assert.Equal(t, 0, check.Cmp(n))
}

func TestSqrtModPrimeRejectsNonResidue(t *testing.T) {
	p := big.NewInt(1009)
	n := big.NewInt(11)
	require.Equal(t, -1, big.Jacobi(n, p))

	_, ok := SqrtModPrime(n, p)
	assert.False(t, ok)
}

func TestSqrtModPrimeZero(t *testing.T) {
	q, ok := SqrtModPrime(big.NewInt(0), big.NewInt(1009))
	require.True(t, ok)
	assert.Equal(t, 0, big.NewInt(0).Cmp(q))
}

func TestSqrtModProductMatchesCRT(t *testing.T) {
	p := big.NewInt(1009)
	q := big.NewInt(1013)
	x := big.NewInt(10)

	root, ok := SqrtModProduct(x, p, q)
	require.True(t, ok)

	n := new(big.Int).Mul(p, q)
	check := new(big.Int).Exp(root, big.NewInt(2), n)
	assert.Equal(t, 0, check.Cmp(new(big.Int).Mod(x, n)))
}
