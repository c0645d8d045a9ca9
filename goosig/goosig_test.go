package goosig

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kyokan/goosig/rsagroup"
)

// testModulus returns p=1009, q=1013 (N=1022117) — the same Open-Question
// test modulus used elsewhere in the tree (see DESIGN.md), large enough for
// internal/comb's combspec search but small enough to keep trials fast.
func testModulus() (p, q *big.Int) {
	return big.NewInt(1009), big.NewInt(1013)
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	p, q := testModulus()
	n := new(big.Int).Mul(p, q)
	ctx, err := Init(n.Bytes(), 2, 3, rsagroup.MinModBits)
	require.NoError(t, err)
	return ctx
}

func TestChallengeSignVerifyRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()
	msg := []byte("hello")

	sPrime, c1Bytes, err := ctx.Challenge()
	require.NoError(t, err)

	sig, err := ctx.Sign(msg, sPrime, c1Bytes, p, q)
	require.NoError(t, err)

	sigBytes, err := sig.Marshal()
	require.NoError(t, err)

	require.True(t, ctx.Verify(msg, sigBytes, c1Bytes))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()
	msg := []byte("hello")

	sPrime, c1Bytes, err := ctx.Challenge()
	require.NoError(t, err)
	sig, err := ctx.Sign(msg, sPrime, c1Bytes, p, q)
	require.NoError(t, err)
	sigBytes, err := sig.Marshal()
	require.NoError(t, err)

	require.False(t, ctx.Verify([]byte("goodbye"), sigBytes, c1Bytes))
}

func TestVerifyRejectsTamperedChallenge(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()
	msg := []byte("hello")

	sPrime, c1Bytes, err := ctx.Challenge()
	require.NoError(t, err)
	sig, err := ctx.Sign(msg, sPrime, c1Bytes, p, q)
	require.NoError(t, err)

	sig.Chal = new(big.Int).Add(sig.Chal, big.NewInt(1))
	sigBytes, err := sig.Marshal()
	require.NoError(t, err)

	require.False(t, ctx.Verify(msg, sigBytes, c1Bytes))
}

func TestVerifyRejectsNonSmallPrimeT(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()
	msg := []byte("hello")

	sPrime, c1Bytes, err := ctx.Challenge()
	require.NoError(t, err)
	sig, err := ctx.Sign(msg, sPrime, c1Bytes, p, q)
	require.NoError(t, err)

	sig.T = big.NewInt(4) // composite, not in the small-prime table
	sigBytes, err := sig.Marshal()
	require.NoError(t, err)

	require.False(t, ctx.Verify(msg, sigBytes, c1Bytes))
}

func TestVerifyRejectsMismatchedCommitment(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()
	msg := []byte("hello")

	sPrime, c1Bytes, err := ctx.Challenge()
	require.NoError(t, err)
	sig, err := ctx.Sign(msg, sPrime, c1Bytes, p, q)
	require.NoError(t, err)
	sigBytes, err := sig.Marshal()
	require.NoError(t, err)

	_, otherC1Bytes, err := ctx.Challenge()
	require.NoError(t, err)

	require.False(t, ctx.Verify(msg, sigBytes, otherC1Bytes))
}

func TestSignRejectsWrongCommitment(t *testing.T) {
	ctx := newTestContext(t)
	p, q := testModulus()

	sPrime, _, err := ctx.Challenge()
	require.NoError(t, err)
	_, otherC1Bytes, err := ctx.Challenge()
	require.NoError(t, err)

	_, err = ctx.Sign([]byte("hello"), sPrime, otherC1Bytes, p, q)
	require.Error(t, err)
}

func TestInitRejectsEmptyModulus(t *testing.T) {
	_, err := Init(nil, 2, 3, 0)
	require.Error(t, err)
}

func TestInitRejectsOutOfRangeModBits(t *testing.T) {
	n := big.NewInt(1022117)
	_, err := Init(n.Bytes(), 2, 3, 7)
	require.Error(t, err)
}
