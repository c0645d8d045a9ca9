package goosig

import (
	"math/big"

	"github.com/kyokan/goosig/transcript"
)

// Verify validates sigBytes against (msg, c1Bytes), per spec.md §4.10.
// Every failure path returns false; the normal "signature doesn't verify"
// outcome (chal mismatch, ell out of bounds or composite) is
// indistinguishable from a malformed signature at this boundary, matching
// the boolean-return error model of spec.md §7.
func (c *Context) Verify(msg, sigBytes, c1Bytes []byte) bool {
	grp := c.Group

	c1 := new(big.Int).SetBytes(c1Bytes)
	sig, err := UnmarshalSignature(sigBytes)
	if err != nil {
		logger.Infow("verify rejected: malformed signature", "error", err)
		return false
	}

	t := sig.T.Int64()
	if !sig.T.IsInt64() || !isSmallPrime(t) {
		logger.Infow("verify rejected: t is not a listed small prime")
		return false
	}

	for _, elem := range []*big.Int{c1, sig.C2, sig.Aq, sig.Bq, sig.Cq} {
		if !grp.IsReduced(elem) {
			logger.Infow("verify rejected: element not reduced")
			return false
		}
	}

	invs, ok := grp.Inv5(c1, sig.C2, sig.Aq, sig.Bq, sig.Cq)
	if !ok {
		logger.Infow("verify rejected: batched inversion failed")
		return false
	}
	c1Inv, c2Inv, aqInv, bqInv, cqInv := invs[0], invs[1], invs[2], invs[3], invs[4]

	a, err := grp.Recon(sig.Aq, aqInv, sig.Ell, c2Inv, sig.C2, sig.Chal, sig.Zw, sig.Zs1)
	if err != nil {
		logger.Infow("verify rejected: reconstructing A failed", "error", err)
		return false
	}
	b, err := grp.Recon(sig.Bq, bqInv, sig.Ell, c2Inv, sig.C2, sig.Zw, sig.Zw2, sig.Zs1w)
	if err != nil {
		logger.Infow("verify rejected: reconstructing B failed", "error", err)
		return false
	}
	cc, err := grp.Recon(sig.Cq, cqInv, sig.Ell, c1Inv, c1, sig.Za, sig.Zan, sig.Zsa)
	if err != nil {
		logger.Infow("verify rejected: reconstructing C failed", "error", err)
		return false
	}

	// D = Dq*ell + (z_w2 - z_an) - t*chal, with a +ell carry correction
	// when (z_w2 - z_an) was negative before the prover's floor division.
	zDiff := new(big.Int).Sub(sig.Zw2, sig.Zan)
	d := new(big.Int).Mul(sig.Dq, sig.Ell)
	d.Add(d, zDiff)
	d.Sub(d, new(big.Int).Mul(sig.T, sig.Chal))
	if zDiff.Sign() < 0 {
		d.Add(d, sig.Ell)
	}

	msgInt := new(big.Int).SetBytes(msg)
	items := transcript.Items{
		N: grp.N, G: grp.G, H: grp.H,
		C1: c1, C2: sig.C2, T: sig.T,
		A: a, B: b, C: cc, D: d,
		Msg: msgInt,
	}
	key, err := transcript.Hash(items)
	if err != nil {
		logger.Infow("verify rejected: hashing transcript failed", "error", err)
		return false
	}
	chalOut, ellROut := transcript.DeriveChallenge(key)

	if sig.Chal.Cmp(chalOut) != 0 {
		logger.Infow("verify rejected: chal mismatch")
		return false
	}
	diff := new(big.Int).Sub(sig.Ell, ellROut)
	if diff.Sign() < 0 || diff.Cmp(big.NewInt(c.Config.EllDiffMax)) > 0 {
		logger.Infow("verify rejected: ell-ellR out of bounds")
		return false
	}
	if !sig.Ell.ProbablyPrime(2) {
		logger.Infow("verify rejected: ell is not prime")
		return false
	}

	return true
}
