package goosig

import (
	"crypto/rand"
	"math/big"

	"github.com/kyokan/goosig/goosig/gooerr"
	"github.com/kyokan/goosig/internal/bigint"
	"github.com/kyokan/goosig/internal/drbg"
	"github.com/kyokan/goosig/internal/modsqrt"
	"github.com/kyokan/goosig/transcript"
)

// maxFSRetries bounds the "redraw r_s1 and A until ell has exactly
// ChalBits bits" loop of spec.md §4.9 step 9. In practice NextPrime almost
// always returns a value whose bit length is unchanged from ellR's, so
// this is a generous ceiling against a pathological DRBG stream rather
// than an expected code path.
const maxFSRetries = 256

func freshPRNG() (*drbg.PRNG, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, gooerr.Wrap(gooerr.ResourceFailure, "reading system randomness", err)
	}
	return drbg.Seed(key), nil
}

// Sign constructs a signature binding msg to the prover's knowledge of p, q
// given the prior commitment (sPrime, c1Bytes) produced by Challenge, per
// spec.md §4.9.
func (c *Context) Sign(msg, sPrimeBytes, c1Bytes []byte, p, q *big.Int) (*Signature, error) {
	grp := c.Group
	N := grp.N

	// Step 1: expand the seed.
	s, _, err := expandSPrime(sPrimeBytes, c.Config.ExponentSize)
	if err != nil {
		return nil, err
	}

	// Step 2: verify the opening.
	c1 := new(big.Int).SetBytes(c1Bytes)
	reconstructed, err := grp.PowGH(N, s)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "recomputing commitment", err)
	}
	if grp.Reduce(reconstructed).Cmp(c1) != 0 {
		return nil, gooerr.New(gooerr.ValidationError, "commitment does not match seed and modulus")
	}

	// Step 3: search the small-prime list for a t with a square root mod N.
	var (
		t int64
		w *big.Int
	)
	found := false
	for i := 0; i < numSmallPrimes; i++ {
		cand := smallPrimes[i]
		root, ok := modsqrt.SqrtModProduct(big.NewInt(cand), p, q)
		if ok {
			t = cand
			w = root
			found = true
			break
		}
	}
	if !found {
		return nil, gooerr.New(gooerr.CryptoFailure, "no small prime has a square root mod N")
	}

	// Step 4: a = (w^2 - t) / N, exactly.
	wSq := new(big.Int).Mul(w, w)
	numerator := new(big.Int).Sub(wSq, big.NewInt(t))
	a, rem := bigint.DivMod(numerator, N)
	if rem.Sign() != 0 {
		return nil, gooerr.New(gooerr.CryptoFailure, "w^2 - t is not divisible by N")
	}

	// Step 5: blind w into C2.
	prng1, err := freshPRNG()
	if err != nil {
		return nil, err
	}
	s1 := prng1.GetRandBits(grp.RandBits)
	c2Raw, err := grp.PowGH(w, s1)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing C2", err)
	}
	c2 := grp.Reduce(c2Raw)

	// Step 6: invert C1 and C2 together.
	c1Inv, c2Inv, ok := grp.Inv2(c1, c2)
	if !ok {
		return nil, gooerr.New(gooerr.CryptoFailure, "C1/C2 share a factor with N")
	}

	// Step 7: draw the six masks.
	prng2, err := freshPRNG()
	if err != nil {
		return nil, err
	}
	rw := prng2.GetRandBits(grp.RandBits)
	rw2 := prng2.GetRandBits(grp.RandBits)
	ra := prng2.GetRandBits(grp.RandBits)
	ran := prng2.GetRandBits(grp.RandBits)
	rs1w := prng2.GetRandBits(grp.RandBits)
	rsa := prng2.GetRandBits(grp.RandBits)
	if rw2.Cmp(ran) < 0 {
		rw2, ran = ran, rw2
	}

	// Step 8: commit B, C, D.
	bLeft := grp.Pow1(c2Inv, rw)
	bRight, err := grp.PowGH(rw2, rs1w)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing B", err)
	}
	bCommit := grp.Reduce(grp.Mul(bLeft, bRight))

	cLeft := grp.Pow1(c1Inv, ra)
	cRight, err := grp.PowGH(ran, rsa)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing C", err)
	}
	cCommit := grp.Reduce(grp.Mul(cLeft, cRight))

	dCommit := new(big.Int).Sub(rw2, ran)

	msgInt := new(big.Int).SetBytes(msg)
	tBig := big.NewInt(t)

	// Step 9: retry loop drawing r_s1 and A until ell has exactly ChalBits
	// bits; B, C, D are stable across retries.
	var (
		rs1  *big.Int
		aVal *big.Int
		chal *big.Int
		ell  *big.Int
	)
	retryOK := false
	for attempt := 0; attempt < maxFSRetries; attempt++ {
		prng3, err := freshPRNG()
		if err != nil {
			return nil, err
		}
		rs1 = prng3.GetRandBits(grp.RandBits)
		aRaw, err := grp.PowGH(rw, rs1)
		if err != nil {
			return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing A", err)
		}
		aVal = grp.Reduce(aRaw)

		items := transcript.Items{
			N: N, G: grp.G, H: grp.H,
			C1: c1, C2: c2, T: tBig,
			A: aVal, B: bCommit, C: cCommit, D: dCommit,
			Msg: msgInt,
		}
		key, err := transcript.Hash(items)
		if err != nil {
			return nil, gooerr.Wrap(gooerr.ValidationError, "hashing transcript", err)
		}
		var ellR *big.Int
		chal, ellR = transcript.DeriveChallenge(key)
		cand, _, ok := transcript.NextPrime(ellR, c.Config.EllDiffMax)
		if ok && cand.BitLen() == c.Config.ChalBits {
			ell = cand
			retryOK = true
			break
		}
	}
	if !retryOK {
		return nil, gooerr.New(gooerr.CryptoFailure, "no prime ell of the required bit length found within retry budget")
	}

	// Step 10: compute the z-value responses.
	mul := func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }
	add := func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }

	zw := add(mul(chal, w), rw)
	zw2 := add(mul(chal, wSq), rw2)
	zs1 := add(mul(chal, s1), rs1)
	za := add(mul(chal, a), ra)
	zan := add(mul(chal, mul(a, N)), ran)
	zs1w := add(mul(chal, mul(s1, w)), rs1w)
	zsa := add(mul(chal, mul(s, a)), rsa)

	// Step 11: quotient openings over ell.
	qw, _ := bigint.DivMod(zw, ell)
	qs1, _ := bigint.DivMod(zs1, ell)
	aqRaw, err := grp.PowGH(qw, qs1)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing Aq", err)
	}
	aq := grp.Reduce(aqRaw)

	qw2, _ := bigint.DivMod(zw2, ell)
	qs1w, _ := bigint.DivMod(zs1w, ell)
	bqLeft := grp.Pow1(c2Inv, qw)
	bqRight, err := grp.PowGH(qw2, qs1w)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing Bq", err)
	}
	bq := grp.Reduce(grp.Mul(bqLeft, bqRight))

	qa, _ := bigint.DivMod(za, ell)
	qan, _ := bigint.DivMod(zan, ell)
	qsa, _ := bigint.DivMod(zsa, ell)
	cqLeft := grp.Pow1(c1Inv, qa)
	cqRight, err := grp.PowGH(qan, qsa)
	if err != nil {
		return nil, gooerr.Wrap(gooerr.CryptoFailure, "computing Cq", err)
	}
	cq := grp.Reduce(grp.Mul(cqLeft, cqRight))

	zDiff := new(big.Int).Sub(zw2, zan)
	dq, _ := bigint.DivMod(zDiff, ell)

	// Step 12: replace z-values with their residues mod ell.
	zw = bigint.Mod(zw, ell)
	zw2 = bigint.Mod(zw2, ell)
	zs1 = bigint.Mod(zs1, ell)
	za = bigint.Mod(za, ell)
	zan = bigint.Mod(zan, ell)
	zs1w = bigint.Mod(zs1w, ell)
	zsa = bigint.Mod(zsa, ell)

	logger.Infow("signature produced", "t", t)
	return &Signature{
		C2: c2, T: tBig, Chal: chal, Ell: ell,
		Aq: aq, Bq: bq, Cq: cq, Dq: dq,
		Zw: zw, Zw2: zw2, Zs1: zs1, Za: za, Zan: zan, Zs1w: zs1w, Zsa: zsa,
	}, nil
}
