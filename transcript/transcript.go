// Package transcript implements the Fiat-Shamir transcript hash and
// challenge/ell derivation described in spec.md §4.7: a canonical hash of
// every public value in a signature, seeding a DRBG that yields the
// challenge and the prime ell. Hashing is styled on
// voteproof/voteproof.go's getFSChallenge (hash over a buffer of encoded
// field values); item framing is ported from goo.c's goo_hash_item /
// goo_hash_all.
package transcript

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/kyokan/goosig/internal/bigint"
	"github.com/kyokan/goosig/internal/drbg"
)

// prefix is the ASCII transcript prefix every hash begins with.
const prefix = "libGooPy:"

// ChalBits is GOO_CHAL_BITS, the width of both the derived challenge and
// the raw ell_r value before next-prime search.
const ChalBits = 128

// Items bundles the eleven public values hashed into one transcript, in
// the fixed order N, g, h, C1, C2, t, A, B, C, D, msg (spec.md §6).
type Items struct {
	N, G, H    *big.Int
	C1, C2, T  *big.Int
	A, B, C, D *big.Int
	Msg        *big.Int
}

// Hash renders the canonical transcript and returns its SHA-256 digest, the
// 32-byte key that seeds the challenge DRBG.
func Hash(it Items) ([32]byte, error) {
	buf := []byte(prefix)
	values := []*big.Int{it.N, it.G, it.H, it.C1, it.C2, it.T, it.A, it.B, it.C, it.D, it.Msg}
	var err error
	for _, v := range values {
		buf, err = bigint.EncodeItem(buf, v)
		if err != nil {
			return [32]byte{}, fmt.Errorf("transcript: %w", err)
		}
	}
	return sha256.Sum256(buf), nil
}

// DeriveChallenge seeds a PRNG from key and draws (chal, ellR) per spec.md
// §4.7: getrandbits(ChalBits) twice in a row, first for chal, then for
// ellR.
func DeriveChallenge(key [32]byte) (chal, ellR *big.Int) {
	p := drbg.Seed(key)
	chal = p.GetRandBits(ChalBits)
	ellR = p.GetRandBits(ChalBits)
	return chal, ellR
}

// NextPrime searches forward from start (inclusive) for the first
// probable prime within maxDiff steps, returning (prime, diff, true) or
// (nil, 0, false) if none is found in range. This is the prover path of
// spec.md §4.7: advance ellR by next_prime up to GOO_ELLDIFF_MAX.
func NextPrime(start *big.Int, maxDiff int64) (*big.Int, int64, bool) {
	cand := new(big.Int).Set(start)
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	}
	diff := new(big.Int).Sub(cand, start).Int64()
	for {
		if diff > maxDiff {
			return nil, 0, false
		}
		if bigint.ProbablyPrime(cand) {
			return cand, diff, true
		}
		cand.Add(cand, big.NewInt(2))
		diff = new(big.Int).Sub(cand, start).Int64()
	}
}
