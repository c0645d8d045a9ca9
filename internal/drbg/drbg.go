// Package drbg implements the deterministic bit source the rest of goosig
// draws randomness from once a 32-byte key is fixed: an HMAC-DRBG built on
// SHA-256 (construction modelled on SP 800-90A, grounded on the
// generate-loop shape in other_examples' RFC6979-style deterministicScalar),
// wrapped in a PRNG that stashes unused high-order bits between
// getrandbits calls the way goo_prng_getrandbits does in the reference
// implementation.
package drbg

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// hmacDRBG is a minimal HMAC-DRBG: no reseed counter, no additional-input
// reseeding, since the protocol seeds once per signing/verification call and
// never asks for more output than a handful of generate() calls provide.
type hmacDRBG struct {
	k []byte
	v []byte
}

func newHMACDRBG(entropy []byte) *hmacDRBG {
	d := &hmacDRBG{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(entropy)
	return d
}

func (d *hmacDRBG) update(seedMaterial []byte) {
	mac := hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x00})
	mac.Write(seedMaterial)
	d.k = mac.Sum(nil)

	mac = hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)

	if len(seedMaterial) == 0 {
		return
	}

	mac = hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x01})
	mac.Write(seedMaterial)
	d.k = mac.Sum(nil)

	mac = hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)
}

// generate fills out with pseudorandom bytes, exactly sha256.Size at a
// time, matching the "generate(out[32])" collaborator contract in spec.md
// §6.
func (d *hmacDRBG) generate(out []byte) {
	for len(out) > 0 {
		mac := hmac.New(sha256.New, d.k)
		mac.Write(d.v)
		d.v = mac.Sum(nil)
		n := copy(out, d.v)
		out = out[n:]
	}
	d.update(nil)
}

// personalization is appended to every seed's entropy, matching the
// reference implementation's fixed DRBG personalisation string.
const personalization = "libGooPy_prng"

// PRNG is the bit-stash wrapper around hmacDRBG described in spec.md §4.2:
// getrandbits accumulates DRBG output 256 bits at a time into save, emits
// the top n bits requested, and keeps the low leftover bits in save for the
// next call.
type PRNG struct {
	drbg *hmacDRBG
	save *big.Int
}

// Seed initialises the PRNG from a 32-byte key: entropy = key || 32 zero
// bytes || "libGooPy_prng", and clears the bit stash.
func Seed(key [32]byte) *PRNG {
	entropy := make([]byte, 0, 32+32+len(personalization))
	entropy = append(entropy, key[:]...)
	entropy = append(entropy, make([]byte, 32)...)
	entropy = append(entropy, []byte(personalization)...)
	return &PRNG{
		drbg: newHMACDRBG(entropy),
		save: new(big.Int),
	}
}

// Next32 pulls 32 fresh bytes straight from the DRBG, bypassing the bit
// stash. It is exposed for callers (none in this module, but kept for
// parity with the reference's next32) that want raw DRBG output rather than
// arbitrary-width integers.
func (p *PRNG) Next32() []byte {
	out := make([]byte, 32)
	p.drbg.generate(out)
	return out
}

// GetRandBits returns an integer in [0, 2^n) drawn deterministically from
// the seeded DRBG, stashing any bits drawn but not consumed for the next
// call. Matches goo_prng_getrandbits exactly: b tracks the actual bit
// length of the accumulator r (seeded from save), recomputed rather than
// carried as a counter, since a stashed value's bit length can be less
// than the width it was stashed at whenever its top bit is 0.
func (p *PRNG) GetRandBits(n int) *big.Int {
	r := new(big.Int).Set(p.save)
	b := r.BitLen()

	for b < n {
		out := make([]byte, 32)
		p.drbg.generate(out)
		chunk := new(big.Int).SetBytes(out)
		r.Lsh(r, 256)
		r.Or(r, chunk)
		b += 256
	}

	left := b - n
	if left == 0 {
		p.save.SetInt64(0)
		return r
	}

	mask := new(big.Int).Lsh(big.NewInt(1), uint(left))
	mask.Sub(mask, big.NewInt(1))
	p.save.And(r, mask)
	return r.Rsh(r, uint(left))
}
