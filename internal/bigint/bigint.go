// Package bigint wraps math/big with the handful of operations the goo
// group arithmetic needs on top of it: fixed-width padding, the
// length-prefixed/signed encoding shared by the wire codec and the
// transcript hasher, and a probable-prime test with an explicit round
// count. None of this hides math/big; it just gives the rest of the module
// one place to agree on byte layouts.
package bigint

import (
	"fmt"
	"math/big"
)

// MaxItemBytes is the largest magnitude either the wire codec or the
// transcript hasher will accept for a single integer; anything longer is a
// format error rather than silently truncated or rejected deep inside a
// parser.
const MaxItemBytes = 768

// BitLen returns the number of bits required to represent x, matching
// goo_mpz_bitlen: BitLen(0) == 0.
func BitLen(x *big.Int) int {
	return x.BitLen()
}

// ByteSize returns ceil(BitLen(x)/8), matching goo_mpz_bytesize.
func ByteSize(x *big.Int) int {
	return (BitLen(x) + 7) / 8
}

// Pad returns the big-endian magnitude of x left-padded with zero bytes to
// exactly size bytes. It panics if the magnitude does not fit, since every
// caller in this module first checks ByteSize against a known bound.
func Pad(x *big.Int, size int) []byte {
	mag := new(big.Int).Abs(x).Bytes()
	if len(mag) > size {
		panic(fmt.Sprintf("bigint: value does not fit in %d bytes", size))
	}
	out := make([]byte, size)
	copy(out[size-len(mag):], mag)
	return out
}

// Jacobi returns the Jacobi symbol (x/y), y odd, via math/big.Jacobi.
func Jacobi(x, y *big.Int) int {
	return big.Jacobi(x, y)
}

// ExtGCD returns (g, a, b) such that a*x + b*y = g = gcd(x, y).
func ExtGCD(x, y *big.Int) (g, a, b *big.Int) {
	g = new(big.Int)
	a = new(big.Int)
	b = new(big.Int)
	g.GCD(a, b, x, y)
	return g, a, b
}

// Invert returns the modular inverse of x mod m, and false if x shares a
// factor with m (the ModInverse contract: a nil result means no inverse
// exists). Callers that see false must treat it as a potential
// factorization leak, per the CryptoFailure contract described in goosig.
func Invert(x, m *big.Int) (*big.Int, bool) {
	inv := new(big.Int)
	r := inv.ModInverse(x, m)
	if r == nil {
		return nil, false
	}
	return inv, true
}

// MillerRabinRounds is the number of rounds used by ProbablyPrime; two
// rounds of Miller-Rabin (on top of math/big's trial-division and
// Baillie-PSW pre-check at n==0) matches the "≥ 2 rounds" floor spec.md
// §4.1 calls for.
const MillerRabinRounds = 2

// ProbablyPrime reports whether x passes an odd probable-prime test.
func ProbablyPrime(x *big.Int) bool {
	return x.ProbablyPrime(MillerRabinRounds)
}

// IsOdd reports whether x is odd.
func IsOdd(x *big.Int) bool {
	return x.Bit(0) == 1
}

// Mod returns the canonical non-negative residue of x mod m (m > 0).
func Mod(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	return r
}

// DivMod returns (floor(x/y), x mod y) for y > 0, matching Python's //, %
// semantics that the reference implementation relies on for quotient
// openings (§4.9 step 11).
func DivMod(x, y *big.Int) (q, r *big.Int) {
	q = new(big.Int)
	r = new(big.Int)
	q.DivMod(x, y, r)
	return q, r
}
