// Package rsagroup implements the quotient group (Z/N)/{±1} described in
// spec.md §3-§4: a single concrete group type (styled on
// group/modsafeprime.go's ModPGroup/ModPElement — one struct per group,
// methods operating on *big.Int directly rather than a generic Element
// interface) rather than a family of interchangeable curve groups, since
// this protocol has exactly one bespoke group with comb/wNAF internals that
// don't generalize across backends.
package rsagroup

import (
	"fmt"
	"math/big"

	"github.com/kyokan/goosig/internal/bigint"
	"github.com/kyokan/goosig/internal/comb"
	"github.com/kyokan/goosig/internal/wnaf"
)

// ChalBits is GOO_CHAL_BITS.
const ChalBits = 128

// MinModBits and MaxModBits bound the modbits hint accepted by New, per
// spec.md §6.
const (
	MinModBits = 1024
	MaxModBits = 4096
)

// Group bundles an RSA modulus, its two fixed small generators, and the
// comb tables needed to evaluate PowGH at every exponent width the protocol
// uses against them. Tables are built once at construction and never
// mutated, matching the "group context" lifetime spec.md §5 describes.
type Group struct {
	N  *big.Int
	Nh *big.Int // floor(N/2)
	G  *big.Int
	H  *big.Int

	RandBits int // ceil(log2 N) - 1: width of "small" exponents (masks, w, s1, ...)
	ModBits  int // the modbits hint New was given; 0 means "tiny" (verify-only)

	gSmall, hSmall *comb.Comb
	gBig, hBig     *comb.Comb // nil unless ModBits != 0
	gTiny, hTiny   *comb.Comb // nil if gBig/hBig are present

	maxCombSize int
}

// New builds a group context for modulus n with generators g, h. modbits,
// when non-zero, must be in [MinModBits, MaxModBits] and selects the "big"
// comb pair sized for full protocol exponents; modbits == 0 selects the
// "tiny" pair sized only for 128-bit challenge-scale exponents, suitable
// for verification-only contexts.
func New(n *big.Int, g, h int64, modbits, exponentSize, maxCombSize int) (*Group, error) {
	if modbits != 0 && (modbits < MinModBits || modbits > MaxModBits) {
		return nil, fmt.Errorf("rsagroup: modbits %d out of range [%d, %d]", modbits, MinModBits, MaxModBits)
	}

	grp := &Group{
		N:           new(big.Int).Set(n),
		G:           big.NewInt(g),
		H:           big.NewInt(h),
		ModBits:     modbits,
		maxCombSize: maxCombSize,
	}
	grp.Nh = new(big.Int).Rsh(grp.N, 1)
	grp.RandBits = bigint.BitLen(n) - 1

	smallSpec, err := comb.ChooseSpec(grp.RandBits, maxCombSize)
	if err != nil {
		return nil, fmt.Errorf("rsagroup: small combspec: %w", err)
	}
	grp.gSmall = comb.Build(grp.G, grp.N, smallSpec, false)
	grp.hSmall = comb.Build(grp.H, grp.N, smallSpec, false)

	if modbits != 0 {
		// Full protocol exponents are the commitment exponents N and s
		// (max(modbits, exponentSize) bits) and the prover's quotient
		// openings floor((chal*x + r)/ell). Those stay below about 2x, and
		// the widest x is s*a (exponentSize + modbits bits) or w^2, a*N
		// (2*modbits bits), so max(modbits, exponentSize) + modbits bits
		// plus a carry margin covers all of them.
		fullBits := modbits
		if exponentSize > fullBits {
			fullBits = exponentSize
		}
		bigBits := fullBits + modbits + ChalBits + 64
		bigSpec, err := comb.ChooseSpec(bigBits, maxCombSize)
		if err != nil {
			return nil, fmt.Errorf("rsagroup: big combspec: %w", err)
		}
		grp.gBig = comb.Build(grp.G, grp.N, bigSpec, false)
		grp.hBig = comb.Build(grp.H, grp.N, bigSpec, false)
	} else {
		tinySpec, err := comb.ChooseSpec(ChalBits, maxCombSize)
		if err != nil {
			return nil, fmt.Errorf("rsagroup: tiny combspec: %w", err)
		}
		grp.gTiny = comb.Build(grp.G, grp.N, tinySpec, true)
		grp.hTiny = comb.Build(grp.H, grp.N, tinySpec, true)
	}

	return grp, nil
}

// Reduce returns the canonical representative of x in [0, Nh]: min(x, N-x).
func (g *Group) Reduce(x *big.Int) *big.Int {
	r := bigint.Mod(x, g.N)
	alt := new(big.Int).Sub(g.N, r)
	if alt.Cmp(r) < 0 {
		return alt
	}
	return r
}

// IsReduced reports whether x already lies in [0, Nh].
func (g *Group) IsReduced(x *big.Int) bool {
	return x.Sign() >= 0 && x.Cmp(g.Nh) <= 0
}

// Sqr returns x^2 mod N.
func (g *Group) Sqr(x *big.Int) *big.Int {
	return new(big.Int).Exp(x, big.NewInt(2), g.N)
}

// Mul returns x*y mod N.
func (g *Group) Mul(x, y *big.Int) *big.Int {
	r := new(big.Int).Mul(x, y)
	return r.Mod(r, g.N)
}

// Inv returns x^-1 mod N, failing (CryptoFailure, per spec.md §7) if x
// shares a factor with N.
func (g *Group) Inv(x *big.Int) (*big.Int, bool) {
	return bigint.Invert(x, g.N)
}

// Inv2 inverts b1 and b2 with a single modular inversion plus two
// multiplications, per spec.md §4.6.
func (g *Group) Inv2(b1, b2 *big.Int) (b1Inv, b2Inv *big.Int, ok bool) {
	invs, ok := g.batchInvert([]*big.Int{b1, b2})
	if !ok {
		return nil, nil, false
	}
	return invs[0], invs[1], true
}

// Inv5 inverts five values with a single modular inversion, per spec.md
// §4.6.
func (g *Group) Inv5(b1, b2, b3, b4, b5 *big.Int) (invs []*big.Int, ok bool) {
	return g.batchInvert([]*big.Int{b1, b2, b3, b4, b5})
}

// batchInvert inverts every element of bs with one call to Inv, using the
// standard running-product back-substitution trick.
func (g *Group) batchInvert(bs []*big.Int) ([]*big.Int, bool) {
	n := len(bs)
	prefix := make([]*big.Int, n)
	prefix[0] = new(big.Int).Mod(bs[0], g.N)
	for i := 1; i < n; i++ {
		prefix[i] = g.Mul(prefix[i-1], bs[i])
	}

	prodInv, ok := g.Inv(prefix[n-1])
	if !ok {
		return nil, false
	}

	invs := make([]*big.Int, n)
	acc := prodInv
	for i := n - 1; i > 0; i-- {
		invs[i] = g.Mul(acc, prefix[i-1])
		acc = g.Mul(acc, bs[i])
	}
	invs[0] = acc
	return invs, true
}

// pickPair returns the smallest comb pair (by bit budget) able to recode
// both e1 and e2, per spec.md §4.3's PowGH selection rule.
func (g *Group) pickPair(e1, e2 *big.Int) (*comb.Comb, *comb.Comb, error) {
	fits := func(c *comb.Comb) bool {
		return e1.BitLen() <= c.MaxBits && e2.BitLen() <= c.MaxBits
	}
	if fits(g.gSmall) {
		return g.gSmall, g.hSmall, nil
	}
	if g.gBig != nil && fits(g.gBig) {
		return g.gBig, g.hBig, nil
	}
	if g.gTiny != nil && fits(g.gTiny) {
		return g.gTiny, g.hTiny, nil
	}
	return nil, nil, fmt.Errorf("rsagroup: no comb pair admits exponents of bit length (%d, %d)", e1.BitLen(), e2.BitLen())
}

// PowGH evaluates g^e1 * h^e2 mod N, reduced into [0, Nh], using the
// smallest comb pair able to recode both exponents, per spec.md §4.3.
func (g *Group) PowGH(e1, e2 *big.Int) (*big.Int, error) {
	gc, hc, err := g.pickPair(e1, e2)
	if err != nil {
		return nil, err
	}
	gw, err := gc.ToCombExp(e1)
	if err != nil {
		return nil, err
	}
	hw, err := hc.ToCombExp(e2)
	if err != nil {
		return nil, err
	}
	return g.Reduce(comb.EvalPair(gc, hc, gw, hw)), nil
}

// Pow1 evaluates b^e mod N directly via a single modular exponentiation.
// Named for goo_group_pow, whose body is exactly mpz_powm(ret, b, e, n) —
// it takes a b_inv argument for call-site symmetry with pow2 but never
// reads it. This is the entry point spec.md §4.9 uses for the B/C
// commitments (base C2_inv or C1_inv, exponent r_w/r_a) and their quotient
// openings Bq/Cq.
func (g *Group) Pow1(b, e *big.Int) *big.Int {
	return new(big.Int).Exp(b, e, g.N)
}

// Pow2 evaluates b1^e1 * b2^e2 mod N via simultaneous windowed-NAF
// exponentiation, per spec.md §4.4. b1Inv/b2Inv must be the modular
// inverses of b1/b2.
func (g *Group) Pow2(b1, b1Inv, e1, b2, b2Inv, e2 *big.Int) *big.Int {
	t1 := wnaf.Precompute(b1, b1Inv, g.N)
	t2 := wnaf.Precompute(b2, b2Inv, g.N)
	return wnaf.Pow2(t1, e1, t2, e2, g.N)
}

// Recon computes pow2(b1,b1Inv,e1,b2,b2Inv,e2) * powgh(e3,e4), reduced into
// [0, Nh] — the verifier's four-base multi-exponentiation workhorse, per
// spec.md §4.5.
func (g *Group) Recon(b1, b1Inv, e1, b2, b2Inv, e2, e3, e4 *big.Int) (*big.Int, error) {
	p2 := g.Pow2(b1, b1Inv, e1, b2, b2Inv, e2)
	pgh, err := g.PowGH(e3, e4)
	if err != nil {
		return nil, err
	}
	return g.Reduce(g.Mul(p2, pgh)), nil
}
