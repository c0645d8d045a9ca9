package rsagroup

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPowGHHomomorphicProperty checks powgh(e1,e2)*powgh(f1,f2) ==
// powgh(e1+f1, e2+f2) over many random exponent pairs — the homomorphism
// the prover/verifier's z = chal*x + r response scheme (spec.md §4.8) relies
// on.
func TestPowGHHomomorphicProperty(t *testing.T) {
	g, err := New(big.NewInt(1022117), 2, 3, 0, 2048, 512)
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("powgh is additively homomorphic in both exponents", prop.ForAll(
		func(e1, e2, f1, f2 int64) bool {
			a, err := g.PowGH(big.NewInt(e1), big.NewInt(e2))
			if err != nil {
				return false
			}
			b, err := g.PowGH(big.NewInt(f1), big.NewInt(f2))
			if err != nil {
				return false
			}
			lhs := g.Reduce(g.Mul(a, b))

			sum1 := new(big.Int).Add(big.NewInt(e1), big.NewInt(f1))
			sum2 := new(big.Int).Add(big.NewInt(e2), big.NewInt(f2))
			rhs, err := g.PowGH(sum1, sum2)
			if err != nil {
				return false
			}

			return lhs.Cmp(rhs) == 0
		},
		gen.Int64Range(0, 1<<16),
		gen.Int64Range(0, 1<<16),
		gen.Int64Range(0, 1<<16),
		gen.Int64Range(0, 1<<16),
	))

	properties.TestingRun(t)
}
