// Package goosig is the public API of the RSA-factoring zero-knowledge
// proof-of-knowledge core: a prover demonstrates knowledge of the
// factorization of an RSA modulus committed to earlier, bound to an
// application message, and a verifier checks that proof against the public
// commitment and the message. Sign/Verify structuring (commit/challenge/
// response separation, an abort-and-retry Prove loop) is styled on
// voteproof/voteproof.go; the wire codec and algorithms are ported from
// goo.c.
package goosig

import (
	"math/big"

	"github.com/kyokan/goosig/goosig/gooerr"
	"github.com/kyokan/goosig/rsagroup"
)

// Context bundles one group's precomputed tables with the numeric
// constants governing a signing/verification session. Its lifetime must
// strictly exceed every Sign/Verify call that uses it (spec.md §5); it must
// not be shared across goroutines without external serialization.
type Context struct {
	Group  *rsagroup.Group
	Config Config
}

// Init validates and builds a Context for modulus n with generators g, h.
// modbits, when non-zero, must be in [1024, 4096] and selects the "big"
// comb pair sized for full protocol exponents; modbits == 0 selects the
// "tiny" pair, suitable only for verification against chal-sized
// exponents.
func Init(nBytes []byte, g, h int64, modbits int) (*Context, error) {
	if len(nBytes) == 0 {
		return nil, gooerr.New(gooerr.ValidationError, "modulus bytes must be non-empty")
	}
	n := new(big.Int).SetBytes(nBytes)
	if n.Sign() <= 0 {
		return nil, gooerr.New(gooerr.ValidationError, "modulus must be positive")
	}

	cfg := LoadConfig()
	grp, err := rsagroup.New(n, g, h, modbits, cfg.ExponentSize, cfg.MaxCombSize)
	if err != nil {
		logger.Errorw("goosig init failed", "error", err)
		return nil, gooerr.Wrap(gooerr.ValidationError, "group initialization failed", err)
	}

	logger.Infow("goosig context initialized", "modbits", modbits, "randBits", grp.RandBits)
	return &Context{Group: grp, Config: cfg}, nil
}
