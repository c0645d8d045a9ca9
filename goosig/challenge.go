package goosig

import (
	"crypto/rand"
	"math/big"

	"github.com/kyokan/goosig/goosig/gooerr"
	"github.com/kyokan/goosig/internal/bigint"
	"github.com/kyokan/goosig/internal/drbg"
)

// expandSPrime reproduces expand_sprime byte-for-byte (spec.md §9): sPrime
// is left-padded with zeros to exactly 32 bytes — regardless of its own
// length — and that padded value seeds the DRBG that then yields
// ExponentSize random bits as s.
func expandSPrime(sPrime []byte, exponentSize int) (s *big.Int, paddedKey [32]byte, err error) {
	if len(sPrime) > 32 {
		return nil, paddedKey, gooerr.New(gooerr.ValidationError, "seed exceeds 32 bytes")
	}
	copy(paddedKey[32-len(sPrime):], sPrime)
	p := drbg.Seed(paddedKey)
	s = p.GetRandBits(exponentSize)
	return s, paddedKey, nil
}

// Challenge draws a fresh 32-byte seed from the OS randomness source and
// produces the prover's prior commitment C1 = powgh(N, s) (reduced), where
// s = expand_sprime(s'). This is the prover-side pre-signature step of
// spec.md §6's challenge operation.
func (c *Context) Challenge() (sPrimeBytes []byte, c1Bytes []byte, err error) {
	sPrime := make([]byte, 32)
	if _, err := rand.Read(sPrime); err != nil {
		return nil, nil, gooerr.Wrap(gooerr.ResourceFailure, "reading system randomness", err)
	}

	s, _, err := expandSPrime(sPrime, c.Config.ExponentSize)
	if err != nil {
		return nil, nil, err
	}

	c1, err := c.Group.PowGH(c.Group.N, s)
	if err != nil {
		logger.Errorw("challenge commitment failed", "error", err)
		return nil, nil, gooerr.Wrap(gooerr.CryptoFailure, "computing commitment", err)
	}
	c1 = c.Group.Reduce(c1)

	size := bigint.ByteSize(c.Group.N)
	return sPrime, bigint.Pad(c1, size), nil
}
