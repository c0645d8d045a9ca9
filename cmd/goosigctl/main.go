// Command goosigctl exercises the goosig core end to end: it generates a
// toy RSA modulus, runs challenge/sign/verify, and reports the result.
// It exists to drive the library manually and in integration tests, not as
// a production signing service.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/kyokan/goosig/goosig"
)

func main() {
	bits := flag.Int("bits", 1024, "bit length of each RSA prime factor")
	msg := flag.String("msg", "hello", "application message to sign")
	flag.Parse()

	if err := run(*bits, *msg); err != nil {
		fmt.Fprintln(os.Stderr, "goosigctl:", err)
		os.Exit(1)
	}
}

func run(bits int, msg string) error {
	p, err := rand.Prime(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generating p: %w", err)
	}
	q, err := rand.Prime(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generating q: %w", err)
	}
	n := new(big.Int).Mul(p, q)

	ctx, err := goosig.Init(n.Bytes(), 2, 3, n.BitLen())
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	sPrime, c1, err := ctx.Challenge()
	if err != nil {
		return fmt.Errorf("challenge: %w", err)
	}

	sig, err := ctx.Sign([]byte(msg), sPrime, c1, p, q)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	sigBytes, err := sig.Marshal()
	if err != nil {
		return fmt.Errorf("marshal signature: %w", err)
	}

	ok := ctx.Verify([]byte(msg), sigBytes, c1)
	fmt.Printf("verify: %v (signature size %d bytes)\n", ok, len(sigBytes))
	if !ok {
		os.Exit(2)
	}
	return nil
}
