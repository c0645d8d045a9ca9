package drbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedIsDeterministic(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	p1 := Seed(key)
	p2 := Seed(key)

	assert.Equal(t, p1.GetRandBits(128), p2.GetRandBits(128))
}

func TestGetRandBitsDeterministicSequence(t *testing.T) {
	var key [32]byte
	p1 := Seed(key)
	p2 := Seed(key)

	for _, n := range []int{128, 128, 64, 300, 1} {
		assert.Equal(t, p1.GetRandBits(n), p2.GetRandBits(n))
	}
}

func TestGetRandBitsRange(t *testing.T) {
	var key [32]byte
	key[0] = 0x42
	p := Seed(key)

	for i := 0; i < 50; i++ {
		v := p.GetRandBits(17)
		assert.True(t, v.Sign() >= 0)
		assert.True(t, v.BitLen() <= 17)
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	var k1, k2 [32]byte
	k2[0] = 0x01

	v1 := Seed(k1).GetRandBits(256)
	v2 := Seed(k2).GetRandBits(256)
	assert.NotEqual(t, v1, v2)
}
