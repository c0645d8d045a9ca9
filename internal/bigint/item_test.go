package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeItemRoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(65535),
		new(big.Int).Neg(big.NewInt(65535)),
	}
	var buf []byte
	var err error
	for _, v := range values {
		buf, err = EncodeItem(buf, v)
		require.NoError(t, err)
	}

	rest := buf
	for _, want := range values {
		var got *big.Int
		got, rest, err = DecodeItem(rest)
		require.NoError(t, err)
		assert.Equal(t, 0, want.Cmp(got), "want %s got %s", want, got)
	}
	assert.Empty(t, rest)
}

func TestEncodeItemRejectsOversizedMagnitude(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), uint(MaxItemBytes+1)*8)
	_, err := EncodeItem(nil, huge)
	assert.Error(t, err)
}

func TestDecodeItemRejectsTruncatedBuffer(t *testing.T) {
	_, _, err := DecodeItem([]byte{0x02, 0x00, 0x01})
	assert.Error(t, err)
}

func TestEncodeItemSignBit(t *testing.T) {
	buf, err := EncodeItem(nil, big.NewInt(-1))
	require.NoError(t, err)
	// length prefix: 1 byte magnitude with the sign bit set.
	assert.Equal(t, byte(0x01), buf[0])
	assert.Equal(t, byte(0x80), buf[1])
}
