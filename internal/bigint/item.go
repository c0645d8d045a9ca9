package bigint

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// signBit marks a negative magnitude in an item's length prefix, per the
// transcript/wire convention in spec.md §4.7/§6: the length is a
// little-endian uint16 whose high bit is OR-ed in when the integer is
// negative, leaving 15 bits (up to 32767) for the length itself, further
// capped at MaxItemBytes by this module.
const signBit = 0x8000

// EncodeItem appends x to buf as a little-endian u16 length (with the sign
// bit set for negative x) followed by the big-endian magnitude. It returns
// an error if the magnitude exceeds MaxItemBytes.
func EncodeItem(buf []byte, x *big.Int) ([]byte, error) {
	mag := new(big.Int).Abs(x).Bytes()
	if len(mag) > MaxItemBytes {
		return nil, fmt.Errorf("bigint: item magnitude %d bytes exceeds max %d", len(mag), MaxItemBytes)
	}
	length := uint16(len(mag))
	if x.Sign() < 0 {
		length |= signBit
	}
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], length)
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, mag...)
	return buf, nil
}

// DecodeItem reads one length-prefixed item from the front of buf and
// returns the decoded integer and the remaining bytes.
func DecodeItem(buf []byte) (*big.Int, []byte, error) {
	if len(buf) < 2 {
		return nil, nil, fmt.Errorf("bigint: truncated item length prefix")
	}
	length := binary.LittleEndian.Uint16(buf[:2])
	negative := length&signBit != 0
	size := int(length &^ signBit)
	if size > MaxItemBytes {
		return nil, nil, fmt.Errorf("bigint: item length %d exceeds max %d", size, MaxItemBytes)
	}
	buf = buf[2:]
	if len(buf) < size {
		return nil, nil, fmt.Errorf("bigint: truncated item magnitude")
	}
	x := new(big.Int).SetBytes(buf[:size])
	if negative {
		x.Neg(x)
	}
	return x, buf[size:], nil
}
