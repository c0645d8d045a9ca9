package goosig

import (
	"math/big"

	"github.com/kyokan/goosig/goosig/gooerr"
	"github.com/kyokan/goosig/internal/bigint"
)

// Signature is the fifteen-field proof spec.md §3/§6 defines, in wire
// order: C2, t, chal, ell, Aq, Bq, Cq, Dq, z_w, z_w2, z_s1, z_a, z_an,
// z_s1w, z_sa.
type Signature struct {
	C2   *big.Int
	T    *big.Int
	Chal *big.Int
	Ell  *big.Int
	Aq   *big.Int
	Bq   *big.Int
	Cq   *big.Int
	Dq   *big.Int
	Zw   *big.Int
	Zw2  *big.Int
	Zs1  *big.Int
	Za   *big.Int
	Zan  *big.Int
	Zs1w *big.Int
	Zsa  *big.Int
}

// fields returns the fifteen signature fields in fixed wire order.
func (s *Signature) fields() []*big.Int {
	return []*big.Int{
		s.C2, s.T, s.Chal, s.Ell,
		s.Aq, s.Bq, s.Cq, s.Dq,
		s.Zw, s.Zw2, s.Zs1, s.Za, s.Zan, s.Zs1w, s.Zsa,
	}
}

// Marshal encodes the signature as fifteen length-prefixed items, per
// spec.md §6.
func (s *Signature) Marshal() ([]byte, error) {
	var buf []byte
	var err error
	for _, f := range s.fields() {
		buf, err = bigint.EncodeItem(buf, f)
		if err != nil {
			return nil, gooerr.Wrap(gooerr.ValidationError, "encoding signature field", err)
		}
	}
	return buf, nil
}

// UnmarshalSignature decodes fifteen length-prefixed items from buf,
// failing if any item overflows MaxItemBytes or trailing bytes remain
// after the fifteenth item.
func UnmarshalSignature(buf []byte) (*Signature, error) {
	var vals [15]*big.Int
	rest := buf
	for i := range vals {
		var (
			v   *big.Int
			err error
		)
		v, rest, err = bigint.DecodeItem(rest)
		if err != nil {
			return nil, gooerr.Wrap(gooerr.ValidationError, "decoding signature field", err)
		}
		vals[i] = v
	}
	if len(rest) != 0 {
		return nil, gooerr.New(gooerr.ValidationError, "trailing bytes after signature")
	}
	return &Signature{
		C2: vals[0], T: vals[1], Chal: vals[2], Ell: vals[3],
		Aq: vals[4], Bq: vals[5], Cq: vals[6], Dq: vals[7],
		Zw: vals[8], Zw2: vals[9], Zs1: vals[10], Za: vals[11],
		Zan: vals[12], Zs1w: vals[13], Zsa: vals[14],
	}, nil
}
