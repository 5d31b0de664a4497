package bbs

import (
	"math/big"

	bls12381 "github.com/kilic/bls12-381"
)

// frOrder is the order r of the BLS12-381 prime subgroup.
var frOrder, _ = new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// fpOrder is the modulus of the BLS12-381 base field.
var fpOrder, _ = new(big.Int).SetString("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)

// decodeScalar parses a 32-octet big-endian scalar, rejecting values
// outside [0, r-1].
func decodeScalar(in []byte) (*bls12381.Fr, error) {
	if len(in) != scalarLen {
		return nil, ErrOperation
	}
	if new(big.Int).SetBytes(in).Cmp(frOrder) >= 0 {
		return nil, ErrOperation
	}
	return bls12381.NewFr().FromBytes(in), nil
}

// decodeNonzeroScalar parses a 32-octet scalar in [1, r-1]. Used for secret
// keys and anywhere zero is forbidden.
func decodeNonzeroScalar(in []byte) (*bls12381.Fr, error) {
	s, err := decodeScalar(in)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return nil, ErrOperation
	}
	return s, nil
}

// reduceWide interprets in as a big-endian integer and reduces it modulo r.
// The boolean reports whether the reduced value is zero.
func reduceWide(in []byte) (*bls12381.Fr, bool) {
	n := new(big.Int).SetBytes(in)
	n.Mod(n, frOrder)
	var buf [scalarLen]byte
	n.FillBytes(buf[:])
	return bls12381.NewFr().FromBytes(buf[:]), n.Sign() == 0
}

// scalarBytes serializes a scalar as 32 big-endian octets.
func scalarBytes(s *bls12381.Fr) []byte {
	return s.ToBytes()
}

// i2osp8 encodes v as an 8-octet big-endian integer.
func i2osp8(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}
