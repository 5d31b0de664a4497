package bbs

import (
	"crypto/rand"
	"io"

	bls12381 "github.com/kilic/bls12-381"
)

// KeyPair holds the wire encodings of a BBS key pair: a 32-octet secret
// scalar and the 96-octet compressed G2 public key.
type KeyPair struct {
	PublicKey  []byte `json:"publicKey"`
	PrivateKey []byte `json:"privateKey"`
}

// Keygen derives a secret key from at least 32 octets of key material.
// keyInfo may be nil; a nil keyDST selects the suite's default key
// generation tag.
func (s *Suite) Keygen(keyMaterial, keyInfo, keyDST []byte) ([]byte, error) {
	if len(keyMaterial) < 32 || len(keyInfo) > 65535 {
		return nil, ErrOperation
	}
	if keyDST == nil {
		keyDST = s.keyDST
	}
	infoLen := []byte{byte(len(keyInfo) >> 8), byte(len(keyInfo))}
	sk, err := s.hashToScalar(keyDST, keyMaterial, infoLen, keyInfo)
	if err != nil {
		return nil, err
	}
	return scalarBytes(sk), nil
}

// GenerateKeyPair draws 32 octets from the OS entropy source and derives a
// fresh key pair with the default key generation tag.
func (s *Suite) GenerateKeyPair() (*KeyPair, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		return nil, ErrOperation
	}
	defer zeroize(seed[:])

	sk, err := s.Keygen(seed[:], nil, nil)
	if err != nil {
		return nil, err
	}
	pk, err := s.SkToPk(sk)
	if err != nil {
		zeroize(sk)
		return nil, err
	}
	return &KeyPair{PublicKey: pk, PrivateKey: sk}, nil
}

// SkToPk returns the compressed public key W = SK * P2.
func (s *Suite) SkToPk(sk []byte) ([]byte, error) {
	x, err := decodeNonzeroScalar(sk)
	if err != nil {
		return nil, err
	}
	defer func() { *x = bls12381.Fr{} }()

	g2 := bls12381.NewG2()
	w := &bls12381.PointG2{}
	g2.MulScalar(w, g2.One(), x)
	return g2.ToCompressed(w), nil
}
