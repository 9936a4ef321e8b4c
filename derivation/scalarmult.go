// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derivation

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/luxfi/crypto"
)

var (
	ErrInvalidScalar = errors.New("scalar is zero mod curve order")
	ErrInvalidPoint  = errors.New("invalid curve point")

	// generatorX is G.x as a 32-byte big-endian value, shared by both
	// backends: the recovery backend uses it as the synthetic r component.
	generatorX [32]byte

	// G.y is even, so the synthetic signature always recovers with
	// recovery id 0.
	generatorYParity byte
)

func init() {
	params := secp256k1.S256().Params()
	params.Gx.FillBytes(generatorX[:])
	generatorYParity = byte(params.Gy.Bit(0))
}

// GeneratorMultiplier computes k·G on secp256k1, returning the affine point
// as 64 uncompressed bytes (x ∥ y).
//
// Two behaviourally identical implementations exist. Recovery abuses the
// ecrecover primitive to get the multiplication at the cost of a single
// recovery call; Native performs a direct scalar-base multiplication with
// the curve library. Recovery mirrors what the on-chain verifier does on
// hosts where ecrecover is hardware-priced and a field-arithmetic loop is
// not affordable.
type GeneratorMultiplier interface {
	ScalarBaseMult(k [32]byte) ([64]byte, error)
}

// Recovery computes k·G through the signature-recovery primitive.
//
// Ecrecover solves Q = r⁻¹·(s·R − z·G). With message hash z = 0, r = G.x
// and s = r·k mod n, the equation collapses to Q = r⁻¹·(r·k·G) = k·G.
type Recovery struct{}

// Native computes k·G with the curve library's scalar-base multiplication.
type Native struct{}

var (
	_ GeneratorMultiplier = Recovery{}
	_ GeneratorMultiplier = Native{}
)

func (Recovery) ScalarBaseMult(k [32]byte) ([64]byte, error) {
	var out [64]byte

	var scalar secp256k1.ModNScalar
	scalar.SetBytes(&k)
	if scalar.IsZero() {
		return out, ErrInvalidScalar
	}

	var r secp256k1.ModNScalar
	r.SetBytes(&generatorX)

	s := new(secp256k1.ModNScalar).Mul2(&r, &scalar)
	sBytes := s.Bytes()

	sig := make([]byte, 65)
	copy(sig[:32], generatorX[:])
	copy(sig[32:64], sBytes[:])
	sig[64] = generatorYParity

	var zeroHash [32]byte
	pub, err := crypto.Ecrecover(zeroHash[:], sig)
	if err != nil {
		return out, ErrInvalidPoint
	}

	// Ecrecover returns the point uncompressed with a 0x04 prefix.
	copy(out[:], pub[1:])
	return out, nil
}

func (Native) ScalarBaseMult(k [32]byte) ([64]byte, error) {
	var out [64]byte

	var scalar secp256k1.ModNScalar
	scalar.SetBytes(&k)
	if scalar.IsZero() {
		return out, ErrInvalidScalar
	}

	var point secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&scalar, &point)
	point.ToAffine()

	point.X.PutBytesUnchecked(out[:32])
	point.Y.PutBytesUnchecked(out[32:])
	return out, nil
}
