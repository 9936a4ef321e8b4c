// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derivation

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/crypto"
)

// ChildPublicKey offsets the root public key by Epsilon(predecessor, path)·G.
// The root key is 64 uncompressed bytes (x ∥ y, no 0x04 prefix) and is
// validated to be on the curve.
func ChildPublicKey(rootKey *[64]byte, predecessorID, path string, mul GeneratorMultiplier) ([64]byte, error) {
	var out [64]byte

	rootPoint, err := parsePoint(rootKey)
	if err != nil {
		return out, err
	}

	epsilon := Epsilon(predecessorID, path)
	epsilonG, err := mul.ScalarBaseMult(epsilon)
	if err != nil {
		return out, err
	}
	epsilonPoint, err := parsePoint(&epsilonG)
	if err != nil {
		return out, err
	}

	var j1, j2, sum secp256k1.JacobianPoint
	rootPoint.AsJacobian(&j1)
	epsilonPoint.AsJacobian(&j2)
	secp256k1.AddNonConst(&j1, &j2, &sum)
	if sum.Z.IsZero() {
		// root = -epsilon·G, the sum is the point at infinity
		return out, ErrInvalidPoint
	}
	sum.ToAffine()

	sum.X.PutBytesUnchecked(out[:32])
	sum.Y.PutBytesUnchecked(out[32:])
	return out, nil
}

// Address hashes an uncompressed public key to its 20-byte chain-native
// address: keccak256(x ∥ y)[12:].
func Address(pub [64]byte) common.Address {
	return common.BytesToAddress(crypto.Keccak256(pub[:])[12:])
}

// DeriveAddress is ChildPublicKey followed by Address.
func DeriveAddress(rootKey *[64]byte, predecessorID, path string, mul GeneratorMultiplier) (common.Address, error) {
	child, err := ChildPublicKey(rootKey, predecessorID, path, mul)
	if err != nil {
		return common.Address{}, err
	}
	return Address(child), nil
}

// ValidatePoint checks that pub is a point on the curve.
func ValidatePoint(pub *[64]byte) error {
	_, err := parsePoint(pub)
	return err
}

func parsePoint(raw *[64]byte) (*secp256k1.PublicKey, error) {
	uncompressed := make([]byte, 65)
	uncompressed[0] = 0x04
	copy(uncompressed[1:], raw[:])

	pub, err := secp256k1.ParsePubKey(uncompressed)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return pub, nil
}
