// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sigverify checks MPC response signatures against an expected
// signer address recovered from the derivation engine.
package sigverify

import (
	"errors"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
)

// ErrInvalidSignature covers every verification failure uniformly: a
// malformed recovery id, a failed recovery, and a recovered address that
// does not match. Callers cannot distinguish the cases.
var ErrInvalidSignature = errors.New("invalid signature")

// Signature is a recoverable ECDSA signature as returned by the MPC
// service.
type Signature struct {
	R [32]byte `serialize:"true" json:"r"`
	S [32]byte `serialize:"true" json:"s"`
	V byte     `serialize:"true" json:"recoveryId"`
}

// Bytes returns the 65-byte r ∥ s ∥ v form consumed by the recovery
// primitive.
func (s Signature) Bytes() []byte {
	out := make([]byte, 65)
	copy(out[:32], s.R[:])
	copy(out[32:64], s.S[:])
	out[64] = s.V
	return out
}

// ResponseHash binds a signature to both the original request and the
// specific attested outcome: keccak256(requestID ∥ serializedOutput).
func ResponseHash(requestID ids.ID, output []byte) common.Hash {
	data := make([]byte, 0, ids.IDLen+len(output))
	data = append(data, requestID[:]...)
	data = append(data, output...)
	return common.Hash(crypto.Keccak256Hash(data))
}

// Verify recovers the signer of hash and requires it to be expected.
func Verify(hash common.Hash, sig Signature, expected common.Address) error {
	if sig.V >= 4 {
		return ErrInvalidSignature
	}

	pub, err := crypto.Ecrecover(hash[:], sig.Bytes())
	if err != nil {
		return ErrInvalidSignature
	}

	// pub is uncompressed with a 0x04 prefix; the address is the keccak
	// of the raw point.
	recovered := common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])
	if recovered != expected {
		return ErrInvalidSignature
	}
	return nil
}
