// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package derivation computes child secp256k1 public keys and their
// Ethereum-style addresses from the vault's MPC root key.
//
// The child key for a (predecessor, path) pair is
//
//	childPublicKey = rootPublicKey + epsilon·G
//	epsilon        = keccak256("<prefix>:<homeChain>:<predecessor>:<path>")
//
// so the engine can recompute, without any private material, the one
// address the MPC service is able to sign under for that pair.
package derivation

import (
	"fmt"

	"github.com/luxfi/crypto"
)

const (
	// epsilonPrefix is the versioned domain-separation tag of the epsilon
	// derivation scheme. It must match the value used by the MPC signers;
	// changing it re-keys every derived address.
	epsilonPrefix = "sig.network v2.0.0 epsilon derivation"

	// HomeChainID is the CAIP-2 identifier of the chain hosting the vault
	// program, baked into every derivation path.
	HomeChainID = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"

	// ResponsePath is the path suffix under which the MPC service signs
	// response attestations for bidirectional sign requests.
	ResponsePath = "solana response key"

	// RootPath is the path used for vault-initiated signing. Withdrawals
	// are sent from the vault's own foreign-chain identity, not a
	// user-specific one.
	RootPath = "root"
)

// PathString returns the full derivation path string for a
// (predecessor, path) pair.
func PathString(predecessorID, path string) string {
	return fmt.Sprintf("%s:%s:%s:%s", epsilonPrefix, HomeChainID, predecessorID, path)
}

// Epsilon returns the scalar committing to a derivation path. The scalar is
// interpreted mod the curve order by the multiplication backends.
func Epsilon(predecessorID, path string) [32]byte {
	var epsilon [32]byte
	copy(epsilon[:], crypto.Keccak256([]byte(PathString(predecessorID, path))))
	return epsilon
}
