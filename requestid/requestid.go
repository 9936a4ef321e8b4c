// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package requestid computes the deterministic commitment binding a sign
// request to its exact parameters. The vault recomputes the commitment at
// initiation time and rejects any caller-supplied ID that does not match;
// the MPC service independently derives the same ID to know what it is
// attesting to.
package requestid

import (
	"encoding/binary"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
)

// Args is the full tuple a request ID commits to.
type Args struct {
	// Sender is the string form of the authority the request is issued
	// under.
	Sender string
	// Payload is the canonical transaction bytes being committed to. For
	// EVM requests this is the signing payload itself; for Bitcoin it is
	// the explorer-order txid, which commits to the whole transaction.
	Payload []byte
	// CAIP2 identifies the destination chain.
	CAIP2      string
	KeyVersion uint32
	Path       string
	Algorithm  string
	Dest       string
	Params     string
}

// Compute hashes the packed tuple encoding. Fields are concatenated without
// length delimiters; the encoding is frozen byte-for-byte for compatibility
// with IDs already issued by deployed signers, ambiguity and all (see
// DESIGN.md).
func Compute(a Args) ids.ID {
	size := len(a.Sender) + len(a.Payload) + len(a.CAIP2) + 4 +
		len(a.Path) + len(a.Algorithm) + len(a.Dest) + len(a.Params)

	packed := make([]byte, 0, size)
	packed = append(packed, a.Sender...)
	packed = append(packed, a.Payload...)
	packed = append(packed, a.CAIP2...)
	packed = binary.BigEndian.AppendUint32(packed, a.KeyVersion)
	packed = append(packed, a.Path...)
	packed = append(packed, a.Algorithm...)
	packed = append(packed, a.Dest...)
	packed = append(packed, a.Params...)

	return ids.ID(crypto.Keccak256Hash(packed))
}
