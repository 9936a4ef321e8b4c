// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signer

import (
	"context"
	"errors"
	"sync"

	dsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/chainvault/derivation"
	"github.com/luxfi/chainvault/sigverify"
)

var (
	ErrUnknownRequest = errors.New("unknown signature request")
	ErrDerivedZeroKey = errors.New("derived key scalar is zero")

	_ Signer = (*Local)(nil)
)

// Local holds the root key in process and answers signature requests
// directly. It stands in for the MPC service on devnets and in tests;
// the derived child keys match what the derivation package predicts.
type Local struct {
	log log.Logger
	key *secp256k1.PrivateKey

	mu      sync.Mutex
	pending map[ids.ID]*Request
}

// NewLocal wraps an existing root key.
func NewLocal(key *secp256k1.PrivateKey, log log.Logger) *Local {
	return &Local{
		log:     log,
		key:     key,
		pending: make(map[ids.ID]*Request),
	}
}

// NewLocalRandom generates a fresh root key.
func NewLocalRandom(log log.Logger) (*Local, error) {
	key, err := secp256k1.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewLocal(key, log), nil
}

// RootPublicKey returns the uncompressed root point without the 0x04
// prefix, the form the derivation package consumes.
func (l *Local) RootPublicKey() ([64]byte, error) {
	var out [64]byte
	pub, err := dsecp.ParsePubKey(l.key.PublicKey().Bytes())
	if err != nil {
		return out, err
	}
	copy(out[:], pub.SerializeUncompressed()[1:])
	return out, nil
}

// RequestSignature records the request for a later Respond call.
func (l *Local) RequestSignature(_ context.Context, req *Request) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending[req.RequestID] = req
	l.log.Debug("signature requested",
		log.Stringer("requestID", req.RequestID),
		log.String("caip2", req.CAIP2),
		log.String("path", req.Path),
	)
	return nil
}

// PendingCount reports how many requests await a response.
func (l *Local) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Respond signs the response hash of a pending request with the child
// key derived from the request's requester and path, consuming the
// request.
func (l *Local) Respond(requestID ids.ID, output []byte) (sigverify.Signature, error) {
	l.mu.Lock()
	req, ok := l.pending[requestID]
	if ok {
		delete(l.pending, requestID)
	}
	l.mu.Unlock()

	if !ok {
		return sigverify.Signature{}, ErrUnknownRequest
	}
	// Responses are always signed with the requester's response key,
	// regardless of the path that steered the foreign chain key.
	return l.SignAs(req.Requester.String(), derivation.ResponsePath, requestID, output)
}

// SignAs signs the response hash for requestID and output with the
// child key of (predecessorID, path), without consulting the pending
// set. Tests use it to forge responses from the wrong key.
func (l *Local) SignAs(
	predecessorID string,
	path string,
	requestID ids.ID,
	output []byte,
) (sigverify.Signature, error) {
	child, err := l.childKey(predecessorID, path)
	if err != nil {
		return sigverify.Signature{}, err
	}

	hash := sigverify.ResponseHash(requestID, output)
	raw, err := child.SignHash(hash[:])
	if err != nil {
		return sigverify.Signature{}, err
	}

	var sig sigverify.Signature
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	sig.V = raw[64]
	return sig, nil
}

// childKey computes root + epsilon mod n as a signing key.
func (l *Local) childKey(predecessorID, path string) (*secp256k1.PrivateKey, error) {
	eps := derivation.Epsilon(predecessorID, path)

	var sum, root dsecp.ModNScalar
	sum.SetBytes(&eps)
	if overflow := root.SetByteSlice(l.key.Bytes()); overflow {
		return nil, ErrDerivedZeroKey
	}
	sum.Add(&root)
	if sum.IsZero() {
		return nil, ErrDerivedZeroKey
	}

	return secp256k1.ToPrivateKey(dsecp.NewPrivateKey(&sum).Serialize())
}
