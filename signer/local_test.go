// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signer

import (
	"bytes"
	"context"
	"testing"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/chainvault/derivation"
	"github.com/luxfi/chainvault/sigverify"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	key, err := secp256k1.ToPrivateKey(bytes.Repeat([]byte{0x11}, 32))
	require.NoError(t, err)
	return NewLocal(key, log.NewNoOpLogger())
}

func TestRootPublicKey(t *testing.T) {
	require := require.New(t)

	local := newTestLocal(t)
	rootPub, err := local.RootPublicKey()
	require.NoError(err)

	// The root point must parse as a valid curve point for derivation.
	_, err = derivation.ChildPublicKey(&rootPub, "any", derivation.RootPath, derivation.Native{})
	require.NoError(err)
}

func TestSignAsMatchesDerivedAddress(t *testing.T) {
	require := require.New(t)

	local := newTestLocal(t)
	rootPub, err := local.RootPublicKey()
	require.NoError(err)

	requester := ids.GenerateTestID()
	requestID := ids.GenerateTestID()
	output := []byte{0x01}

	sig, err := local.SignAs(requester.String(), derivation.ResponsePath, requestID, output)
	require.NoError(err)

	expected, err := derivation.DeriveAddress(
		&rootPub, requester.String(), derivation.ResponsePath, derivation.Recovery{})
	require.NoError(err)

	hash := sigverify.ResponseHash(requestID, output)
	require.NoError(sigverify.Verify(hash, sig, expected))
}

func TestRespondLifecycle(t *testing.T) {
	require := require.New(t)

	local := newTestLocal(t)
	rootPub, err := local.RootPublicKey()
	require.NoError(err)

	requester := ids.GenerateTestID()
	req := &Request{
		RequestID:  ids.GenerateTestID(),
		Requester:  requester,
		Payload:    []byte{0xde, 0xad},
		CAIP2:      "eip155:11155111",
		KeyVersion: 1,
		Path:       derivation.ResponsePath,
		Algorithm:  "ECDSA",
		Dest:       "ethereum",
	}

	_, err = local.Respond(req.RequestID, []byte{0x01})
	require.ErrorIs(err, ErrUnknownRequest)

	require.NoError(local.RequestSignature(context.Background(), req))
	require.Equal(1, local.PendingCount())

	sig, err := local.Respond(req.RequestID, []byte{0x01})
	require.NoError(err)
	require.Zero(local.PendingCount())

	expected, err := derivation.DeriveAddress(
		&rootPub, requester.String(), derivation.ResponsePath, derivation.Native{})
	require.NoError(err)
	hash := sigverify.ResponseHash(req.RequestID, []byte{0x01})
	require.NoError(sigverify.Verify(hash, sig, expected))

	// A request is consumed by its response.
	_, err = local.Respond(req.RequestID, []byte{0x01})
	require.ErrorIs(err, ErrUnknownRequest)
}

func TestSignAsWrongPathFailsVerification(t *testing.T) {
	require := require.New(t)

	local := newTestLocal(t)
	rootPub, err := local.RootPublicKey()
	require.NoError(err)

	requester := ids.GenerateTestID()
	requestID := ids.GenerateTestID()

	sig, err := local.SignAs(requester.String(), derivation.RootPath, requestID, []byte{0x01})
	require.NoError(err)

	expected, err := derivation.DeriveAddress(
		&rootPub, requester.String(), derivation.ResponsePath, derivation.Native{})
	require.NoError(err)

	hash := sigverify.ResponseHash(requestID, []byte{0x01})
	err = sigverify.Verify(hash, sig, expected)
	require.ErrorIs(err, sigverify.ErrInvalidSignature)
}
