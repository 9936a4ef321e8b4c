// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sigverify

import (
	"encoding/hex"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func hash32(s string) (out [32]byte) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("bad test vector: " + s)
	}
	copy(out[:], b)
	return out
}

// Vector produced by signing ResponseHash(requestID, output) with the
// derived child key of the reference root key used across the
// derivation tests.
var (
	testRequestID = ids.ID(hash32("95c47fe599c033fb809f997c6e02b3e866200baf9e54901f8fcbdcb897fa14e9"))
	testOutput    = []byte{0x01}
	testHashHex   = "ac055e75af2e7f9402417da0bb8e5be5c965203d3f6c157fd3e3b4164842c839"
	testSigner    = common.HexToAddress("948eff52f6a8e02e64afffbf162e20a4aacd2191")
)

func testSignature() Signature {
	return Signature{
		R: hash32("808f2a7329e34f059e3f4713744ef8dc11fc55784893bf59378190142132dd92"),
		S: hash32("0fe1569b7a9186d842d2275dc4caf67d39700391da6fc042efb2e08e42ac2ea4"),
		V: 0,
	}
}

func TestResponseHash(t *testing.T) {
	require := require.New(t)

	got := ResponseHash(testRequestID, testOutput)
	require.Equal(testHashHex, hex.EncodeToString(got[:]))

	// Same request, different output, must hash differently.
	other := ResponseHash(testRequestID, []byte{0x00})
	require.NotEqual(got, other)
}

func TestVerify(t *testing.T) {
	require := require.New(t)

	hash := ResponseHash(testRequestID, testOutput)
	require.NoError(Verify(hash, testSignature(), testSigner))
}

func TestVerifyRejections(t *testing.T) {
	hash := ResponseHash(testRequestID, testOutput)

	tests := []struct {
		name   string
		mutate func(*common.Hash, *Signature, *common.Address)
	}{
		{
			name: "recovery id out of range",
			mutate: func(_ *common.Hash, sig *Signature, _ *common.Address) {
				sig.V = 4
			},
		},
		{
			name: "flipped hash bit",
			mutate: func(h *common.Hash, _ *Signature, _ *common.Address) {
				h[0] ^= 0x01
			},
		},
		{
			name: "flipped r bit",
			mutate: func(_ *common.Hash, sig *Signature, _ *common.Address) {
				sig.R[31] ^= 0x01
			},
		},
		{
			name: "flipped s bit",
			mutate: func(_ *common.Hash, sig *Signature, _ *common.Address) {
				sig.S[31] ^= 0x01
			},
		},
		{
			name: "wrong recovery id",
			mutate: func(_ *common.Hash, sig *Signature, _ *common.Address) {
				sig.V ^= 0x01
			},
		},
		{
			name: "wrong expected address",
			mutate: func(_ *common.Hash, _ *Signature, addr *common.Address) {
				addr[19] ^= 0x01
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			h := hash
			sig := testSignature()
			addr := testSigner
			tt.mutate(&h, &sig, &addr)

			err := Verify(h, sig, addr)
			require.ErrorIs(err, ErrInvalidSignature)
		})
	}
}
