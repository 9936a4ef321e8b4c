// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derivation

import (
	"encoding/hex"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

// Root key for the golden vectors: the public key of the private scalar
// 0x1111...11, generated once with a reference implementation.
const testRootKeyHex = "4f355bdcb7cc0af728ef3cceb9615d90684bb5b2ca5f859ab0f0b704075871aa385b6b1b8ead809ca67454d9683fcf2ba03456d6fe2c4abe2b07f0fbdbb2f1c1"

const testPredecessor = "BGE2JNwa5XiBSkDsi6pRPWoBLCvV2X9NblGx187cUyot"

func TestEpsilonGolden(t *testing.T) {
	require := require.New(t)

	epsilon := Epsilon(testPredecessor, ResponsePath)
	require.Equal(
		"398ead2e17590fd70b5d832c5357a6178ae5db2b29341af313df0e590458c743",
		hex.EncodeToString(epsilon[:]),
	)
}

func TestDeriveAddressGolden(t *testing.T) {
	root := hex64(t, testRootKeyHex)

	tests := []struct {
		name        string
		predecessor string
		path        string
		childPub    string
		addr        string
	}{
		{
			name:        "response path",
			predecessor: testPredecessor,
			path:        ResponsePath,
			childPub:    "4fc7aafdc48d65de5fd761844f9c2ca26984d142408147ef41edf9de8b83b7d4c2d6bb1cea6db6ed64c1e4fd9593b33492f94959a1a826bf70e7856a6c48624f",
			addr:        "948eff52f6a8e02e64afffbf162e20a4aacd2191",
		},
		{
			name:        "root path",
			predecessor: "vault-user-1",
			path:        RootPath,
			addr:        "e2fd3127dba45b4849d433759ee01ad9f4e8616c",
		},
	}

	for _, backend := range []GeneratorMultiplier{Recovery{}, Native{}} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				require := require.New(t)

				if tt.childPub != "" {
					child, err := ChildPublicKey(&root, tt.predecessor, tt.path, backend)
					require.NoError(err)
					require.Equal(tt.childPub, hex.EncodeToString(child[:]))
				}

				addr, err := DeriveAddress(&root, tt.predecessor, tt.path, backend)
				require.NoError(err)
				require.Equal(tt.addr, hex.EncodeToString(addr[:]))
			})
		}
	}
}

func TestDeriveAddressDeterministic(t *testing.T) {
	require := require.New(t)

	root := hex64(t, testRootKeyHex)
	a, err := DeriveAddress(&root, testPredecessor, ResponsePath, Recovery{})
	require.NoError(err)
	b, err := DeriveAddress(&root, testPredecessor, ResponsePath, Recovery{})
	require.NoError(err)
	require.Equal(a, b)

	// distinct paths produce distinct addresses
	c, err := DeriveAddress(&root, testPredecessor, RootPath, Recovery{})
	require.NoError(err)
	require.NotEqual(a, c)
}

func TestDeriveAddressRejectsOffCurveRoot(t *testing.T) {
	require := require.New(t)

	var bogus [64]byte
	bogus[0] = 0xff
	_, err := DeriveAddress(&bogus, testPredecessor, ResponsePath, Native{})
	require.ErrorIs(err, ErrInvalidPoint)
}

func TestVaultAuthorityDeterministic(t *testing.T) {
	require := require.New(t)

	programID := ids.GenerateTestID()
	user := ids.GenerateTestID()

	require.Equal(VaultAuthority(programID, user), VaultAuthority(programID, user))
	require.NotEqual(VaultAuthority(programID, user), VaultAuthority(programID, ids.GenerateTestID()))
	require.NotEqual(VaultAuthority(programID, user), GlobalVaultAuthority(programID))
	require.Equal(GlobalVaultAuthority(programID), GlobalVaultAuthority(programID))
}
