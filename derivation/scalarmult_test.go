// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derivation

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func hex32(t *testing.T, s string) [32]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 32)
	var out [32]byte
	copy(out[:], raw)
	return out
}

func hex64(t *testing.T, s string) [64]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 64)
	var out [64]byte
	copy(out[:], raw)
	return out
}

// Reference points computed with an independent implementation of the
// curve arithmetic.
var scalarBaseMultVectors = []struct {
	name   string
	scalar string
	point  string
}{
	{
		name:   "one",
		scalar: "0000000000000000000000000000000000000000000000000000000000000001",
		point:  "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
	},
	{
		name:   "order minus one",
		scalar: "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		point:  "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798b7c52588d95c3b9aa25b0403f1eef75702e84bb7597aabe663b82f6f04ef2777",
	},
	{
		name:   "small scalar",
		scalar: "00000000000000000000000000000000000000000000000000000000deadbeef",
		point:  "76d2fdf1302d1fa9556f4df94ec84cefba6d482e54f47c6c2a238c1baa560f0eb754ac7e7a3e09c44184cb451a4f5fb557f32053eb015dffebb655b5cfd54d8a",
	},
	{
		name:   "random scalar a",
		scalar: "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d",
		point:  "e68acfc0253a10620dff706b0a1b1f1f5833ea3beb3bde2250d5f271f3563606672ebc45e0b7ea2e816ecb70ca03137b1c9476eec63d4632e990020b7b6fba39",
	},
	{
		name:   "random scalar b",
		scalar: "aa5e28d6a97a2479a65527f7290311a3624d4cc0fa1578598ee3c2613bf99522",
		point:  "34f9460f0e4f08393d192b3c5133a6ba099aa0ad9fd54ebccfacdfa239ff49c60b71ea9bd730fd8923f6d25a7a91e7dd7728a960686cb5a901bb419e0f2ca232",
	},
}

func TestScalarBaseMultVectors(t *testing.T) {
	for _, backend := range []GeneratorMultiplier{Recovery{}, Native{}} {
		for _, tt := range scalarBaseMultVectors {
			t.Run(tt.name, func(t *testing.T) {
				require := require.New(t)

				point, err := backend.ScalarBaseMult(hex32(t, tt.scalar))
				require.NoError(err)
				require.Equal(tt.point, hex.EncodeToString(point[:]))
			})
		}
	}
}

// The recovery backend must agree with the direct multiplication for
// arbitrary scalars, not just the fixed vectors.
func TestScalarBaseMultBackendsAgree(t *testing.T) {
	require := require.New(t)

	for i := 0; i < 32; i++ {
		var k [32]byte
		_, err := rand.Read(k[:])
		require.NoError(err)

		fast, err := Recovery{}.ScalarBaseMult(k)
		require.NoError(err)
		direct, err := Native{}.ScalarBaseMult(k)
		require.NoError(err)
		require.Equal(direct, fast)
	}
}

func TestScalarBaseMultZeroScalar(t *testing.T) {
	require := require.New(t)

	var zero [32]byte
	_, err := Recovery{}.ScalarBaseMult(zero)
	require.ErrorIs(err, ErrInvalidScalar)
	_, err = Native{}.ScalarBaseMult(zero)
	require.ErrorIs(err, ErrInvalidScalar)

	// the curve order reduces to zero as well
	order := hex32(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	_, err = Recovery{}.ScalarBaseMult(order)
	require.ErrorIs(err, ErrInvalidScalar)
}
