// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := ParseConfig(nil)
	require.NoError(err)
	require.Equal(DefaultConfig(), cfg)
}

func TestParseConfigOverrides(t *testing.T) {
	require := require.New(t)

	cfg, err := ParseConfig([]byte(`{"listenAddr":":8080","dataDir":"/tmp/cv"}`))
	require.NoError(err)
	require.Equal(":8080", cfg.ListenAddr)
	require.Equal("/tmp/cv", cfg.DataDir)
	// Untouched fields keep their defaults.
	require.Equal("info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "missing data dir",
			mutate: func(c *Config) { c.DataDir = "" },
			err:    ErrInvalidDataDir,
		},
		{
			name:   "short root key",
			mutate: func(c *Config) { c.RootPublicKey = "abcd" },
			err:    ErrInvalidRootKey,
		},
		{
			name:   "non hex root key",
			mutate: func(c *Config) { c.RootPublicKey = strings.Repeat("zz", 64) },
			err:    ErrInvalidRootKey,
		},
		{
			name:   "valid root key",
			mutate: func(c *Config) { c.RootPublicKey = strings.Repeat("ab", 64) },
		},
		{
			name:   "short signer key",
			mutate: func(c *Config) { c.LocalSignerKey = "abcd" },
			err:    ErrInvalidSignKey,
		},
		{
			name:   "valid signer key",
			mutate: func(c *Config) { c.LocalSignerKey = strings.Repeat("11", 32) },
		},
		{
			name: "root key and signer key together",
			mutate: func(c *Config) {
				c.RootPublicKey = strings.Repeat("ab", 64)
				c.LocalSignerKey = strings.Repeat("11", 32)
			},
			err: ErrConflictingKeys,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.err != nil {
				require.ErrorIs(err, tt.err)
			} else {
				require.NoError(err)
			}
		})
	}
}

func TestKeyAccessors(t *testing.T) {
	require := require.New(t)

	cfg := DefaultConfig()

	_, ok, err := cfg.RootPublicKeyBytes()
	require.NoError(err)
	require.False(ok)

	_, ok, err = cfg.LocalSignerKeyBytes()
	require.NoError(err)
	require.False(ok)

	cfg.RootPublicKey = strings.Repeat("ab", 64)
	key, ok, err := cfg.RootPublicKeyBytes()
	require.NoError(err)
	require.True(ok)
	require.Equal(byte(0xab), key[0])

	cfg.LocalSignerKey = strings.Repeat("11", 32)
	raw, ok, err := cfg.LocalSignerKeyBytes()
	require.NoError(err)
	require.True(ok)
	require.Len(raw, 32)
}
