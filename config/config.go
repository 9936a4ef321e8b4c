// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
)

var (
	ErrInvalidRootKey  = errors.New("root public key must be 64 hex encoded bytes")
	ErrInvalidDataDir  = errors.New("data directory must be set")
	ErrInvalidSignKey  = errors.New("local signer key must be 32 hex encoded bytes")
	ErrConflictingKeys = errors.New("rootPublicKey and localSignerKey are mutually exclusive")
)

// Config holds the daemon configuration.
type Config struct {
	// Network settings
	ListenAddr string `json:"listenAddr"` // Default: :9650

	// ProgramID namespaces the vault authorities; deployments with
	// different ids derive different signing keys.
	ProgramID string `json:"programId"`

	// RootPublicKey is the MPC root key the vault is initialized with,
	// 128 hex chars. Empty when the key is set later over RPC.
	RootPublicKey string `json:"rootPublicKey"`

	// LocalSignerKey enables the in-process devnet signer with the
	// given 32-byte private key instead of an external MPC service.
	LocalSignerKey string `json:"localSignerKey"`

	// Storage configuration
	DataDir string `json:"dataDir"`

	// UseNativeScalarMult selects the pure scalar-multiplication
	// derivation backend instead of the recovery based one.
	UseNativeScalarMult bool `json:"useNativeScalarMult"`

	// LogLevel is one of the levels the logging package understands.
	LogLevel string `json:"logLevel"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":9650",
		ProgramID:  "chainvault",
		DataDir:    "/var/lib/chainvault",
		LogLevel:   "info",
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrInvalidDataDir
	}
	if c.RootPublicKey != "" {
		raw, err := hex.DecodeString(c.RootPublicKey)
		if err != nil || len(raw) != 64 {
			return ErrInvalidRootKey
		}
	}
	if c.LocalSignerKey != "" {
		raw, err := hex.DecodeString(c.LocalSignerKey)
		if err != nil || len(raw) != 32 {
			return ErrInvalidSignKey
		}
	}
	// With a local signer the root key is derived from the signer key.
	if c.RootPublicKey != "" && c.LocalSignerKey != "" {
		return ErrConflictingKeys
	}
	return nil
}

// RootPublicKeyBytes decodes the configured root key. The second return
// reports whether a key was configured at all.
func (c *Config) RootPublicKeyBytes() ([64]byte, bool, error) {
	var key [64]byte
	if c.RootPublicKey == "" {
		return key, false, nil
	}
	raw, err := hex.DecodeString(c.RootPublicKey)
	if err != nil || len(raw) != 64 {
		return key, false, ErrInvalidRootKey
	}
	copy(key[:], raw)
	return key, true, nil
}

// LocalSignerKeyBytes decodes the devnet signer key. The second return
// reports whether one was configured.
func (c *Config) LocalSignerKeyBytes() ([]byte, bool, error) {
	if c.LocalSignerKey == "" {
		return nil, false, nil
	}
	raw, err := hex.DecodeString(c.LocalSignerKey)
	if err != nil || len(raw) != 32 {
		return nil, false, ErrInvalidSignKey
	}
	return raw, true, nil
}

// ParseConfig parses configuration from JSON bytes over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a config file. A missing path yields defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
