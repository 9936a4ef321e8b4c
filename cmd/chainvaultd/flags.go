// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/pflag"

	"github.com/luxfi/chainvault/config"
)

const (
	ConfigKey           = "config"
	ListenAddrKey       = "listen-addr"
	DataDirKey          = "data-dir"
	ProgramIDKey        = "program-id"
	RootPublicKeyKey    = "root-public-key"
	LocalSignerKeyKey   = "local-signer-key"
	NativeScalarMultKey = "native-scalar-mult"
	LogLevelKey         = "log-level"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigKey, "", "Path to a JSON config file")
	flags.String(ListenAddrKey, "", "Address the RPC server listens on")
	flags.String(DataDirKey, "", "Directory the database is stored in")
	flags.String(ProgramIDKey, "", "Program id namespacing the vault authorities")
	flags.String(RootPublicKeyKey, "", "MPC root public key, 64 hex encoded bytes")
	flags.String(LocalSignerKeyKey, "", "Devnet signer private key, 32 hex encoded bytes")
	flags.Bool(NativeScalarMultKey, false, "Use the native scalar multiplication backend")
	flags.String(LogLevelKey, "", "Log level")
}

// ParseFlags loads the config file if one was given and applies any
// explicitly set flags over it.
func ParseFlags(flags *pflag.FlagSet, args []string) (config.Config, error) {
	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.DefaultConfig()
	if path, err := flags.GetString(ConfigKey); err != nil {
		return config.Config{}, err
	} else if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	stringFlags := []struct {
		key  string
		dest *string
	}{
		{ListenAddrKey, &cfg.ListenAddr},
		{DataDirKey, &cfg.DataDir},
		{ProgramIDKey, &cfg.ProgramID},
		{RootPublicKeyKey, &cfg.RootPublicKey},
		{LocalSignerKeyKey, &cfg.LocalSignerKey},
		{LogLevelKey, &cfg.LogLevel},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.key) {
			continue
		}
		value, err := flags.GetString(f.key)
		if err != nil {
			return config.Config{}, err
		}
		*f.dest = value
	}
	if flags.Changed(NativeScalarMultKey) {
		native, err := flags.GetBool(NativeScalarMultKey)
		if err != nil {
			return config.Config{}, err
		}
		cfg.UseNativeScalarMult = native
	}

	return cfg, cfg.Validate()
}
