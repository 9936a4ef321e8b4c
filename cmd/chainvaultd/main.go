// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// chainvaultd serves the cross-chain vault over JSON-RPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/chainvault/api"
	"github.com/luxfi/chainvault/config"
	"github.com/luxfi/chainvault/derivation"
	"github.com/luxfi/chainvault/signer"
	"github.com/luxfi/chainvault/vault"
)

var errNoRootKey = errors.New("either rootPublicKey or localSignerKey must be configured on first start")

func main() {
	c := &cobra.Command{
		Use:   "chainvaultd",
		Short: "Runs the cross-chain vault daemon",
		RunE:  runFunc,
	}
	AddFlags(c.Flags())

	if err := c.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}
	return run(c.Context(), cfg)
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger("chainvault")
	logger.Info("starting",
		log.String("listenAddr", cfg.ListenAddr),
		log.String("dataDir", cfg.DataDir),
		log.String("programID", cfg.ProgramID),
		log.String("logLevel", cfg.LogLevel),
	)

	db, err := badgerdb.New(
		filepath.Join(cfg.DataDir, "db"),
		nil, // configBytes - use default
		"",  // namespace
		nil, // metrics
	)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", log.Err(err))
		}
	}()

	var mul derivation.GeneratorMultiplier = derivation.Recovery{}
	if cfg.UseNativeScalarMult {
		mul = derivation.Native{}
	}

	// With a configured signer key the daemon runs the devnet signer in
	// process. Otherwise requests are emitted for the external MPC
	// service to pick up.
	var (
		vaultSigner signer.Signer
		local       *signer.Local
	)
	if keyBytes, ok, err := cfg.LocalSignerKeyBytes(); err != nil {
		return err
	} else if ok {
		key, err := secp256k1.ToPrivateKey(keyBytes)
		if err != nil {
			return err
		}
		local = signer.NewLocal(key, logger)
		vaultSigner = local
		logger.Info("using in-process devnet signer")
	} else {
		vaultSigner = signer.NewEmitter(logger)
	}

	programID := ids.ID(hash.ComputeHash256Array([]byte(cfg.ProgramID)))
	v, err := vault.New(db, vaultSigner, programID, mul, logger, metric.NewRegistry())
	if err != nil {
		return err
	}

	if err := initializeRootKey(v, local, cfg); err != nil {
		return err
	}

	server, err := api.NewServer(v, cfg.ListenAddr, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return server.Shutdown(context.Background())
	})
	return g.Wait()
}

// initializeRootKey stores the MPC root key on first start. Restarts
// with an already initialized database keep the stored key; a
// conflicting configured key is an error.
func initializeRootKey(v *vault.Vault, local *signer.Local, cfg config.Config) error {
	rootKey, ok, err := cfg.RootPublicKeyBytes()
	if err != nil {
		return err
	}
	if !ok && local != nil {
		rootKey, err = local.RootPublicKey()
		if err != nil {
			return err
		}
		ok = true
	}

	stored, err := v.RootPublicKey()
	switch {
	case err == nil:
		if ok && stored != rootKey {
			return errors.New("database was initialized with a different root public key")
		}
		return nil
	case err == vault.ErrNotInitialized:
		if !ok {
			return errNoRootKey
		}
		return v.InitializeConfig(rootKey)
	default:
		return err
	}
}
