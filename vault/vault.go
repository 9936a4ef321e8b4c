// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault implements the cross chain custodial vault: deposits
// into program controlled foreign chain addresses, an internal ledger
// of per user balances, and withdrawals settled by MPC signed
// transactions. Every operation runs atomically; buffered writes are
// committed only when the whole call succeeds.
package vault

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	safemath "github.com/luxfi/math"
	"github.com/luxfi/metric"

	"github.com/luxfi/chainvault/derivation"
	"github.com/luxfi/chainvault/requestid"
	"github.com/luxfi/chainvault/signer"
	"github.com/luxfi/chainvault/sigverify"
	"github.com/luxfi/chainvault/txbuilder/bitcoin"
	"github.com/luxfi/chainvault/txbuilder/evm"
)

const (
	keyVersion = 1

	algoECDSA   = "ECDSA"
	destEth     = "ethereum"
	destBitcoin = "bitcoin"

	callbackSchemaBool  = `"bool"`
	erc20ExplorerSchema = `[{"name":"","type":"bool","internalType":"bool"}]`
)

// errorMagic prefixes response payloads that signal an explicit signer
// side failure instead of a boolean result.
var errorMagic = [4]byte{0xDE, 0xAD, 0xBE, 0xEF}

// BTCDepositParams carries the caller supplied pieces of a Bitcoin
// deposit that are not part of the UTXO set itself.
type BTCDepositParams struct {
	LockTime    uint32 `serialize:"true" json:"lockTime"`
	CAIP2       string `serialize:"true" json:"caip2"`
	VaultScript []byte `serialize:"true" json:"vaultScript"`
}

// BTCWithdrawParams mirrors BTCDepositParams for withdrawals.
type BTCWithdrawParams struct {
	LockTime    uint32 `serialize:"true" json:"lockTime"`
	CAIP2       string `serialize:"true" json:"caip2"`
	VaultScript []byte `serialize:"true" json:"vaultScript"`
}

// Vault owns the ledger database and the dispatch channel to the MPC
// signer. Operations are serialized; the underlying version database
// buffers each operation's writes until commit.
type Vault struct {
	log       log.Logger
	metrics   *metrics
	signer    signer.Signer
	mul       derivation.GeneratorMultiplier
	programID ids.ID

	mu    sync.Mutex
	db    *versiondb.Database
	store *store
	now   func() time.Time
}

func New(
	db database.Database,
	s signer.Signer,
	programID ids.ID,
	mul derivation.GeneratorMultiplier,
	logger log.Logger,
	registerer metric.Registerer,
) (*Vault, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}

	vdb := versiondb.New(db)
	return &Vault{
		log:       logger,
		metrics:   m,
		signer:    s,
		mul:       mul,
		programID: programID,
		db:        vdb,
		store:     newStore(vdb),
		now:       time.Now,
	}, nil
}

// run executes op atomically: on error every buffered write is
// discarded, otherwise the batch is committed.
func (v *Vault) run(op func() error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := op(); err != nil {
		v.db.Abort()
		return err
	}
	return v.db.Commit()
}

// InitializeConfig stores the MPC root public key. It can be set only
// once.
func (v *Vault) InitializeConfig(rootPublicKey [64]byte) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err == nil {
			return ErrAlreadyInitialized
		} else if err != ErrNotInitialized {
			return err
		}
		if err := derivation.ValidatePoint(&rootPublicKey); err != nil {
			return err
		}
		v.log.Info("vault config initialized")
		return v.store.SetRootPublicKey(rootPublicKey)
	})
}

// UpdateConfig replaces the stored root key, for MPC key rotations.
// The config must have been initialized first.
func (v *Vault) UpdateConfig(rootPublicKey [64]byte) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err != nil {
			return err
		}
		if err := derivation.ValidatePoint(&rootPublicKey); err != nil {
			return err
		}
		v.log.Info("vault config updated")
		return v.store.SetRootPublicKey(rootPublicKey)
	})
}

// RootPublicKey returns the configured MPC root key.
func (v *Vault) RootPublicKey() ([64]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.RootPublicKey()
}

// RootSignerAddress returns the 20-byte address form of the root key,
// for deployments that pin the address rather than the point.
func (v *Vault) RootSignerAddress() (common.Address, error) {
	root, err := v.RootPublicKey()
	if err != nil {
		return common.Address{}, err
	}
	return derivation.Address(root), nil
}

// DepositERC20 opens a deposit: it rebuilds the unsigned transfer from
// the user's derived address, checks the supplied request id against
// the recomputed commitment, records the pending deposit, and
// dispatches the signing request.
func (v *Vault) DepositERC20(
	ctx context.Context,
	requestID ids.ID,
	user ids.ID,
	token common.Address,
	recipient common.Address,
	amount *uint256.Int,
	params evm.TxParams,
) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err != nil {
			return err
		}

		payload, caip2, err := evm.BuildERC20Transfer(token, recipient, amount, params)
		if err != nil {
			return err
		}

		authority := derivation.VaultAuthority(v.programID, user)
		path := user.String()
		computed := requestid.Compute(requestid.Args{
			Sender:     authority.String(),
			Payload:    payload,
			CAIP2:      caip2,
			KeyVersion: keyVersion,
			Path:       path,
			Algorithm:  algoECDSA,
			Dest:       destEth,
		})
		if computed != requestID {
			return ErrInvalidRequestID
		}

		if has, err := v.store.HasDeposit(requestID); err != nil {
			return err
		} else if has {
			return ErrDuplicateRequest
		}

		if err := v.store.PutDeposit(&PendingERC20Deposit{
			RequestID: requestID,
			Requester: user,
			Token:     token,
			Amount:    amount.Bytes32(),
			Path:      path,
		}); err != nil {
			return err
		}

		if err := v.recordHistory(user, false, TransferRecord{
			RequestID: requestID,
			Status:    StatusPending,
			Asset:     AssetERC20,
			Token:     token,
			Amount:    amount.Bytes32(),
			Timestamp: uint64(v.now().Unix()),
		}); err != nil {
			return err
		}

		if err := v.signer.RequestSignature(ctx, &signer.Request{
			RequestID:      requestID,
			Requester:      authority,
			Payload:        payload,
			CAIP2:          caip2,
			KeyVersion:     keyVersion,
			Path:           path,
			Algorithm:      algoECDSA,
			Dest:           destEth,
			ExplorerSchema: erc20ExplorerSchema,
			CallbackSchema: callbackSchemaBool,
		}); err != nil {
			return err
		}

		v.metrics.observe("deposit", AssetERC20)
		v.log.Info("erc20 deposit initiated",
			log.Stringer("requestID", requestID),
			log.Stringer("user", user),
		)
		return nil
	})
}

// ClaimERC20 settles a deposit against its attestation. A valid
// signature with a false result leaves the pending record open and
// returns ErrTransferFailed.
func (v *Vault) ClaimERC20(
	requestID ids.ID,
	output []byte,
	sig sigverify.Signature,
	foreignTx *common.Hash,
) error {
	return v.run(func() error {
		pending, err := v.store.GetDeposit(requestID)
		if err != nil {
			return err
		}
		deposit, ok := pending.(*PendingERC20Deposit)
		if !ok {
			return ErrWrongAsset
		}

		if err := v.verifyDepositResponse(requestID, deposit.Requester, output, sig); err != nil {
			return err
		}

		success, err := parseBool(output)
		if err != nil {
			return err
		}
		if !success {
			return ErrTransferFailed
		}

		balance, err := v.store.ERC20Balance(deposit.Requester, deposit.Token)
		if err != nil {
			return err
		}
		amount := new(uint256.Int).SetBytes(deposit.Amount[:])
		newBalance, overflow := new(uint256.Int).AddOverflow(balance, amount)
		if overflow {
			return ErrAmountOverflow
		}
		if err := v.store.SetERC20Balance(deposit.Requester, deposit.Token, newBalance); err != nil {
			return err
		}

		if err := v.store.DeleteDeposit(requestID); err != nil {
			return err
		}
		if err := v.setHistoryStatus(deposit.Requester, requestID, StatusCompleted, foreignTx); err != nil {
			return err
		}

		v.metrics.observe("claim", AssetERC20)
		v.log.Info("erc20 deposit claimed",
			log.Stringer("requestID", requestID),
			log.Stringer("user", deposit.Requester),
		)
		return nil
	})
}

// WithdrawERC20 opens a withdrawal: the balance is debited before the
// foreign transfer settles, and restored by CompleteWithdrawERC20 if
// that transfer fails.
func (v *Vault) WithdrawERC20(
	ctx context.Context,
	requestID ids.ID,
	user ids.ID,
	token common.Address,
	recipient common.Address,
	amount *uint256.Int,
	params evm.TxParams,
) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err != nil {
			return err
		}

		balance, err := v.store.ERC20Balance(user, token)
		if err != nil {
			return err
		}
		if balance.Lt(amount) {
			return ErrInsufficientBalance
		}

		payload, caip2, err := evm.BuildERC20Transfer(token, recipient, amount, params)
		if err != nil {
			return err
		}

		authority := derivation.GlobalVaultAuthority(v.programID)
		computed := requestid.Compute(requestid.Args{
			Sender:     authority.String(),
			Payload:    payload,
			CAIP2:      caip2,
			KeyVersion: keyVersion,
			Path:       derivation.RootPath,
			Algorithm:  algoECDSA,
			Dest:       destEth,
		})
		if computed != requestID {
			return ErrInvalidRequestID
		}

		if has, err := v.store.HasWithdrawal(requestID); err != nil {
			return err
		} else if has {
			return ErrDuplicateRequest
		}

		if err := v.store.SetERC20Balance(
			user, token, new(uint256.Int).Sub(balance, amount)); err != nil {
			return err
		}

		if err := v.store.PutWithdrawal(&PendingERC20Withdrawal{
			RequestID: requestID,
			Requester: user,
			Token:     token,
			Recipient: recipient,
			Amount:    amount.Bytes32(),
			Path:      derivation.RootPath,
		}); err != nil {
			return err
		}

		if err := v.recordHistory(user, true, TransferRecord{
			RequestID: requestID,
			Status:    StatusPending,
			Asset:     AssetERC20,
			Token:     token,
			Recipient: recipient,
			Amount:    amount.Bytes32(),
			Timestamp: uint64(v.now().Unix()),
		}); err != nil {
			return err
		}

		if err := v.signer.RequestSignature(ctx, &signer.Request{
			RequestID:      requestID,
			Requester:      authority,
			Payload:        payload,
			CAIP2:          caip2,
			KeyVersion:     keyVersion,
			Path:           derivation.RootPath,
			Algorithm:      algoECDSA,
			Dest:           destEth,
			ExplorerSchema: erc20ExplorerSchema,
			CallbackSchema: callbackSchemaBool,
		}); err != nil {
			return err
		}

		v.metrics.observe("withdraw", AssetERC20)
		v.log.Info("erc20 withdrawal initiated",
			log.Stringer("requestID", requestID),
			log.Stringer("user", user),
		)
		return nil
	})
}

// CompleteWithdrawERC20 settles a withdrawal. Failure responses, both
// an explicit error frame and a false result, refund the debited
// amount.
func (v *Vault) CompleteWithdrawERC20(
	requestID ids.ID,
	output []byte,
	sig sigverify.Signature,
	foreignTx *common.Hash,
) error {
	return v.run(func() error {
		pending, err := v.store.GetWithdrawal(requestID)
		if err != nil {
			return err
		}
		withdrawal, ok := pending.(*PendingERC20Withdrawal)
		if !ok {
			return ErrWrongAsset
		}

		if err := v.verifyWithdrawalResponse(requestID, output, sig); err != nil {
			return err
		}

		refund, err := parseOutcome(output)
		if err != nil {
			return err
		}

		status := StatusCompleted
		if refund {
			balance, err := v.store.ERC20Balance(withdrawal.Requester, withdrawal.Token)
			if err != nil {
				return err
			}
			amount := new(uint256.Int).SetBytes(withdrawal.Amount[:])
			newBalance, overflow := new(uint256.Int).AddOverflow(balance, amount)
			if overflow {
				return ErrAmountOverflow
			}
			if err := v.store.SetERC20Balance(
				withdrawal.Requester, withdrawal.Token, newBalance); err != nil {
				return err
			}
			status = StatusFailed
			v.metrics.refunds.Inc()
		}

		if err := v.store.DeleteWithdrawal(requestID); err != nil {
			return err
		}
		if err := v.setHistoryStatus(withdrawal.Requester, requestID, status, foreignTx); err != nil {
			return err
		}

		v.metrics.observe("complete", AssetERC20)
		v.log.Info("erc20 withdrawal completed",
			log.Stringer("requestID", requestID),
			log.Stringer("user", withdrawal.Requester),
			log.String("status", status.String()),
		)
		return nil
	})
}

// DepositBTC opens a Bitcoin deposit. The request id commits to the
// display-order txid of the rebuilt transaction, while the PSBT is what
// gets dispatched for signing.
func (v *Vault) DepositBTC(
	ctx context.Context,
	requestID ids.ID,
	user ids.ID,
	inputs []bitcoin.Input,
	outputs []bitcoin.Output,
	params BTCDepositParams,
) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err != nil {
			return err
		}

		tx, vaultValue, err := bitcoin.BuildDepositTx(
			inputs, outputs, params.VaultScript, params.LockTime)
		if err != nil {
			return err
		}

		authority := derivation.VaultAuthority(v.programID, user)
		path := user.String()
		computed := requestid.Compute(requestid.Args{
			Sender:     authority.String(),
			Payload:    tx.ExplorerTxID[:],
			CAIP2:      params.CAIP2,
			KeyVersion: keyVersion,
			Path:       path,
			Algorithm:  algoECDSA,
			Dest:       destBitcoin,
		})
		if computed != requestID {
			return ErrInvalidRequestID
		}

		if has, err := v.store.HasDeposit(requestID); err != nil {
			return err
		} else if has {
			return ErrDuplicateRequest
		}

		if err := v.store.PutDeposit(&PendingBTCDeposit{
			RequestID: requestID,
			Requester: user,
			Amount:    vaultValue,
			Path:      path,
		}); err != nil {
			return err
		}

		if err := v.recordHistory(user, false, TransferRecord{
			RequestID: requestID,
			Status:    StatusPending,
			Asset:     AssetBTC,
			Amount:    uint256.NewInt(vaultValue).Bytes32(),
			Timestamp: uint64(v.now().Unix()),
		}); err != nil {
			return err
		}

		if err := v.signer.RequestSignature(ctx, &signer.Request{
			RequestID:      requestID,
			Requester:      authority,
			Payload:        tx.PSBT,
			CAIP2:          params.CAIP2,
			KeyVersion:     keyVersion,
			Path:           path,
			Algorithm:      algoECDSA,
			Dest:           destBitcoin,
			ExplorerSchema: callbackSchemaBool,
			CallbackSchema: callbackSchemaBool,
		}); err != nil {
			return err
		}

		v.metrics.observe("deposit", AssetBTC)
		v.log.Info("btc deposit initiated",
			log.Stringer("requestID", requestID),
			log.Stringer("user", user),
			log.Uint64("vaultValue", vaultValue),
		)
		return nil
	})
}

// ClaimBTC settles a Bitcoin deposit against its attestation.
func (v *Vault) ClaimBTC(
	requestID ids.ID,
	output []byte,
	sig sigverify.Signature,
	foreignTx *common.Hash,
) error {
	return v.run(func() error {
		pending, err := v.store.GetDeposit(requestID)
		if err != nil {
			return err
		}
		deposit, ok := pending.(*PendingBTCDeposit)
		if !ok {
			return ErrWrongAsset
		}

		if err := v.verifyDepositResponse(requestID, deposit.Requester, output, sig); err != nil {
			return err
		}

		success, err := parseBool(output)
		if err != nil {
			return err
		}
		if !success {
			return ErrTransferFailed
		}

		balance, err := v.store.BTCBalance(deposit.Requester)
		if err != nil {
			return err
		}
		newBalance, err := safemath.Add64(balance, deposit.Amount)
		if err != nil {
			return ErrAmountOverflow
		}
		if err := v.store.SetBTCBalance(deposit.Requester, newBalance); err != nil {
			return err
		}

		if err := v.store.DeleteDeposit(requestID); err != nil {
			return err
		}
		if err := v.setHistoryStatus(deposit.Requester, requestID, StatusCompleted, foreignTx); err != nil {
			return err
		}

		v.metrics.observe("claim", AssetBTC)
		v.log.Info("btc deposit claimed",
			log.Stringer("requestID", requestID),
			log.Stringer("user", deposit.Requester),
			log.Uint64("amount", deposit.Amount),
		)
		return nil
	})
}

// WithdrawBTC opens a Bitcoin withdrawal. Amount plus fee is debited
// up front; the fee is part of the refund if settlement fails.
func (v *Vault) WithdrawBTC(
	ctx context.Context,
	requestID ids.ID,
	user ids.ID,
	inputs []bitcoin.Input,
	amount uint64,
	fee uint64,
	recipientScript []byte,
	params BTCWithdrawParams,
) error {
	return v.run(func() error {
		if _, err := v.store.RootPublicKey(); err != nil {
			return err
		}

		totalDebit, err := safemath.Add64(amount, fee)
		if err != nil {
			return ErrAmountOverflow
		}
		balance, err := v.store.BTCBalance(user)
		if err != nil {
			return err
		}
		if balance < totalDebit {
			return ErrInsufficientBalance
		}

		tx, _, err := bitcoin.BuildWithdrawalTx(
			inputs, amount, fee, recipientScript, params.VaultScript, params.LockTime)
		if err != nil {
			return err
		}

		authority := derivation.GlobalVaultAuthority(v.programID)
		computed := requestid.Compute(requestid.Args{
			Sender:     authority.String(),
			Payload:    tx.ExplorerTxID[:],
			CAIP2:      params.CAIP2,
			KeyVersion: keyVersion,
			Path:       derivation.RootPath,
			Algorithm:  algoECDSA,
			Dest:       destBitcoin,
		})
		if computed != requestID {
			return ErrInvalidRequestID
		}

		if has, err := v.store.HasWithdrawal(requestID); err != nil {
			return err
		} else if has {
			return ErrDuplicateRequest
		}

		if err := v.store.SetBTCBalance(user, balance-totalDebit); err != nil {
			return err
		}

		if err := v.store.PutWithdrawal(&PendingBTCWithdrawal{
			RequestID: requestID,
			Requester: user,
			Amount:    amount,
			Fee:       fee,
			Path:      derivation.RootPath,
		}); err != nil {
			return err
		}

		if err := v.recordHistory(user, true, TransferRecord{
			RequestID: requestID,
			Status:    StatusPending,
			Asset:     AssetBTC,
			Amount:    uint256.NewInt(amount).Bytes32(),
			Timestamp: uint64(v.now().Unix()),
		}); err != nil {
			return err
		}

		if err := v.signer.RequestSignature(ctx, &signer.Request{
			RequestID:      requestID,
			Requester:      authority,
			Payload:        tx.PSBT,
			CAIP2:          params.CAIP2,
			KeyVersion:     keyVersion,
			Path:           derivation.RootPath,
			Algorithm:      algoECDSA,
			Dest:           destBitcoin,
			ExplorerSchema: callbackSchemaBool,
			CallbackSchema: callbackSchemaBool,
		}); err != nil {
			return err
		}

		v.metrics.observe("withdraw", AssetBTC)
		v.log.Info("btc withdrawal initiated",
			log.Stringer("requestID", requestID),
			log.Stringer("user", user),
			log.Uint64("amount", amount),
			log.Uint64("fee", fee),
		)
		return nil
	})
}

// CompleteWithdrawBTC settles a Bitcoin withdrawal. A failure refunds
// amount plus fee, both of which were debited at initiation.
func (v *Vault) CompleteWithdrawBTC(
	requestID ids.ID,
	output []byte,
	sig sigverify.Signature,
	foreignTx *common.Hash,
) error {
	return v.run(func() error {
		pending, err := v.store.GetWithdrawal(requestID)
		if err != nil {
			return err
		}
		withdrawal, ok := pending.(*PendingBTCWithdrawal)
		if !ok {
			return ErrWrongAsset
		}

		if err := v.verifyWithdrawalResponse(requestID, output, sig); err != nil {
			return err
		}

		refund, err := parseOutcome(output)
		if err != nil {
			return err
		}

		status := StatusCompleted
		if refund {
			refundTotal, err := safemath.Add64(withdrawal.Amount, withdrawal.Fee)
			if err != nil {
				return ErrAmountOverflow
			}
			balance, err := v.store.BTCBalance(withdrawal.Requester)
			if err != nil {
				return err
			}
			newBalance, err := safemath.Add64(balance, refundTotal)
			if err != nil {
				return ErrAmountOverflow
			}
			if err := v.store.SetBTCBalance(withdrawal.Requester, newBalance); err != nil {
				return err
			}
			status = StatusFailed
			v.metrics.refunds.Inc()
		}

		if err := v.store.DeleteWithdrawal(requestID); err != nil {
			return err
		}
		if err := v.setHistoryStatus(withdrawal.Requester, requestID, status, foreignTx); err != nil {
			return err
		}

		v.metrics.observe("complete", AssetBTC)
		v.log.Info("btc withdrawal completed",
			log.Stringer("requestID", requestID),
			log.Stringer("user", withdrawal.Requester),
			log.String("status", status.String()),
		)
		return nil
	})
}

// ERC20Balance reads the ledger balance for (user, token).
func (v *Vault) ERC20Balance(user ids.ID, token common.Address) (*uint256.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.ERC20Balance(user, token)
}

// BTCBalance reads the ledger balance for user in satoshis.
func (v *Vault) BTCBalance(user ids.ID) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.BTCBalance(user)
}

// History returns the user's transfer rings, newest first.
func (v *Vault) History(user ids.ID) (*TransferHistory, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.History(user)
}

// verifyDepositResponse checks the attestation signature against the
// user's derived response key.
func (v *Vault) verifyDepositResponse(
	requestID ids.ID,
	user ids.ID,
	output []byte,
	sig sigverify.Signature,
) error {
	root, err := v.store.RootPublicKey()
	if err != nil {
		return err
	}
	expected, err := derivation.DepositSignerAddress(&root, v.programID, user, v.mul)
	if err != nil {
		return err
	}
	return sigverify.Verify(sigverify.ResponseHash(requestID, output), sig, expected)
}

// verifyWithdrawalResponse checks the attestation signature against the
// global vault response key.
func (v *Vault) verifyWithdrawalResponse(
	requestID ids.ID,
	output []byte,
	sig sigverify.Signature,
) error {
	root, err := v.store.RootPublicKey()
	if err != nil {
		return err
	}
	expected, err := derivation.WithdrawalSignerAddress(&root, v.programID, v.mul)
	if err != nil {
		return err
	}
	return sigverify.Verify(sigverify.ResponseHash(requestID, output), sig, expected)
}

func (v *Vault) recordHistory(user ids.ID, withdrawal bool, rec TransferRecord) error {
	history, err := v.store.History(user)
	if err != nil {
		return err
	}
	if withdrawal {
		history.AddWithdrawal(rec)
	} else {
		history.AddDeposit(rec)
	}
	return v.store.PutHistory(user, history)
}

func (v *Vault) setHistoryStatus(
	user ids.ID,
	requestID ids.ID,
	status TransferStatus,
	foreignTx *common.Hash,
) error {
	history, err := v.store.History(user)
	if err != nil {
		return err
	}
	// Records evicted from the ring are gone; that is not an error.
	if history.SetStatus(requestID, status, foreignTx) {
		return v.store.PutHistory(user, history)
	}
	return nil
}

// parseBool decodes a strict single byte boolean.
func parseBool(output []byte) (bool, error) {
	if len(output) != 1 || output[0] > 1 {
		return false, ErrInvalidOutput
	}
	return output[0] == 1, nil
}

// parseOutcome reports whether a completion response signals failure:
// either the explicit error frame or a false boolean.
func parseOutcome(output []byte) (bool, error) {
	if len(output) >= 4 && bytes.Equal(output[:4], errorMagic[:]) {
		return true, nil
	}
	success, err := parseBool(output)
	if err != nil {
		return false, err
	}
	return !success, nil
}
