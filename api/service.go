// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the vault over JSON-RPC. Binary arguments travel
// as hex strings, ids in their canonical string form, and 256-bit
// amounts as decimal strings.
package api

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"

	"github.com/luxfi/chainvault/sigverify"
	"github.com/luxfi/chainvault/txbuilder/bitcoin"
	"github.com/luxfi/chainvault/txbuilder/evm"
	"github.com/luxfi/chainvault/vault"
)

var errBadLength = errors.New("hex value has wrong length")

// Service is the "vault" JSON-RPC namespace.
type Service struct {
	vault *vault.Vault
}

func NewService(v *vault.Vault) *Service {
	return &Service{vault: v}
}

// RegisterService mounts the service on an RPC server under "vault".
func RegisterService(server *rpc.Server, v *vault.Vault) error {
	return server.RegisterService(NewService(v), "vault")
}

type InitializeConfigArgs struct {
	// RootPublicKey is the uncompressed MPC root key, 128 hex chars.
	RootPublicKey string `json:"rootPublicKey"`
}

type SuccessReply struct {
	Success bool `json:"success"`
}

func (s *Service) InitializeConfig(_ *http.Request, args *InitializeConfigArgs, reply *SuccessReply) error {
	raw, err := hex.DecodeString(args.RootPublicKey)
	if err != nil {
		return err
	}
	if len(raw) != 64 {
		return errBadLength
	}
	var key [64]byte
	copy(key[:], raw)
	if err := s.vault.InitializeConfig(key); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

func (s *Service) UpdateConfig(_ *http.Request, args *InitializeConfigArgs, reply *SuccessReply) error {
	raw, err := hex.DecodeString(args.RootPublicKey)
	if err != nil {
		return err
	}
	if len(raw) != 64 {
		return errBadLength
	}
	var key [64]byte
	copy(key[:], raw)
	if err := s.vault.UpdateConfig(key); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type GetConfigReply struct {
	RootPublicKey     string `json:"rootPublicKey"`
	RootSignerAddress string `json:"rootSignerAddress"`
}

func (s *Service) GetConfig(_ *http.Request, _ *struct{}, reply *GetConfigReply) error {
	root, err := s.vault.RootPublicKey()
	if err != nil {
		return err
	}
	addr, err := s.vault.RootSignerAddress()
	if err != nil {
		return err
	}
	reply.RootPublicKey = hex.EncodeToString(root[:])
	reply.RootSignerAddress = addr.Hex()
	return nil
}

// EVMTxParamsArgs mirrors the fee-market fields of an unsigned EIP-1559
// transaction.
type EVMTxParamsArgs struct {
	ChainID              uint64 `json:"chainId"`
	Nonce                uint64 `json:"nonce"`
	GasLimit             uint64 `json:"gasLimit"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	Value                string `json:"value"`
}

func (a *EVMTxParamsArgs) parse() (evm.TxParams, error) {
	feeCap, err := parseAmount(a.MaxFeePerGas)
	if err != nil {
		return evm.TxParams{}, err
	}
	tipCap, err := parseAmount(a.MaxPriorityFeePerGas)
	if err != nil {
		return evm.TxParams{}, err
	}
	value, err := parseAmount(a.Value)
	if err != nil {
		return evm.TxParams{}, err
	}
	return evm.TxParams{
		ChainID:              a.ChainID,
		Nonce:                a.Nonce,
		GasLimit:             a.GasLimit,
		MaxFeePerGas:         feeCap,
		MaxPriorityFeePerGas: tipCap,
		Value:                value,
	}, nil
}

type DepositERC20Args struct {
	RequestID string          `json:"requestId"`
	User      string          `json:"user"`
	Token     string          `json:"token"`
	Recipient string          `json:"recipient"`
	Amount    string          `json:"amount"`
	TxParams  EVMTxParamsArgs `json:"txParams"`
}

func (s *Service) DepositERC20(r *http.Request, args *DepositERC20Args, reply *SuccessReply) error {
	requestID, err := ids.FromString(args.RequestID)
	if err != nil {
		return err
	}
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	params, err := args.TxParams.parse()
	if err != nil {
		return err
	}
	if err := s.vault.DepositERC20(
		r.Context(), requestID, user,
		common.HexToAddress(args.Token), common.HexToAddress(args.Recipient),
		amount, params,
	); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type SettleArgs struct {
	RequestID string `json:"requestId"`
	// Output is the hex encoded response payload the signer attested.
	Output     string `json:"output"`
	SignatureR string `json:"signatureR"`
	SignatureS string `json:"signatureS"`
	RecoveryID uint8  `json:"recoveryId"`
	// ForeignTxHash optionally records the foreign chain transaction,
	// 64 hex chars when present.
	ForeignTxHash string `json:"foreignTxHash,omitempty"`
}

func (a *SettleArgs) parse() (ids.ID, []byte, sigverify.Signature, *common.Hash, error) {
	var sig sigverify.Signature

	requestID, err := ids.FromString(a.RequestID)
	if err != nil {
		return ids.Empty, nil, sig, nil, err
	}
	output, err := hex.DecodeString(a.Output)
	if err != nil {
		return ids.Empty, nil, sig, nil, err
	}
	if err := decode32(a.SignatureR, &sig.R); err != nil {
		return ids.Empty, nil, sig, nil, err
	}
	if err := decode32(a.SignatureS, &sig.S); err != nil {
		return ids.Empty, nil, sig, nil, err
	}
	sig.V = a.RecoveryID

	var foreignTx *common.Hash
	if a.ForeignTxHash != "" {
		var h common.Hash
		if err := decode32(a.ForeignTxHash, (*[32]byte)(&h)); err != nil {
			return ids.Empty, nil, sig, nil, err
		}
		foreignTx = &h
	}
	return requestID, output, sig, foreignTx, nil
}

func (s *Service) ClaimERC20(_ *http.Request, args *SettleArgs, reply *SuccessReply) error {
	requestID, output, sig, foreignTx, err := args.parse()
	if err != nil {
		return err
	}
	if err := s.vault.ClaimERC20(requestID, output, sig, foreignTx); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type WithdrawERC20Args = DepositERC20Args

func (s *Service) WithdrawERC20(r *http.Request, args *WithdrawERC20Args, reply *SuccessReply) error {
	requestID, err := ids.FromString(args.RequestID)
	if err != nil {
		return err
	}
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	params, err := args.TxParams.parse()
	if err != nil {
		return err
	}
	if err := s.vault.WithdrawERC20(
		r.Context(), requestID, user,
		common.HexToAddress(args.Token), common.HexToAddress(args.Recipient),
		amount, params,
	); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

func (s *Service) CompleteWithdrawERC20(_ *http.Request, args *SettleArgs, reply *SuccessReply) error {
	requestID, output, sig, foreignTx, err := args.parse()
	if err != nil {
		return err
	}
	if err := s.vault.CompleteWithdrawERC20(requestID, output, sig, foreignTx); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type BTCInputArgs struct {
	TxID         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	ScriptPubKey string `json:"scriptPubkey"`
	Value        uint64 `json:"value"`
}

type BTCOutputArgs struct {
	ScriptPubKey string `json:"scriptPubkey"`
	Value        uint64 `json:"value"`
}

type DepositBTCArgs struct {
	RequestID   string          `json:"requestId"`
	User        string          `json:"user"`
	Inputs      []BTCInputArgs  `json:"inputs"`
	Outputs     []BTCOutputArgs `json:"outputs"`
	LockTime    uint32          `json:"lockTime"`
	CAIP2       string          `json:"caip2"`
	VaultScript string          `json:"vaultScript"`
}

func (s *Service) DepositBTC(r *http.Request, args *DepositBTCArgs, reply *SuccessReply) error {
	requestID, err := ids.FromString(args.RequestID)
	if err != nil {
		return err
	}
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	inputs, err := parseBTCInputs(args.Inputs)
	if err != nil {
		return err
	}
	outputs := make([]bitcoin.Output, len(args.Outputs))
	for i, out := range args.Outputs {
		script, err := hex.DecodeString(out.ScriptPubKey)
		if err != nil {
			return err
		}
		outputs[i] = bitcoin.Output{ScriptPubKey: script, Value: out.Value}
	}
	vaultScript, err := hex.DecodeString(args.VaultScript)
	if err != nil {
		return err
	}
	if err := s.vault.DepositBTC(r.Context(), requestID, user, inputs, outputs,
		vault.BTCDepositParams{
			LockTime:    args.LockTime,
			CAIP2:       args.CAIP2,
			VaultScript: vaultScript,
		},
	); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

func (s *Service) ClaimBTC(_ *http.Request, args *SettleArgs, reply *SuccessReply) error {
	requestID, output, sig, foreignTx, err := args.parse()
	if err != nil {
		return err
	}
	if err := s.vault.ClaimBTC(requestID, output, sig, foreignTx); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type WithdrawBTCArgs struct {
	RequestID       string         `json:"requestId"`
	User            string         `json:"user"`
	Inputs          []BTCInputArgs `json:"inputs"`
	Amount          uint64         `json:"amount"`
	Fee             uint64         `json:"fee"`
	RecipientScript string         `json:"recipientScript"`
	LockTime        uint32         `json:"lockTime"`
	CAIP2           string         `json:"caip2"`
	VaultScript     string         `json:"vaultScript"`
}

func (s *Service) WithdrawBTC(r *http.Request, args *WithdrawBTCArgs, reply *SuccessReply) error {
	requestID, err := ids.FromString(args.RequestID)
	if err != nil {
		return err
	}
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	inputs, err := parseBTCInputs(args.Inputs)
	if err != nil {
		return err
	}
	recipientScript, err := hex.DecodeString(args.RecipientScript)
	if err != nil {
		return err
	}
	vaultScript, err := hex.DecodeString(args.VaultScript)
	if err != nil {
		return err
	}
	if err := s.vault.WithdrawBTC(
		r.Context(), requestID, user, inputs, args.Amount, args.Fee, recipientScript,
		vault.BTCWithdrawParams{
			LockTime:    args.LockTime,
			CAIP2:       args.CAIP2,
			VaultScript: vaultScript,
		},
	); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

func (s *Service) CompleteWithdrawBTC(_ *http.Request, args *SettleArgs, reply *SuccessReply) error {
	requestID, output, sig, foreignTx, err := args.parse()
	if err != nil {
		return err
	}
	if err := s.vault.CompleteWithdrawBTC(requestID, output, sig, foreignTx); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type ERC20BalanceArgs struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

type BalanceReply struct {
	Balance string `json:"balance"`
}

func (s *Service) ERC20Balance(_ *http.Request, args *ERC20BalanceArgs, reply *BalanceReply) error {
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	balance, err := s.vault.ERC20Balance(user, common.HexToAddress(args.Token))
	if err != nil {
		return err
	}
	reply.Balance = balance.Dec()
	return nil
}

type BTCBalanceArgs struct {
	User string `json:"user"`
}

func (s *Service) BTCBalance(_ *http.Request, args *BTCBalanceArgs, reply *BalanceReply) error {
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	balance, err := s.vault.BTCBalance(user)
	if err != nil {
		return err
	}
	reply.Balance = fmt.Sprintf("%d", balance)
	return nil
}

type HistoryArgs struct {
	User string `json:"user"`
}

type TransferRecordReply struct {
	RequestID     string `json:"requestId"`
	Status        string `json:"status"`
	Asset         string `json:"asset"`
	Token         string `json:"token,omitempty"`
	Recipient     string `json:"recipient,omitempty"`
	Amount        string `json:"amount"`
	Timestamp     uint64 `json:"timestamp"`
	ForeignTxHash string `json:"foreignTxHash,omitempty"`
}

type HistoryReply struct {
	Deposits    []TransferRecordReply `json:"deposits"`
	Withdrawals []TransferRecordReply `json:"withdrawals"`
}

func (s *Service) History(_ *http.Request, args *HistoryArgs, reply *HistoryReply) error {
	user, err := ids.FromString(args.User)
	if err != nil {
		return err
	}
	history, err := s.vault.History(user)
	if err != nil {
		return err
	}
	reply.Deposits = renderRecords(history.Deposits)
	reply.Withdrawals = renderRecords(history.Withdrawals)
	return nil
}

func renderRecords(records []vault.TransferRecord) []TransferRecordReply {
	out := make([]TransferRecordReply, len(records))
	for i, rec := range records {
		out[i] = TransferRecordReply{
			RequestID: rec.RequestID.String(),
			Status:    rec.Status.String(),
			Asset:     rec.Asset.String(),
			Amount:    new(uint256.Int).SetBytes(rec.Amount[:]).Dec(),
			Timestamp: rec.Timestamp,
		}
		if rec.Asset == vault.AssetERC20 {
			out[i].Token = rec.Token.Hex()
			if rec.Recipient != (common.Address{}) {
				out[i].Recipient = rec.Recipient.Hex()
			}
		}
		if rec.HasForeignTx {
			out[i].ForeignTxHash = rec.ForeignTxHash.Hex()
		}
	}
	return out
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	return uint256.FromDecimal(s)
}

func parseBTCInputs(args []BTCInputArgs) ([]bitcoin.Input, error) {
	inputs := make([]bitcoin.Input, len(args))
	for i, in := range args {
		var txid [32]byte
		if err := decode32(in.TxID, &txid); err != nil {
			return nil, err
		}
		script, err := hex.DecodeString(in.ScriptPubKey)
		if err != nil {
			return nil, err
		}
		inputs[i] = bitcoin.Input{
			TxID:         txid,
			Vout:         in.Vout,
			ScriptPubKey: script,
			Value:        in.Value,
		}
	}
	return inputs, nil
}

func decode32(s string, out *[32]byte) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != 32 {
		return errBadLength
	}
	copy(out[:], raw)
	return nil
}
