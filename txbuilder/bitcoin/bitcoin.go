// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bitcoin builds unsigned Bitcoin transactions for vault
// deposits and withdrawals. Signing payloads are PSBT packets with a
// witness UTXO attached per input, which is what the MPC service
// expects for segwit spends.
package bitcoin

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	safemath "github.com/luxfi/math"
)

const txVersion = 2

var (
	ErrInsufficientInputs  = errors.New("inputs do not cover amount plus fee")
	ErrVaultOutputNotFound = errors.New("no output pays the vault script")
	ErrInvalidValue        = errors.New("value outside valid satoshi range")
	ErrNoInputs            = errors.New("transaction has no inputs")
)

// Input is a UTXO being spent. TxID is in internal (wire) byte order;
// explorers display the reverse.
type Input struct {
	TxID         [32]byte `serialize:"true" json:"txid"`
	Vout         uint32   `serialize:"true" json:"vout"`
	ScriptPubKey []byte   `serialize:"true" json:"scriptPubkey"`
	Value        uint64   `serialize:"true" json:"value"`
}

// Output is a payment created by the transaction.
type Output struct {
	ScriptPubKey []byte `serialize:"true" json:"scriptPubkey"`
	Value        uint64 `serialize:"true" json:"value"`
}

// Tx is an assembled unsigned transaction together with its signing
// payload and identifiers.
type Tx struct {
	// Unsigned is the wire transaction with empty signature data.
	Unsigned *wire.MsgTx
	// PSBT is the serialized packet handed to the signer. Each input
	// carries its witness UTXO.
	PSBT []byte
	// ExplorerTxID is the display-order txid. Request identifiers
	// commit to this form.
	ExplorerTxID [32]byte
}

// BuildDepositTx assembles a user-funded deposit transaction from the
// caller's inputs and outputs. It returns the transaction and the value
// of the output paying vaultScript; deposits that never pay the vault
// are rejected.
func BuildDepositTx(inputs []Input, outputs []Output, vaultScript []byte, lockTime uint32) (*Tx, uint64, error) {
	msg, err := assemble(inputs, outputs, lockTime)
	if err != nil {
		return nil, 0, err
	}

	vaultValue := uint64(0)
	for _, out := range outputs {
		if bytes.Equal(out.ScriptPubKey, vaultScript) {
			vaultValue, err = safemath.Add64(vaultValue, out.Value)
			if err != nil {
				return nil, 0, ErrInvalidValue
			}
		}
	}
	if vaultValue == 0 {
		return nil, 0, ErrVaultOutputNotFound
	}

	tx, err := finalize(msg, inputs)
	if err != nil {
		return nil, 0, err
	}
	return tx, vaultValue, nil
}

// BuildWithdrawalTx spends vault UTXOs to pay amount to
// recipientScript. The fee is carried implicitly; any surplus above
// amount plus fee returns to vaultScript as change. A change output is
// created only when the surplus is positive.
func BuildWithdrawalTx(
	inputs []Input,
	amount uint64,
	fee uint64,
	recipientScript []byte,
	vaultScript []byte,
	lockTime uint32,
) (*Tx, uint64, error) {
	total := uint64(0)
	var err error
	for _, in := range inputs {
		total, err = safemath.Add64(total, in.Value)
		if err != nil {
			return nil, 0, ErrInvalidValue
		}
	}
	needed, err := safemath.Add64(amount, fee)
	if err != nil {
		return nil, 0, ErrInvalidValue
	}
	if total < needed {
		return nil, 0, ErrInsufficientInputs
	}
	change := total - needed

	outputs := []Output{{ScriptPubKey: recipientScript, Value: amount}}
	if change > 0 {
		outputs = append(outputs, Output{ScriptPubKey: vaultScript, Value: change})
	}

	msg, err := assemble(inputs, outputs, lockTime)
	if err != nil {
		return nil, 0, err
	}
	tx, err := finalize(msg, inputs)
	if err != nil {
		return nil, 0, err
	}
	return tx, change, nil
}

func assemble(inputs []Input, outputs []Output, lockTime uint32) (*wire.MsgTx, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	msg := wire.NewMsgTx(txVersion)
	msg.LockTime = lockTime
	for _, in := range inputs {
		if in.Value > btcutil.MaxSatoshi {
			return nil, ErrInvalidValue
		}
		hash := chainhash.Hash(in.TxID)
		msg.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&hash, in.Vout), nil, nil))
	}
	for _, out := range outputs {
		if out.Value > btcutil.MaxSatoshi {
			return nil, ErrInvalidValue
		}
		msg.AddTxOut(wire.NewTxOut(int64(out.Value), out.ScriptPubKey))
	}
	return msg, nil
}

func finalize(msg *wire.MsgTx, inputs []Input) (*Tx, error) {
	packet, err := psbt.NewFromUnsignedTx(msg)
	if err != nil {
		return nil, err
	}
	for i, in := range inputs {
		packet.Inputs[i].WitnessUtxo = wire.NewTxOut(int64(in.Value), in.ScriptPubKey)
	}

	var buf bytes.Buffer
	if err := packet.Serialize(&buf); err != nil {
		return nil, err
	}

	return &Tx{
		Unsigned:     msg,
		PSBT:         buf.Bytes(),
		ExplorerTxID: explorerOrder(msg.TxHash()),
	}, nil
}

// explorerOrder reverses the internal hash into the byte order block
// explorers display.
func explorerOrder(h chainhash.Hash) (out [32]byte) {
	for i := 0; i < chainhash.HashSize; i++ {
		out[i] = h[chainhash.HashSize-1-i]
	}
	return out
}
