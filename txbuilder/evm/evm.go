// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evm builds unsigned EIP-1559 transactions for ERC20 vault
// transfers. The returned payload is the exact byte string the MPC
// service signs, so the encoding is frozen.
package evm

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/rlp"
)

// transferSelector is the 4-byte selector of transfer(address,uint256).
var transferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

var ErrInvalidParams = errors.New("invalid transaction parameters")

// TxParams carries the fee-market fields of an unsigned transfer. The
// caller supplies them from chain state; nothing here is derived.
type TxParams struct {
	ChainID              uint64       `serialize:"true" json:"chainId"`
	Nonce                uint64       `serialize:"true" json:"nonce"`
	GasLimit             uint64       `serialize:"true" json:"gasLimit"`
	MaxFeePerGas         *uint256.Int `serialize:"true" json:"maxFeePerGas"`
	MaxPriorityFeePerGas *uint256.Int `serialize:"true" json:"maxPriorityFeePerGas"`
	Value                *uint256.Int `serialize:"true" json:"value"`
}

// txPayload mirrors the unsigned dynamic-fee transaction body. Field
// order is the RLP list order of the EIP-1559 signing payload.
type txPayload struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasTipCap  *uint256.Int
	GasFeeCap  *uint256.Int
	Gas        uint64
	To         *common.Address
	Value      *uint256.Int
	Data       []byte
	AccessList types.AccessList
}

// ERC20TransferData ABI-encodes a transfer(recipient, amount) call.
func ERC20TransferData(recipient common.Address, amount *uint256.Int) []byte {
	data := make([]byte, 0, 4+32+32)
	data = append(data, transferSelector...)
	data = append(data, common.LeftPadBytes(recipient[:], 32)...)
	amt := amount.Bytes32()
	data = append(data, amt[:]...)
	return data
}

// BuildERC20Transfer assembles the unsigned signing payload of an ERC20
// transfer from the vault and the CAIP-2 identifier of the target
// chain. The payload is the typed-transaction prefix 0x02 followed by
// the RLP of the unsigned body.
func BuildERC20Transfer(
	token common.Address,
	recipient common.Address,
	amount *uint256.Int,
	params TxParams,
) ([]byte, string, error) {
	if params.ChainID == 0 || params.GasLimit == 0 {
		return nil, "", ErrInvalidParams
	}
	if amount == nil || amount.IsZero() {
		return nil, "", ErrInvalidParams
	}

	value := params.Value
	if value == nil {
		value = uint256.NewInt(0)
	}
	feeCap := params.MaxFeePerGas
	if feeCap == nil {
		feeCap = uint256.NewInt(0)
	}
	tipCap := params.MaxPriorityFeePerGas
	if tipCap == nil {
		tipCap = uint256.NewInt(0)
	}

	body := txPayload{
		ChainID:    uint256.NewInt(params.ChainID),
		Nonce:      params.Nonce,
		GasTipCap:  tipCap,
		GasFeeCap:  feeCap,
		Gas:        params.GasLimit,
		To:         &token,
		Value:      value,
		Data:       ERC20TransferData(recipient, amount),
		AccessList: types.AccessList{},
	}

	encoded, err := rlp.EncodeToBytes(&body)
	if err != nil {
		return nil, "", err
	}

	payload := make([]byte, 0, 1+len(encoded))
	payload = append(payload, types.DynamicFeeTxType)
	payload = append(payload, encoded...)

	return payload, CAIP2(params.ChainID), nil
}

// CAIP2 renders the eip155 chain identifier used in signature requests.
func CAIP2(chainID uint64) string {
	return fmt.Sprintf("eip155:%d", chainID)
}
