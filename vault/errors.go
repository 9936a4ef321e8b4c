// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import "errors"

var (
	ErrNotInitialized     = errors.New("vault config not initialized")
	ErrAlreadyInitialized = errors.New("vault config already initialized")

	// ErrInvalidRequestID reports a supplied request id that does not
	// match the commitment recomputed from the call's own parameters.
	ErrInvalidRequestID = errors.New("request id does not match computed commitment")

	ErrDuplicateRequest = errors.New("pending record already exists for request id")
	ErrUnknownRequest   = errors.New("no pending record for request id")
	ErrWrongAsset       = errors.New("pending record is for a different asset")

	// ErrInvalidOutput reports a response payload that decodes as
	// neither a boolean nor an explicit error frame.
	ErrInvalidOutput = errors.New("malformed response payload")

	// ErrTransferFailed reports a deposit attestation that carries a
	// false result. The pending record is left open.
	ErrTransferFailed = errors.New("foreign chain transfer failed")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountOverflow      = errors.New("amount overflows balance arithmetic")
)
