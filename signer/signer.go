// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signer defines the interface between the vault and the MPC
// signing service, plus a local in-process implementation used on
// devnets and in tests.
package signer

import (
	"context"

	"github.com/luxfi/ids"
)

// Request is a signature request dispatched to the MPC service. The
// service signs the keccak of the request id concatenated with the
// outcome it attests, so every field that shaped the payload is
// carried along for auditing.
type Request struct {
	RequestID      ids.ID `serialize:"true" json:"requestId"`
	Requester      ids.ID `serialize:"true" json:"requester"`
	Payload        []byte `serialize:"true" json:"payload"`
	CAIP2          string `serialize:"true" json:"caip2"`
	KeyVersion     uint32 `serialize:"true" json:"keyVersion"`
	Path           string `serialize:"true" json:"path"`
	Algorithm      string `serialize:"true" json:"algorithm"`
	Dest           string `serialize:"true" json:"dest"`
	Params         string `serialize:"true" json:"params"`
	ExplorerSchema string `serialize:"true" json:"explorerSchema"`
	CallbackSchema string `serialize:"true" json:"callbackSchema"`
}

// Signer dispatches signature requests. Dispatch failures abort the
// operation that produced the request.
type Signer interface {
	RequestSignature(ctx context.Context, req *Request) error
}
