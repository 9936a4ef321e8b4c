// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signer

import (
	"context"
	"encoding/hex"

	"github.com/luxfi/log"
)

var _ Signer = (*Emitter)(nil)

// Emitter publishes signature requests to the structured log, where the
// external MPC service picks them up. It never produces responses
// itself; attestations arrive later through the settlement RPCs.
type Emitter struct {
	log log.Logger
}

func NewEmitter(logger log.Logger) *Emitter {
	return &Emitter{log: logger}
}

func (e *Emitter) RequestSignature(_ context.Context, req *Request) error {
	e.log.Info("signature requested",
		log.Stringer("requestID", req.RequestID),
		log.Stringer("requester", req.Requester),
		log.String("payload", hex.EncodeToString(req.Payload)),
		log.String("caip2", req.CAIP2),
		log.String("path", req.Path),
		log.String("algorithm", req.Algorithm),
		log.String("dest", req.Dest),
		log.String("params", req.Params),
		log.String("explorerSchema", req.ExplorerSchema),
		log.String("callbackSchema", req.CallbackSchema),
	)
	return nil
}
