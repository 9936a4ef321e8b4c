// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const codecVersion = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&PendingERC20Deposit{}),
		lc.RegisterType(&PendingBTCDeposit{}),
		lc.RegisterType(&PendingERC20Withdrawal{}),
		lc.RegisterType(&PendingBTCWithdrawal{}),
		lc.RegisterType(&TransferHistory{}),
		Codec.RegisterCodec(codecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
