// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// PendingDeposit is an open deposit awaiting its attestation. Concrete
// types are registered with the codec so records round-trip through
// the interface.
type PendingDeposit interface {
	ID() ids.ID
	Owner() ids.ID
}

// PendingWithdrawal is an open withdrawal whose balance has already
// been debited.
type PendingWithdrawal interface {
	ID() ids.ID
	Owner() ids.ID
}

// PendingERC20Deposit tracks an inbound ERC20 transfer. Amount is a
// big-endian 256-bit value.
type PendingERC20Deposit struct {
	RequestID ids.ID         `serialize:"true"`
	Requester ids.ID         `serialize:"true"`
	Token     common.Address `serialize:"true"`
	Amount    [32]byte       `serialize:"true"`
	Path      string         `serialize:"true"`
}

func (p *PendingERC20Deposit) ID() ids.ID    { return p.RequestID }
func (p *PendingERC20Deposit) Owner() ids.ID { return p.Requester }

// PendingBTCDeposit tracks an inbound Bitcoin transfer. Amount is the
// summed value of the transaction outputs paying the vault script, in
// satoshis.
type PendingBTCDeposit struct {
	RequestID ids.ID `serialize:"true"`
	Requester ids.ID `serialize:"true"`
	Amount    uint64 `serialize:"true"`
	Path      string `serialize:"true"`
}

func (p *PendingBTCDeposit) ID() ids.ID    { return p.RequestID }
func (p *PendingBTCDeposit) Owner() ids.ID { return p.Requester }

// PendingERC20Withdrawal remembers the debited amount so a failed
// completion can restore it.
type PendingERC20Withdrawal struct {
	RequestID ids.ID         `serialize:"true"`
	Requester ids.ID         `serialize:"true"`
	Token     common.Address `serialize:"true"`
	Recipient common.Address `serialize:"true"`
	Amount    [32]byte       `serialize:"true"`
	Path      string         `serialize:"true"`
}

func (p *PendingERC20Withdrawal) ID() ids.ID    { return p.RequestID }
func (p *PendingERC20Withdrawal) Owner() ids.ID { return p.Requester }

// PendingBTCWithdrawal remembers both amount and fee; a failed
// completion refunds their sum because both were debited.
type PendingBTCWithdrawal struct {
	RequestID ids.ID `serialize:"true"`
	Requester ids.ID `serialize:"true"`
	Amount    uint64 `serialize:"true"`
	Fee       uint64 `serialize:"true"`
	Path      string `serialize:"true"`
}

func (p *PendingBTCWithdrawal) ID() ids.ID    { return p.RequestID }
func (p *PendingBTCWithdrawal) Owner() ids.ID { return p.Requester }
