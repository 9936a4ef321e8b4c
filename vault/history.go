// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// maxHistoryRecords bounds each per-user ring. Only the newest entries
// of each kind are retained.
const maxHistoryRecords = 5

type TransferStatus uint8

const (
	StatusPending TransferStatus = iota
	StatusCompleted
	StatusFailed
)

func (s TransferStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type AssetKind uint8

const (
	AssetERC20 AssetKind = iota
	AssetBTC
)

func (a AssetKind) String() string {
	switch a {
	case AssetERC20:
		return "erc20"
	case AssetBTC:
		return "btc"
	default:
		return "unknown"
	}
}

// TransferRecord is one history entry. Token and Recipient are zero for
// Bitcoin transfers; Recipient is zero for deposits.
type TransferRecord struct {
	RequestID     ids.ID         `serialize:"true" json:"requestId"`
	Status        TransferStatus `serialize:"true" json:"status"`
	Asset         AssetKind      `serialize:"true" json:"asset"`
	Token         common.Address `serialize:"true" json:"token"`
	Recipient     common.Address `serialize:"true" json:"recipient"`
	Amount        [32]byte       `serialize:"true" json:"amount"`
	Timestamp     uint64         `serialize:"true" json:"timestamp"`
	HasForeignTx  bool           `serialize:"true" json:"hasForeignTx"`
	ForeignTxHash common.Hash    `serialize:"true" json:"foreignTxHash"`
}

// TransferHistory is a per-user pair of bounded rings, newest first.
type TransferHistory struct {
	Deposits    []TransferRecord `serialize:"true" json:"deposits"`
	Withdrawals []TransferRecord `serialize:"true" json:"withdrawals"`
}

// AddDeposit inserts a record at the front of the deposit ring.
func (h *TransferHistory) AddDeposit(rec TransferRecord) {
	h.Deposits = insertFront(h.Deposits, rec)
}

// AddWithdrawal inserts a record at the front of the withdrawal ring.
func (h *TransferHistory) AddWithdrawal(rec TransferRecord) {
	h.Withdrawals = insertFront(h.Withdrawals, rec)
}

func insertFront(ring []TransferRecord, rec TransferRecord) []TransferRecord {
	ring = append([]TransferRecord{rec}, ring...)
	if len(ring) > maxHistoryRecords {
		ring = ring[:maxHistoryRecords]
	}
	return ring
}

// SetStatus updates the record matching requestID in either ring,
// attaching the foreign transaction hash when one is supplied. It
// reports whether a record was found; records evicted from the ring
// are silently gone.
func (h *TransferHistory) SetStatus(
	requestID ids.ID,
	status TransferStatus,
	foreignTx *common.Hash,
) bool {
	for _, ring := range [][]TransferRecord{h.Deposits, h.Withdrawals} {
		for i := range ring {
			if ring[i].RequestID != requestID {
				continue
			}
			ring[i].Status = status
			if foreignTx != nil {
				ring[i].HasForeignTx = true
				ring[i].ForeignTxHash = *foreignTx
			}
			return true
		}
	}
	return false
}
