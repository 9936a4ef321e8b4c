// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestHistoryRingBound(t *testing.T) {
	require := require.New(t)

	h := &TransferHistory{}
	var all []ids.ID
	for i := 0; i < maxHistoryRecords+3; i++ {
		id := ids.GenerateTestID()
		all = append(all, id)
		h.AddDeposit(TransferRecord{RequestID: id, Status: StatusPending})
	}

	require.Len(h.Deposits, maxHistoryRecords)

	// Newest first: the last insert is at the front, the earliest
	// inserts have been evicted.
	require.Equal(all[len(all)-1], h.Deposits[0].RequestID)
	for i, rec := range h.Deposits {
		require.Equal(all[len(all)-1-i], rec.RequestID)
	}
}

func TestHistoryRingsAreIndependent(t *testing.T) {
	require := require.New(t)

	h := &TransferHistory{}
	dep := ids.GenerateTestID()
	wit := ids.GenerateTestID()
	h.AddDeposit(TransferRecord{RequestID: dep})
	h.AddWithdrawal(TransferRecord{RequestID: wit})

	require.Len(h.Deposits, 1)
	require.Len(h.Withdrawals, 1)
	require.Equal(dep, h.Deposits[0].RequestID)
	require.Equal(wit, h.Withdrawals[0].RequestID)
}

func TestHistorySetStatus(t *testing.T) {
	require := require.New(t)

	h := &TransferHistory{}
	id := ids.GenerateTestID()
	h.AddWithdrawal(TransferRecord{RequestID: id, Status: StatusPending})

	txHash := common.HexToHash("0xabcd")
	require.True(h.SetStatus(id, StatusCompleted, &txHash))
	require.Equal(StatusCompleted, h.Withdrawals[0].Status)
	require.True(h.Withdrawals[0].HasForeignTx)
	require.Equal(txHash, h.Withdrawals[0].ForeignTxHash)

	// Unknown ids report false.
	require.False(h.SetStatus(ids.GenerateTestID(), StatusFailed, nil))
}

func TestHistorySetStatusWithoutForeignTx(t *testing.T) {
	require := require.New(t)

	h := &TransferHistory{}
	id := ids.GenerateTestID()
	h.AddDeposit(TransferRecord{RequestID: id, Status: StatusPending})

	require.True(h.SetStatus(id, StatusFailed, nil))
	require.Equal(StatusFailed, h.Deposits[0].Status)
	require.False(h.Deposits[0].HasForeignTx)
}
