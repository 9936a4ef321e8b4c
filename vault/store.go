// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

var (
	configPrefix     = []byte("config")
	depositPrefix    = []byte("deposit")
	withdrawalPrefix = []byte("withdrawal")
	erc20Prefix      = []byte("erc20")
	btcPrefix        = []byte("btc")
	historyPrefix    = []byte("history")

	rootPublicKeyKey = []byte("rootPublicKey")
)

// store partitions one database into the vault's record families.
type store struct {
	config      database.Database
	deposits    database.Database
	withdrawals database.Database
	erc20       database.Database
	btc         database.Database
	history     database.Database
}

func newStore(db database.Database) *store {
	return &store{
		config:      prefixdb.New(configPrefix, db),
		deposits:    prefixdb.New(depositPrefix, db),
		withdrawals: prefixdb.New(withdrawalPrefix, db),
		erc20:       prefixdb.New(erc20Prefix, db),
		btc:         prefixdb.New(btcPrefix, db),
		history:     prefixdb.New(historyPrefix, db),
	}
}

func (s *store) RootPublicKey() ([64]byte, error) {
	var key [64]byte
	raw, err := s.config.Get(rootPublicKeyKey)
	if err == database.ErrNotFound {
		return key, ErrNotInitialized
	}
	if err != nil {
		return key, err
	}
	copy(key[:], raw)
	return key, nil
}

func (s *store) SetRootPublicKey(key [64]byte) error {
	return s.config.Put(rootPublicKeyKey, key[:])
}

func (s *store) GetDeposit(requestID ids.ID) (PendingDeposit, error) {
	raw, err := s.deposits.Get(requestID[:])
	if err == database.ErrNotFound {
		return nil, ErrUnknownRequest
	}
	if err != nil {
		return nil, err
	}
	var pending PendingDeposit
	if _, err := Codec.Unmarshal(raw, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *store) PutDeposit(pending PendingDeposit) error {
	raw, err := Codec.Marshal(codecVersion, &pending)
	if err != nil {
		return err
	}
	id := pending.ID()
	return s.deposits.Put(id[:], raw)
}

func (s *store) DeleteDeposit(requestID ids.ID) error {
	return s.deposits.Delete(requestID[:])
}

func (s *store) HasDeposit(requestID ids.ID) (bool, error) {
	return s.deposits.Has(requestID[:])
}

func (s *store) GetWithdrawal(requestID ids.ID) (PendingWithdrawal, error) {
	raw, err := s.withdrawals.Get(requestID[:])
	if err == database.ErrNotFound {
		return nil, ErrUnknownRequest
	}
	if err != nil {
		return nil, err
	}
	var pending PendingWithdrawal
	if _, err := Codec.Unmarshal(raw, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *store) PutWithdrawal(pending PendingWithdrawal) error {
	raw, err := Codec.Marshal(codecVersion, &pending)
	if err != nil {
		return err
	}
	id := pending.ID()
	return s.withdrawals.Put(id[:], raw)
}

func (s *store) DeleteWithdrawal(requestID ids.ID) error {
	return s.withdrawals.Delete(requestID[:])
}

func (s *store) HasWithdrawal(requestID ids.ID) (bool, error) {
	return s.withdrawals.Has(requestID[:])
}

func erc20BalanceKey(user ids.ID, token common.Address) []byte {
	key := make([]byte, 0, ids.IDLen+common.AddressLength)
	key = append(key, user[:]...)
	key = append(key, token[:]...)
	return key
}

// ERC20Balance returns zero for accounts that were never credited.
func (s *store) ERC20Balance(user ids.ID, token common.Address) (*uint256.Int, error) {
	raw, err := s.erc20.Get(erc20BalanceKey(user, token))
	if err == database.ErrNotFound {
		return uint256.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (s *store) SetERC20Balance(user ids.ID, token common.Address, balance *uint256.Int) error {
	b := balance.Bytes32()
	return s.erc20.Put(erc20BalanceKey(user, token), b[:])
}

// BTCBalance returns zero for accounts that were never credited.
func (s *store) BTCBalance(user ids.ID) (uint64, error) {
	balance, err := database.GetUInt64(s.btc, user[:])
	if err == database.ErrNotFound {
		return 0, nil
	}
	return balance, err
}

func (s *store) SetBTCBalance(user ids.ID, balance uint64) error {
	return database.PutUInt64(s.btc, user[:], balance)
}

// History returns an empty history for users with no transfers.
func (s *store) History(user ids.ID) (*TransferHistory, error) {
	raw, err := s.history.Get(user[:])
	if err == database.ErrNotFound {
		return &TransferHistory{}, nil
	}
	if err != nil {
		return nil, err
	}
	history := &TransferHistory{}
	if _, err := Codec.Unmarshal(raw, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *store) PutHistory(user ids.ID, history *TransferHistory) error {
	raw, err := Codec.Marshal(codecVersion, history)
	if err != nil {
		return err
	}
	return s.history.Put(user[:], raw)
}
