// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derivation

import (
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Seeds for the program-derived vault authorities. An authority is the
// identity a sign request is issued under; its string form is the
// predecessor of the derivation path the signer uses to answer it.
var (
	userAuthoritySeed   = []byte("vault_authority")
	globalAuthoritySeed = []byte("global_vault_authority")
)

// VaultAuthority returns the per-user authority under which the user's
// deposit sign requests are issued.
func VaultAuthority(programID ids.ID, user ids.ID) ids.ID {
	data := make([]byte, 0, len(userAuthoritySeed)+2*ids.IDLen)
	data = append(data, userAuthoritySeed...)
	data = append(data, user[:]...)
	data = append(data, programID[:]...)
	return hash.ComputeHash256Array(data)
}

// GlobalVaultAuthority returns the single authority under which all
// withdrawal sign requests are issued.
func GlobalVaultAuthority(programID ids.ID) ids.ID {
	data := make([]byte, 0, len(globalAuthoritySeed)+ids.IDLen)
	data = append(data, globalAuthoritySeed...)
	data = append(data, programID[:]...)
	return hash.ComputeHash256Array(data)
}

// DepositSignerAddress recomputes the one address allowed to have signed a
// deposit response for user: derived from the user's vault authority under
// the response path.
func DepositSignerAddress(rootKey *[64]byte, programID ids.ID, user ids.ID, mul GeneratorMultiplier) (common.Address, error) {
	authority := VaultAuthority(programID, user)
	return DeriveAddress(rootKey, authority.String(), ResponsePath, mul)
}

// WithdrawalSignerAddress recomputes the one address allowed to have signed
// a withdrawal response: derived from the global vault authority under the
// response path.
func WithdrawalSignerAddress(rootKey *[64]byte, programID ids.ID, mul GeneratorMultiplier) (common.Address, error) {
	authority := GlobalVaultAuthority(programID)
	return DeriveAddress(rootKey, authority.String(), ResponsePath, mul)
}
