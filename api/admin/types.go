// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import "github.com/gavelhq/gavel/gavel"

// AddEntries appends source addresses to a registry list.
type AddEntries struct {
	Entries []gavel.Address `json:"entries"`
}

// SetStakedPool replaces the staked pool pointer.
type SetStakedPool struct {
	Vault  gavel.Address `json:"vault"`
	PoolID uint64        `json:"poolId"`
}

// SetOwner transfers the registry's owner credential.
type SetOwner struct {
	Owner gavel.Address `json:"owner"`
}
