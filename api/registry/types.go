// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/gavelhq/gavel/gavel"

// Entries is an ordered list of registered source addresses.
type Entries struct {
	Entries []gavel.Address `json:"entries"`
}

// StakedPool is the externally staked pool pointer.
type StakedPool struct {
	Vault  gavel.Address `json:"vault"`
	PoolID uint64        `json:"poolId"`
}

// Owner is the registry's administrative identity.
type Owner struct {
	Owner gavel.Address `json:"owner"`
}
