// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

var (
	_ state.StorageEncoder = (*stakedPool)(nil)
	_ state.StorageDecoder = (*stakedPool)(nil)
)

type stakedPool struct {
	Vault  gavel.Address
	PoolID uint64
}

// Encode implements state.StorageEncoder.
func (s *stakedPool) Encode() ([]byte, error) {
	if s.Vault.IsZero() && s.PoolID == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(s)
}

// Decode implements state.StorageDecoder.
func (s *stakedPool) Decode(data []byte) error {
	if len(data) == 0 {
		*s = stakedPool{}
		return nil
	}
	return rlp.DecodeBytes(data, s)
}
