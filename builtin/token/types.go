// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/state"
)

var (
	_ state.StorageEncoder = (*meta)(nil)
	_ state.StorageDecoder = (*meta)(nil)
)

type meta struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Encode implements state.StorageEncoder.
func (m *meta) Encode() ([]byte, error) {
	if m.Name == "" && m.Symbol == "" && m.Decimals == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(m)
}

// Decode implements state.StorageDecoder.
func (m *meta) Decode(data []byte) error {
	if len(data) == 0 {
		*m = meta{}
		return nil
	}
	return rlp.DecodeBytes(data, m)
}
