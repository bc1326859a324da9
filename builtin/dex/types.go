// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

var (
	_ state.StorageEncoder = (*tokens)(nil)
	_ state.StorageDecoder = (*tokens)(nil)
	_ state.StorageEncoder = (*reserves)(nil)
	_ state.StorageDecoder = (*reserves)(nil)
)

type tokens struct {
	Token0 gavel.Address
	Token1 gavel.Address
}

// Encode implements state.StorageEncoder.
func (t *tokens) Encode() ([]byte, error) {
	if t.Token0.IsZero() && t.Token1.IsZero() {
		return nil, nil
	}
	return rlp.EncodeToBytes(t)
}

// Decode implements state.StorageDecoder.
func (t *tokens) Decode(data []byte) error {
	if len(data) == 0 {
		*t = tokens{}
		return nil
	}
	return rlp.DecodeBytes(data, t)
}

type reserves struct {
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// Encode implements state.StorageEncoder.
func (r *reserves) Encode() ([]byte, error) {
	if r.Reserve0.Sign() == 0 && r.Reserve1.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(r)
}

// Decode implements state.StorageDecoder.
func (r *reserves) Decode(data []byte) error {
	if len(data) == 0 {
		*r = reserves{&big.Int{}, &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, r)
}
