// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package otc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

var (
	_ state.StorageEncoder = (*Terms)(nil)
	_ state.StorageDecoder = (*Terms)(nil)
)

// Terms are the immutable parameters of the deal, fixed at creation.
// SellerGov receives the payment and may revoke. Buyer pays and
// becomes the grant recipient. Beneficiary receives recovered
// payment tokens.
type Terms struct {
	SellerGov     gavel.Address
	Buyer         gavel.Address
	Beneficiary   gavel.Address
	SoldToken     gavel.Address
	SoldAmount    *big.Int
	PaymentToken  gavel.Address
	PaymentAmount *big.Int
	Start         uint64
	Cliff         uint64
	End           uint64
}

// Encode implements state.StorageEncoder.
func (t *Terms) Encode() ([]byte, error) {
	if t.SellerGov.IsZero() && t.Buyer.IsZero() {
		return nil, nil
	}
	return rlp.EncodeToBytes(t)
}

// Decode implements state.StorageDecoder.
func (t *Terms) Decode(data []byte) error {
	if len(data) == 0 {
		*t = Terms{SoldAmount: &big.Int{}, PaymentAmount: &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, t)
}
