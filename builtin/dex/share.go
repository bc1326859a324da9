// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dex

import "math/big"

// Share computes the part of a pool reserve a holder can claim:
// floor(reserve * balance / totalSupply). A pool with zero total
// supply has no claimable reserve, so the share is zero.
func Share(balance, reserve, totalSupply *big.Int) *big.Int {
	if totalSupply.Sign() == 0 {
		return &big.Int{}
	}
	share := new(big.Int).Mul(reserve, balance)
	return share.Div(share, totalSupply)
}
