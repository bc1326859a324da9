// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/gavelhq/gavel/builtin/power"
)

// HexBig marshals a big integer as hex, accepting hex or decimal on input.
type HexBig = math.HexOrDecimal256

// Balance is an account's total voting power.
type Balance struct {
	Power *HexBig `json:"power"`
}

// Breakdown is an account's voting power split by source.
type Breakdown struct {
	Direct  *HexBig `json:"direct"`
	Farmed  *HexBig `json:"farmed"`
	Vesting *HexBig `json:"vesting"`
	VenueA  *HexBig `json:"venueA"`
	VenueB  *HexBig `json:"venueB"`
	Staked  *HexBig `json:"staked"`
	Total   *HexBig `json:"total"`
}

// Meta mirrors the governance token's metadata.
type Meta struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Decimals    uint8   `json:"decimals"`
	TotalSupply *HexBig `json:"totalSupply"`
}

func convertBreakdown(b *power.Breakdown) *Breakdown {
	return &Breakdown{
		Direct:  hexBig(b.Direct),
		Farmed:  hexBig(b.Farmed),
		Vesting: hexBig(b.Vesting),
		VenueA:  hexBig(b.VenueA),
		VenueB:  hexBig(b.VenueB),
		Staked:  hexBig(b.Staked),
		Total:   hexBig(b.Total()),
	}
}

func hexBig(v *big.Int) *HexBig {
	return (*HexBig)(v)
}
