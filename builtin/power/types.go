// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Token is the fungible token surface the aggregator reads.
type Token interface {
	Name() (string, error)
	Symbol() (string, error)
	Decimals() (uint8, error)
	TotalSupply() (*big.Int, error)
	BalanceOf(account gavel.Address) (*big.Int, error)
}

// RewardSource yields an account's unclaimed rewards.
type RewardSource interface {
	Earned(now uint64, account gavel.Address) (*big.Int, error)
}

// Grant is a vesting grant custodying tokens for its recipient.
type Grant interface {
	Recipient() (gavel.Address, error)
	Held() (*big.Int, error)
}

// Pool is a two-asset pool with an LP receipt token.
type Pool interface {
	BalanceOf(account gavel.Address) (*big.Int, error)
	TotalSupply() (*big.Int, error)
	ReserveOf(asset gavel.Address) (*big.Int, error)
}

// Staking holds LP positions per (pool id, account).
type Staking interface {
	StakedAmount(poolID uint64, account gavel.Address) (*big.Int, error)
}

// Registry lists the sources the aggregator sums over.
type Registry interface {
	Farms() ([]gavel.Address, error)
	VestingGrants() ([]gavel.Address, error)
	StakedPool() (gavel.Address, uint64, error)
}

// Sources resolves addresses into role handles. Resolution fails
// when nothing suitable is deployed at the address.
type Sources interface {
	Token(addr gavel.Address) (Token, error)
	Registry(addr gavel.Address) (Registry, error)
	RewardSource(addr gavel.Address) (RewardSource, error)
	Grant(addr gavel.Address) (Grant, error)
	Pool(addr gavel.Address) (Pool, error)
	Staking(addr gavel.Address) (Staking, error)
}

var (
	_ state.StorageEncoder = (*Refs)(nil)
	_ state.StorageDecoder = (*Refs)(nil)
)

// Refs are the aggregator's construction references.
type Refs struct {
	Token    gavel.Address
	VenueA   gavel.Address
	VenueB   gavel.Address
	Registry gavel.Address
}

// Encode implements state.StorageEncoder.
func (r *Refs) Encode() ([]byte, error) {
	if r.Token.IsZero() && r.Registry.IsZero() {
		return nil, nil
	}
	return rlp.EncodeToBytes(r)
}

// Decode implements state.StorageDecoder.
func (r *Refs) Decode(data []byte) error {
	if len(data) == 0 {
		*r = Refs{}
		return nil
	}
	return rlp.DecodeBytes(data, r)
}

// Breakdown is an account's voting power split by source.
type Breakdown struct {
	Direct  *big.Int
	Farmed  *big.Int
	Vesting *big.Int
	VenueA  *big.Int
	VenueB  *big.Int
	Staked  *big.Int
}

// Total sums all terms.
func (b *Breakdown) Total() *big.Int {
	total := new(big.Int).Add(b.Direct, b.Farmed)
	total.Add(total, b.Vesting)
	total.Add(total, b.VenueA)
	total.Add(total, b.VenueB)
	return total.Add(total, b.Staked)
}
