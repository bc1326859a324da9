// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

var (
	_ state.StorageEncoder = (*config)(nil)
	_ state.StorageDecoder = (*config)(nil)
	_ state.StorageEncoder = (*pool)(nil)
	_ state.StorageDecoder = (*pool)(nil)
	_ state.StorageEncoder = (*account)(nil)
	_ state.StorageDecoder = (*account)(nil)
)

type config struct {
	StakingToken gavel.Address
	RewardToken  gavel.Address
	RewardRate   *big.Int
	PeriodFinish uint64
}

// Encode implements state.StorageEncoder.
func (c *config) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(c)
}

// Decode implements state.StorageDecoder.
func (c *config) Decode(data []byte) error {
	if len(data) == 0 {
		*c = config{RewardRate: &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, c)
}

type pool struct {
	RewardPerToken *big.Int
	TotalStaked    *big.Int
	LastUpdate     uint64
}

// Encode implements state.StorageEncoder.
func (p *pool) Encode() ([]byte, error) {
	if p.RewardPerToken.Sign() == 0 && p.TotalStaked.Sign() == 0 && p.LastUpdate == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(p)
}

// Decode implements state.StorageDecoder.
func (p *pool) Decode(data []byte) error {
	if len(data) == 0 {
		*p = pool{RewardPerToken: &big.Int{}, TotalStaked: &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, p)
}

type account struct {
	Staked             *big.Int
	RewardPerTokenPaid *big.Int
	Reward             *big.Int
}

// Encode implements state.StorageEncoder.
func (a *account) Encode() ([]byte, error) {
	if a.Staked.Sign() == 0 && a.RewardPerTokenPaid.Sign() == 0 && a.Reward.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

// Decode implements state.StorageDecoder.
func (a *account) Decode(data []byte) error {
	if len(data) == 0 {
		*a = account{&big.Int{}, &big.Int{}, &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, a)
}
