// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as a staking vault contract.
var Code = []byte("gavel/vault")

var (
	ErrUnknownPool       = errors.New("unknown pool")
	ErrPoolExists        = errors.New("pool already added")
	ErrInsufficientStake = errors.New("insufficient staked balance")
)

func poolKey(poolID uint64) gavel.Bytes32 {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], poolID)
	return gavel.Blake2b([]byte("pool"), id[:])
}

func positionKey(poolID uint64, user gavel.Address) gavel.Bytes32 {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], poolID)
	return gavel.Blake2b([]byte("position"), id[:], user.Bytes())
}

// Vault implements native methods of a staking vault contract. Each
// pool id stakes one LP token; positions are per (pool id, user).
type Vault struct {
	addr  gavel.Address
	state *state.State
}

// New creates a vault instance bound to addr.
func New(addr gavel.Address, state *state.State) *Vault {
	return &Vault{addr, state}
}

// AddPool fixes the LP token staked by a pool id.
func (v *Vault) AddPool(poolID uint64, lpToken gavel.Address) error {
	existing, err := v.PoolToken(poolID)
	if err != nil {
		return err
	}
	if !existing.IsZero() {
		return ErrPoolExists
	}
	return v.state.SetStructuredStorage(v.addr, poolKey(poolID), lpToken)
}

// PoolToken returns the LP token a pool id stakes, zero if the pool
// was never added.
func (v *Vault) PoolToken(poolID uint64) (gavel.Address, error) {
	var lpToken gavel.Address
	if err := v.state.GetStructuredStorage(v.addr, poolKey(poolID), &lpToken); err != nil {
		return gavel.Address{}, err
	}
	return lpToken, nil
}

func (v *Vault) getPosition(poolID uint64, user gavel.Address) (*big.Int, error) {
	var amount *big.Int
	if err := v.state.GetStructuredStorage(v.addr, positionKey(poolID, user), &amount); err != nil {
		return nil, err
	}
	if amount == nil {
		amount = &big.Int{}
	}
	return amount, nil
}

func (v *Vault) setPosition(poolID uint64, user gavel.Address, amount *big.Int) error {
	return v.state.EncodeStorage(v.addr, positionKey(poolID, user), func() ([]byte, error) {
		if amount.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(amount)
	})
}

// Deposit pulls amount of the pool's LP token from user into the vault.
func (v *Vault) Deposit(poolID uint64, user gavel.Address, amount *big.Int) error {
	lpToken, err := v.PoolToken(poolID)
	if err != nil {
		return err
	}
	if lpToken.IsZero() {
		return ErrUnknownPool
	}
	if err := token.New(lpToken, v.state).Transfer(user, v.addr, amount); err != nil {
		return err
	}
	position, err := v.getPosition(poolID, user)
	if err != nil {
		return err
	}
	return v.setPosition(poolID, user, new(big.Int).Add(position, amount))
}

// Withdraw returns amount of the pool's LP token to user.
func (v *Vault) Withdraw(poolID uint64, user gavel.Address, amount *big.Int) error {
	lpToken, err := v.PoolToken(poolID)
	if err != nil {
		return err
	}
	if lpToken.IsZero() {
		return ErrUnknownPool
	}
	position, err := v.getPosition(poolID, user)
	if err != nil {
		return err
	}
	if position.Cmp(amount) < 0 {
		return ErrInsufficientStake
	}
	if err := token.New(lpToken, v.state).Transfer(v.addr, user, amount); err != nil {
		return err
	}
	return v.setPosition(poolID, user, new(big.Int).Sub(position, amount))
}

// StakedAmount returns the user's position in the pool. Unknown
// pools and users read as zero, never as a fault.
func (v *Vault) StakedAmount(poolID uint64, user gavel.Address) (*big.Int, error) {
	return v.getPosition(poolID, user)
}
