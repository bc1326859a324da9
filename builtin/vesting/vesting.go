// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as a vesting grant contract.
var Code = []byte("gavel/vesting")

var (
	termsKey    = gavel.Blake2b([]byte("terms"))
	releasedKey = gavel.Blake2b([]byte("released"))
)

// Vesting implements native methods of a vesting grant contract.
// One grant per address: the terms are written once and the granted
// tokens sit on the grant's own balance until claimed.
type Vesting struct {
	addr  gavel.Address
	state *state.State
}

// New creates a vesting grant instance bound to addr.
func New(addr gavel.Address, state *state.State) *Vesting {
	return &Vesting{addr, state}
}

// Init writes the immutable grant terms.
func (v *Vesting) Init(terms *Terms) error {
	return v.state.SetStructuredStorage(v.addr, termsKey, terms)
}

// Terms returns the grant terms.
func (v *Vesting) Terms() (*Terms, error) {
	var terms Terms
	if err := v.state.GetStructuredStorage(v.addr, termsKey, &terms); err != nil {
		return nil, err
	}
	return &terms, nil
}

// Recipient returns the address the grant vests to.
func (v *Vesting) Recipient() (gavel.Address, error) {
	terms, err := v.Terms()
	if err != nil {
		return gavel.Address{}, err
	}
	return terms.Recipient, nil
}

// Held returns the token balance still custodied by the grant.
func (v *Vesting) Held() (*big.Int, error) {
	terms, err := v.Terms()
	if err != nil {
		return nil, err
	}
	return token.New(terms.Token, v.state).BalanceOf(v.addr)
}

// Released returns the amount already claimed.
func (v *Vesting) Released() (*big.Int, error) {
	var released *big.Int
	if err := v.state.GetStructuredStorage(v.addr, releasedKey, &released); err != nil {
		return nil, err
	}
	if released == nil {
		released = &big.Int{}
	}
	return released, nil
}

// VestedAmount returns the part of the granted amount unlocked at the
// given time: zero before the cliff, linear in time from start to
// end, the full amount after end.
func (v *Vesting) VestedAmount(now uint64) (*big.Int, error) {
	terms, err := v.Terms()
	if err != nil {
		return nil, err
	}
	return vestedAmount(terms, now), nil
}

func vestedAmount(terms *Terms, now uint64) *big.Int {
	if now < terms.Cliff || now < terms.Start {
		return &big.Int{}
	}
	if now >= terms.End {
		return terms.Amount
	}
	unlocked := new(big.Int).SetUint64(now - terms.Start)
	unlocked.Mul(unlocked, terms.Amount)
	return unlocked.Div(unlocked, new(big.Int).SetUint64(terms.End-terms.Start))
}

// Claim transfers the unlocked, not yet claimed portion to the
// recipient and returns it.
func (v *Vesting) Claim(now uint64) (*big.Int, error) {
	terms, err := v.Terms()
	if err != nil {
		return nil, err
	}
	released, err := v.Released()
	if err != nil {
		return nil, err
	}

	claimable := new(big.Int).Sub(vestedAmount(terms, now), released)
	if claimable.Sign() <= 0 {
		return &big.Int{}, nil
	}
	if err := token.New(terms.Token, v.state).Transfer(v.addr, terms.Recipient, claimable); err != nil {
		return nil, err
	}
	if err := v.state.SetStructuredStorage(v.addr, releasedKey, new(big.Int).Add(released, claimable)); err != nil {
		return nil, err
	}
	return claimable, nil
}
