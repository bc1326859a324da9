// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/dex"
	"github.com/gavelhq/gavel/builtin/farm"
	"github.com/gavelhq/gavel/builtin/otc"
	"github.com/gavelhq/gavel/builtin/power"
	"github.com/gavelhq/gavel/builtin/registry"
	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/builtin/vault"
	"github.com/gavelhq/gavel/builtin/vesting"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

var (
	ErrNotDeployed   = errors.New("nothing deployed at address")
	ErrWrongContract = errors.New("wrong contract at address")
)

// checkCode asserts that addr carries exactly the wanted contract code.
func checkCode(state *state.State, addr gavel.Address, want []byte) error {
	code, err := state.GetCode(addr)
	if err != nil {
		return err
	}
	if len(code) == 0 {
		return ErrNotDeployed
	}
	if !bytes.Equal(code, want) {
		return ErrWrongContract
	}
	return nil
}

// BindToken binds addr as a token after checking its code.
func BindToken(state *state.State, addr gavel.Address) (*token.Token, error) {
	if err := checkCode(state, addr, token.Code); err != nil {
		return nil, err
	}
	return token.New(addr, state), nil
}

// BindPair binds addr as a pool pair after checking its code.
func BindPair(state *state.State, addr gavel.Address) (*dex.Pair, error) {
	if err := checkCode(state, addr, dex.Code); err != nil {
		return nil, err
	}
	return dex.New(addr, state), nil
}

// BindFarm binds addr as a farm after checking its code.
func BindFarm(state *state.State, addr gavel.Address) (*farm.Farm, error) {
	if err := checkCode(state, addr, farm.Code); err != nil {
		return nil, err
	}
	return farm.New(addr, state), nil
}

// BindVesting binds addr as a vesting grant after checking its code.
func BindVesting(state *state.State, addr gavel.Address) (*vesting.Vesting, error) {
	if err := checkCode(state, addr, vesting.Code); err != nil {
		return nil, err
	}
	return vesting.New(addr, state), nil
}

// BindVault binds addr as a staking vault after checking its code.
func BindVault(state *state.State, addr gavel.Address) (*vault.Vault, error) {
	if err := checkCode(state, addr, vault.Code); err != nil {
		return nil, err
	}
	return vault.New(addr, state), nil
}

// BindRegistry binds addr as a source registry after checking its code.
func BindRegistry(state *state.State, addr gavel.Address) (*registry.Registry, error) {
	if err := checkCode(state, addr, registry.Code); err != nil {
		return nil, err
	}
	return registry.New(addr, state), nil
}

// BindOTC binds addr as an OTC escrow after checking its code.
func BindOTC(state *state.State, addr gavel.Address) (*otc.OTC, error) {
	if err := checkCode(state, addr, otc.Code); err != nil {
		return nil, err
	}
	return otc.New(addr, state), nil
}

// sources resolves addresses against ledger state, refusing handles
// whose deployed code does not match the requested role.
type sources struct {
	state *state.State
}

func (s sources) Token(addr gavel.Address) (power.Token, error) {
	t, err := BindToken(s.state, addr)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s sources) Registry(addr gavel.Address) (power.Registry, error) {
	r, err := BindRegistry(s.state, addr)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s sources) RewardSource(addr gavel.Address) (power.RewardSource, error) {
	f, err := BindFarm(s.state, addr)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s sources) Grant(addr gavel.Address) (power.Grant, error) {
	v, err := BindVesting(s.state, addr)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s sources) Pool(addr gavel.Address) (power.Pool, error) {
	p, err := BindPair(s.state, addr)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s sources) Staking(addr gavel.Address) (power.Staking, error) {
	v, err := BindVault(s.state, addr)
	if err != nil {
		return nil, err
	}
	return v, nil
}
