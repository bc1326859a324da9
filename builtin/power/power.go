// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/dex"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as the voting power contract.
var Code = []byte("gavel/power")

// ErrNonTransferable is returned by the disabled token mutations.
var ErrNonTransferable = errors.New("voting power is non-transferable")

var refsKey = gavel.Blake2b([]byte("refs"))

// Power implements native methods of the voting power contract. It
// owns no balances of its own: a power balance is computed from the
// current state of the sources every time it is asked for.
type Power struct {
	addr    gavel.Address
	state   *state.State
	sources Sources
}

// New creates a power instance bound to addr, resolving its upstream
// sources through sources.
func New(addr gavel.Address, state *state.State, sources Sources) *Power {
	return &Power{addr, state, sources}
}

// Init writes the construction references.
func (p *Power) Init(refs *Refs) error {
	return p.state.SetStructuredStorage(p.addr, refsKey, refs)
}

// Refs returns the construction references.
func (p *Power) Refs() (*Refs, error) {
	var refs Refs
	if err := p.state.GetStructuredStorage(p.addr, refsKey, &refs); err != nil {
		return nil, err
	}
	return &refs, nil
}

// BalanceOf returns the voting power of account at the given time.
// Any failing source fails the whole computation; there are no
// partial sums.
func (p *Power) BalanceOf(now uint64, account gavel.Address) (*big.Int, error) {
	breakdown, err := p.Breakdown(now, account)
	if err != nil {
		return nil, err
	}
	return breakdown.Total(), nil
}

// Breakdown returns the voting power of account split by source.
func (p *Power) Breakdown(now uint64, account gavel.Address) (*Breakdown, error) {
	refs, err := p.Refs()
	if err != nil {
		return nil, err
	}

	gov, err := p.sources.Token(refs.Token)
	if err != nil {
		return nil, errors.Wrap(err, "governance token")
	}
	direct, err := gov.BalanceOf(account)
	if err != nil {
		return nil, errors.Wrap(err, "governance token")
	}

	reg, err := p.sources.Registry(refs.Registry)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	farmed := new(big.Int)
	farms, err := reg.Farms()
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	for _, addr := range farms {
		source, err := p.sources.RewardSource(addr)
		if err != nil {
			return nil, errors.Wrapf(err, "farm %v", addr)
		}
		earned, err := source.Earned(now, account)
		if err != nil {
			return nil, errors.Wrapf(err, "farm %v", addr)
		}
		farmed.Add(farmed, earned)
	}

	vesting := new(big.Int)
	grants, err := reg.VestingGrants()
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	for _, addr := range grants {
		grant, err := p.sources.Grant(addr)
		if err != nil {
			return nil, errors.Wrapf(err, "vesting grant %v", addr)
		}
		recipient, err := grant.Recipient()
		if err != nil {
			return nil, errors.Wrapf(err, "vesting grant %v", addr)
		}
		if recipient != account {
			continue
		}
		held, err := grant.Held()
		if err != nil {
			return nil, errors.Wrapf(err, "vesting grant %v", addr)
		}
		vesting.Add(vesting, held)
	}

	venueA, err := p.venueShare(refs.VenueA, refs.Token, account)
	if err != nil {
		return nil, errors.Wrap(err, "venue A")
	}
	venueB, err := p.venueShare(refs.VenueB, refs.Token, account)
	if err != nil {
		return nil, errors.Wrap(err, "venue B")
	}

	// the externally staked LP is priced with venue B's reserves
	staked := new(big.Int)
	vaultAddr, poolID, err := reg.StakedPool()
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	if !vaultAddr.IsZero() {
		staking, err := p.sources.Staking(vaultAddr)
		if err != nil {
			return nil, errors.Wrap(err, "staked pool")
		}
		amount, err := staking.StakedAmount(poolID, account)
		if err != nil {
			return nil, errors.Wrap(err, "staked pool")
		}
		pool, err := p.sources.Pool(refs.VenueB)
		if err != nil {
			return nil, errors.Wrap(err, "staked pool")
		}
		reserve, err := pool.ReserveOf(refs.Token)
		if err != nil {
			return nil, errors.Wrap(err, "staked pool")
		}
		supply, err := pool.TotalSupply()
		if err != nil {
			return nil, errors.Wrap(err, "staked pool")
		}
		staked = dex.Share(amount, reserve, supply)
	}

	return &Breakdown{
		Direct:  direct,
		Farmed:  farmed,
		Vesting: vesting,
		VenueA:  venueA,
		VenueB:  venueB,
		Staked:  staked,
	}, nil
}

func (p *Power) venueShare(venue, asset, account gavel.Address) (*big.Int, error) {
	pool, err := p.sources.Pool(venue)
	if err != nil {
		return nil, err
	}
	balance, err := pool.BalanceOf(account)
	if err != nil {
		return nil, err
	}
	reserve, err := pool.ReserveOf(asset)
	if err != nil {
		return nil, err
	}
	supply, err := pool.TotalSupply()
	if err != nil {
		return nil, err
	}
	return dex.Share(balance, reserve, supply), nil
}

// Name returns the governance token's name marked as voting power.
func (p *Power) Name() (string, error) {
	gov, err := p.governance()
	if err != nil {
		return "", err
	}
	name, err := gov.Name()
	if err != nil {
		return "", err
	}
	return name + " Voting Power", nil
}

// Symbol mirrors the governance token's symbol.
func (p *Power) Symbol() (string, error) {
	gov, err := p.governance()
	if err != nil {
		return "", err
	}
	return gov.Symbol()
}

// Decimals mirrors the governance token's decimal count.
func (p *Power) Decimals() (uint8, error) {
	gov, err := p.governance()
	if err != nil {
		return 0, err
	}
	return gov.Decimals()
}

// TotalSupply mirrors the governance token's supply.
func (p *Power) TotalSupply() (*big.Int, error) {
	gov, err := p.governance()
	if err != nil {
		return nil, err
	}
	return gov.TotalSupply()
}

func (p *Power) governance() (Token, error) {
	refs, err := p.Refs()
	if err != nil {
		return nil, err
	}
	gov, err := p.sources.Token(refs.Token)
	if err != nil {
		return nil, errors.Wrap(err, "governance token")
	}
	return gov, nil
}

// Transfer is disabled: voting power cannot move.
func (p *Power) Transfer(from, to gavel.Address, amount *big.Int) error {
	return ErrNonTransferable
}

// TransferFrom is disabled: voting power cannot move.
func (p *Power) TransferFrom(spender, from, to gavel.Address, amount *big.Int) error {
	return ErrNonTransferable
}

// Approve is disabled: voting power cannot be delegated to a spender.
func (p *Power) Approve(owner, spender gavel.Address, amount *big.Int) error {
	return ErrNonTransferable
}

// Allowance always reads zero.
func (p *Power) Allowance(owner, spender gavel.Address) (*big.Int, error) {
	return &big.Int{}, nil
}
