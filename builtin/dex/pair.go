// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dex

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as a pair contract.
var Code = []byte("gavel/pair")

// ErrUnknownAsset is returned when an asset is not one of the pair's two.
var ErrUnknownAsset = errors.New("unknown asset")

var (
	tokensKey   = gavel.Blake2b([]byte("tokens"))
	reservesKey = gavel.Blake2b([]byte("reserves"))
)

// Pair implements native methods of a two-asset pool contract.
// The pair's address doubles as its LP receipt token.
type Pair struct {
	*token.Token
	addr  gavel.Address
	state *state.State
}

// New creates a pair instance bound to addr.
func New(addr gavel.Address, state *state.State) *Pair {
	return &Pair{token.New(addr, state), addr, state}
}

// Init writes the pair's two asset addresses. Reserves start at zero.
func (p *Pair) Init(token0, token1 gavel.Address) error {
	return p.state.SetStructuredStorage(p.addr, tokensKey, &tokens{token0, token1})
}

// Tokens returns the pair's two asset addresses.
func (p *Pair) Tokens() (gavel.Address, gavel.Address, error) {
	var t tokens
	if err := p.state.GetStructuredStorage(p.addr, tokensKey, &t); err != nil {
		return gavel.Address{}, gavel.Address{}, err
	}
	return t.Token0, t.Token1, nil
}

// Reserves returns the observed reserves of both assets, in the
// order of Tokens.
func (p *Pair) Reserves() (*big.Int, *big.Int, error) {
	var r reserves
	if err := p.state.GetStructuredStorage(p.addr, reservesKey, &r); err != nil {
		return nil, nil, err
	}
	return r.Reserve0, r.Reserve1, nil
}

// Sync replaces both observed reserves.
func (p *Pair) Sync(reserve0, reserve1 *big.Int) error {
	return p.state.SetStructuredStorage(p.addr, reservesKey, &reserves{reserve0, reserve1})
}

// ReserveOf returns the reserve of the given asset.
func (p *Pair) ReserveOf(asset gavel.Address) (*big.Int, error) {
	token0, token1, err := p.Tokens()
	if err != nil {
		return nil, err
	}
	reserve0, reserve1, err := p.Reserves()
	if err != nil {
		return nil, err
	}
	switch asset {
	case token0:
		return reserve0, nil
	case token1:
		return reserve1, nil
	}
	return nil, ErrUnknownAsset
}
