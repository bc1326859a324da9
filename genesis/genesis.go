// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	id      gavel.Bytes32
	name    string
}

// Build build the genesis state.
func (g *Genesis) Build(state *state.State) error {
	return g.builder.Build(state)
}

// ID returns genesis ID.
func (g *Genesis) ID() gavel.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Well-known contract addresses allocated by the genesis presets.
var (
	GovToken     = gavel.BytesToAddress([]byte("gov-token"))
	PaymentToken = gavel.BytesToAddress([]byte("payment-token"))
	VenueA       = gavel.BytesToAddress([]byte("venue-a"))
	VenueB       = gavel.BytesToAddress([]byte("venue-b"))
	Farm         = gavel.BytesToAddress([]byte("farm"))
	Vault        = gavel.BytesToAddress([]byte("vault"))
	Escrow       = gavel.BytesToAddress([]byte("escrow"))
)

// VaultPoolID is the vault pool holding venue B LP.
const VaultPoolID uint64 = 1
