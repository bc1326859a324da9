// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to ledger state.
package builtin

import (
	"github.com/gavelhq/gavel/builtin/power"
	"github.com/gavelhq/gavel/builtin/registry"
	"github.com/gavelhq/gavel/state"
)

// Builtin contracts binding.
var (
	Registry = &registryContract{newContract("Registry", registry.Code)}
	Power    = &powerContract{newContract("Power", power.Code)}
)

type (
	registryContract struct{ *contract }
	powerContract    struct{ *contract }
)

func (r *registryContract) WithState(state *state.State) *registry.Registry {
	return registry.New(r.Address, state)
}

// WithState binds the aggregator to the given state. Its upstream
// sources resolve against the same state, with code checks.
func (p *powerContract) WithState(state *state.State) *power.Power {
	return power.New(p.Address, state, sources{state})
}
