// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build build genesis state according to presets.
func (b *Builder) Build(state *state.State) error {
	for _, proc := range b.stateProcs {
		if err := proc(state); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	return nil
}

// ComputeID compute genesis ID, by building on a throwaway store.
func (b *Builder) ComputeID() (gavel.Bytes32, error) {
	store, err := kv.NewMem()
	if err != nil {
		return gavel.Bytes32{}, err
	}
	defer store.Close()

	st := state.New(store)
	if err := b.Build(st); err != nil {
		return gavel.Bytes32{}, err
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	hash := st.Stage().Hash()
	return gavel.Blake2b(ts[:], hash.Bytes()), nil
}
