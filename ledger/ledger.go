// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

var idKey = []byte("ledger-id")

// Genesis seeds an empty store with the initial state.
type Genesis interface {
	ID() gavel.Bytes32
	Build(st *state.State) error
}

// Env is the context of a ledger call. Version counts the mutations
// committed before the call and is read under the same lock as State,
// so it is safe to key caches of query results.
type Env struct {
	State   *state.State
	Now     uint64
	Caller  gavel.Address
	Version uint64
}

// Ledger owns the committed state and serializes access to it.
// Mutations are totally ordered and atomic. Queries see only
// committed state.
type Ledger struct {
	store   kv.GetPutter
	id      gavel.Bytes32
	mu      sync.RWMutex
	version uint64
}

// New opens the ledger over the given store, applying genesis when
// the store has none, and failing when the store was seeded by a
// different genesis.
func New(store kv.GetPutter, gene Genesis) (*Ledger, error) {
	val, err := store.Get(idKey)
	if err != nil {
		if !store.IsNotFound(err) {
			return nil, errors.Wrap(err, "read ledger id")
		}
		st := state.New(store)
		if err := gene.Build(st); err != nil {
			return nil, errors.Wrap(err, "build genesis")
		}
		if err := st.Stage().Commit(); err != nil {
			return nil, errors.Wrap(err, "commit genesis")
		}
		id := gene.ID()
		if err := store.Put(idKey, id[:]); err != nil {
			return nil, errors.Wrap(err, "write ledger id")
		}
		return &Ledger{store: store, id: id}, nil
	}

	id := gavel.BytesToBytes32(val)
	if id != gene.ID() {
		return nil, errors.Errorf("genesis mismatch: store %v, want %v", id, gene.ID())
	}
	return &Ledger{store: store, id: id}, nil
}

// ID returns the genesis id the store was seeded with.
func (l *Ledger) ID() gavel.Bytes32 {
	return l.id
}

// Version returns the count of committed mutations since the ledger
// was opened. It keys caches of query results.
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Execute runs fn with write access as caller. State changes are
// committed if and only if fn returns nil.
func (l *Ledger) Execute(caller gavel.Address, fn func(env *Env) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := state.New(l.store)
	checkpoint := st.NewCheckpoint()
	if err := fn(&Env{State: st, Now: now(), Caller: caller, Version: l.version}); err != nil {
		st.RevertTo(checkpoint)
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	l.version++
	return nil
}

// Query runs fn over a snapshot of the committed state.
func (l *Ledger) Query(fn func(env *Env) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return fn(&Env{State: state.New(l.store), Now: now(), Version: l.version})
}

func now() uint64 {
	return uint64(time.Now().Unix())
}
