// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/ledger"
	"github.com/gavelhq/gavel/state"
)

var (
	addr = gavel.BytesToAddress([]byte("addr"))
	key  = gavel.Blake2b([]byte("key"))
)

type testGenesis struct {
	id    gavel.Bytes32
	value gavel.Bytes32
}

func (g *testGenesis) ID() gavel.Bytes32 { return g.id }

func (g *testGenesis) Build(st *state.State) error {
	st.SetStorage(addr, key, g.value)
	return nil
}

func TestNew(t *testing.T) {
	store, _ := kv.NewMem()
	gene := &testGenesis{
		id:    gavel.Blake2b([]byte("genesis")),
		value: gavel.BytesToBytes32([]byte("seeded")),
	}

	ldg, err := ledger.New(store, gene)
	assert.Nil(t, err)
	assert.Equal(t, gene.id, ldg.ID())

	err = ldg.Query(func(env *ledger.Env) error {
		got, err := env.State.GetStorage(addr, key)
		assert.Nil(t, err)
		assert.Equal(t, gene.value, got)
		return nil
	})
	assert.Nil(t, err)

	// reopen with the same genesis
	_, err = ledger.New(store, gene)
	assert.Nil(t, err)

	// reopen with a different genesis
	_, err = ledger.New(store, &testGenesis{id: gavel.Blake2b([]byte("other"))})
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	store, _ := kv.NewMem()
	ldg, _ := ledger.New(store, &testGenesis{id: gavel.Blake2b([]byte("genesis"))})

	value := gavel.BytesToBytes32([]byte("value"))
	caller := gavel.BytesToAddress([]byte("caller"))

	err := ldg.Execute(caller, func(env *ledger.Env) error {
		assert.Equal(t, caller, env.Caller)
		assert.Equal(t, uint64(0), env.Version)
		env.State.SetStorage(addr, key, value)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), ldg.Version())

	ldg.Query(func(env *ledger.Env) error {
		// the env carries the version of the state it snapshots
		assert.Equal(t, uint64(1), env.Version)
		got, _ := env.State.GetStorage(addr, key)
		assert.Equal(t, value, got)
		return nil
	})
}

func TestExecuteRollback(t *testing.T) {
	store, _ := kv.NewMem()
	ldg, _ := ledger.New(store, &testGenesis{id: gavel.Blake2b([]byte("genesis"))})

	boom := errors.New("boom")
	err := ldg.Execute(gavel.Address{}, func(env *ledger.Env) error {
		env.State.SetStorage(addr, key, gavel.BytesToBytes32([]byte("dirty")))
		return boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, uint64(0), ldg.Version())

	// nothing leaked into committed state
	ldg.Query(func(env *ledger.Env) error {
		got, _ := env.State.GetStorage(addr, key)
		assert.Equal(t, gavel.Bytes32{}, got)
		return nil
	})
}
