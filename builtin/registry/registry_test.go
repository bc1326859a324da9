// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

func M(a ...interface{}) []interface{} {
	return a
}

func newRegistry(t *testing.T) (*Registry, gavel.Address) {
	store, _ := kv.NewMem()
	st := state.New(store)

	owner := gavel.BytesToAddress([]byte("owner"))
	reg := New(gavel.BytesToAddress([]byte("registry")), st)
	assert.Nil(t, reg.Init(owner))
	return reg, owner
}

func TestRegistryLists(t *testing.T) {
	reg, owner := newRegistry(t)

	farm1 := gavel.BytesToAddress([]byte("farm1"))
	farm2 := gavel.BytesToAddress([]byte("farm2"))
	grant1 := gavel.BytesToAddress([]byte("grant1"))

	assert.Equal(t, M([]gavel.Address{}, nil), M(reg.Farms()))

	assert.Nil(t, reg.AddFarms(owner, farm1, farm2))
	assert.Equal(t, M([]gavel.Address{farm1, farm2}, nil), M(reg.Farms()))

	// duplicates append, they are never merged
	assert.Nil(t, reg.AddFarms(owner, farm1))
	assert.Equal(t, M([]gavel.Address{farm1, farm2, farm1}, nil), M(reg.Farms()))

	assert.Nil(t, reg.AddVestingGrants(owner, grant1))
	assert.Equal(t, M([]gavel.Address{grant1}, nil), M(reg.VestingGrants()))

	// the two lists do not bleed into each other
	assert.Equal(t, M([]gavel.Address{farm1, farm2, farm1}, nil), M(reg.Farms()))
}

func TestRegistryAuth(t *testing.T) {
	reg, owner := newRegistry(t)

	stranger := gavel.BytesToAddress([]byte("stranger"))
	farm1 := gavel.BytesToAddress([]byte("farm1"))

	assert.Equal(t, ErrUnauthorized, reg.AddFarms(stranger, farm1))
	assert.Equal(t, ErrUnauthorized, reg.AddVestingGrants(stranger, farm1))
	assert.Equal(t, ErrUnauthorized, reg.SetStakedPool(stranger, farm1, 1))
	assert.Equal(t, ErrUnauthorized, reg.TransferOwnership(stranger, stranger))

	// nothing changed
	assert.Equal(t, M([]gavel.Address{}, nil), M(reg.Farms()))
	assert.Equal(t, M(owner, nil), M(reg.Owner()))
}

func TestRegistryStakedPool(t *testing.T) {
	reg, owner := newRegistry(t)

	vaultA := gavel.BytesToAddress([]byte("vault-a"))
	vaultB := gavel.BytesToAddress([]byte("vault-b"))

	v, id, err := reg.StakedPool()
	assert.Nil(t, err)
	assert.True(t, v.IsZero())
	assert.Equal(t, uint64(0), id)

	assert.Nil(t, reg.SetStakedPool(owner, vaultA, 3))
	assert.Equal(t, M(vaultA, uint64(3), nil), M(reg.StakedPool()))

	// both fields replaced together
	assert.Nil(t, reg.SetStakedPool(owner, vaultB, 9))
	assert.Equal(t, M(vaultB, uint64(9), nil), M(reg.StakedPool()))
}

func TestRegistryOwnership(t *testing.T) {
	reg, owner := newRegistry(t)

	next := gavel.BytesToAddress([]byte("next"))
	farm1 := gavel.BytesToAddress([]byte("farm1"))

	assert.Equal(t, ErrInvalidOwner, reg.TransferOwnership(owner, gavel.Address{}))

	assert.Nil(t, reg.TransferOwnership(owner, next))
	assert.Equal(t, M(next, nil), M(reg.Owner()))

	// the old owner is out, the new one is in
	assert.Equal(t, ErrUnauthorized, reg.AddFarms(owner, farm1))
	assert.Nil(t, reg.AddFarms(next, farm1))
	assert.Equal(t, M([]gavel.Address{farm1}, nil), M(reg.Farms()))
}
