// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as the source registry contract.
var Code = []byte("gavel/registry")

var (
	// ErrUnauthorized is returned when a mutation is attempted by a
	// caller other than the owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOwner is returned when transferring ownership to the
	// zero address.
	ErrInvalidOwner = errors.New("invalid new owner")
)

var (
	ownerKey      = gavel.Blake2b([]byte("owner"))
	stakedPoolKey = gavel.Blake2b([]byte("staked-pool"))

	farmListKey  = []byte("farms")
	grantListKey = []byte("vesting-grants")
)

// Registry implements native methods of the source registry contract.
// It tracks the farms and vesting grants the aggregator sums over,
// and the externally staked pool pointer. The lists only ever grow:
// entries are appended in call order, never removed or reordered, and
// duplicates are kept.
type Registry struct {
	addr  gavel.Address
	state *state.State
}

// New creates a registry instance bound to addr.
func New(addr gavel.Address, state *state.State) *Registry {
	return &Registry{addr, state}
}

// Init writes the initial owner.
func (r *Registry) Init(owner gavel.Address) error {
	return r.state.SetStructuredStorage(r.addr, ownerKey, owner)
}

// Owner returns the address allowed to mutate the registry.
func (r *Registry) Owner() (gavel.Address, error) {
	var owner gavel.Address
	if err := r.state.GetStructuredStorage(r.addr, ownerKey, &owner); err != nil {
		return gavel.Address{}, err
	}
	return owner, nil
}

func (r *Registry) checkOwner(caller gavel.Address) error {
	owner, err := r.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrUnauthorized
	}
	return nil
}

// TransferOwnership hands the owner credential to newOwner.
func (r *Registry) TransferOwnership(caller, newOwner gavel.Address) error {
	if err := r.checkOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrInvalidOwner
	}
	return r.state.SetStructuredStorage(r.addr, ownerKey, newOwner)
}

// AddFarms appends farm addresses, in the given order.
func (r *Registry) AddFarms(caller gavel.Address, farms ...gavel.Address) error {
	if err := r.checkOwner(caller); err != nil {
		return err
	}
	return r.appendList(farmListKey, farms)
}

// Farms returns all registered farm addresses in insertion order.
func (r *Registry) Farms() ([]gavel.Address, error) {
	return r.readList(farmListKey)
}

// AddVestingGrants appends vesting grant addresses, in the given order.
func (r *Registry) AddVestingGrants(caller gavel.Address, grants ...gavel.Address) error {
	if err := r.checkOwner(caller); err != nil {
		return err
	}
	return r.appendList(grantListKey, grants)
}

// VestingGrants returns all registered grant addresses in insertion order.
func (r *Registry) VestingGrants() ([]gavel.Address, error) {
	return r.readList(grantListKey)
}

// SetStakedPool replaces the externally staked pool pointer, both
// fields at once.
func (r *Registry) SetStakedPool(caller, vault gavel.Address, poolID uint64) error {
	if err := r.checkOwner(caller); err != nil {
		return err
	}
	return r.state.SetStructuredStorage(r.addr, stakedPoolKey, &stakedPool{vault, poolID})
}

// StakedPool returns the staked pool pointer. A zero vault address
// means no pool was ever set.
func (r *Registry) StakedPool() (gavel.Address, uint64, error) {
	var pointer stakedPool
	if err := r.state.GetStructuredStorage(r.addr, stakedPoolKey, &pointer); err != nil {
		return gavel.Address{}, 0, err
	}
	return pointer.Vault, pointer.PoolID, nil
}

func listCountKey(prefix []byte) gavel.Bytes32 {
	return gavel.Blake2b(prefix, []byte("count"))
}

func listEntryKey(prefix []byte, index uint64) gavel.Bytes32 {
	var i [8]byte
	binary.BigEndian.PutUint64(i[:], index)
	return gavel.Blake2b(prefix, i[:])
}

func (r *Registry) appendList(prefix []byte, entries []gavel.Address) error {
	var count uint64
	if err := r.state.GetStructuredStorage(r.addr, listCountKey(prefix), &count); err != nil {
		return err
	}
	for i, entry := range entries {
		if err := r.state.SetStructuredStorage(r.addr, listEntryKey(prefix, count+uint64(i)), entry); err != nil {
			return err
		}
	}
	return r.state.SetStructuredStorage(r.addr, listCountKey(prefix), count+uint64(len(entries)))
}

func (r *Registry) readList(prefix []byte) ([]gavel.Address, error) {
	var count uint64
	if err := r.state.GetStructuredStorage(r.addr, listCountKey(prefix), &count); err != nil {
		return nil, err
	}
	entries := make([]gavel.Address, 0, count)
	for i := uint64(0); i < count; i++ {
		var entry gavel.Address
		if err := r.state.GetStructuredStorage(r.addr, listEntryKey(prefix, i), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
