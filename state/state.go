// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages contract storage and code over a key-value store.
// Writes are journaled and invisible to the store until the stage
// produced by Stage is committed.
type State struct {
	store kv.GetPutter
	jn    *journal
}

// New creates a state reading through to the given store.
func New(store kv.GetPutter) *State {
	state := State{store: store}
	state.jn = newJournal(func(key string) ([]byte, bool, error) {
		val, err := store.Get([]byte(key))
		if err != nil {
			if store.IsNotFound(err) {
				return nil, true, nil
			}
			return nil, false, err
		}
		return val, true, nil
	})
	// base level, so that writes are valid right away
	state.jn.push()
	return &state
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr gavel.Address, key gavel.Bytes32) (gavel.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return gavel.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return gavel.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return gavel.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return gavel.Blake2b(raw), nil
	}
	return gavel.BytesToBytes32(content), nil
}

// SetStorage sets storage value for the given address and key.
func (s *State) SetStorage(addr gavel.Address, key, value gavel.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr gavel.Address, key gavel.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.jn.get(storageKey(addr, key))
	if err != nil {
		return nil, &Error{err}
	}
	return rlp.RawValue(data), nil
}

// SetRawStorage sets storage value in rlp raw.
func (s *State) SetRawStorage(addr gavel.Address, key gavel.Bytes32, raw rlp.RawValue) {
	s.jn.put(storageKey(addr, key), raw)
}

// EncodeStorage sets storage value encoded by given enc method.
func (s *State) EncodeStorage(addr gavel.Address, key gavel.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes storage value with given dec method.
func (s *State) DecodeStorage(addr gavel.Address, key gavel.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetCode returns code for the given address.
func (s *State) GetCode(addr gavel.Address) ([]byte, error) {
	code, _, err := s.jn.get(codeKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return code, nil
}

// SetCode sets code for the given address.
func (s *State) SetCode(addr gavel.Address, code []byte) {
	s.jn.put(codeKey(addr), code)
}

// Exists returns whether a contract is deployed at the given address.
func (s *State) Exists(addr gavel.Address) (bool, error) {
	code, err := s.GetCode(addr)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.jn.push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.jn.popTo(revision)
}

// Stage makes a stage object to commit all uncommitted changes.
func (s *State) Stage() *Stage {
	var changes []*entry
	s.jn.journalAll(func(key string, value []byte) {
		changes = append(changes, &entry{key, value})
	})
	return &Stage{store: s.store, changes: changes}
}

func storageKey(addr gavel.Address, key gavel.Bytes32) string {
	b := make([]byte, 0, 1+len(addr)+len(key))
	b = append(b, 's')
	b = append(b, addr[:]...)
	b = append(b, key[:]...)
	return string(b)
}

func codeKey(addr gavel.Address) string {
	b := make([]byte, 0, 1+len(addr))
	b = append(b, 'c')
	b = append(b, addr[:]...)
	return string(b)
}
