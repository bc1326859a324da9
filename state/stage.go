// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
)

// Stage abstracts the process of committing journaled changes into
// the backing store.
type Stage struct {
	store   kv.GetPutter
	changes []*entry
}

type stagedKV struct {
	Key   string
	Value []byte
}

// Hash computes the hash over all staged changes in write order.
func (s *Stage) Hash() gavel.Bytes32 {
	kvs := make([]stagedKV, 0, len(s.changes))
	for _, e := range s.changes {
		kvs = append(kvs, stagedKV{e.key, e.value})
	}
	data, _ := rlp.EncodeToBytes(kvs)
	return gavel.Blake2b(data)
}

// Commit commits all staged changes. Clears are persisted as deletes.
func (s *Stage) Commit() error {
	batch := s.store.NewBatch()
	for _, e := range s.changes {
		if len(e.value) == 0 {
			batch.Delete([]byte(e.key))
		} else {
			batch.Put([]byte(e.key), e.value)
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}
