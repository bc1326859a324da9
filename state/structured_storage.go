// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/gavelhq/gavel/gavel"
)

// StorageEncoder encodes the storage value.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder decodes the storage value.
type StorageDecoder interface {
	Decode([]byte) error
}

// GetStructuredStorage gets and decodes the storage value into val.
// Types implementing StorageDecoder decode themselves, anything else
// is rlp-decoded. Empty storage leaves a plain val untouched.
func (s *State) GetStructuredStorage(addr gavel.Address, key gavel.Bytes32, val interface{}) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if dec, ok := val.(StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage encodes val and stores it. Types implementing
// StorageEncoder encode themselves, anything else is rlp-encoded.
func (s *State) SetStructuredStorage(addr gavel.Address, key gavel.Bytes32, val interface{}) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if enc, ok := val.(StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(val)
	})
}
