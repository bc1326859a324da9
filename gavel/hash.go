// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gavel

import (
	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// Blake2b computes blake2b-256 checksum for given data.
// It's the hash used to derive contract storage keys.
func Blake2b(data ...[]byte) (b32 Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	hash, _ := blake2b.New256(nil)
	for _, b := range data {
		hash.Write(b)
	}
	hash.Sum(b32[:0])
	return
}
