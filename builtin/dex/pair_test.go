// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

func M(a ...interface{}) []interface{} {
	return a
}

func TestPair(t *testing.T) {
	store, _ := kv.NewMem()
	st := state.New(store)

	gov := gavel.BytesToAddress([]byte("gov"))
	usd := gavel.BytesToAddress([]byte("usd"))
	holder := gavel.BytesToAddress([]byte("holder"))

	pair := New(gavel.BytesToAddress([]byte("pair-a")), st)
	assert.Nil(t, pair.Init(gov, usd))
	assert.Nil(t, pair.Token.Init("Venue A LP", "GLP-A", 18))

	t0, t1, err := pair.Tokens()
	assert.Nil(t, err)
	assert.Equal(t, gov, t0)
	assert.Equal(t, usd, t1)

	// reserves start empty
	assert.Equal(t, M(&big.Int{}, nil), M(pair.ReserveOf(gov)))

	assert.Nil(t, pair.Sync(big.NewInt(3000), big.NewInt(9000)))
	assert.Equal(t, M(big.NewInt(3000), nil), M(pair.ReserveOf(gov)))
	assert.Equal(t, M(big.NewInt(9000), nil), M(pair.ReserveOf(usd)))

	_, err = pair.ReserveOf(gavel.BytesToAddress([]byte("other")))
	assert.Equal(t, ErrUnknownAsset, err)

	// LP receipt token shares the pair's address
	assert.Nil(t, pair.Mint(holder, big.NewInt(100)))
	assert.Equal(t, M(big.NewInt(100), nil), M(pair.BalanceOf(holder)))
	assert.Equal(t, M(big.NewInt(100), nil), M(pair.TotalSupply()))
	assert.Equal(t, M("GLP-A", nil), M(pair.Name()))
}
