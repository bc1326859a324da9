// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

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

func TestToken(t *testing.T) {
	store, _ := kv.NewMem()
	st := state.New(store)

	alice := gavel.BytesToAddress([]byte("alice"))
	bob := gavel.BytesToAddress([]byte("bob"))

	tok := New(gavel.BytesToAddress([]byte("gov")), st)
	assert.Nil(t, tok.Init("Gavel", "GVL", 18))

	tests := []struct {
		ret      interface{}
		expected interface{}
	}{
		{M(tok.Name()), M("Gavel", nil)},
		{M(tok.Symbol()), M("GVL", nil)},
		{M(tok.Decimals()), M(uint8(18), nil)},
		{M(tok.TotalSupply()), M(&big.Int{}, nil)},
		{tok.Mint(alice, big.NewInt(100)), nil},
		{M(tok.TotalSupply()), M(big.NewInt(100), nil)},
		{M(tok.BalanceOf(alice)), M(big.NewInt(100), nil)},
		{tok.Transfer(alice, bob, big.NewInt(30)), nil},
		{M(tok.BalanceOf(alice)), M(big.NewInt(70), nil)},
		{M(tok.BalanceOf(bob)), M(big.NewInt(30), nil)},
		{tok.Transfer(alice, bob, big.NewInt(71)), ErrInsufficientBalance},
		{M(tok.BalanceOf(alice)), M(big.NewInt(70), nil)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
}

func TestTokenAllowance(t *testing.T) {
	store, _ := kv.NewMem()
	st := state.New(store)

	alice := gavel.BytesToAddress([]byte("alice"))
	bob := gavel.BytesToAddress([]byte("bob"))
	carol := gavel.BytesToAddress([]byte("carol"))

	tok := New(gavel.BytesToAddress([]byte("gov")), st)
	assert.Nil(t, tok.Init("Gavel", "GVL", 18))
	assert.Nil(t, tok.Mint(alice, big.NewInt(100)))

	assert.Equal(t, ErrInsufficientAllowance, tok.TransferFrom(bob, alice, carol, big.NewInt(10)))

	assert.Nil(t, tok.Approve(alice, bob, big.NewInt(40)))
	assert.Equal(t, M(big.NewInt(40), nil), M(tok.Allowance(alice, bob)))

	assert.Nil(t, tok.TransferFrom(bob, alice, carol, big.NewInt(25)))
	assert.Equal(t, M(big.NewInt(75), nil), M(tok.BalanceOf(alice)))
	assert.Equal(t, M(big.NewInt(25), nil), M(tok.BalanceOf(carol)))
	assert.Equal(t, M(big.NewInt(15), nil), M(tok.Allowance(alice, bob)))

	assert.Equal(t, ErrInsufficientAllowance, tok.TransferFrom(bob, alice, carol, big.NewInt(16)))

	// allowance covers it but the balance does not
	assert.Nil(t, tok.Approve(alice, bob, big.NewInt(1000)))
	assert.Equal(t, ErrInsufficientBalance, tok.TransferFrom(bob, alice, carol, big.NewInt(76)))
}

func TestTokenSelfTransfer(t *testing.T) {
	store, _ := kv.NewMem()
	st := state.New(store)

	alice := gavel.BytesToAddress([]byte("alice"))

	tok := New(gavel.BytesToAddress([]byte("gov")), st)
	assert.Nil(t, tok.Init("Gavel", "GVL", 18))
	assert.Nil(t, tok.Mint(alice, big.NewInt(100)))

	assert.Nil(t, tok.Transfer(alice, alice, big.NewInt(100)))
	assert.Equal(t, M(big.NewInt(100), nil), M(tok.BalanceOf(alice)))
}
