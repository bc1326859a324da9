// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package otc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/builtin/vesting"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

func M(a ...interface{}) []interface{} {
	return a
}

var (
	escrowAddr  = gavel.BytesToAddress([]byte("escrow"))
	govAddr     = gavel.BytesToAddress([]byte("gov"))
	usdAddr     = gavel.BytesToAddress([]byte("usd"))
	sellerGov   = gavel.BytesToAddress([]byte("seller-gov"))
	buyer       = gavel.BytesToAddress([]byte("buyer"))
	beneficiary = gavel.BytesToAddress([]byte("beneficiary"))
)

func newDeal(t *testing.T, escrowed int64) (*OTC, *token.Token, *token.Token, *state.State) {
	store, _ := kv.NewMem()
	st := state.New(store)

	gov := token.New(govAddr, st)
	assert.Nil(t, gov.Init("Gavel", "GVL", 18))
	usd := token.New(usdAddr, st)
	assert.Nil(t, usd.Init("Test Dollar", "USD", 6))

	o := New(escrowAddr, st)
	assert.Nil(t, o.Init(&Terms{
		SellerGov:     sellerGov,
		Buyer:         buyer,
		Beneficiary:   beneficiary,
		SoldToken:     govAddr,
		SoldAmount:    big.NewInt(1000),
		PaymentToken:  usdAddr,
		PaymentAmount: big.NewInt(250),
		Start:         1000,
		Cliff:         1250,
		End:           2000,
	}))

	assert.Nil(t, gov.Mint(escrowAddr, big.NewInt(escrowed)))
	assert.Nil(t, usd.Mint(buyer, big.NewInt(300)))
	assert.Nil(t, usd.Approve(buyer, escrowAddr, big.NewInt(250)))
	return o, gov, usd, st
}

func TestSwap(t *testing.T) {
	o, gov, usd, st := newDeal(t, 1000)

	assert.Equal(t, M(false, nil), M(o.Executed()))

	grantAddr, err := o.Swap()
	assert.Nil(t, err)
	assert.False(t, grantAddr.IsZero())

	// the sold tokens sit in a fresh vesting grant for the buyer
	code, err := st.GetCode(grantAddr)
	assert.Nil(t, err)
	assert.Equal(t, vesting.Code, code)
	grant := vesting.New(grantAddr, st)
	assert.Equal(t, M(buyer, nil), M(grant.Recipient()))
	assert.Equal(t, M(big.NewInt(1000), nil), M(grant.Held()))
	assert.Equal(t, M(&big.Int{}, nil), M(gov.BalanceOf(escrowAddr)))

	// the payment went straight to the seller
	assert.Equal(t, M(big.NewInt(50), nil), M(usd.BalanceOf(buyer)))
	assert.Equal(t, M(big.NewInt(250), nil), M(usd.BalanceOf(sellerGov)))

	assert.Equal(t, M(grantAddr, nil), M(o.Grant()))
	assert.Equal(t, M(true, nil), M(o.Executed()))

	// replaying moves nothing
	_, err = o.Swap()
	assert.Equal(t, ErrAlreadyExecuted, err)
	assert.Equal(t, M(big.NewInt(250), nil), M(usd.BalanceOf(sellerGov)))
	assert.Equal(t, M(big.NewInt(50), nil), M(usd.BalanceOf(buyer)))
}

func TestSwapUnderfunded(t *testing.T) {
	o, gov, usd, _ := newDeal(t, 999)

	_, err := o.Swap()
	assert.Equal(t, ErrInsufficientBalance, err)

	assert.Equal(t, M(big.NewInt(999), nil), M(gov.BalanceOf(escrowAddr)))
	assert.Equal(t, M(big.NewInt(300), nil), M(usd.BalanceOf(buyer)))
	assert.Equal(t, M(false, nil), M(o.Executed()))
}

func TestSwapNoAllowance(t *testing.T) {
	o, gov, usd, _ := newDeal(t, 1000)
	assert.Nil(t, usd.Approve(buyer, escrowAddr, &big.Int{}))

	_, err := o.Swap()
	assert.Equal(t, token.ErrInsufficientAllowance, err)

	assert.Equal(t, M(big.NewInt(300), nil), M(usd.BalanceOf(buyer)))
	assert.Equal(t, M(big.NewInt(1000), nil), M(gov.BalanceOf(escrowAddr)))
	assert.Equal(t, M(false, nil), M(o.Executed()))
}

func TestRevoke(t *testing.T) {
	o, gov, _, _ := newDeal(t, 1000)

	assert.Equal(t, ErrUnauthorized, o.Revoke(buyer))
	assert.Equal(t, M(big.NewInt(1000), nil), M(gov.BalanceOf(escrowAddr)))

	// revoking instead of swapping returns the whole deposit
	assert.Nil(t, o.Revoke(sellerGov))
	assert.Equal(t, M(&big.Int{}, nil), M(gov.BalanceOf(escrowAddr)))
	assert.Equal(t, M(big.NewInt(1000), nil), M(gov.BalanceOf(sellerGov)))
}

func TestRevokeResidual(t *testing.T) {
	o, gov, _, _ := newDeal(t, 1000)
	_, err := o.Swap()
	assert.Nil(t, err)

	// dust arriving after the swap is still sweepable
	assert.Nil(t, gov.Mint(escrowAddr, big.NewInt(5)))
	assert.Nil(t, o.Revoke(sellerGov))
	assert.Equal(t, M(&big.Int{}, nil), M(gov.BalanceOf(escrowAddr)))
	assert.Equal(t, M(big.NewInt(5), nil), M(gov.BalanceOf(sellerGov)))
}

func TestRecoverPayment(t *testing.T) {
	o, _, usd, _ := newDeal(t, 1000)

	// anyone may trigger recovery, in any state
	assert.Nil(t, usd.Mint(escrowAddr, big.NewInt(77)))
	assert.Nil(t, o.RecoverPayment())
	assert.Equal(t, M(&big.Int{}, nil), M(usd.BalanceOf(escrowAddr)))
	assert.Equal(t, M(big.NewInt(77), nil), M(usd.BalanceOf(beneficiary)))
}
