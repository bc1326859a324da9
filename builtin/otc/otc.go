// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package otc

import (
	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/builtin/vesting"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as an OTC escrow contract.
var Code = []byte("gavel/otc")

var (
	ErrAlreadyExecuted     = errors.New("already executed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnauthorized        = errors.New("unauthorized")
)

var (
	termsKey = gavel.Blake2b([]byte("terms"))
	grantKey = gavel.Blake2b([]byte("grant"))
)

// OTC implements native methods of the escrow mediating a single
// pre-negotiated swap. The seller deposits the sold tokens into the
// escrow up front; executing the swap locks them into a fresh vesting
// grant for the buyer and forwards the payment to the seller.
type OTC struct {
	addr  gavel.Address
	state *state.State
}

// New creates an escrow instance bound to addr.
func New(addr gavel.Address, state *state.State) *OTC {
	return &OTC{addr, state}
}

// Address returns the escrow's address.
func (o *OTC) Address() gavel.Address {
	return o.addr
}

// Init writes the deal terms.
func (o *OTC) Init(terms *Terms) error {
	return o.state.SetStructuredStorage(o.addr, termsKey, terms)
}

// Terms returns the deal terms.
func (o *OTC) Terms() (*Terms, error) {
	var terms Terms
	if err := o.state.GetStructuredStorage(o.addr, termsKey, &terms); err != nil {
		return nil, err
	}
	return &terms, nil
}

// Grant returns the vesting grant created by the swap, or the zero
// address while the swap has not executed.
func (o *OTC) Grant() (gavel.Address, error) {
	var grant gavel.Address
	if err := o.state.GetStructuredStorage(o.addr, grantKey, &grant); err != nil {
		return gavel.Address{}, err
	}
	return grant, nil
}

// Executed reports whether the swap has run.
func (o *OTC) Executed() (bool, error) {
	grant, err := o.Grant()
	if err != nil {
		return false, err
	}
	return !grant.IsZero(), nil
}

// Swap executes the deal once. The escrow must already custody the
// promised sold amount, and the buyer must have approved the escrow
// for the payment amount. The payment goes to the seller and the sold
// tokens move into a newly created vesting grant whose recipient is
// the buyer. Returns the grant's address.
func (o *OTC) Swap() (gavel.Address, error) {
	executed, err := o.Executed()
	if err != nil {
		return gavel.Address{}, err
	}
	if executed {
		return gavel.Address{}, ErrAlreadyExecuted
	}

	terms, err := o.Terms()
	if err != nil {
		return gavel.Address{}, err
	}

	sold := token.New(terms.SoldToken, o.state)
	escrowed, err := sold.BalanceOf(o.addr)
	if err != nil {
		return gavel.Address{}, err
	}
	if escrowed.Cmp(terms.SoldAmount) < 0 {
		return gavel.Address{}, ErrInsufficientBalance
	}

	payment := token.New(terms.PaymentToken, o.state)
	if err := payment.TransferFrom(o.addr, terms.Buyer, terms.SellerGov, terms.PaymentAmount); err != nil {
		return gavel.Address{}, err
	}

	// the escrow only ever creates this one contract
	grantAddr := gavel.CreateContractAddress(o.addr, 0)
	o.state.SetCode(grantAddr, vesting.Code)
	grant := vesting.New(grantAddr, o.state)
	if err := grant.Init(&vesting.Terms{
		Token:     terms.SoldToken,
		Recipient: terms.Buyer,
		Amount:    terms.SoldAmount,
		Start:     terms.Start,
		Cliff:     terms.Cliff,
		End:       terms.End,
	}); err != nil {
		return gavel.Address{}, err
	}
	if err := sold.Transfer(o.addr, grantAddr, terms.SoldAmount); err != nil {
		return gavel.Address{}, err
	}

	if err := o.state.SetStructuredStorage(o.addr, grantKey, &grantAddr); err != nil {
		return gavel.Address{}, err
	}
	return grantAddr, nil
}

// Revoke sweeps the escrow's entire sold-token balance back to the
// seller. Callable at any time, before or after the swap.
func (o *OTC) Revoke(caller gavel.Address) error {
	terms, err := o.Terms()
	if err != nil {
		return err
	}
	if caller != terms.SellerGov {
		return ErrUnauthorized
	}
	sold := token.New(terms.SoldToken, o.state)
	balance, err := sold.BalanceOf(o.addr)
	if err != nil {
		return err
	}
	return sold.Transfer(o.addr, terms.SellerGov, balance)
}

// RecoverPayment sweeps payment tokens accidentally sent to the
// escrow to the beneficiary. Anyone may call it, in any state.
func (o *OTC) RecoverPayment() error {
	terms, err := o.Terms()
	if err != nil {
		return err
	}
	payment := token.New(terms.PaymentToken, o.state)
	balance, err := payment.BalanceOf(o.addr)
	if err != nil {
		return err
	}
	return payment.Transfer(o.addr, terms.Beneficiary, balance)
}
