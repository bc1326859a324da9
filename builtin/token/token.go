// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as a token contract.
var Code = []byte("gavel/token")

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

var (
	metaKey        = gavel.Blake2b([]byte("meta"))
	totalSupplyKey = gavel.Blake2b([]byte("total-supply"))
)

func balanceKey(addr gavel.Address) gavel.Bytes32 {
	return gavel.BytesToBytes32(append([]byte("b"), addr.Bytes()...))
}

func allowanceKey(owner, spender gavel.Address) gavel.Bytes32 {
	return gavel.Blake2b(owner.Bytes(), spender.Bytes())
}

// Token implements native methods of a fungible token contract.
// Balances and allowances live in the contract's own storage.
type Token struct {
	addr  gavel.Address
	state *state.State
}

// New creates a token instance bound to addr.
func New(addr gavel.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the address the token is bound to.
func (t *Token) Address() gavel.Address {
	return t.addr
}

// Init writes the token metadata. Tagging the address with Code is
// the deployer's job.
func (t *Token) Init(name, symbol string, decimals uint8) error {
	return t.state.SetStructuredStorage(t.addr, metaKey, &meta{name, symbol, decimals})
}

func (t *Token) meta() (*meta, error) {
	var m meta
	if err := t.state.GetStructuredStorage(t.addr, metaKey, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Name returns the token name.
func (t *Token) Name() (string, error) {
	m, err := t.meta()
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

// Symbol returns the token symbol.
func (t *Token) Symbol() (string, error) {
	m, err := t.meta()
	if err != nil {
		return "", err
	}
	return m.Symbol, nil
}

// Decimals returns the token decimal count.
func (t *Token) Decimals() (uint8, error) {
	m, err := t.meta()
	if err != nil {
		return 0, err
	}
	return m.Decimals, nil
}

func (t *Token) getAmount(key gavel.Bytes32) (*big.Int, error) {
	var amount *big.Int
	if err := t.state.DecodeStorage(t.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			amount = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &amount)
	}); err != nil {
		return nil, err
	}
	return amount, nil
}

func (t *Token) setAmount(key gavel.Bytes32, amount *big.Int) error {
	return t.state.EncodeStorage(t.addr, key, func() ([]byte, error) {
		if amount.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(amount)
	})
}

// TotalSupply returns the minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.getAmount(totalSupplyKey)
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr gavel.Address) (*big.Int, error) {
	return t.getAmount(balanceKey(addr))
}

// Mint credits amount to addr, growing the supply.
func (t *Token) Mint(addr gavel.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	if err := t.setAmount(balanceKey(addr), new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	return t.setAmount(totalSupplyKey, new(big.Int).Add(supply, amount))
}

// Transfer moves amount from one balance to another.
func (t *Token) Transfer(from, to gavel.Address, amount *big.Int) error {
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.setAmount(balanceKey(from), new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	return t.setAmount(balanceKey(to), new(big.Int).Add(toBal, amount))
}

// Approve lets spender move up to amount from owner's balance.
func (t *Token) Approve(owner, spender gavel.Address, amount *big.Int) error {
	return t.setAmount(allowanceKey(owner, spender), amount)
}

// Allowance returns the remaining amount spender may move from owner.
func (t *Token) Allowance(owner, spender gavel.Address) (*big.Int, error) {
	return t.getAmount(allowanceKey(owner, spender))
}

// TransferFrom moves amount from 'from' to 'to' on spender's allowance.
func (t *Token) TransferFrom(spender, from, to gavel.Address, amount *big.Int) error {
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.Transfer(from, to, amount); err != nil {
		return err
	}
	return t.setAmount(allowanceKey(from, spender), new(big.Int).Sub(allowance, amount))
}
