// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/builtin/dex"
	"github.com/gavelhq/gavel/builtin/power"
	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/builtin/vault"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime uint64        `json:"launchTime"`
	Token      TokenMeta     `json:"token"`
	Accounts   []Account     `json:"accounts"`
	VenueA     *Venue        `json:"venueA"`
	VenueB     *Venue        `json:"venueB"`
	Owner      gavel.Address `json:"owner"`
}

// TokenMeta describes the governance token.
type TokenMeta struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Account is an account allocated in the genesis state
type Account struct {
	Address gavel.Address    `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
}

// Venue is a liquidity pool allocated in the genesis state.
type Venue struct {
	TokenReserve   *HexOrDecimal256 `json:"tokenReserve"`
	PaymentReserve *HexOrDecimal256 `json:"paymentReserve"`
	Holders        []Account        `json:"holders"`
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Token.Symbol == "" {
		return nil, errors.New("token symbol must be set")
	}
	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}
	if gen.VenueA == nil || gen.VenueB == nil {
		return nil, errors.New("both venues must be set")
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(state *state.State) error {
			// setup builtin contracts
			state.SetCode(builtin.Registry.Address, builtin.Registry.Code)
			state.SetCode(builtin.Power.Address, builtin.Power.Code)
			state.SetCode(GovToken, token.Code)
			state.SetCode(PaymentToken, token.Code)
			state.SetCode(VenueA, dex.Code)
			state.SetCode(VenueB, dex.Code)
			state.SetCode(Vault, vault.Code)
			return nil
		}).
		State(func(state *state.State) error {
			gov := token.New(GovToken, state)
			if err := gov.Init(gen.Token.Name, gen.Token.Symbol, gen.Token.Decimals); err != nil {
				return err
			}
			pay := token.New(PaymentToken, state)
			if err := pay.Init("Payment Token", "PAY", 18); err != nil {
				return err
			}
			for _, a := range gen.Accounts {
				if a.Balance == nil {
					return fmt.Errorf("%v: balance must be set", a.Address)
				}
				if (*big.Int)(a.Balance).Sign() < 1 {
					return fmt.Errorf("%v: balance must be a non-zero integer", a.Address)
				}
				if err := gov.Mint(a.Address, (*big.Int)(a.Balance)); err != nil {
					return err
				}
			}
			return nil
		}).
		State(func(state *state.State) error {
			if err := buildVenue(state, VenueA, "LP-A", gen.VenueA); err != nil {
				return err
			}
			return buildVenue(state, VenueB, "LP-B", gen.VenueB)
		}).
		State(func(state *state.State) error {
			if err := vault.New(Vault, state).AddPool(VaultPoolID, VenueB); err != nil {
				return err
			}
			reg := builtin.Registry.WithState(state)
			if err := reg.Init(gen.Owner); err != nil {
				return err
			}
			if err := reg.SetStakedPool(gen.Owner, Vault, VaultPoolID); err != nil {
				return err
			}
			return builtin.Power.WithState(state).Init(&power.Refs{
				Token:    GovToken,
				VenueA:   VenueA,
				VenueB:   VenueB,
				Registry: builtin.Registry.Address,
			})
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet"}, nil
}

func buildVenue(state *state.State, addr gavel.Address, symbol string, venue *Venue) error {
	pair := dex.New(addr, state)
	if err := pair.Init(GovToken, PaymentToken); err != nil {
		return err
	}
	if err := pair.Token.Init(symbol, symbol, 18); err != nil {
		return err
	}
	for _, h := range venue.Holders {
		if h.Balance == nil {
			return fmt.Errorf("%v: balance must be set", h.Address)
		}
		if err := pair.Mint(h.Address, (*big.Int)(h.Balance)); err != nil {
			return err
		}
	}
	tokenReserve := &big.Int{}
	if venue.TokenReserve != nil {
		tokenReserve = (*big.Int)(venue.TokenReserve)
	}
	payReserve := &big.Int{}
	if venue.PaymentReserve != nil {
		payReserve = (*big.Int)(venue.PaymentReserve)
	}
	return pair.Sync(tokenReserve, payReserve)
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
