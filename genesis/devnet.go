// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/builtin/dex"
	"github.com/gavelhq/gavel/builtin/farm"
	"github.com/gavelhq/gavel/builtin/otc"
	"github.com/gavelhq/gavel/builtin/power"
	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/builtin/vault"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// DevAccount account for development.
type DevAccount struct {
	Address    gavel.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"99f0500549792796a3a97a26a7e8c7fae4a2f0f4fb19d49f73cd180b9bf7e6a8",
		"21b00e0c07d5cb04e53bbd965a9266e6a8e00fe0a0d053b1e7d1075996f1e938",
		"46c6e2b900cd5d4cf9ae6c89f2af5a14ea42d05a09e42b4c160cbd5627e18806",
		"f0f3abc4b01d4c9181ce30a3bcb84e3cd5e0a6b8929ecfbdf9a3ba1f1d13c80e",
		"b94c5ebb9d21c0a16fe5e1a5f62c0d9e400744fa7b15bcfc454a07e1ba1e2f73",
		"4e3e9362ccb6ee3a0c1a3f37b1d5b9b3a3b8a6b6c0f0e2d4a5978e4c6d8faa01",
		"0da0b5e9e89fd44d8ea3cfa0e1e9d7b00a7b0e7fefbc309447a9bc45a27e7b0a",
		"6f1b7ef05a1efb2c6f9dd8f7e8e2e0cda2b78d4f3d9cba4e5e0c1f2a3b4c5d6e",
		"8a2f9d0e1c3b5a7f9e8d7c6b5a4f3e2dc10b9a8f7e6dc54b3a2f1e0dc98b7a6f",
		"5fb0c39e77d1e9f84a06c291b5d23e8a47f1c06d9e5b382a4c7d0f1e6a9b8c35",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{gavel.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

const day = uint64(24 * 60 * 60)

// NewDevnet create genesis for solo mode. The first dev account owns
// the registry and is the seller side of the escrowed deal.
func NewDevnet() *Genesis {
	launchTime := uint64(1672531200) // 'Sun Jan 01 2023 00:00:00 GMT'

	accs := DevAccounts()
	master := accs[0].Address

	govBalance, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	payBalance, _ := new(big.Int).SetString("1000000000000", 10)
	lpBalance, _ := new(big.Int).SetString("10000000000000000000000", 10)
	rewardRate, _ := new(big.Int).SetString("1000000000000000000", 10)
	rewardFund, _ := new(big.Int).SetString("31104000000000000000000000", 10)
	soldAmount, _ := new(big.Int).SetString("100000000000000000000000", 10)
	paymentAmount, _ := new(big.Int).SetString("250000000000", 10)

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(state *state.State) error {
			// setup builtin contracts
			state.SetCode(builtin.Registry.Address, builtin.Registry.Code)
			state.SetCode(builtin.Power.Address, builtin.Power.Code)
			state.SetCode(GovToken, token.Code)
			state.SetCode(PaymentToken, token.Code)
			state.SetCode(VenueA, dex.Code)
			state.SetCode(VenueB, dex.Code)
			state.SetCode(Farm, farm.Code)
			state.SetCode(Vault, vault.Code)
			state.SetCode(Escrow, otc.Code)
			return nil
		}).
		State(func(state *state.State) error {
			gov := token.New(GovToken, state)
			if err := gov.Init("Gavel", "GVL", 18); err != nil {
				return err
			}
			pay := token.New(PaymentToken, state)
			if err := pay.Init("Devnet Dollar", "DUSD", 6); err != nil {
				return err
			}
			for _, a := range DevAccounts() {
				if err := gov.Mint(a.Address, govBalance); err != nil {
					return err
				}
				if err := pay.Mint(a.Address, payBalance); err != nil {
					return err
				}
			}
			// rewards paid out by the farm, and the escrowed deal
			if err := gov.Mint(Farm, rewardFund); err != nil {
				return err
			}
			return gov.Mint(Escrow, soldAmount)
		}).
		State(func(state *state.State) error {
			venueA := dex.New(VenueA, state)
			if err := venueA.Init(GovToken, PaymentToken); err != nil {
				return err
			}
			if err := venueA.Token.Init("Gavel LP A", "GLP-A", 18); err != nil {
				return err
			}
			if err := venueA.Mint(accs[1].Address, lpBalance); err != nil {
				return err
			}
			if err := venueA.Mint(accs[2].Address, lpBalance); err != nil {
				return err
			}
			govReserve, _ := new(big.Int).SetString("200000000000000000000000", 10)
			payReserve, _ := new(big.Int).SetString("400000000000", 10)
			return venueA.Sync(govReserve, payReserve)
		}).
		State(func(state *state.State) error {
			venueB := dex.New(VenueB, state)
			if err := venueB.Init(GovToken, PaymentToken); err != nil {
				return err
			}
			if err := venueB.Token.Init("Gavel LP B", "GLP-B", 18); err != nil {
				return err
			}
			if err := venueB.Mint(accs[1].Address, lpBalance); err != nil {
				return err
			}
			if err := venueB.Mint(accs[3].Address, lpBalance); err != nil {
				return err
			}
			govReserve, _ := new(big.Int).SetString("150000000000000000000000", 10)
			payReserve, _ := new(big.Int).SetString("300000000000", 10)
			return venueB.Sync(govReserve, payReserve)
		}).
		State(func(state *state.State) error {
			f := farm.New(Farm, state)
			if err := f.Init(VenueB, GovToken, rewardRate, launchTime, launchTime+360*day); err != nil {
				return err
			}
			return vault.New(Vault, state).AddPool(VaultPoolID, VenueB)
		}).
		State(func(state *state.State) error {
			reg := builtin.Registry.WithState(state)
			if err := reg.Init(master); err != nil {
				return err
			}
			if err := reg.AddFarms(master, Farm); err != nil {
				return err
			}
			if err := reg.SetStakedPool(master, Vault, VaultPoolID); err != nil {
				return err
			}
			return builtin.Power.WithState(state).Init(&power.Refs{
				Token:    GovToken,
				VenueA:   VenueA,
				VenueB:   VenueB,
				Registry: builtin.Registry.Address,
			})
		}).
		State(func(state *state.State) error {
			return otc.New(Escrow, state).Init(&otc.Terms{
				SellerGov:     master,
				Buyer:         accs[1].Address,
				Beneficiary:   accs[2].Address,
				SoldToken:     GovToken,
				SoldAmount:    soldAmount,
				PaymentToken:  PaymentToken,
				PaymentAmount: paymentAmount,
				Start:         launchTime + 30*day,
				Cliff:         launchTime + 120*day,
				End:           launchTime + 390*day,
			})
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}

	return &Genesis{builder, id, "devnet"}
}
