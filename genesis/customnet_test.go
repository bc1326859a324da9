// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/genesis"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/state"
)

const customDoc = `{
	"launchTime": 1700000000,
	"token": {"name": "Acme Governance", "symbol": "ACME", "decimals": 18},
	"owner": "0x6d48628bb5bf20e5b4e591c948e0394e0d5bb078",
	"accounts": [
		{"address": "0xa9d380f4d9a0607c12f052ec2f6fb1d4b653d975", "balance": "0xde0b6b3a7640000"},
		{"address": "0x51c8ebee289bcd4ba64d1a70200d5de7356dc78a", "balance": 250}
	],
	"venueA": {
		"tokenReserve": "100",
		"paymentReserve": "400",
		"holders": [{"address": "0xcb43d5d874893a67d94cdb492faacf1b72299383", "balance": "25"}]
	},
	"venueB": {"tokenReserve": "40", "paymentReserve": "160", "holders": []}
}`

func TestNewCustomNet(t *testing.T) {
	var gen genesis.CustomGenesis
	assert.Nil(t, json.Unmarshal([]byte(customDoc), &gen))

	g, err := genesis.NewCustomNet(&gen)
	assert.Nil(t, err)
	assert.Equal(t, "customnet", g.Name())
	assert.False(t, g.ID().IsZero())

	store, _ := kv.NewMem()
	defer store.Close()
	st := state.New(store)
	assert.Nil(t, g.Build(st))

	gov, err := builtin.BindToken(st, genesis.GovToken)
	assert.Nil(t, err)
	symbol, err := gov.Symbol()
	assert.Nil(t, err)
	assert.Equal(t, "ACME", symbol)

	balance, err := gov.BalanceOf(gavel.MustParseAddress("0x51c8ebee289bcd4ba64d1a70200d5de7356dc78a"))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(250), balance)

	venueA, err := builtin.BindPair(st, genesis.VenueA)
	assert.Nil(t, err)
	reserve, err := venueA.ReserveOf(genesis.GovToken)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), reserve)

	// the sole LP holder owns the whole venue A reserve; venue B has
	// no supply and silently contributes nothing
	holder := gavel.MustParseAddress("0xcb43d5d874893a67d94cdb492faacf1b72299383")
	total, err := builtin.Power.WithState(st).BalanceOf(1700000000, holder)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), total)
}

func TestNewCustomNetID(t *testing.T) {
	var gen genesis.CustomGenesis
	assert.Nil(t, json.Unmarshal([]byte(customDoc), &gen))
	a, err := genesis.NewCustomNet(&gen)
	assert.Nil(t, err)
	b, err := genesis.NewCustomNet(&gen)
	assert.Nil(t, err)
	assert.Equal(t, a.ID(), b.ID())

	// the launch time is part of the identity
	gen.LaunchTime++
	c, err := genesis.NewCustomNet(&gen)
	assert.Nil(t, err)
	assert.NotEqual(t, a.ID(), c.ID())
}

func validCustom() *genesis.CustomGenesis {
	owner := gavel.MustParseAddress("0x6d48628bb5bf20e5b4e591c948e0394e0d5bb078")
	balance := (*genesis.HexOrDecimal256)(big.NewInt(1000))
	return &genesis.CustomGenesis{
		LaunchTime: 1700000000,
		Token:      genesis.TokenMeta{Name: "Acme", Symbol: "ACME", Decimals: 18},
		Owner:      owner,
		Accounts:   []genesis.Account{{Address: owner, Balance: balance}},
		VenueA:     &genesis.Venue{},
		VenueB:     &genesis.Venue{},
	}
}

func TestNewCustomNetInvalid(t *testing.T) {
	gen := validCustom()
	_, err := genesis.NewCustomNet(gen)
	assert.Nil(t, err)

	gen = validCustom()
	gen.Token.Symbol = ""
	_, err = genesis.NewCustomNet(gen)
	assert.Error(t, err)

	gen = validCustom()
	gen.Owner = gavel.Address{}
	_, err = genesis.NewCustomNet(gen)
	assert.Error(t, err)

	gen = validCustom()
	gen.VenueB = nil
	_, err = genesis.NewCustomNet(gen)
	assert.Error(t, err)

	gen = validCustom()
	gen.Accounts[0].Balance = nil
	_, err = genesis.NewCustomNet(gen)
	assert.Error(t, err)
}
