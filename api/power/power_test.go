// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavelhq/gavel/api/power"
	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/builtin/farm"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/genesis"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/ledger"
)

func newServer(t *testing.T) *httptest.Server {
	store, err := kv.NewMem()
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })

	led, err := ledger.New(store, genesis.NewDevnet())
	require.Nil(t, err)

	router := mux.NewRouter()
	power.New(led, 16).Mount(router, "/power")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	require.Nil(t, res.Body.Close())
	return body, res.StatusCode
}

func TestGetBalance(t *testing.T) {
	srv := newServer(t)
	holder := genesis.DevAccounts()[0].Address

	body, code := httpGet(t, srv.URL+"/power/"+holder.String())
	assert.Equal(t, http.StatusOK, code)

	var balance power.Balance
	require.Nil(t, json.Unmarshal(body, &balance))
	assert.Equal(t, 1, (*big.Int)(balance.Power).Sign())

	// repeated query hits the memoized value and must agree
	again, code := httpGet(t, srv.URL+"/power/"+holder.String())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, body, again)
}

func TestGetBalanceTracksAccrual(t *testing.T) {
	store, err := kv.NewMem()
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })

	led, err := ledger.New(store, genesis.NewDevnet())
	require.Nil(t, err)

	// register a farm still inside its reward period, with a sole staker
	master := genesis.DevAccounts()[0].Address
	staker := genesis.DevAccounts()[1].Address
	liveFarm := gavel.BytesToAddress([]byte("live-farm"))
	require.Nil(t, led.Execute(master, func(env *ledger.Env) error {
		env.State.SetCode(liveFarm, farm.Code)
		f := farm.New(liveFarm, env.State)
		if err := f.Init(genesis.VenueB, genesis.GovToken, big.NewInt(1e18), env.Now, env.Now+3600); err != nil {
			return err
		}
		if err := f.Stake(env.Now, staker, big.NewInt(1)); err != nil {
			return err
		}
		return builtin.Registry.WithState(env.State).AddFarms(master, liveFarm)
	}))

	router := mux.NewRouter()
	power.New(led, 16).Mount(router, "/power")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	body, code := httpGet(t, srv.URL+"/power/"+staker.String())
	assert.Equal(t, http.StatusOK, code)
	var first power.Balance
	require.Nil(t, json.Unmarshal(body, &first))

	// no mutation in between, yet a later query must not reuse the
	// memoized value: unclaimed rewards keep accruing per second
	time.Sleep(1100 * time.Millisecond)

	body, code = httpGet(t, srv.URL+"/power/"+staker.String())
	assert.Equal(t, http.StatusOK, code)
	var second power.Balance
	require.Nil(t, json.Unmarshal(body, &second))
	assert.Equal(t, 1, (*big.Int)(second.Power).Cmp((*big.Int)(first.Power)))
}

func TestGetBalanceBadAddress(t *testing.T) {
	srv := newServer(t)

	_, code := httpGet(t, srv.URL+"/power/not-an-address")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetBreakdown(t *testing.T) {
	srv := newServer(t)
	holder := genesis.DevAccounts()[1].Address

	body, code := httpGet(t, srv.URL+"/power/"+holder.String()+"/breakdown")
	assert.Equal(t, http.StatusOK, code)

	var breakdown power.Breakdown
	require.Nil(t, json.Unmarshal(body, &breakdown))
	assert.Equal(t, 1, (*big.Int)(breakdown.Direct).Sign())
	assert.Equal(t, 1, (*big.Int)(breakdown.VenueA).Sign())
	assert.True(t, (*big.Int)(breakdown.Total).Cmp((*big.Int)(breakdown.Direct)) > 0)
}

func TestGetMeta(t *testing.T) {
	srv := newServer(t)

	body, code := httpGet(t, srv.URL+"/power/meta")
	assert.Equal(t, http.StatusOK, code)

	var meta power.Meta
	require.Nil(t, json.Unmarshal(body, &meta))
	assert.Equal(t, "Gavel Voting Power", meta.Name)
	assert.Equal(t, "GVL", meta.Symbol)
	assert.Equal(t, uint8(18), meta.Decimals)
	assert.Equal(t, 1, (*big.Int)(meta.TotalSupply).Sign())
}
