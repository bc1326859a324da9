// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package power

import (
	"math/big"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/api/utils"
	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/cache"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/ledger"
	"github.com/gavelhq/gavel/metrics"
)

var (
	metricQueryCount    = metrics.LazyLoadCounter("power_query_count")
	metricQueryDuration = metrics.LazyLoadHistogram("power_query_duration_ms", metrics.Bucket10s)
)

// Power exposes the voting power aggregator over HTTP.
type Power struct {
	ledger *ledger.Ledger
	cache  *cache.LRU
}

type cacheKey struct {
	addr    gavel.Address
	version uint64
	now     uint64
}

func New(ledger *ledger.Ledger, cacheSize int) *Power {
	cache, err := cache.NewLRU(cacheSize)
	if err != nil {
		panic(errors.Wrap(err, "create power cache"))
	}
	return &Power{ledger, cache}
}

func (p *Power) balanceOf(addr gavel.Address) (*big.Int, error) {
	// unclaimed farm rewards grow with time, so a memoized value is
	// only valid for the second and state version it was computed at
	key := cacheKey{addr: addr, now: uint64(time.Now().Unix())}
	var power *big.Int
	if err := p.ledger.Query(func(env *ledger.Env) error {
		// the version is read under the same lock as the state it
		// keys, so a concurrent mutation cannot misfile the result
		key.version = env.Version
		if v, ok := p.cache.Get(key); ok {
			power = v.(*big.Int)
			return nil
		}
		start := time.Now()
		var err error
		if power, err = builtin.Power.WithState(env.State).BalanceOf(key.now, addr); err != nil {
			return err
		}
		metricQueryCount().Add(1)
		metricQueryDuration().Observe(time.Since(start).Milliseconds())
		p.cache.Add(key, power)
		return nil
	}); err != nil {
		return nil, err
	}
	return power, nil
}

func (p *Power) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := gavel.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	power, err := p.balanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Power: (*HexBig)(power)})
}

func (p *Power) handleGetBreakdown(w http.ResponseWriter, req *http.Request) error {
	addr, err := gavel.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var breakdown *Breakdown
	if err := p.ledger.Query(func(env *ledger.Env) error {
		b, err := builtin.Power.WithState(env.State).Breakdown(env.Now, addr)
		if err != nil {
			return err
		}
		breakdown = convertBreakdown(b)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, breakdown)
}

func (p *Power) handleGetMeta(w http.ResponseWriter, _ *http.Request) error {
	var meta Meta
	if err := p.ledger.Query(func(env *ledger.Env) error {
		power := builtin.Power.WithState(env.State)
		var err error
		if meta.Name, err = power.Name(); err != nil {
			return err
		}
		if meta.Symbol, err = power.Symbol(); err != nil {
			return err
		}
		if meta.Decimals, err = power.Decimals(); err != nil {
			return err
		}
		supply, err := power.TotalSupply()
		if err != nil {
			return err
		}
		meta.TotalSupply = (*HexBig)(supply)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &meta)
}

func (p *Power) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/meta").
		Methods(http.MethodGet).
		Name("power_get_meta").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetMeta))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("power_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetBalance))
	sub.Path("/{address}/breakdown").
		Methods(http.MethodGet).
		Name("power_get_breakdown").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetBreakdown))
}
