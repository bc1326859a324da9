// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin hosts the registry's administrative surface. The node
// executes mutations as its configured master identity; the registry's
// own owner check decides whether that identity may mutate.
package admin

import (
	"errors"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/gavelhq/gavel/api/utils"
	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/builtin/registry"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/ledger"
	"github.com/gavelhq/gavel/metrics"
)

var (
	metricFarmCount  = metrics.LazyLoadGauge("registry_farm_count")
	metricGrantCount = metrics.LazyLoadGauge("registry_grant_count")
)

// Admin executes registry mutations on behalf of the master identity.
type Admin struct {
	ledger *ledger.Ledger
	master gavel.Address
}

func New(ledger *ledger.Ledger, master gavel.Address) *Admin {
	return &Admin{ledger, master}
}

// Handler assembles the admin router.
func Handler(ledger *ledger.Ledger, master gavel.Address) http.HandlerFunc {
	router := mux.NewRouter()
	New(ledger, master).Mount(router, "/admin/registry")
	return handlers.CompressHandler(router).ServeHTTP
}

func (a *Admin) execute(fn func(env *ledger.Env) error) error {
	err := a.ledger.Execute(a.master, fn)
	if errors.Is(err, registry.ErrUnauthorized) {
		return utils.Forbidden(err)
	}
	return err
}

func (a *Admin) handleAddFarms(w http.ResponseWriter, req *http.Request) error {
	var entries AddEntries
	if err := utils.ParseJSON(req.Body, &entries); err != nil {
		return utils.BadRequest(err)
	}
	if err := a.execute(func(env *ledger.Env) error {
		reg := builtin.Registry.WithState(env.State)
		if err := reg.AddFarms(env.Caller, entries.Entries...); err != nil {
			return err
		}
		farms, err := reg.Farms()
		if err != nil {
			return err
		}
		metricFarmCount().Set(int64(len(farms)))
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.M{"added": len(entries.Entries)})
}

func (a *Admin) handleAddVesting(w http.ResponseWriter, req *http.Request) error {
	var entries AddEntries
	if err := utils.ParseJSON(req.Body, &entries); err != nil {
		return utils.BadRequest(err)
	}
	if err := a.execute(func(env *ledger.Env) error {
		reg := builtin.Registry.WithState(env.State)
		if err := reg.AddVestingGrants(env.Caller, entries.Entries...); err != nil {
			return err
		}
		grants, err := reg.VestingGrants()
		if err != nil {
			return err
		}
		metricGrantCount().Set(int64(len(grants)))
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.M{"added": len(entries.Entries)})
}

func (a *Admin) handleSetStakedPool(w http.ResponseWriter, req *http.Request) error {
	var pool SetStakedPool
	if err := utils.ParseJSON(req.Body, &pool); err != nil {
		return utils.BadRequest(err)
	}
	if err := a.execute(func(env *ledger.Env) error {
		return builtin.Registry.WithState(env.State).SetStakedPool(env.Caller, pool.Vault, pool.PoolID)
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &pool)
}

func (a *Admin) handleSetOwner(w http.ResponseWriter, req *http.Request) error {
	var owner SetOwner
	if err := utils.ParseJSON(req.Body, &owner); err != nil {
		return utils.BadRequest(err)
	}
	if err := a.execute(func(env *ledger.Env) error {
		return builtin.Registry.WithState(env.State).TransferOwnership(env.Caller, owner.Owner)
	}); err != nil {
		if errors.Is(err, registry.ErrInvalidOwner) {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, &owner)
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/farms").
		Methods(http.MethodPost).
		Name("admin_add_farms").
		HandlerFunc(utils.WrapHandlerFunc(a.handleAddFarms))
	sub.Path("/vesting").
		Methods(http.MethodPost).
		Name("admin_add_vesting").
		HandlerFunc(utils.WrapHandlerFunc(a.handleAddVesting))
	sub.Path("/staked-pool").
		Methods(http.MethodPut).
		Name("admin_set_staked_pool").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetStakedPool))
	sub.Path("/owner").
		Methods(http.MethodPut).
		Name("admin_set_owner").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetOwner))
}
